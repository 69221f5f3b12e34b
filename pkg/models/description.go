// Package models loads scene descriptions for the tracer from JSON or glTF.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/orbs/pkg/math3d"
	"github.com/taigrr/orbs/pkg/render"
	"github.com/taigrr/orbs/pkg/scene"
)

// Description is a parsed, not yet validated, scene.
type Description struct {
	Viewport ViewportSpec `json:"viewport"`
	Spheres  []SphereSpec `json:"spheres"`
	Lights   []LightSpec  `json:"lights,omitempty"` // nil selects scene.DefaultLights
}

// ViewportSpec is the logical size of the image plane.
type ViewportSpec struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TupleSpec is an XYZ triple.
type TupleSpec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// SphereSpec describes one sphere.
type SphereSpec struct {
	Radius     float64   `json:"radius"`
	Center     TupleSpec `json:"center"`
	Color      ColorSpec `json:"color"`
	Specular   float64   `json:"specular"`
	Reflective float64   `json:"reflective"`
}

// LightSpec describes one light. Position is used by point lights and
// Direction (towards the source) by directional lights.
type LightSpec struct {
	Type      string     `json:"type"`
	Intensity float64    `json:"intensity"`
	Position  *TupleSpec `json:"position,omitempty"`
	Direction *TupleSpec `json:"direction,omitempty"`
}

// ColorSpec is a color given either as {"r","g","b","a"} with float
// channels and an alpha byte, or as a "#rrggbb" hex string.
type ColorSpec struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A uint8   `json:"a"`
}

// UnmarshalJSON accepts the object and the hex string forms.
// The object form needs r, g and b; a missing alpha defaults to opaque.
func (c *ColorSpec) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := colorful.Hex(s)
		if err != nil {
			return fmt.Errorf("parse color %q: %w", s, err)
		}
		*c = ColorSpec{R: parsed.R, G: parsed.G, B: parsed.B, A: 255}
		return nil
	}

	var raw struct {
		R *float64 `json:"r"`
		G *float64 `json:"g"`
		B *float64 `json:"b"`
		A *uint8   `json:"a"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw.R == nil || raw.G == nil || raw.B == nil {
		return errors.New("color needs r, g and b")
	}
	*c = ColorSpec{R: *raw.R, G: *raw.G, B: *raw.B, A: 255}
	if raw.A != nil {
		c.A = *raw.A
	}
	return nil
}

// Decode reads a JSON scene description. Unknown fields are rejected and
// every field except lights, a color's alpha and a light's position or
// direction must be present. Any failure is returned as a *DescriptionError.
func Decode(r io.Reader) (*Description, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var w wireDescription
	if err := dec.Decode(&w); err != nil {
		return nil, decodeError(err)
	}
	if dec.More() {
		return nil, &DescriptionError{Err: errors.New("trailing data after scene description")}
	}
	return w.description()
}

// The wire types mirror Description with pointer fields so that a missing
// field can be told apart from a zero one.
type (
	wireDescription struct {
		Viewport *wireViewport `json:"viewport"`
		Spheres  []wireSphere  `json:"spheres"`
		Lights   []wireLight   `json:"lights"`
	}

	wireViewport struct {
		Width  *float64 `json:"width"`
		Height *float64 `json:"height"`
	}

	wireTuple struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
		Z *float64 `json:"z"`
	}

	wireSphere struct {
		Radius     *float64        `json:"radius"`
		Center     *wireTuple      `json:"center"`
		Color      json.RawMessage `json:"color"`
		Specular   *float64        `json:"specular"`
		Reflective *float64        `json:"reflective"`
	}

	wireLight struct {
		Type      *string    `json:"type"`
		Intensity *float64   `json:"intensity"`
		Position  *wireTuple `json:"position"`
		Direction *wireTuple `json:"direction"`
	}
)

func missing(path string) *DescriptionError {
	return invalid(path, "missing required field")
}

func (w *wireDescription) description() (*Description, error) {
	if w.Viewport == nil {
		return nil, missing("viewport")
	}
	if w.Viewport.Width == nil {
		return nil, missing("viewport.width")
	}
	if w.Viewport.Height == nil {
		return nil, missing("viewport.height")
	}
	if w.Spheres == nil {
		return nil, missing("spheres")
	}

	d := &Description{
		Viewport: ViewportSpec{Width: *w.Viewport.Width, Height: *w.Viewport.Height},
		Spheres:  make([]SphereSpec, len(w.Spheres)),
	}

	for i, ws := range w.Spheres {
		s, err := ws.resolve(fmt.Sprintf("spheres[%d]", i))
		if err != nil {
			return nil, err
		}
		d.Spheres[i] = s
	}

	if w.Lights != nil {
		d.Lights = make([]LightSpec, len(w.Lights))
		for i, wl := range w.Lights {
			l, err := wl.resolve(fmt.Sprintf("lights[%d]", i))
			if err != nil {
				return nil, err
			}
			d.Lights[i] = l
		}
	}

	return d, nil
}

func (ws *wireSphere) resolve(path string) (SphereSpec, error) {
	var s SphereSpec

	if ws.Radius == nil {
		return s, missing(path + ".radius")
	}
	if ws.Center == nil {
		return s, missing(path + ".center")
	}
	center, err := ws.Center.resolve(path + ".center")
	if err != nil {
		return s, err
	}
	if len(ws.Color) == 0 || string(ws.Color) == "null" {
		return s, missing(path + ".color")
	}
	if err := s.Color.UnmarshalJSON(ws.Color); err != nil {
		return s, &DescriptionError{Path: path + ".color", Err: err}
	}
	if ws.Specular == nil {
		return s, missing(path + ".specular")
	}
	if ws.Reflective == nil {
		return s, missing(path + ".reflective")
	}

	s.Radius = *ws.Radius
	s.Center = center
	s.Specular = *ws.Specular
	s.Reflective = *ws.Reflective
	return s, nil
}

func (wl *wireLight) resolve(path string) (LightSpec, error) {
	if wl.Type == nil {
		return LightSpec{}, missing(path + ".type")
	}
	if wl.Intensity == nil {
		return LightSpec{}, missing(path + ".intensity")
	}

	l := LightSpec{Type: *wl.Type, Intensity: *wl.Intensity}
	if wl.Position != nil {
		pos, err := wl.Position.resolve(path + ".position")
		if err != nil {
			return LightSpec{}, err
		}
		l.Position = &pos
	}
	if wl.Direction != nil {
		dir, err := wl.Direction.resolve(path + ".direction")
		if err != nil {
			return LightSpec{}, err
		}
		l.Direction = &dir
	}
	return l, nil
}

func (wt *wireTuple) resolve(path string) (TupleSpec, error) {
	switch {
	case wt.X == nil:
		return TupleSpec{}, missing(path + ".x")
	case wt.Y == nil:
		return TupleSpec{}, missing(path + ".y")
	case wt.Z == nil:
		return TupleSpec{}, missing(path + ".z")
	}
	return TupleSpec{X: *wt.X, Y: *wt.Y, Z: *wt.Z}, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte) (*Description, error) {
	return Decode(bytes.NewReader(data))
}

// decodeError attaches the best field path encoding/json gives us.
func decodeError(err error) *DescriptionError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &DescriptionError{Path: typeErr.Field, Err: err}
	}
	if errors.Is(err, io.EOF) {
		return &DescriptionError{Err: errors.New("empty document")}
	}
	return &DescriptionError{Err: err}
}

// Validate checks every value the tracer relies on and returns the first
// violation as a *DescriptionError.
func (d *Description) Validate() error {
	if !(d.Viewport.Width > 0) {
		return invalid("viewport.width", "must be positive, got %v", d.Viewport.Width)
	}
	if !(d.Viewport.Height > 0) {
		return invalid("viewport.height", "must be positive, got %v", d.Viewport.Height)
	}

	for i, s := range d.Spheres {
		path := fmt.Sprintf("spheres[%d]", i)
		if !(s.Radius > 0) {
			return invalid(path+".radius", "must be positive, got %v", s.Radius)
		}
		if !finite(s.Center.X, s.Center.Y, s.Center.Z) {
			return invalid(path+".center", "must be finite")
		}
		if !finite(s.Color.R, s.Color.G, s.Color.B) {
			return invalid(path+".color", "must be finite")
		}
		if s.Specular != scene.NoSpecular && !(s.Specular >= 0) {
			return invalid(path+".specular", "must be %v or non-negative, got %v", scene.NoSpecular, s.Specular)
		}
		if !(s.Reflective >= 0 && s.Reflective <= 1) {
			return invalid(path+".reflective", "must be in [0, 1], got %v", s.Reflective)
		}
	}

	for i, l := range d.Lights {
		path := fmt.Sprintf("lights[%d]", i)
		kind, err := scene.ParseLightKind(strings.ToLower(l.Type))
		if err != nil {
			return &DescriptionError{Path: path + ".type", Err: err}
		}
		if !(l.Intensity >= 0) || math.IsInf(l.Intensity, 1) {
			return invalid(path+".intensity", "must be finite and non-negative, got %v", l.Intensity)
		}
		switch kind {
		case scene.LightAmbient:
		case scene.LightPoint:
			if l.Position == nil {
				return invalid(path+".position", "required for point lights")
			}
		case scene.LightDirectional:
			if l.Direction == nil {
				return invalid(path+".direction", "required for directional lights")
			}
		}
	}

	return nil
}

// Build validates the description and converts it into the tracer's types.
// The returned scene owns fresh slices.
func (d *Description) Build() (*scene.Scene, render.Viewport, error) {
	if err := d.Validate(); err != nil {
		return nil, render.Viewport{}, err
	}

	spheres := make([]scene.Sphere, len(d.Spheres))
	for i, s := range d.Spheres {
		spheres[i] = scene.Sphere{
			Radius:     s.Radius,
			Center:     math3d.Point(s.Center.X, s.Center.Y, s.Center.Z),
			Color:      math3d.Color{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: s.Color.A},
			Specular:   s.Specular,
			Reflective: s.Reflective,
		}
	}

	lights := scene.DefaultLights()
	if d.Lights != nil {
		lights = make([]scene.Light, len(d.Lights))
		for i, l := range d.Lights {
			// Validate already rejected unknown kinds.
			kind, _ := scene.ParseLightKind(strings.ToLower(l.Type))
			switch kind {
			case scene.LightAmbient:
				lights[i] = scene.Ambient(l.Intensity)
			case scene.LightPoint:
				lights[i] = scene.Point(l.Intensity, math3d.Point(l.Position.X, l.Position.Y, l.Position.Z))
			case scene.LightDirectional:
				lights[i] = scene.Directional(l.Intensity, math3d.Vector(l.Direction.X, l.Direction.Y, l.Direction.Z))
			}
		}
	}

	vp := render.NewViewport(d.Viewport.Width, d.Viewport.Height)
	return scene.New(spheres, lights), vp, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
