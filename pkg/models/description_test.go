package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/taigrr/orbs/pkg/math3d"
	"github.com/taigrr/orbs/pkg/render"
	"github.com/taigrr/orbs/pkg/scene"
)

const sampleScene = `{
	"viewport": {"width": 1, "height": 1},
	"spheres": [
		{"radius": 1, "center": {"x": 0, "y": -1, "z": 3}, "color": {"r": 1, "g": 0, "b": 0, "a": 255}, "specular": 500, "reflective": 0.2},
		{"radius": 1, "center": {"x": 2, "y": 0, "z": 4}, "color": "#0000ff", "specular": 500, "reflective": 0.3},
		{"radius": 5000, "center": {"x": 0, "y": -5001, "z": 0}, "color": {"r": 1, "g": 1, "b": 0}, "specular": -1, "reflective": 0}
	]
}`

func TestDecodeSample(t *testing.T) {
	d, err := DecodeBytes([]byte(sampleScene))
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}

	if d.Viewport != (ViewportSpec{1, 1}) {
		t.Errorf("viewport = %+v", d.Viewport)
	}
	if len(d.Spheres) != 3 {
		t.Fatalf("got %d spheres, want 3", len(d.Spheres))
	}
	if got := d.Spheres[1].Color; got != (ColorSpec{0, 0, 1, 255}) {
		t.Errorf("hex color = %+v", got)
	}
	if got := d.Spheres[2].Color.A; got != 255 {
		t.Errorf("missing alpha = %d, want 255", got)
	}
	if d.Lights != nil {
		t.Errorf("lights = %+v, want nil", d.Lights)
	}
}

func TestBuildSample(t *testing.T) {
	d, err := DecodeBytes([]byte(sampleScene))
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}

	s, vp, err := d.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if vp != render.NewViewport(1, 1) {
		t.Errorf("viewport = %+v", vp)
	}
	if !s.Spheres[0].Center.ApproxEqual(math3d.Point(0, -1, 3)) {
		t.Errorf("center = %v", s.Spheres[0].Center)
	}
	if !s.Spheres[0].Color.ApproxEqual(math3d.RGB(1, 0, 0)) {
		t.Errorf("color = %+v", s.Spheres[0].Color)
	}
	if s.Spheres[2].Specular != scene.NoSpecular {
		t.Errorf("specular = %v", s.Spheres[2].Specular)
	}
	if len(s.Lights) != len(scene.DefaultLights()) {
		t.Errorf("got %d lights, want the default rig", len(s.Lights))
	}
}

func TestBuildLights(t *testing.T) {
	d, err := DecodeBytes([]byte(`{
		"viewport": {"width": 2, "height": 1},
		"spheres": [],
		"lights": [
			{"type": "ambient", "intensity": 0.1},
			{"type": "Point", "intensity": 0.5, "position": {"x": 1, "y": 2, "z": 3}},
			{"type": "directional", "intensity": 0.4, "direction": {"x": 0, "y": 1, "z": 0}}
		]
	}`))
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}

	s, _, err := d.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []scene.Light{
		scene.Ambient(0.1),
		scene.Point(0.5, math3d.Point(1, 2, 3)),
		scene.Directional(0.4, math3d.Vector(0, 1, 0)),
	}
	if len(s.Lights) != len(want) {
		t.Fatalf("got %d lights, want %d", len(s.Lights), len(want))
	}
	for i := range want {
		if s.Lights[i] != want[i] {
			t.Errorf("light %d = %+v, want %+v", i, s.Lights[i], want[i])
		}
	}
}

func TestBuildEmptyLightsMeansDark(t *testing.T) {
	d, err := DecodeBytes([]byte(`{"viewport": {"width": 1, "height": 1}, "spheres": [], "lights": []}`))
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	s, _, err := d.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(s.Lights) != 0 {
		t.Errorf("explicit empty light list became %d lights", len(s.Lights))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{"empty", ``, ""},
		{"syntax", `{"viewport": `, ""},
		{"wrong type", `{"viewport": {"width": 1, "height": 1}, "spheres": [{"radius": "big"}]}`, "radius"},
		{"unknown field", `{"viewport": {"width": 1, "height": 1}, "cameras": []}`, ""},
		{"bad hex", `{"viewport": {"width": 1, "height": 1}, "spheres": [` + sphereWith(`"color": "#zz0000"`) + `]}`, "spheres[0].color"},
		{"trailing data", `{"viewport": {"width": 1, "height": 1}, "spheres": []} {}`, ""},
		{"missing viewport", `{"spheres": []}`, "viewport"},
		{"missing viewport height", `{"viewport": {"width": 1}, "spheres": []}`, "viewport.height"},
		{"missing spheres", `{"viewport": {"width": 1, "height": 1}}`, "spheres"},
		{"missing radius", `{"viewport": {"width": 1, "height": 1}, "spheres": [` + sphereWithout("radius") + `]}`, "spheres[0].radius"},
		{"missing center", `{"viewport": {"width": 1, "height": 1}, "spheres": [` + sphereWithout("center") + `]}`, "spheres[0].center"},
		{"missing center z", `{"viewport": {"width": 1, "height": 1}, "spheres": [` + sphereWith(`"center": {"x": 0, "y": 0}`) + `]}`, "spheres[0].center.z"},
		{"missing color", `{"viewport": {"width": 1, "height": 1}, "spheres": [` + sphereWithout("color") + `]}`, "spheres[0].color"},
		{"missing color channel", `{"viewport": {"width": 1, "height": 1}, "spheres": [` + sphereWith(`"color": {"r": 1, "g": 0}`) + `]}`, "spheres[0].color"},
		{"missing specular", `{"viewport": {"width": 1, "height": 1}, "spheres": [` + sphereWithout("specular") + `]}`, "spheres[0].specular"},
		{"missing reflective", `{"viewport": {"width": 1, "height": 1}, "spheres": [` + sphereWithout("reflective") + `]}`, "spheres[0].reflective"},
		{"missing light intensity", `{"viewport": {"width": 1, "height": 1}, "spheres": [], "lights": [{"type": "ambient"}]}`, "lights[0].intensity"},
		{"missing light type", `{"viewport": {"width": 1, "height": 1}, "spheres": [], "lights": [{"intensity": 1}]}`, "lights[0].type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeBytes([]byte(tc.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("error %v does not match ErrMalformed", err)
			}
			var de *DescriptionError
			if !errors.As(err, &de) {
				t.Fatalf("error %T is not a *DescriptionError", err)
			}
			if !strings.Contains(de.Path, tc.wantPath) {
				t.Errorf("path = %q, want it to contain %q", de.Path, tc.wantPath)
			}
		})
	}
}

// sphereFields are the fields of a complete sphere descriptor.
var sphereFields = []struct{ name, value string }{
	{"radius", `1`},
	{"center", `{"x": 0, "y": 0, "z": 3}`},
	{"color", `{"r": 1, "g": 0, "b": 0}`},
	{"specular", `10`},
	{"reflective", `0`},
}

// sphereWithout returns a sphere descriptor lacking one field.
func sphereWithout(field string) string {
	var parts []string
	for _, f := range sphereFields {
		if f.name != field {
			parts = append(parts, `"`+f.name+`": `+f.value)
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// sphereWith returns a complete sphere descriptor with one field replaced.
// override is a `"name": value` pair.
func sphereWith(override string) string {
	name := strings.Trim(strings.SplitN(override, ":", 2)[0], `" `)
	body := strings.TrimSuffix(sphereWithout(name), "}")
	return body + ", " + override + "}"
}

func TestDecodeCompleteSphere(t *testing.T) {
	d, err := DecodeBytes([]byte(`{"viewport": {"width": 1, "height": 1}, "spheres": [` + sphereWithout("") + `]}`))
	if err != nil {
		t.Fatalf("DecodeBytes: %v", err)
	}
	want := SphereSpec{Radius: 1, Center: TupleSpec{0, 0, 3}, Color: ColorSpec{1, 0, 0, 255}, Specular: 10}
	if d.Spheres[0] != want {
		t.Errorf("sphere = %+v, want %+v", d.Spheres[0], want)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Description {
		return &Description{
			Viewport: ViewportSpec{1, 1},
			Spheres: []SphereSpec{
				{Radius: 1, Center: TupleSpec{0, 0, 3}, Color: ColorSpec{1, 0, 0, 255}, Specular: 10, Reflective: 0.5},
			},
			Lights: []LightSpec{
				{Type: "ambient", Intensity: 0.2},
				{Type: "point", Intensity: 0.6, Position: &TupleSpec{2, 1, 0}},
				{Type: "directional", Intensity: 0.2, Direction: &TupleSpec{1, 4, 4}},
			},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid description rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(d *Description)
		path   string
	}{
		{"zero viewport width", func(d *Description) { d.Viewport.Width = 0 }, "viewport.width"},
		{"negative viewport height", func(d *Description) { d.Viewport.Height = -1 }, "viewport.height"},
		{"zero radius", func(d *Description) { d.Spheres[0].Radius = 0 }, "spheres[0].radius"},
		{"reflective above one", func(d *Description) { d.Spheres[0].Reflective = 1.5 }, "spheres[0].reflective"},
		{"negative reflective", func(d *Description) { d.Spheres[0].Reflective = -0.1 }, "spheres[0].reflective"},
		{"negative specular", func(d *Description) { d.Spheres[0].Specular = -2 }, "spheres[0].specular"},
		{"unknown light", func(d *Description) { d.Lights[0].Type = "spot" }, "lights[0].type"},
		{"negative intensity", func(d *Description) { d.Lights[1].Intensity = -1 }, "lights[1].intensity"},
		{"point without position", func(d *Description) { d.Lights[1].Position = nil }, "lights[1].position"},
		{"directional without direction", func(d *Description) { d.Lights[2].Direction = nil }, "lights[2].direction"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := valid()
			tc.mutate(d)

			err := d.Validate()
			var de *DescriptionError
			if !errors.As(err, &de) {
				t.Fatalf("Validate() = %v, want *DescriptionError", err)
			}
			if de.Path != tc.path {
				t.Errorf("path = %q, want %q", de.Path, tc.path)
			}

			if _, _, err := d.Build(); err == nil {
				t.Error("Build accepted an invalid description")
			}
		})
	}
}

func TestNoSpecularAccepted(t *testing.T) {
	d := &Description{
		Viewport: ViewportSpec{1, 1},
		Spheres:  []SphereSpec{{Radius: 1, Specular: scene.NoSpecular}},
	}
	if err := d.Validate(); err != nil {
		t.Errorf("NoSpecular rejected: %v", err)
	}
}
