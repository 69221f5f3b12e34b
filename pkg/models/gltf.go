package models

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/taigrr/orbs/pkg/math3d"
	"github.com/taigrr/orbs/pkg/scene"
)

// GLTFAmbient is the ambient intensity added to scenes that bring their own
// punctual lights. glTF has no ambient light of its own.
const GLTFAmbient = 0.2

// specularRange maps glTF roughness to a Phong exponent:
// roughness 0 gives specularRange, roughness 1 disables the highlight.
const specularRange = 1000

// GLTFLoader turns a glTF document into a scene description.
//
// Every node that references a mesh becomes a sphere: its world transform
// places the center and the length of the transformed X axis is the radius.
// The first material on the mesh supplies color (base color factor),
// reflective (metallic factor) and specular (from roughness). Nodes with a
// KHR_lights_punctual light become point or directional lights.
type GLTFLoader struct {
	// Viewport of the resulting description. glTF cameras are not used.
	Viewport ViewportSpec
}

// NewGLTFLoader creates a loader with a 1x1 viewport.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		Viewport: ViewportSpec{Width: 1, Height: 1},
	}
}

// LoadGLTF loads a .gltf or .glb file with the default loader.
func LoadGLTF(path string) (*Description, error) {
	return NewGLTFLoader().Load(path)
}

// Load opens a glTF or GLB file and converts it.
func (l *GLTFLoader) Load(path string) (*Description, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.Convert(doc)
}

// Convert walks the default scene of doc (or every root node if the
// document has no scenes) and collects spheres and lights.
func (l *GLTFLoader) Convert(doc *gltf.Document) (*Description, error) {
	d := &Description{Viewport: l.Viewport}

	var punctual lightspunctual.Lights
	if ext, ok := doc.Extensions[lightspunctual.ExtensionName]; ok {
		lights, ok := ext.(lightspunctual.Lights)
		if !ok {
			return nil, &DescriptionError{Path: "extensions." + lightspunctual.ExtensionName, Err: fmt.Errorf("unexpected type %T", ext)}
		}
		punctual = lights
	}

	visited := make(map[int]bool)
	var walk func(idx int, parent math3d.Mat4) error
	walk = func(idx int, parent math3d.Mat4) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return invalid(fmt.Sprintf("nodes[%d]", idx), "index out of range")
		}
		if visited[idx] {
			return invalid(fmt.Sprintf("nodes[%d]", idx), "node reached twice")
		}
		visited[idx] = true

		node := doc.Nodes[idx]
		world := parent.Mul(localMatrix(node))

		if node.Mesh != nil {
			s, err := l.sphere(doc, idx, *node.Mesh, world)
			if err != nil {
				return err
			}
			d.Spheres = append(d.Spheres, s)
		}

		if ext, ok := node.Extensions[lightspunctual.ExtensionName]; ok {
			li, ok := ext.(lightspunctual.LightIndex)
			if !ok {
				return invalid(fmt.Sprintf("nodes[%d].extensions", idx), "unexpected light type %T", ext)
			}
			if int(li) >= len(punctual) {
				return invalid(fmt.Sprintf("nodes[%d].extensions", idx), "light %d out of range", li)
			}
			d.Lights = append(d.Lights, punctualLight(punctual[li], world))
		}

		for _, child := range node.Children {
			if err := walk(child, world); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range rootNodes(doc) {
		if err := walk(root, math3d.Identity()); err != nil {
			return nil, err
		}
	}

	if d.Lights != nil {
		d.Lights = append([]LightSpec{{Type: scene.LightAmbient.String(), Intensity: GLTFAmbient}}, d.Lights...)
	}

	return d, nil
}

// sphere converts a mesh node. The mesh geometry itself is ignored.
func (l *GLTFLoader) sphere(doc *gltf.Document, nodeIdx, meshIdx int, world math3d.Mat4) (SphereSpec, error) {
	if meshIdx < 0 || meshIdx >= len(doc.Meshes) {
		return SphereSpec{}, invalid(fmt.Sprintf("nodes[%d].mesh", nodeIdx), "mesh %d out of range", meshIdx)
	}

	center := world.MulTuple(math3d.Point(0, 0, 0))
	s := SphereSpec{
		Radius:   world.MulTuple(math3d.Vector(1, 0, 0)).Len(),
		Center:   TupleSpec{center.X, center.Y, center.Z},
		Color:    ColorSpec{R: 1, G: 1, B: 1, A: 255},
		Specular: scene.NoSpecular,
	}

	for _, prim := range doc.Meshes[meshIdx].Primitives {
		if prim.Material == nil {
			continue
		}
		if *prim.Material < 0 || *prim.Material >= len(doc.Materials) {
			return SphereSpec{}, invalid(fmt.Sprintf("meshes[%d].material", meshIdx), "material %d out of range", *prim.Material)
		}
		applyMaterial(&s, doc.Materials[*prim.Material])
		break
	}

	return s, nil
}

// applyMaterial copies the metallic-roughness parameters, falling back to
// the glTF defaults (white, metallic 1, roughness 1) for unset factors.
func applyMaterial(s *SphereSpec, m *gltf.Material) {
	base := [4]float64{1, 1, 1, 1}
	metallic, roughness := 1.0, 1.0

	if pbr := m.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			base = *pbr.BaseColorFactor
		}
		if pbr.MetallicFactor != nil {
			metallic = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			roughness = *pbr.RoughnessFactor
		}
	}

	s.Color = ColorSpec{R: base[0], G: base[1], B: base[2], A: uint8(math.Round(clamp01(base[3]) * 255))}
	s.Reflective = clamp01(metallic)
	s.Specular = scene.NoSpecular
	if roughness < 1 {
		s.Specular = (1 - math.Max(roughness, 0)) * specularRange
	}
}

// punctualLight converts a KHR_lights_punctual light placed by world.
// Spot lights have no cone here and act as point lights.
func punctualLight(pl *lightspunctual.Light, world math3d.Mat4) LightSpec {
	intensity := 1.0
	if pl.Intensity != nil {
		intensity = *pl.Intensity
	}

	if pl.Type == lightspunctual.TypeDirectional {
		// Directional lights shine down their local -Z axis.
		dir := world.MulTuple(math3d.Vector(0, 0, 1)).Normalize()
		return LightSpec{
			Type:      scene.LightDirectional.String(),
			Intensity: intensity,
			Direction: &TupleSpec{dir.X, dir.Y, dir.Z},
		}
	}

	pos := world.Translation()
	return LightSpec{
		Type:      scene.LightPoint.String(),
		Intensity: intensity,
		Position:  &TupleSpec{pos.X, pos.Y, pos.Z},
	}
}

// localMatrix returns a node's transform relative to its parent.
func localMatrix(n *gltf.Node) math3d.Mat4 {
	if n.Matrix != [16]float64{} && math3d.Mat4(n.Matrix) != math3d.Identity() {
		return math3d.Mat4(n.Matrix)
	}

	rotation := n.Rotation
	if rotation == [4]float64{} {
		rotation = [4]float64{0, 0, 0, 1}
	}
	scale := n.Scale
	if scale == [3]float64{} {
		scale = [3]float64{1, 1, 1}
	}

	t := math3d.Translate(math3d.Vector(n.Translation[0], n.Translation[1], n.Translation[2]))
	r := math3d.Quaternion(rotation)
	s := math3d.Scaling(math3d.Vector(scale[0], scale[1], scale[2]))
	return t.Mul(r).Mul(s)
}

// rootNodes returns the nodes to start walking from.
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes
	}

	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
