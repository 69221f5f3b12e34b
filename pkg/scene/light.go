package scene

import (
	"fmt"

	"github.com/taigrr/orbs/pkg/math3d"
)

// LightKind selects which fields of a Light are meaningful.
type LightKind int

const (
	LightAmbient     LightKind = iota // Intensity only
	LightPoint                        // Intensity and Position
	LightDirectional                  // Intensity and Direction (towards the source)
)

// String returns the kind name used in scene descriptions.
func (k LightKind) String() string {
	switch k {
	case LightAmbient:
		return "ambient"
	case LightPoint:
		return "point"
	case LightDirectional:
		return "directional"
	default:
		return fmt.Sprintf("LightKind(%d)", int(k))
	}
}

// ParseLightKind is the inverse of LightKind.String.
func ParseLightKind(s string) (LightKind, error) {
	switch s {
	case "ambient":
		return LightAmbient, nil
	case "point":
		return LightPoint, nil
	case "directional":
		return LightDirectional, nil
	default:
		return 0, fmt.Errorf("unknown light kind %q", s)
	}
}

// Light is one of three variants discriminated by Kind.
// Build lights with Ambient, Point or Directional.
type Light struct {
	Kind      LightKind
	Intensity float64
	Position  math3d.Tuple // LightPoint only
	Direction math3d.Tuple // LightDirectional only
}

// Ambient creates a light that illuminates every surface equally.
func Ambient(intensity float64) Light {
	return Light{Kind: LightAmbient, Intensity: intensity}
}

// Point creates a light emitting from position in all directions.
func Point(intensity float64, position math3d.Tuple) Light {
	return Light{Kind: LightPoint, Intensity: intensity, Position: position}
}

// Directional creates a light infinitely far away.
// direction points from the lit surface towards the source.
func Directional(intensity float64, direction math3d.Tuple) Light {
	return Light{Kind: LightDirectional, Intensity: intensity, Direction: direction}
}

// DefaultLights is the rig used when a scene description lists no lights.
// The directional light carries W = 1, which Dot and Len count, so its
// diffuse term is I*(N.L)/sqrt(34) rather than sqrt(33).
func DefaultLights() []Light {
	return []Light{
		Ambient(0.2),
		Point(0.6, math3d.Point(2, 1, 0)),
		Directional(0.2, math3d.Point(1, 4, 4)),
	}
}
