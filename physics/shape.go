package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// ShapeKind tags the variant held by a Shape.
type ShapeKind int

const (
	ShapeNone ShapeKind = iota
	ShapeBall
	ShapeCuboid
	// ShapeSegment is a capsule-ended line used for world bounds. It collides
	// like any other shape but has no draw primitive.
	ShapeSegment
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBall:
		return "ball"
	case ShapeCuboid:
		return "cuboid"
	case ShapeSegment:
		return "segment"
	default:
		return "none"
	}
}

// Shape is a closed tagged union of collider geometry. Only the fields that
// belong to Kind are meaningful.
type Shape struct {
	Kind ShapeKind

	// Ball
	Radius float64

	// Cuboid
	HalfExtents Vector

	// Segment, in body-local coordinates. Radius doubles as the thickness.
	A, B Vector
}

// Ball returns a circle shape centred on its body.
func Ball(radius float64) Shape {
	return Shape{Kind: ShapeBall, Radius: radius}
}

// Cuboid returns a box shape centred on its body.
func Cuboid(hx, hy float64) Shape {
	return Shape{Kind: ShapeCuboid, HalfExtents: Vector{X: hx, Y: hy}}
}

// Segment returns a line shape from a to b with rounded ends of the given radius.
func Segment(a, b Vector, radius float64) Shape {
	return Shape{Kind: ShapeSegment, A: a, B: b, Radius: radius}
}

// Validate reports whether the shape can be attached to a body.
func (s Shape) Validate() error {
	switch s.Kind {
	case ShapeBall:
		if s.Radius <= 0 {
			return fmt.Errorf("%w: ball radius %v", ErrInvalidShape, s.Radius)
		}
	case ShapeCuboid:
		if s.HalfExtents.X <= 0 || s.HalfExtents.Y <= 0 {
			return fmt.Errorf("%w: cuboid half extents %v", ErrInvalidShape, s.HalfExtents)
		}
	case ShapeSegment:
		if s.A.Equal(s.B) {
			return fmt.Errorf("%w: degenerate segment", ErrInvalidShape)
		}
		if s.Radius < 0 {
			return fmt.Errorf("%w: segment radius %v", ErrInvalidShape, s.Radius)
		}
	default:
		return fmt.Errorf("%w: kind %v", ErrInvalidShape, s.Kind)
	}
	return nil
}

func (s Shape) build(body *cp.Body) *cp.Shape {
	switch s.Kind {
	case ShapeBall:
		return cp.NewCircle(body, s.Radius, cp.Vector{})
	case ShapeCuboid:
		return cp.NewBox(body, s.HalfExtents.X*2, s.HalfExtents.Y*2, 0)
	case ShapeSegment:
		return cp.NewSegment(body, s.A, s.B, s.Radius)
	default:
		return nil
	}
}
