package render

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Mat4 is a row-major 4x4 matrix acting on column vectors.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho returns an orthographic projection mapping the box
// [left,right]x[bottom,top]x[near,far] onto clip space [-1,1]^3.
// Passing bottom > top gives a y-down world.
func Ortho(left, right, bottom, top, near, far float64) Mat4 {
	m := Identity()
	m[0] = 2 / (right - left)
	m[3] = -(right + left) / (right - left)
	m[5] = 2 / (top - bottom)
	m[7] = -(top + bottom) / (top - bottom)
	m[10] = -2 / (far - near)
	m[11] = -(far + near) / (far - near)
	return m
}

// Translate returns a translation by (x, y).
func Translate(x, y float64) Mat4 {
	m := Identity()
	m[3] = x
	m[7] = y
	return m
}

// Scale returns a scale by (sx, sy) in the xy plane.
func Scale(sx, sy float64) Mat4 {
	m := Identity()
	m[0] = sx
	m[5] = sy
	return m
}

// RotateZ returns a counter-clockwise rotation by theta radians about the z axis.
func RotateZ(theta float64) Mat4 {
	s, c := math.Sincos(theta)
	m := Identity()
	m[0], m[1] = c, -s
	m[4], m[5] = s, c
	return m
}

// Mul returns m*n, so n is applied first.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[r*4+k] * n[k*4+c]
			}
			out[r*4+c] = sum
		}
	}
	return out
}

// Apply transforms the point (v.X, v.Y, 0, 1) and returns its xy.
func (m Mat4) Apply(v cp.Vector) cp.Vector {
	x := m[0]*v.X + m[1]*v.Y + m[3]
	y := m[4]*v.X + m[5]*v.Y + m[7]
	w := m[12]*v.X + m[13]*v.Y + m[15]
	if w != 0 && w != 1 {
		x /= w
		y /= w
	}
	return cp.Vector{X: x, Y: y}
}

// Clip maps a model-space point to clip space: projection * view * model.
func Clip(projection, view, model Mat4, v cp.Vector) cp.Vector {
	return projection.Mul(view).Mul(model).Apply(v)
}

// Affine2 is a 2D affine transform [A B Tx; C D Ty].
type Affine2 struct {
	A, B, C, D float64
	Tx, Ty     float64
}

// Apply transforms p.
func (t Affine2) Apply(p cp.Vector) cp.Vector {
	return cp.Vector{
		X: t.A*p.X + t.B*p.Y + t.Tx,
		Y: t.C*p.X + t.D*p.Y + t.Ty,
	}
}

// RotateAbout returns the transform x -> R(theta)(x - pivot) + pivot.
func RotateAbout(theta float64, pivot cp.Vector) Affine2 {
	s, c := math.Sincos(theta)
	return Affine2{
		A: c, B: -s,
		C: s, D: c,
		Tx: pivot.X - (c*pivot.X - s*pivot.Y),
		Ty: pivot.Y - (s*pivot.X + c*pivot.Y),
	}
}

// InsideDisc reports whether p lies in the closed unit disc. Disc masks use it
// to decide which texels of a unit quad are filled.
func InsideDisc(p cp.Vector) bool {
	return p.X*p.X+p.Y*p.Y <= 1
}
