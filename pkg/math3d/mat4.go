package math3d

// Mat4 is a 4x4 matrix stored in column-major order.
// This matches the glTF node matrix layout, so a node's matrix can be
// converted directly.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
//
// For a transform matrix:
// | Xx Yx Zx Tx |   X,Y,Z = basis vectors (rotation/scale)
// | Xy Yy Zy Ty |   T = translation
// | Xz Yz Zz Tz |
// | 0  0  0  1  |
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

// Translate creates a translation matrix from the XYZ part of v.
func Translate(v Tuple) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// Scaling creates a scaling matrix from the XYZ part of v.
func Scaling(v Tuple) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// Quaternion creates a rotation matrix from a unit quaternion (x, y, z, w),
// the component order glTF uses.
func Quaternion(q [4]float64) Mat4 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0,
		2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0,
		2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulTuple transforms a tuple. Points pick up translation, vectors don't.
func (m Mat4) MulTuple(t Tuple) Tuple {
	return Tuple{
		m[0]*t.X + m[4]*t.Y + m[8]*t.Z + m[12]*t.W,
		m[1]*t.X + m[5]*t.Y + m[9]*t.Z + m[13]*t.W,
		m[2]*t.X + m[6]*t.Y + m[10]*t.Z + m[14]*t.W,
		m[3]*t.X + m[7]*t.Y + m[11]*t.Z + m[15]*t.W,
	}
}

// Translation extracts the translation component as a point.
func (m Mat4) Translation() Tuple {
	return Point(m[12], m[13], m[14])
}
