package trimesh

import "math"

// Matrix is a row-major 4x4 transform.
type Matrix struct {
	X00, X01, X02, X03 float64
	X10, X11, X12, X13 float64
	X20, X21, X22, X23 float64
	X30, X31, X32, X33 float64
}

func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1}
}

// MatrixFromColumns builds a matrix from four column vectors.
func MatrixFromColumns(c0, c1, c2, c3 VectorW) Matrix {
	return Matrix{
		c0.X, c1.X, c2.X, c3.X,
		c0.Y, c1.Y, c2.Y, c3.Y,
		c0.Z, c1.Z, c2.Z, c3.Z,
		c0.W, c1.W, c2.W, c3.W}
}

func Translate(v Vector) Matrix {
	return Matrix{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1}
}

func Scale(v Vector) Matrix {
	return Matrix{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1}
}

// Rotate returns a counter-clockwise rotation of a radians around v.
func Rotate(v Vector, a float64) Matrix {
	v = v.Normalize()
	s := math.Sin(a)
	c := math.Cos(a)
	m := 1 - c
	return Matrix{
		m*v.X*v.X + c, m*v.X*v.Y - v.Z*s, m*v.X*v.Z + v.Y*s, 0,
		m*v.X*v.Y + v.Z*s, m*v.Y*v.Y + c, m*v.Y*v.Z - v.X*s, 0,
		m*v.X*v.Z - v.Y*s, m*v.Y*v.Z + v.X*s, m*v.Z*v.Z + c, 0,
		0, 0, 0, 1}
}

func Frustum(l, r, b, t, n, f float64) Matrix {
	t1 := 2 * n
	t2 := r - l
	t3 := t - b
	t4 := f - n
	return Matrix{
		t1 / t2, 0, (r + l) / t2, 0,
		0, t1 / t3, (t + b) / t3, 0,
		0, 0, (-f - n) / t4, (-t1 * f) / t4,
		0, 0, -1, 0}
}

func Orthographic(l, r, b, t, n, f float64) Matrix {
	return Matrix{
		2 / (r - l), 0, 0, -(r + l) / (r - l),
		0, 2 / (t - b), 0, -(t + b) / (t - b),
		0, 0, -2 / (f - n), -(f + n) / (f - n),
		0, 0, 0, 1}
}

// Perspective takes the vertical field of view in degrees.
func Perspective(fovy, aspect, near, far float64) Matrix {
	ymax := near * math.Tan(fovy*math.Pi/360)
	xmax := ymax * aspect
	return Frustum(-xmax, xmax, -ymax, ymax, near, far)
}

func LookAt(eye, center, up Vector) Matrix {
	z := eye.Sub(center).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)
	return Matrix{
		x.X, x.Y, x.Z, -x.Dot(eye),
		y.X, y.Y, y.Z, -y.Dot(eye),
		z.X, z.Y, z.Z, -z.Dot(eye),
		0, 0, 0, 1}
}

// Screen maps normalized device coordinates to pixel coordinates with Y down.
func Screen(w, h int) Matrix {
	w2 := float64(w) / 2
	h2 := float64(h) / 2
	return Matrix{
		w2, 0, 0, w2,
		0, -h2, 0, h2,
		0, 0, 0.5, 0.5,
		0, 0, 0, 1}
}

func (m Matrix) Translate(v Vector) Matrix {
	return Translate(v).Mul(m)
}

func (m Matrix) Scale(v Vector) Matrix {
	return Scale(v).Mul(m)
}

func (m Matrix) Rotate(v Vector, a float64) Matrix {
	return Rotate(v, a).Mul(m)
}

func (m Matrix) Frustum(l, r, b, t, n, f float64) Matrix {
	return Frustum(l, r, b, t, n, f).Mul(m)
}

func (m Matrix) Orthographic(l, r, b, t, n, f float64) Matrix {
	return Orthographic(l, r, b, t, n, f).Mul(m)
}

func (m Matrix) Perspective(fovy, aspect, near, far float64) Matrix {
	return Perspective(fovy, aspect, near, far).Mul(m)
}

func (a Matrix) Mul(b Matrix) Matrix {
	m := Matrix{}
	m.X00 = a.X00*b.X00 + a.X01*b.X10 + a.X02*b.X20 + a.X03*b.X30
	m.X10 = a.X10*b.X00 + a.X11*b.X10 + a.X12*b.X20 + a.X13*b.X30
	m.X20 = a.X20*b.X00 + a.X21*b.X10 + a.X22*b.X20 + a.X23*b.X30
	m.X30 = a.X30*b.X00 + a.X31*b.X10 + a.X32*b.X20 + a.X33*b.X30
	m.X01 = a.X00*b.X01 + a.X01*b.X11 + a.X02*b.X21 + a.X03*b.X31
	m.X11 = a.X10*b.X01 + a.X11*b.X11 + a.X12*b.X21 + a.X13*b.X31
	m.X21 = a.X20*b.X01 + a.X21*b.X11 + a.X22*b.X21 + a.X23*b.X31
	m.X31 = a.X30*b.X01 + a.X31*b.X11 + a.X32*b.X21 + a.X33*b.X31
	m.X02 = a.X00*b.X02 + a.X01*b.X12 + a.X02*b.X22 + a.X03*b.X32
	m.X12 = a.X10*b.X02 + a.X11*b.X12 + a.X12*b.X22 + a.X13*b.X32
	m.X22 = a.X20*b.X02 + a.X21*b.X12 + a.X22*b.X22 + a.X23*b.X32
	m.X32 = a.X30*b.X02 + a.X31*b.X12 + a.X32*b.X22 + a.X33*b.X32
	m.X03 = a.X00*b.X03 + a.X01*b.X13 + a.X02*b.X23 + a.X03*b.X33
	m.X13 = a.X10*b.X03 + a.X11*b.X13 + a.X12*b.X23 + a.X13*b.X33
	m.X23 = a.X20*b.X03 + a.X21*b.X13 + a.X22*b.X23 + a.X23*b.X33
	m.X33 = a.X30*b.X03 + a.X31*b.X13 + a.X32*b.X23 + a.X33*b.X33
	return m
}

func (a Matrix) MulPosition(b Vector) Vector {
	x := a.X00*b.X + a.X01*b.Y + a.X02*b.Z + a.X03
	y := a.X10*b.X + a.X11*b.Y + a.X12*b.Z + a.X13
	z := a.X20*b.X + a.X21*b.Y + a.X22*b.Z + a.X23
	return Vector{x, y, z}
}

func (a Matrix) MulPositionW(b Vector) VectorW {
	x := a.X00*b.X + a.X01*b.Y + a.X02*b.Z + a.X03
	y := a.X10*b.X + a.X11*b.Y + a.X12*b.Z + a.X13
	z := a.X20*b.X + a.X21*b.Y + a.X22*b.Z + a.X23
	w := a.X30*b.X + a.X31*b.Y + a.X32*b.Z + a.X33
	return VectorW{x, y, z, w}
}

// MulDirection ignores translation and returns a unit vector.
func (a Matrix) MulDirection(b Vector) Vector {
	x := a.X00*b.X + a.X01*b.Y + a.X02*b.Z
	y := a.X10*b.X + a.X11*b.Y + a.X12*b.Z
	z := a.X20*b.X + a.X21*b.Y + a.X22*b.Z
	return Vector{x, y, z}.Normalize()
}

func (a Matrix) Transpose() Matrix {
	return Matrix{
		a.X00, a.X10, a.X20, a.X30,
		a.X01, a.X11, a.X21, a.X31,
		a.X02, a.X12, a.X22, a.X32,
		a.X03, a.X13, a.X23, a.X33}
}

// minors holds the 2x2 sub-determinants of the top and bottom row pairs.
type minors struct {
	s0, s1, s2, s3, s4, s5 float64
	c0, c1, c2, c3, c4, c5 float64
}

func (a Matrix) minors() minors {
	return minors{
		s0: a.X00*a.X11 - a.X10*a.X01,
		s1: a.X00*a.X12 - a.X10*a.X02,
		s2: a.X00*a.X13 - a.X10*a.X03,
		s3: a.X01*a.X12 - a.X11*a.X02,
		s4: a.X01*a.X13 - a.X11*a.X03,
		s5: a.X02*a.X13 - a.X12*a.X03,
		c5: a.X22*a.X33 - a.X32*a.X23,
		c4: a.X21*a.X33 - a.X31*a.X23,
		c3: a.X21*a.X32 - a.X31*a.X22,
		c2: a.X20*a.X33 - a.X30*a.X23,
		c1: a.X20*a.X32 - a.X30*a.X22,
		c0: a.X20*a.X31 - a.X30*a.X21,
	}
}

func (a Matrix) Determinant() float64 {
	m := a.minors()
	return m.s0*m.c5 - m.s1*m.c4 + m.s2*m.c3 + m.s3*m.c2 - m.s4*m.c1 + m.s5*m.c0
}

// Inverse returns the inverse matrix. A singular matrix yields non-finite values.
func (a Matrix) Inverse() Matrix {
	m := a.minors()
	d := m.s0*m.c5 - m.s1*m.c4 + m.s2*m.c3 + m.s3*m.c2 - m.s4*m.c1 + m.s5*m.c0
	r := 1 / d
	return Matrix{
		(a.X11*m.c5 - a.X12*m.c4 + a.X13*m.c3) * r,
		(-a.X01*m.c5 + a.X02*m.c4 - a.X03*m.c3) * r,
		(a.X31*m.s5 - a.X32*m.s4 + a.X33*m.s3) * r,
		(-a.X21*m.s5 + a.X22*m.s4 - a.X23*m.s3) * r,

		(-a.X10*m.c5 + a.X12*m.c2 - a.X13*m.c1) * r,
		(a.X00*m.c5 - a.X02*m.c2 + a.X03*m.c1) * r,
		(-a.X30*m.s5 + a.X32*m.s2 - a.X33*m.s1) * r,
		(a.X20*m.s5 - a.X22*m.s2 + a.X23*m.s1) * r,

		(a.X10*m.c4 - a.X11*m.c2 + a.X13*m.c0) * r,
		(-a.X00*m.c4 + a.X01*m.c2 - a.X03*m.c0) * r,
		(a.X30*m.s4 - a.X31*m.s2 + a.X33*m.s0) * r,
		(-a.X20*m.s4 + a.X21*m.s2 - a.X23*m.s0) * r,

		(-a.X10*m.c3 + a.X11*m.c1 - a.X12*m.c0) * r,
		(a.X00*m.c3 - a.X01*m.c1 + a.X02*m.c0) * r,
		(-a.X30*m.s3 + a.X31*m.s1 - a.X32*m.s0) * r,
		(a.X20*m.s3 - a.X21*m.s1 + a.X22*m.s0) * r,
	}
}
