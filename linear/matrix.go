// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// M4 is a row-major 4x4 matrix of float32.
// Vectors transform as row vectors (v ⋅ M), so the
// translation of a transform lives in m[3].
// Flattened row by row, the memory layout matches what
// glUniformMatrix4fv expects without transposition.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M4) Mul(l, r *M4) {
	*m = M4{}
	for i := range m {
		for j := range m {
			for k := range m {
				m[i][j] += l[i][k] * r[k][j]
			}
		}
	}
}

// Translate makes m a translation by x, y, z.
func (m *M4) Translate(x, y, z float32) {
	m.I()
	m[3] = V4{x, y, z, 1}
}

// SetTranslation replaces the translation row of m,
// leaving the upper 3x3 untouched.
func (m *M4) SetTranslation(x, y, z float32) {
	m[3][0] = x
	m[3][1] = y
	m[3][2] = z
}

// Transpose sets m to contain the transpose of n.
func (m *M4) Transpose(n *M4) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// Perspective makes m a perspective projection.
// yfov is in radians; zn and zf are the near/far planes.
func (m *M4) Perspective(yfov, aspect, zn, zf float32) {
	f := 1 / math32.Tan(yfov/2)
	*m = M4{
		{f / aspect},
		{0, f},
		{0, 0, (zf + zn) / (zn - zf), -1},
		{0, 0, 2 * zf * zn / (zn - zf)},
	}
}

// LookAt makes m a view transform with the given eye
// position, look-at center and up direction.
func (m *M4) LookAt(center, eye, up *V3) {
	var f, s, u V3
	f.Sub(center, eye)
	f.Norm(&f)
	s.Cross(&f, up)
	s.Norm(&s)
	u.Cross(&s, &f)
	*m = M4{
		{s[0], u[0], -f[0]},
		{s[1], u[1], -f[1]},
		{s[2], u[2], -f[2]},
		{-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1},
	}
}
