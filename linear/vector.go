// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package linear implements the small amount of vector/matrix
// math that the test workloads need.
package linear

import (
	"github.com/chewxy/math32"
)

// V2 is a 2-component vector of float32.
type V2 [2]float32

// Add sets v to contain l + r.
func (v *V2) Add(l, r *V2) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V2) Sub(l, r *V2) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ u.
func (v *V2) Scale(s float32, u *V2) {
	for i := range v {
		v[i] = s * u[i]
	}
}

// V3 is a 3-component vector of float32.
type V3 [3]float32

// Add sets v to contain l + r.
func (v *V3) Add(l, r *V3) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V3) Sub(l, r *V3) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ u.
func (v *V3) Scale(s float32, u *V3) {
	for i := range v {
		v[i] = s * u[i]
	}
}

// Dot returns v ⋅ w.
func (v *V3) Dot(w *V3) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}

// Len returns the length of v.
func (v *V3) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Norm sets v to contain u normalized.
func (v *V3) Norm(u *V3) {
	v.Scale(1/u.Len(), u)
}

// Cross sets v to contain l × r.
func (v *V3) Cross(l, r *V3) {
	*v = V3{
		l[1]*r[2] - l[2]*r[1],
		l[2]*r[0] - l[0]*r[2],
		l[0]*r[1] - l[1]*r[0],
	}
}

// V4 is a 4-component vector of float32.
type V4 [4]float32

// Add sets v to contain l + r.
func (v *V4) Add(l, r *V4) {
	for i := range v {
		v[i] = l[i] + r[i]
	}
}

// Sub sets v to contain l - r.
func (v *V4) Sub(l, r *V4) {
	for i := range v {
		v[i] = l[i] - r[i]
	}
}

// Scale sets v to contain s ⋅ u.
func (v *V4) Scale(s float32, u *V4) {
	for i := range v {
		v[i] = s * u[i]
	}
}

// Dot returns v ⋅ w.
func (v *V4) Dot(w *V4) (d float32) {
	for i := range v {
		d += v[i] * w[i]
	}
	return
}
