// Copyright 2025 jax-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package kernel provides the dense linear-algebra kernels consumed by the
// lapack kernel adapters.
//
// All matrices are dense and row-major with an explicit row stride (lda),
// matching gonum's storage convention. Where gonum covers an (operation,
// element type) pair the kernel delegates to it: the native BLAS
// implementation handles triangular solves for all four element types, and
// the native LAPACK implementation handles the float64 iterative
// decompositions (SVD, symmetric and general eigendecomposition, Hessenberg
// and Schur reduction). float32 inputs are promoted to float64, computed,
// and demoted; the one-sweep factorizations and the complex-domain
// iterative kernels, which have no pure-Go implementation in the ecosystem,
// are implemented here generically over the element type.
//
// Every kernel reports its outcome through an int32 info code following the
// classical convention: zero on success, a positive operation-specific
// value for a numerical condition (singularity, loss of definiteness,
// non-convergence), a negative value for the position of an invalid
// argument. Kernels never panic on numerical input; panics are reserved for
// slice-length bugs in the caller.
package kernel

import (
	"math"
	"math/cmplx"
)

// Real is a constraint for real floating-point element types.
type Real interface {
	~float32 | ~float64
}

// Complex is a constraint for complex floating-point element types.
type Complex interface {
	~complex64 | ~complex128
}

// Element is a constraint for all supported element types.
type Element interface {
	Real | Complex
}

// absOf returns |v| as float64 for any element type.
func absOf[T Element](v T) float64 {
	switch x := any(v).(type) {
	case float32:
		return math.Abs(float64(x))
	case float64:
		return math.Abs(x)
	case complex64:
		return cmplx.Abs(complex128(x))
	case complex128:
		return cmplx.Abs(x)
	}
	return 0
}

// conjOf returns the complex conjugate of v; real values are unchanged.
func conjOf[T Element](v T) T {
	switch x := any(v).(type) {
	case complex64:
		return any(complex(real(x), -imag(x))).(T)
	case complex128:
		return any(cmplx.Conj(x)).(T)
	}
	return v
}

// realOf returns the real part of v as float64.
func realOf[T Element](v T) float64 {
	switch x := any(v).(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	case complex64:
		return float64(real(x))
	case complex128:
		return real(x)
	}
	return 0
}

// imagOf returns the imaginary part of v as float64; zero for real types.
func imagOf[T Element](v T) float64 {
	switch x := any(v).(type) {
	case complex64:
		return float64(imag(x))
	case complex128:
		return imag(x)
	}
	return 0
}

// fromReal converts a float64 into element type T (imaginary part zero).
func fromReal[T Element](s float64) T {
	var z T
	switch any(z).(type) {
	case float32:
		return any(float32(s)).(T)
	case float64:
		return any(s).(T)
	case complex64:
		return any(complex64(complex(s, 0))).(T)
	case complex128:
		return any(complex(s, 0)).(T)
	}
	return z
}

// fromParts builds an element of type T from real and imaginary parts; the
// imaginary part is discarded for real element types.
func fromParts[T Element](re, im float64) T {
	var z T
	switch any(z).(type) {
	case float32:
		return any(float32(re)).(T)
	case float64:
		return any(re).(T)
	case complex64:
		return any(complex64(complex(re, im))).(T)
	case complex128:
		return any(complex(re, im)).(T)
	}
	return z
}

// epsOf returns the machine epsilon of the element type's real component.
func epsOf[T Element]() float64 {
	var z T
	switch any(z).(type) {
	case float32, complex64:
		return 0x1p-23
	default:
		return 0x1p-52
	}
}

// promote widens a float32 slice to a fresh float64 slice.
func promote(s []float32) []float64 {
	d := make([]float64, len(s))
	for i, v := range s {
		d[i] = float64(v)
	}
	return d
}

// demote narrows a float64 slice into an existing float32 slice.
func demote(dst []float32, src []float64) {
	for i, v := range src {
		dst[i] = float32(v)
	}
}
