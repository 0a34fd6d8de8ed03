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

package kernel

import (
	"math"
	"math/cmplx"
	"testing"
)

// matmul returns C = A·B for row-major A (m×k) and B (k×n).
func matmul[T Element](m, k, n int, a, b []T) []T {
	c := make([]T, m*n)
	for i := 0; i < m; i++ {
		for l := 0; l < k; l++ {
			av := a[i*k+l]
			if av == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				c[i*n+j] += av * b[l*n+j]
			}
		}
	}
	return c
}

// adjoint returns Aᴴ (n×m) of a row-major m×n matrix.
func adjoint[T Element](m, n int, a []T) []T {
	at := make([]T, n*m)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			at[j*m+i] = conjOf(a[i*n+j])
		}
	}
	return at
}

func maxAbsDiff[T Element](t *testing.T, got, want []T) float64 {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	var m float64
	for i := range got {
		if d := absOf(got[i] - want[i]); d > m {
			m = d
		}
	}
	return m
}

// checkUnitary fails the test if QᴴQ deviates from the identity by more
// than tol.
func checkUnitary[T Element](t *testing.T, name string, n int, q []T, tol float64) {
	t.Helper()
	p := matmul(n, n, n, adjoint(n, n, q), q)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := T(0)
			if i == j {
				want = 1
			}
			if d := absOf(p[i*n+j] - want); d > tol {
				t.Errorf("%s: (QᴴQ)[%d,%d] = %v, off identity by %g", name, i, j, p[i*n+j], d)
			}
		}
	}
}

// unitaryConjugate returns H·diag(lambda)·Hᴴ with H = I − 2vvᴴ/‖v‖², an
// explicit unitary reflector. The result is a dense matrix with spectrum
// lambda whose reduction exercises nontrivial complex reflectors.
func unitaryConjugate(lambda, v []complex128) []complex128 {
	n := len(lambda)
	var norm2 float64
	for _, x := range v {
		norm2 += real(x)*real(x) + imag(x)*imag(x)
	}
	h := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			h[i*n+j] = -2 * v[i] * cmplx.Conj(v[j]) / complex(norm2, 0)
		}
		h[i*n+i] += 1
	}
	d := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		d[i*n+i] = lambda[i]
	}
	return matmul(n, n, n, matmul(n, n, n, h, d), adjoint(n, n, h))
}

// matchSpectrum fails unless got is a permutation of want to within tol.
func matchSpectrum(t *testing.T, want, got []complex128, tol float64) {
	t.Helper()
	used := make([]bool, len(got))
	for _, lw := range want {
		best, bi := math.Inf(1), -1
		for i, lg := range got {
			if used[i] {
				continue
			}
			if d := cmplx.Abs(lg - lw); d < best {
				best, bi = d, i
			}
		}
		if bi < 0 || best > tol {
			t.Errorf("eigenvalue %v missing from %v (closest off by %g)", lw, got, best)
			continue
		}
		used[bi] = true
	}
}
