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

import "testing"

func checkQR[T Element](t *testing.T, m, n int, orig []T, tol float64) {
	t.Helper()
	a := make([]T, len(orig))
	copy(a, orig)
	tau := make([]T, n)
	work := make([]T, n)
	Geqrf(m, n, a, n, tau, work)

	r := make([]T, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r[i*n+j] = a[i*n+j]
		}
	}
	Ungqr(m, n, n, a, n, tau, work)

	// Columns of Q are orthonormal.
	p := matmul(n, m, n, adjoint(m, n, a), a)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := T(0)
			if i == j {
				want = 1
			}
			if d := absOf(p[i*n+j] - want); d > tol {
				t.Errorf("(QᴴQ)[%d,%d] off identity by %g", i, j, d)
			}
		}
	}
	if d := maxAbsDiff(t, matmul(m, n, n, a, r), orig); d > tol {
		t.Errorf("Q·R differs from A by %g", d)
	}
}

func TestGeqrfUngqrFloat64(t *testing.T) {
	a := []float64{
		1, -1, 4,
		1, 4, -2,
		1, 4, 2,
		1, -1, 0,
	}
	checkQR(t, 4, 3, a, 1e-12)
}

func TestGeqrfUngqrComplex128(t *testing.T) {
	a := []complex128{
		1 + 1i, 2,
		0 - 1i, 1 + 3i,
		2, -1 + 1i,
	}
	checkQR(t, 3, 2, a, 1e-12)
}

func TestGeqrfUngqrFloat32(t *testing.T) {
	a := []float32{
		2, 0,
		1, 3,
		0, 1,
	}
	checkQR(t, 3, 2, a, 1e-5)
}
