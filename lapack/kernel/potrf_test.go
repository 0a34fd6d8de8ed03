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
	"testing"

	"gonum.org/v1/gonum/blas"
)

func TestPotrfUpperFloat64(t *testing.T) {
	// Symmetric positive definite by construction.
	a := []float64{
		4, 2, -2,
		2, 10, 2,
		-2, 2, 5,
	}
	orig := make([]float64, len(a))
	copy(orig, a)
	if info := Potrf(blas.Upper, 3, a, 3); info != 0 {
		t.Fatalf("info = %d, want 0", info)
	}
	u := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			u[i*3+j] = a[i*3+j]
		}
	}
	if d := maxAbsDiff(t, matmul(3, 3, 3, adjoint(3, 3, u), u), orig); d > 1e-12 {
		t.Errorf("UᴴU differs from A by %g", d)
	}
	// The strictly lower triangle must be left as it was.
	for i := 1; i < 3; i++ {
		for j := 0; j < i; j++ {
			if a[i*3+j] != orig[i*3+j] {
				t.Errorf("lower triangle [%d,%d] modified: %v", i, j, a[i*3+j])
			}
		}
	}
}

func TestPotrfLowerComplex(t *testing.T) {
	// A = L·Lᴴ for a fixed complex L with positive real diagonal.
	l := []complex128{
		2, 0,
		1 - 1i, 3,
	}
	a := matmul(2, 2, 2, l, adjoint(2, 2, l))
	if info := Potrf(blas.Lower, 2, a, 2); info != 0 {
		t.Fatalf("info = %d, want 0", info)
	}
	got := []complex128{a[0], 0, a[2], a[3]}
	if d := maxAbsDiff(t, got, l); d > 1e-12 {
		t.Errorf("factor differs from L by %g", d)
	}
}

func TestPotrfNotPositiveDefinite(t *testing.T) {
	a := []float64{
		1, 0,
		0, -1,
	}
	if info := Potrf(blas.Upper, 2, a, 2); info != 2 {
		t.Errorf("info = %d, want 2 (first failing minor, 1-based)", info)
	}
}
