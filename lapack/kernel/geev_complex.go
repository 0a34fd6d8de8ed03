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
)

// GeevComplex computes eigenvalues and optionally eigenvectors of a
// general complex n×n matrix. a is destroyed, w receives the n
// eigenvalues, and when requested vl and vr receive the left and right
// eigenvectors as columns, each normalized to unit Euclidean length.
//
// Eigenvectors are recovered from the Schur form by triangular
// back-substitution and rotated back through the Schur basis. info
// follows GeesComplex: positive when the QR iteration fails.
func GeevComplex[T Complex](wantLeft, wantRight bool, n int, a []T, lda int, w []T, vl []T, ldvl int, vr []T, ldvr int) (info int32) {
	t := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			t[i*n+j] = complex128(a[i*lda+j])
		}
	}
	q := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		q[i*n+i] = 1
	}
	info = zschur(true, n, t, q)
	for i := 0; i < n; i++ {
		w[i] = T(t[i*n+i])
		for j := 0; j < n; j++ {
			a[i*lda+j] = T(t[i*n+j])
		}
	}
	if info != 0 {
		return info
	}

	const eps = 0x1p-52
	var tnorm float64
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			tnorm += cmplx.Abs(t[i*n+j])
		}
	}
	smin := eps * tnorm
	if smin == 0 {
		smin = eps
	}

	y := make([]complex128, n)
	if wantRight {
		for k := 0; k < n; k++ {
			lam := t[k*n+k]
			y[k] = 1
			for i := k - 1; i >= 0; i-- {
				var sum complex128
				for j := i + 1; j <= k; j++ {
					sum += t[i*n+j] * y[j]
				}
				d := t[i*n+i] - lam
				if cmplx.Abs(d) < smin {
					d = complex(smin, 0)
				}
				y[i] = -sum / d
			}
			// x = Q·y, normalized.
			storeRotated(n, q, y, 0, k, k, vr, ldvr)
		}
	}
	if wantLeft {
		for k := 0; k < n; k++ {
			lam := t[k*n+k]
			y[k] = 1
			for i := k + 1; i < n; i++ {
				var sum complex128
				for j := k; j < i; j++ {
					sum += cmplx.Conj(t[j*n+i]) * y[j]
				}
				d := cmplx.Conj(t[i*n+i] - lam)
				if cmplx.Abs(d) < smin {
					d = complex(smin, 0)
				}
				y[i] = -sum / d
			}
			storeRotated(n, q, y, k, n-1, k, vl, ldvl)
		}
	}
	return 0
}

// storeRotated writes the unit-normalized vector Q·y into column col of
// out, where y is supported on indices lo..hi.
func storeRotated[T Complex](n int, q, y []complex128, lo, hi, col int, out []T, ldout int) {
	var norm float64
	tmp := make([]complex128, n)
	for r := 0; r < n; r++ {
		var sum complex128
		for j := lo; j <= hi; j++ {
			sum += q[r*n+j] * y[j]
		}
		tmp[r] = sum
		norm += real(sum)*real(sum) + imag(sum)*imag(sum)
	}
	inv := 1 / math.Sqrt(norm)
	for r := 0; r < n; r++ {
		out[r*ldout+col] = T(tmp[r] * complex(inv, 0))
	}
}
