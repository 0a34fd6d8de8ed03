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

// GeesComplex computes the complex Schur decomposition A = Q·T·Qᴴ of a
// general n×n matrix with complex elements: a is overwritten with the upper
// triangular Schur form T, w receives the eigenvalues (the diagonal of T),
// and when wantVS is set, vs receives the unitary Schur vectors Q.
//
// The computation runs in complex128 regardless of T's precision: the
// matrix is reduced to Hessenberg form by Householder reflections and then
// triangularized by an explicitly shifted QR iteration with Wilkinson
// shifts. info is 0 on success; a positive value means the iteration
// stalled and the trailing eigenvalues past info-1 are the converged ones.
func GeesComplex[T Complex](wantVS bool, n int, a []T, lda int, w []T, vs []T, ldvs int) (info int32) {
	h := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			h[i*n+j] = complex128(a[i*lda+j])
		}
	}
	var q []complex128
	if wantVS {
		q = make([]complex128, n*n)
		for i := 0; i < n; i++ {
			q[i*n+i] = 1
		}
	}
	info = zschur(wantVS, n, h, q)
	for i := 0; i < n; i++ {
		w[i] = T(h[i*n+i])
		for j := 0; j < n; j++ {
			a[i*lda+j] = T(h[i*n+j])
		}
	}
	if wantVS {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				vs[i*ldvs+j] = T(q[i*n+j])
			}
		}
	}
	return info
}

// zschur triangularizes the n×n complex128 matrix h in place, accumulating
// the unitary similarity into q (n×n, pre-initialized) when wantQ is set.
func zschur(wantQ bool, n int, h, q []complex128) (info int32) {
	if n < 2 {
		return 0
	}
	hessenberg(wantQ, n, h, q)

	const eps = 0x1p-52
	maxIter := 30 * n
	iter := 0
	cs := make([]float64, n)
	ss := make([]complex128, n)

	hi := n - 1
	for hi > 0 {
		// Find the start of the active block, zeroing negligible
		// subdiagonal entries on the way.
		lo := hi
		for lo > 0 {
			sub := cmplx.Abs(h[lo*n+lo-1])
			if sub <= eps*(cmplx.Abs(h[(lo-1)*n+lo-1])+cmplx.Abs(h[lo*n+lo])) {
				h[lo*n+lo-1] = 0
				break
			}
			lo--
		}
		if lo == hi {
			hi--
			continue
		}
		iter++
		if iter > maxIter {
			return int32(hi + 1)
		}

		// Wilkinson shift: the eigenvalue of the trailing 2×2 block
		// closest to its bottom-right entry. Every so often fall back
		// to an exceptional shift to break symmetric stalls.
		var mu complex128
		aa := h[(hi-1)*n+hi-1]
		bb := h[(hi-1)*n+hi]
		cc := h[hi*n+hi-1]
		dd := h[hi*n+hi]
		if iter%20 == 0 {
			mu = dd + complex(cmplx.Abs(cc), 0)
		} else {
			half := (aa - dd) / 2
			disc := cmplx.Sqrt(half*half + bb*cc)
			den := half + disc
			if cmplx.Abs(half-disc) > cmplx.Abs(den) {
				den = half - disc
			}
			mu = dd
			if den != 0 {
				mu = dd - bb*cc/den
			}
		}

		for i := lo; i <= hi; i++ {
			h[i*n+i] -= mu
		}
		// QR: left Givens sweep makes the block upper triangular.
		for i := lo; i < hi; i++ {
			c, s := givens(h[i*n+i], h[(i+1)*n+i])
			cs[i], ss[i] = c, s
			for k := i; k < n; k++ {
				x, y := h[i*n+k], h[(i+1)*n+k]
				h[i*n+k] = complex(c, 0)*x + s*y
				h[(i+1)*n+k] = -cmplx.Conj(s)*x + complex(c, 0)*y
			}
		}
		// RQ: apply the adjoint rotations from the right.
		for i := lo; i < hi; i++ {
			c, s := cs[i], ss[i]
			for r := 0; r <= i+1; r++ {
				x, y := h[r*n+i], h[r*n+i+1]
				h[r*n+i] = complex(c, 0)*x + cmplx.Conj(s)*y
				h[r*n+i+1] = -s*x + complex(c, 0)*y
			}
			if wantQ {
				for r := 0; r < n; r++ {
					x, y := q[r*n+i], q[r*n+i+1]
					q[r*n+i] = complex(c, 0)*x + cmplx.Conj(s)*y
					q[r*n+i+1] = -s*x + complex(c, 0)*y
				}
			}
		}
		for i := lo; i <= hi; i++ {
			h[i*n+i] += mu
		}
	}
	return 0
}

// hessenberg reduces h to upper Hessenberg form by Householder
// reflections, post-multiplying q by the accumulated adjoints.
func hessenberg(wantQ bool, n int, h, q []complex128) {
	v := make([]complex128, n)
	for j := 0; j < n-2; j++ {
		alpha := h[(j+1)*n+j]
		var tailSq float64
		for i := j + 2; i < n; i++ {
			x := h[i*n+j]
			tailSq += real(x)*real(x) + imag(x)*imag(x)
		}
		ar, ai := real(alpha), imag(alpha)
		if tailSq == 0 && ai == 0 {
			continue
		}
		beta := -math.Copysign(math.Sqrt(ar*ar+ai*ai+tailSq), ar)
		tau := complex((beta-ar)/beta, -ai/beta)
		scale := 1 / (alpha - complex(beta, 0))
		v[j+1] = 1
		for i := j + 2; i < n; i++ {
			v[i] = h[i*n+j] * scale
		}
		h[(j+1)*n+j] = complex(beta, 0)
		for i := j + 2; i < n; i++ {
			h[i*n+j] = 0
		}
		// Left: Hᴴ·h on columns j+1..n-1. As in qr.go, only Hᴴ
		// (conjugated tau) maps the pivot column onto beta·e1.
		ct := cmplx.Conj(tau)
		for k := j + 1; k < n; k++ {
			var dot complex128
			for i := j + 1; i < n; i++ {
				dot += cmplx.Conj(v[i]) * h[i*n+k]
			}
			dot *= ct
			for i := j + 1; i < n; i++ {
				h[i*n+k] -= v[i] * dot
			}
		}
		// Right: h·H on all rows.
		for r := 0; r < n; r++ {
			var dot complex128
			for i := j + 1; i < n; i++ {
				dot += h[r*n+i] * v[i]
			}
			dot *= tau
			for i := j + 1; i < n; i++ {
				h[r*n+i] -= dot * cmplx.Conj(v[i])
			}
		}
		if wantQ {
			for r := 0; r < n; r++ {
				var dot complex128
				for i := j + 1; i < n; i++ {
					dot += q[r*n+i] * v[i]
				}
				dot *= tau
				for i := j + 1; i < n; i++ {
					q[r*n+i] -= dot * cmplx.Conj(v[i])
				}
			}
		}
	}
}

// givens returns the rotation G = [[c, s], [-conj(s), c]], c real, with
// G·(x, y)ᵀ = (r, 0)ᵀ.
func givens(x, y complex128) (c float64, s complex128) {
	if y == 0 {
		return 1, 0
	}
	ax, ay := cmplx.Abs(x), cmplx.Abs(y)
	r := math.Hypot(ax, ay)
	if x == 0 {
		return 0, cmplx.Conj(y) / complex(ay, 0)
	}
	c = ax / r
	s = x / complex(ax, 0) * cmplx.Conj(y) / complex(r, 0)
	return c, s
}
