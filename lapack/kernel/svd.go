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
	"sort"

	"gonum.org/v1/gonum/lapack"
	lapackimpl "gonum.org/v1/gonum/lapack/gonum"
)

var lapackNative = lapackimpl.Implementation{}

// Gesdd computes the singular value decomposition A = U·Σ·Vᴴ of an m×n
// matrix, destroying a in the process. R must be the real component type of
// T: singular values are mathematically real even for complex input.
//
// s receives the min(m, n) singular values in descending order. When
// wantVec is true, u (m×m) and vt (n×n) receive the full left and right
// singular vector matrices; otherwise u and vt are not referenced.
//
// float64 input is handled by gonum's native LAPACK, float32 by promotion
// to float64; complex input uses a one-sided Jacobi iteration, for which no
// pure-Go library implementation exists. info is 0 on success and positive
// if the iteration did not converge.
func Gesdd[T Element, R Real](wantVec bool, m, n int, a []T, lda int, s []R, u []T, ldu int, vt []T, ldvt int) (info int32) {
	switch any(a).(type) {
	case []float64:
		return gesddF64(wantVec, m, n, any(a).([]float64), lda, any(s).([]float64), any(u).([]float64), ldu, any(vt).([]float64), ldvt)
	case []float32:
		a64 := promote(any(a).([]float32))
		s64 := make([]float64, len(s))
		var u64, vt64 []float64
		if wantVec {
			u64 = make([]float64, m*ldu)
			vt64 = make([]float64, n*ldvt)
		}
		info = gesddF64(wantVec, m, n, a64, lda, s64, u64, ldu, vt64, ldvt)
		demote(any(a).([]float32), a64)
		demote(any(s).([]float32), s64)
		if wantVec {
			demote(any(u).([]float32), u64)
			demote(any(vt).([]float32), vt64)
		}
		return info
	case []complex64:
		return gesddComplex[complex64, float32](wantVec, m, n, any(a).([]complex64), lda, any(s).([]float32), any(u).([]complex64), ldu, any(vt).([]complex64), ldvt)
	case []complex128:
		return gesddComplex[complex128, float64](wantVec, m, n, any(a).([]complex128), lda, any(s).([]float64), any(u).([]complex128), ldu, any(vt).([]complex128), ldvt)
	}
	return 0
}

func gesddF64(wantVec bool, m, n int, a []float64, lda int, s, u []float64, ldu int, vt []float64, ldvt int) int32 {
	jobU, jobVT := lapack.SVDNone, lapack.SVDNone
	if wantVec {
		jobU, jobVT = lapack.SVDAll, lapack.SVDAll
	} else {
		u, vt = nil, nil
		ldu, ldvt = 1, 1
	}
	query := make([]float64, 1)
	lapackNative.Dgesvd(jobU, jobVT, m, n, a, lda, s, u, ldu, vt, ldvt, query, -1)
	work := make([]float64, int(query[0]))
	if lapackNative.Dgesvd(jobU, jobVT, m, n, a, lda, s, u, ldu, vt, ldvt, work, len(work)) {
		return 0
	}
	return 1
}

// gesddComplex runs the one-sided Jacobi SVD. An m < n input is handled by
// decomposing the conjugate transpose and swapping the roles of U and V.
func gesddComplex[T Complex, R Real](wantVec bool, m, n int, a []T, lda int, s []R, u []T, ldu int, vt []T, ldvt int) (info int32) {
	if m >= n {
		// Work on a compact copy so column access is contiguous in q.
		g := make([]T, m*n)
		for i := 0; i < m; i++ {
			copy(g[i*n:i*n+n], a[i*lda:i*lda+n])
		}
		var v []T
		if wantVec {
			v = identity[T](n)
		}
		info = jacobiSVD(wantVec, m, n, g, v, s)
		if wantVec {
			fillLeftVectors(m, n, g, s, u, ldu)
			conjTransposeInto(vt, ldvt, v, n, n, n)
		}
		return info
	}
	// A = U·Σ·Vᴴ  ⇔  Aᴴ = V·Σ·Uᴴ, and Aᴴ has at least as many rows as
	// columns, so decompose it and swap factors.
	b := make([]T, n*m)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			b[j*m+i] = conjOf(a[i*lda+j])
		}
	}
	var vb []T
	if wantVec {
		vb = identity[T](m)
	}
	info = jacobiSVD(wantVec, n, m, b, vb, s)
	if wantVec {
		// Left vectors of Aᴴ are the right vectors of A.
		ub := make([]T, n*n)
		fillLeftVectors(n, m, b, s, ub, n)
		conjTransposeInto(vt, ldvt, ub, n, n, n)
		// Right vectors of Aᴴ (vb, m×m) are the left vectors of A.
		for i := 0; i < m; i++ {
			copy(u[i*ldu:i*ldu+m], vb[i*m:i*m+m])
		}
	}
	return info
}

// jacobiSVD orthogonalizes the columns of the m×n matrix g (m >= n, row
// stride n) by cyclic sweeps of two-sided plane rotations, accumulating the
// right-hand rotations into v (n×n) when wantVec is set. On return the
// columns of g are mutually orthogonal with descending norms in s.
func jacobiSVD[T Complex, R Real](wantVec bool, m, n int, g, v []T, s []R) (info int32) {
	const maxSweeps = 30
	eps := epsOf[T]()

	converged := false
	for sweep := 0; sweep < maxSweeps && !converged; sweep++ {
		converged = true
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				var alpha, beta float64
				var gamma complex128
				for i := 0; i < m; i++ {
					gp := complex128(g[i*n+p])
					gq := complex128(g[i*n+q])
					alpha += real(gp)*real(gp) + imag(gp)*imag(gp)
					beta += real(gq)*real(gq) + imag(gq)*imag(gq)
					gamma += cmplx.Conj(gp) * gq
				}
				ag := cmplx.Abs(gamma)
				if ag <= eps*math.Sqrt(alpha*beta) {
					continue
				}
				converged = false
				zeta := (beta - alpha) / (2 * ag)
				t := math.Copysign(1, zeta) / (math.Abs(zeta) + math.Sqrt(1+zeta*zeta))
				c := complex(1/math.Sqrt(1+t*t), 0)
				sn := complex(t, 0) * c
				ph := gamma / complex(ag, 0)
				phc := cmplx.Conj(ph)
				for i := 0; i < m; i++ {
					gp := complex128(g[i*n+p])
					gq := complex128(g[i*n+q])
					g[i*n+p] = T(c*gp - sn*phc*gq)
					g[i*n+q] = T(sn*ph*gp + c*gq)
				}
				if wantVec {
					for i := 0; i < n; i++ {
						vp := complex128(v[i*n+p])
						vq := complex128(v[i*n+q])
						v[i*n+p] = T(c*vp - sn*phc*vq)
						v[i*n+q] = T(sn*ph*vp + c*vq)
					}
				}
			}
		}
	}
	if !converged {
		info = 1
	}

	// Column norms are the singular values; order them descending and
	// permute g's and v's columns to match.
	norms := make([]float64, n)
	for j := 0; j < n; j++ {
		var sum float64
		for i := 0; i < m; i++ {
			gj := complex128(g[i*n+j])
			sum += real(gj)*real(gj) + imag(gj)*imag(gj)
		}
		norms[j] = math.Sqrt(sum)
	}
	idx := make([]int, n)
	for j := range idx {
		idx[j] = j
	}
	sort.SliceStable(idx, func(x, y int) bool { return norms[idx[x]] > norms[idx[y]] })
	permuteColumns(g, m, n, idx)
	if wantVec {
		permuteColumns(v, n, n, idx)
	}
	for j := 0; j < n; j++ {
		s[j] = R(norms[idx[j]])
	}
	return info
}

// fillLeftVectors writes the full m×m left singular vector matrix: the
// first n columns are the normalized columns of g, and any remaining or
// rank-deficient columns are completed to an orthonormal basis by
// Gram-Schmidt against the columns already placed.
func fillLeftVectors[T Complex, R Real](m, n int, g []T, s []R, u []T, ldu int) {
	var smax float64
	if n > 0 {
		smax = float64(s[0])
	}
	tol := float64(m) * epsOf[T]() * smax
	filled := 0
	for j := 0; j < n; j++ {
		if float64(s[j]) > tol {
			inv := fromReal[T](1 / float64(s[j]))
			for i := 0; i < m; i++ {
				u[i*ldu+filled] = g[i*n+j] * inv
			}
			filled++
		}
	}
	// Complete the basis from unit vectors.
	for e := 0; e < m && filled < m; e++ {
		col := make([]T, m)
		col[e] = fromReal[T](1)
		for j := 0; j < filled; j++ {
			var dot complex128
			for i := 0; i < m; i++ {
				dot += cmplx.Conj(complex128(u[i*ldu+j])) * complex128(col[i])
			}
			for i := 0; i < m; i++ {
				col[i] -= T(dot * complex128(u[i*ldu+j]))
			}
		}
		var norm float64
		for i := 0; i < m; i++ {
			ci := complex128(col[i])
			norm += real(ci)*real(ci) + imag(ci)*imag(ci)
		}
		norm = math.Sqrt(norm)
		if norm < 0.5 {
			continue // mostly spanned already, try the next unit vector
		}
		inv := fromReal[T](1 / norm)
		for i := 0; i < m; i++ {
			u[i*ldu+filled] = col[i] * inv
		}
		filled++
	}
}

func identity[T Element](n int) []T {
	v := make([]T, n*n)
	one := fromReal[T](1)
	for i := 0; i < n; i++ {
		v[i*n+i] = one
	}
	return v
}

// conjTransposeInto writes dst = srcᴴ for an r×c source with row stride
// lds; dst is c×r with row stride ldd.
func conjTransposeInto[T Element](dst []T, ldd int, src []T, lds, r, c int) {
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dst[j*ldd+i] = conjOf(src[i*lds+j])
		}
	}
}

func permuteColumns[T Element](a []T, m, n int, idx []int) {
	row := make([]T, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			row[j] = a[i*n+idx[j]]
		}
		copy(a[i*n:i*n+n], row)
	}
}
