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

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/lapack"
)

// Syevd computes all eigenvalues, and when wantVec is set the orthonormal
// eigenvectors, of a real symmetric n×n matrix. Only the uplo triangle of a
// is referenced on entry; on successful exit with wantVec the columns of a
// are the eigenvectors, and w holds the eigenvalues in ascending order.
// info is 0 on success and positive if the iteration failed to converge.
func Syevd[T Real](wantVec bool, uplo blas.Uplo, n int, a []T, lda int, w []T) (info int32) {
	jobz := lapack.EVNone
	if wantVec {
		jobz = lapack.EVCompute
	}
	switch any(a).(type) {
	case []float64:
		return syevdF64(jobz, uplo, n, any(a).([]float64), lda, any(w).([]float64))
	case []float32:
		a64 := promote(any(a).([]float32))
		w64 := make([]float64, len(w))
		info = syevdF64(jobz, uplo, n, a64, lda, w64)
		demote(any(a).([]float32), a64)
		demote(any(w).([]float32), w64)
		return info
	}
	return 0
}

func syevdF64(jobz lapack.EVJob, uplo blas.Uplo, n int, a []float64, lda int, w []float64) int32 {
	query := make([]float64, 1)
	lapackNative.Dsyev(jobz, uplo, n, a, lda, w, query, -1)
	work := make([]float64, int(query[0]))
	if lapackNative.Dsyev(jobz, uplo, n, a, lda, w, work, len(work)) {
		return 0
	}
	return 1
}

// Heevd computes all eigenvalues, and when wantVec is set the orthonormal
// eigenvectors, of a complex Hermitian n×n matrix by cyclic Jacobi
// rotations. R must be the real component type of T: Hermitian eigenvalues
// are mathematically real. Only the uplo triangle of a is referenced on
// entry; on successful exit with wantVec the columns of a are the
// eigenvectors and w holds the eigenvalues in ascending order.
func Heevd[T Complex, R Real](wantVec bool, uplo blas.Uplo, n int, a []T, lda int, w []R) (info int32) {
	const maxSweeps = 30
	eps := epsOf[T]()

	// Mirror the stored triangle so the iteration can work on the full
	// matrix, and drop any imaginary noise on the diagonal.
	for i := 0; i < n; i++ {
		a[i*lda+i] = fromReal[T](realOf(a[i*lda+i]))
		for j := i + 1; j < n; j++ {
			if uplo == blas.Upper {
				a[j*lda+i] = conjOf(a[i*lda+j])
			} else {
				a[i*lda+j] = conjOf(a[j*lda+i])
			}
		}
	}
	var anorm float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			anorm += absOf(a[i*lda+j]) * absOf(a[i*lda+j])
		}
	}
	anorm = math.Sqrt(anorm)

	var v []T
	if wantVec {
		v = identity[T](n)
	}

	converged := anorm == 0
	for sweep := 0; sweep < maxSweeps && !converged; sweep++ {
		converged = true
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				apq := complex128(a[p*lda+q])
				aab := cmplx.Abs(apq)
				if aab <= eps*anorm {
					continue
				}
				converged = false
				alpha := realOf(a[p*lda+p])
				beta := realOf(a[q*lda+q])
				zeta := (beta - alpha) / (2 * aab)
				t := math.Copysign(1, zeta) / (math.Abs(zeta) + math.Sqrt(1+zeta*zeta))
				c := complex(1/math.Sqrt(1+t*t), 0)
				sn := complex(t, 0) * c
				ph := apq / complex(aab, 0)
				phc := cmplx.Conj(ph)

				// Columns: A ← A·J with J = diag(1, e^{-iφ})·G.
				for i := 0; i < n; i++ {
					mp := complex128(a[i*lda+p])
					mq := complex128(a[i*lda+q])
					a[i*lda+p] = T(c*mp - sn*phc*mq)
					a[i*lda+q] = T(sn*mp + c*phc*mq)
				}
				// Rows: A ← Jᴴ·A.
				for k := 0; k < n; k++ {
					rp := complex128(a[p*lda+k])
					rq := complex128(a[q*lda+k])
					a[p*lda+k] = T(c*rp - sn*ph*rq)
					a[q*lda+k] = T(sn*rp + c*ph*rq)
				}
				if wantVec {
					for i := 0; i < n; i++ {
						vp := complex128(v[i*n+p])
						vq := complex128(v[i*n+q])
						v[i*n+p] = T(c*vp - sn*phc*vq)
						v[i*n+q] = T(sn*vp + c*phc*vq)
					}
				}
			}
		}
	}
	if !converged {
		return 1
	}

	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = realOf(a[i*lda+i])
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(x, y int) bool { return vals[idx[x]] < vals[idx[y]] })
	for j := 0; j < n; j++ {
		w[j] = R(vals[idx[j]])
	}
	if wantVec {
		permuteColumns(v, n, n, idx)
		for i := 0; i < n; i++ {
			copy(a[i*lda:i*lda+n], v[i*n:i*n+n])
		}
	}
	return 0
}
