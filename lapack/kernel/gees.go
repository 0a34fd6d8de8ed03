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

import "gonum.org/v1/gonum/lapack"

// Gees computes the real Schur decomposition A = Z·T·Zᵀ of a real general
// n×n matrix: a is overwritten with the upper quasi-triangular Schur form T
// (1×1 and 2×2 blocks on the diagonal), and when wantVS is set, vs receives
// the orthogonal Schur vectors Z. Eigenvalues come back split into wr and
// wi, conjugate pairs adjacent.
//
// The reduction chains gonum's Dgehrd (Hessenberg), Dorghr (explicit Q) and
// Dhseqr (Schur form of a Hessenberg matrix). info is 0 on success and
// positive if the QR iteration did not converge.
func Gees[T Real](wantVS bool, n int, a []T, lda int, wr, wi []T, vs []T, ldvs int) (info int32) {
	switch any(a).(type) {
	case []float64:
		return geesF64(wantVS, n, any(a).([]float64), lda, any(wr).([]float64), any(wi).([]float64), any(vs).([]float64), ldvs)
	case []float32:
		a64 := promote(any(a).([]float32))
		wr64 := make([]float64, len(wr))
		wi64 := make([]float64, len(wi))
		var vs64 []float64
		if wantVS {
			vs64 = make([]float64, n*ldvs)
		}
		info = geesF64(wantVS, n, a64, lda, wr64, wi64, vs64, ldvs)
		demote(any(a).([]float32), a64)
		demote(any(wr).([]float32), wr64)
		demote(any(wi).([]float32), wi64)
		if wantVS {
			demote(any(vs).([]float32), vs64)
		}
		return info
	}
	return 0
}

func geesF64(wantVS bool, n int, a []float64, lda int, wr, wi, vs []float64, ldvs int) int32 {
	if n == 0 {
		return 0
	}
	tau := make([]float64, n-1)
	query := make([]float64, 1)
	lapackNative.Dgehrd(n, 0, n-1, a, lda, tau, query, -1)
	work := make([]float64, max(int(query[0]), 3*n))
	lapackNative.Dgehrd(n, 0, n-1, a, lda, tau, work, len(work))

	compz := lapack.SchurNone
	if wantVS {
		// The reflectors live below the subdiagonal of a; expand them
		// into vs before they are wiped.
		for i := 0; i < n; i++ {
			copy(vs[i*ldvs:i*ldvs+n], a[i*lda:i*lda+n])
		}
		lapackNative.Dorghr(n, 0, n-1, vs, ldvs, tau, query, -1)
		if lw := int(query[0]); lw > len(work) {
			work = make([]float64, lw)
		}
		lapackNative.Dorghr(n, 0, n-1, vs, ldvs, tau, work, len(work))
		compz = lapack.SchurOrig
	}
	for i := 2; i < n; i++ {
		for j := 0; j < i-1; j++ {
			a[i*lda+j] = 0
		}
	}
	if !wantVS {
		vs, ldvs = nil, 1
	}
	unconverged := lapackNative.Dhseqr(lapack.EigenvaluesAndSchur, compz, n, 0, n-1, a, lda, wr, wi, vs, ldvs, work, len(work))
	return int32(unconverged)
}
