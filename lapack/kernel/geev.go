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

// Geev computes the eigenvalues of a real general n×n matrix, and
// optionally its left and/or right eigenvectors, destroying a. Eigenvalues
// are returned split into real parts wr and imaginary parts wi; complex
// conjugate pairs occupy consecutive entries with the positive imaginary
// part first.
//
// Requested eigenvectors land in vl and vr in LAPACK's packed real
// representation: a real eigenvalue owns one real column, a conjugate pair
// owns two consecutive columns holding the real and imaginary components of
// the first eigenvector of the pair. info is 0 on success; a positive value
// means the QR iteration failed and only eigenvalues info.. are valid.
func Geev[T Real](wantLeft, wantRight bool, n int, a []T, lda int, wr, wi []T, vl []T, ldvl int, vr []T, ldvr int) (info int32) {
	switch any(a).(type) {
	case []float64:
		return geevF64(wantLeft, wantRight, n, any(a).([]float64), lda,
			any(wr).([]float64), any(wi).([]float64),
			any(vl).([]float64), ldvl, any(vr).([]float64), ldvr)
	case []float32:
		a64 := promote(any(a).([]float32))
		wr64 := make([]float64, len(wr))
		wi64 := make([]float64, len(wi))
		var vl64, vr64 []float64
		if wantLeft {
			vl64 = make([]float64, n*ldvl)
		}
		if wantRight {
			vr64 = make([]float64, n*ldvr)
		}
		info = geevF64(wantLeft, wantRight, n, a64, lda, wr64, wi64, vl64, ldvl, vr64, ldvr)
		demote(any(a).([]float32), a64)
		demote(any(wr).([]float32), wr64)
		demote(any(wi).([]float32), wi64)
		if wantLeft {
			demote(any(vl).([]float32), vl64)
		}
		if wantRight {
			demote(any(vr).([]float32), vr64)
		}
		return info
	}
	return 0
}

func geevF64(wantLeft, wantRight bool, n int, a []float64, lda int, wr, wi, vl []float64, ldvl int, vr []float64, ldvr int) int32 {
	jobvl, jobvr := lapack.LeftEVNone, lapack.RightEVNone
	if wantLeft {
		jobvl = lapack.LeftEVCompute
	} else {
		vl, ldvl = nil, 1
	}
	if wantRight {
		jobvr = lapack.RightEVCompute
	} else {
		vr, ldvr = nil, 1
	}
	query := make([]float64, 1)
	lapackNative.Dgeev(jobvl, jobvr, n, a, lda, wr, wi, vl, ldvl, vr, ldvr, query, -1)
	work := make([]float64, int(query[0]))
	first := lapackNative.Dgeev(jobvl, jobvr, n, a, lda, wr, wi, vl, ldvl, vr, ldvr, work, len(work))
	return int32(first)
}
