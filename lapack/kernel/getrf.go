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

// Getrf computes the LU decomposition with partial pivoting of an m×n
// matrix, P·A = L·U, overwriting a with the unit-lower-triangular L factor
// below the diagonal and the upper-triangular U factor on and above it.
//
// ipiv must have min(m, n) elements; on return ipiv[k] is the 1-based row
// that was swapped with row k, following the LAPACK convention. info is 0
// on success, or the 1-based index of the first exactly-zero pivot; the
// factorization is completed either way, but U is singular when info > 0.
func Getrf[T Element](m, n int, a []T, lda int, ipiv []int32) (info int32) {
	var zero T
	mn := min(m, n)
	for j := 0; j < mn; j++ {
		// Pivot: the largest magnitude on or below the diagonal.
		p := j
		pmax := absOf(a[j*lda+j])
		for i := j + 1; i < m; i++ {
			if v := absOf(a[i*lda+j]); v > pmax {
				pmax, p = v, i
			}
		}
		ipiv[j] = int32(p + 1)
		if p != j {
			for k := 0; k < n; k++ {
				a[j*lda+k], a[p*lda+k] = a[p*lda+k], a[j*lda+k]
			}
		}
		piv := a[j*lda+j]
		if piv == zero {
			if info == 0 {
				info = int32(j + 1)
			}
			continue
		}
		for i := j + 1; i < m; i++ {
			a[i*lda+j] /= piv
			l := a[i*lda+j]
			if l == zero {
				continue
			}
			row := a[i*lda:]
			prow := a[j*lda:]
			for k := j + 1; k < n; k++ {
				row[k] -= l * prow[k]
			}
		}
	}
	return info
}
