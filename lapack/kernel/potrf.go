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

	"gonum.org/v1/gonum/blas"
)

// Potrf computes the Cholesky factorization of an n×n symmetric (Hermitian
// for complex element types) positive-definite matrix: A = Uᴴ·U when uplo
// is Upper, A = L·Lᴴ when uplo is Lower. Only the uplo triangle of a is
// referenced and overwritten; the other triangle is left untouched.
//
// info is 0 on success, or the 1-based order of the first leading minor
// that is not positive definite, in which case the factorization stops.
func Potrf[T Element](uplo blas.Uplo, n int, a []T, lda int) (info int32) {
	if uplo == blas.Upper {
		for j := 0; j < n; j++ {
			d := realOf(a[j*lda+j])
			for k := 0; k < j; k++ {
				v := a[k*lda+j]
				d -= realOf(v)*realOf(v) + imagOf(v)*imagOf(v)
			}
			if d <= 0 || math.IsNaN(d) {
				return int32(j + 1)
			}
			ujj := math.Sqrt(d)
			a[j*lda+j] = fromReal[T](ujj)
			inv := fromReal[T](1 / ujj)
			for i := j + 1; i < n; i++ {
				s := a[j*lda+i]
				for k := 0; k < j; k++ {
					s -= conjOf(a[k*lda+j]) * a[k*lda+i]
				}
				a[j*lda+i] = s * inv
			}
		}
		return 0
	}
	for j := 0; j < n; j++ {
		d := realOf(a[j*lda+j])
		for k := 0; k < j; k++ {
			v := a[j*lda+k]
			d -= realOf(v)*realOf(v) + imagOf(v)*imagOf(v)
		}
		if d <= 0 || math.IsNaN(d) {
			return int32(j + 1)
		}
		ljj := math.Sqrt(d)
		a[j*lda+j] = fromReal[T](ljj)
		inv := fromReal[T](1 / ljj)
		for i := j + 1; i < n; i++ {
			s := a[i*lda+j]
			for k := 0; k < j; k++ {
				s -= a[i*lda+k] * conjOf(a[j*lda+k])
			}
			a[i*lda+j] = s * inv
		}
	}
	return 0
}
