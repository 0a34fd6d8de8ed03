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
	"gonum.org/v1/gonum/blas"
	blasimpl "gonum.org/v1/gonum/blas/gonum"
)

var blasNative = blasimpl.Implementation{}

// Trsm solves op(A)·X = alpha·B (side Left) or X·op(A) = alpha·B (side
// Right) for a triangular m×m or n×n matrix A, overwriting the m×n matrix B
// with X. It delegates to gonum's native BLAS implementation for all four
// element types.
func Trsm[T Element](side blas.Side, uplo blas.Uplo, trans blas.Transpose, diag blas.Diag, m, n int, alpha T, a []T, lda int, b []T, ldb int) {
	switch x := any(alpha).(type) {
	case float32:
		blasNative.Strsm(side, uplo, realTrans(trans), diag, m, n, x, any(a).([]float32), lda, any(b).([]float32), ldb)
	case float64:
		blasNative.Dtrsm(side, uplo, realTrans(trans), diag, m, n, x, any(a).([]float64), lda, any(b).([]float64), ldb)
	case complex64:
		blasNative.Ctrsm(side, uplo, trans, diag, m, n, x, any(a).([]complex64), lda, any(b).([]complex64), ldb)
	case complex128:
		blasNative.Ztrsm(side, uplo, trans, diag, m, n, x, any(a).([]complex128), lda, any(b).([]complex128), ldb)
	}
}

// realTrans collapses conjugate transposition to plain transposition, which
// is the same operation on a real matrix.
func realTrans(t blas.Transpose) blas.Transpose {
	if t == blas.ConjTrans {
		return blas.Trans
	}
	return t
}
