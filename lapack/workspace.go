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

package lapack

import "github.com/matsen/jax/ffi"

// Workspace sizing. Callers allocate the work/rwork/iwork outputs of a
// handler with these helpers; the bindings reject anything smaller. The
// sizes follow the classical LAPACK minimum-lwork formulas, which are
// sufficient for the kernel layer here (kernels that need more allocate
// internally).

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func imin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// GeqrfWorkspaceSize returns the minimum work length for a QR
// factorization of an m×n matrix.
func GeqrfWorkspaceSize(m, n int) int { return imax(1, n) }

// OrgqrWorkspaceSize returns the minimum work length for assembling the
// explicit Q factor of an m×n matrix from k reflectors.
func OrgqrWorkspaceSize(m, n, k int) int { return imax(1, n) }

// GesddWorkspaceSize returns the minimum work length for a singular value
// decomposition of an m×n matrix of the given element type.
func GesddWorkspaceSize(dt ffi.DataType, m, n int, mode SVDJob) int {
	mn, mx := imin(m, n), imax(m, n)
	if dt.IsComplex() {
		if mode == SVDAll {
			return imax(1, mn*mn+2*mn+mx)
		}
		return imax(1, 2*mn+mx)
	}
	if mode == SVDAll {
		return imax(1, 4*mn*mn+6*mn+mx)
	}
	return imax(1, 3*mn+imax(mx, 7*mn))
}

// GesddRworkSize returns the minimum real workspace length for a complex
// singular value decomposition.
func GesddRworkSize(m, n int, mode SVDJob) int {
	mn := imin(m, n)
	if mode == SVDAll {
		return imax(1, 5*mn*mn+7*mn)
	}
	return imax(1, 7*mn)
}

// GesddIworkSize returns the integer workspace length for a singular value
// decomposition of an m×n matrix.
func GesddIworkSize(m, n int) int { return imax(1, 8*imin(m, n)) }

// SyevdWorkspaceSizes returns the minimum work and iwork lengths for a
// symmetric eigendecomposition of order n with eigenvectors.
func SyevdWorkspaceSizes(n int) (lwork, liwork int) {
	return imax(1, 1+6*n+2*n*n), imax(1, 3+5*n)
}

// HeevdWorkspaceSizes returns the minimum work, rwork and iwork lengths for
// a Hermitian eigendecomposition of order n with eigenvectors.
func HeevdWorkspaceSizes(n int) (lwork, lrwork, liwork int) {
	return imax(1, 2*n+n*n), imax(1, 1+5*n+2*n*n), imax(1, 3+5*n)
}

// GeevWorkspaceSize returns the minimum work length for a general
// eigendecomposition of order n.
func GeevWorkspaceSize(n int) int { return imax(1, 4*n) }

// GeevRworkSize returns the minimum real workspace length for a complex
// general eigendecomposition of order n.
func GeevRworkSize(n int) int { return imax(1, 2*n) }

// GeesWorkspaceSize returns the minimum work length for a Schur
// decomposition of order n.
func GeesWorkspaceSize(n int) int { return imax(1, 3*n) }

// GeesRworkSize returns the minimum real workspace length for a complex
// Schur decomposition of order n.
func GeesRworkSize(n int) int { return imax(1, n) }
