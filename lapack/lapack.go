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

// Package lapack registers the dense linear algebra entry points: one
// handler per operation family and element type, named after the classical
// BLAS/LAPACK routines (blas_strsm_ffi, lapack_zgetrf_ffi, ...).
//
// Every handler follows the same call shape. Inputs are never modified; the
// primary output starts as a copy of the primary input (skipped when the
// caller aliased the two buffers) and the computation runs in place on the
// output. Leading buffer dimensions are batch dimensions: the kernel runs
// once per trailing matrix, and the info output carries one status value per
// batch element. Numerical outcomes are reported only through info, never
// as Go errors: zero for success, positive for a data-dependent condition
// such as a singular pivot, negative for an unsupported argument.
// Malformed calls (wrong dtype, wrong shape, short workspace, out-of-range
// attribute) fail validation before anything is written.
package lapack

import (
	"fmt"

	"github.com/matsen/jax/ffi"
)

func precisionLetter(dt ffi.DataType) string {
	switch dt {
	case ffi.F32:
		return "s"
	case ffi.F64:
		return "d"
	case ffi.C64:
		return "c"
	case ffi.C128:
		return "z"
	}
	panic(fmt.Sprintf("lapack: no precision letter for %s", dt))
}

// blasSymbol returns the registered name of a BLAS-family entry point,
// e.g. blasSymbol("trsm", ffi.F32) = "blas_strsm_ffi".
func blasSymbol(op string, dt ffi.DataType) string {
	return "blas_" + precisionLetter(dt) + op + "_ffi"
}

// lapackSymbol returns the registered name of a LAPACK-family entry point,
// e.g. lapackSymbol("getrf", ffi.C128) = "lapack_zgetrf_ffi".
func lapackSymbol(op string, dt ffi.DataType) string {
	return "lapack_" + precisionLetter(dt) + op + "_ffi"
}

// The init-time expansion of the operation table: each register function
// declares the family's binding once, generically, and is instantiated here
// for every supported element type. Registration panics on a name collision,
// so the table is collision-free by construction.
func init() {
	registerTrsm[float32]()
	registerTrsm[float64]()
	registerTrsm[complex64]()
	registerTrsm[complex128]()

	registerGetrf[float32]()
	registerGetrf[float64]()
	registerGetrf[complex64]()
	registerGetrf[complex128]()

	registerGeqrf[float32]()
	registerGeqrf[float64]()
	registerGeqrf[complex64]()
	registerGeqrf[complex128]()

	registerOrgqr[float32]("orgqr")
	registerOrgqr[float64]("orgqr")
	registerOrgqr[complex64]("ungqr")
	registerOrgqr[complex128]("ungqr")

	registerPotrf[float32]()
	registerPotrf[float64]()
	registerPotrf[complex64]()
	registerPotrf[complex128]()

	registerGesddReal[float32]()
	registerGesddReal[float64]()
	registerGesddComplex[complex64, float32]()
	registerGesddComplex[complex128, float64]()

	registerSyevd[float32]()
	registerSyevd[float64]()
	registerHeevd[complex64, float32]()
	registerHeevd[complex128, float64]()

	registerGeevReal[float32, complex64]()
	registerGeevReal[float64, complex128]()
	registerGeevComplex[complex64, float32]()
	registerGeevComplex[complex128, float64]()

	registerGeesReal[float32]()
	registerGeesReal[float64]()
	registerGeesComplex[complex64, float32]()
	registerGeesComplex[complex128, float64]()
}
