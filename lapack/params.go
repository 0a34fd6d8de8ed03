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

import (
	"fmt"

	"gonum.org/v1/gonum/blas"

	"github.com/matsen/jax/ffi"
)

// The attribute enumerations mirror the classical LAPACK mode characters.
// Each implements ffi.AttrValue so a binding rejects out-of-range values
// before any kernel runs.

// Side selects which side of the equation the triangular matrix is on.
type Side byte

const (
	Left  Side = 'L'
	Right Side = 'R'
)

func (s Side) String() string { return string(byte(s)) }

func (s Side) Validate() error {
	switch s {
	case Left, Right:
		return nil
	}
	return fmt.Errorf("side %q: %w", byte(s), ffi.ErrAttrValue)
}

func (s Side) toBlas() blas.Side {
	if s == Right {
		return blas.Right
	}
	return blas.Left
}

// UpLo selects the triangle of a matrix an operation reads.
type UpLo byte

const (
	Upper UpLo = 'U'
	Lower UpLo = 'L'
)

func (u UpLo) String() string { return string(byte(u)) }

func (u UpLo) Validate() error {
	switch u {
	case Upper, Lower:
		return nil
	}
	return fmt.Errorf("uplo %q: %w", byte(u), ffi.ErrAttrValue)
}

func (u UpLo) toBlas() blas.Uplo {
	if u == Lower {
		return blas.Lower
	}
	return blas.Upper
}

// Trans selects the operator applied to the coefficient matrix.
type Trans byte

const (
	NoTrans   Trans = 'N'
	TransT    Trans = 'T'
	ConjTrans Trans = 'C'
)

func (t Trans) String() string { return string(byte(t)) }

func (t Trans) Validate() error {
	switch t {
	case NoTrans, TransT, ConjTrans:
		return nil
	}
	return fmt.Errorf("trans %q: %w", byte(t), ffi.ErrAttrValue)
}

func (t Trans) toBlas() blas.Transpose {
	switch t {
	case TransT:
		return blas.Trans
	case ConjTrans:
		return blas.ConjTrans
	}
	return blas.NoTrans
}

// Diag states whether a triangular matrix has an implicit unit diagonal.
type Diag byte

const (
	NonUnit Diag = 'N'
	Unit    Diag = 'U'
)

func (d Diag) String() string { return string(byte(d)) }

func (d Diag) Validate() error {
	switch d {
	case NonUnit, Unit:
		return nil
	}
	return fmt.Errorf("diag %q: %w", byte(d), ffi.ErrAttrValue)
}

func (d Diag) toBlas() blas.Diag {
	if d == Unit {
		return blas.Unit
	}
	return blas.NonUnit
}

// SVDJob selects how much of the singular value decomposition to compute.
type SVDJob byte

const (
	SVDNone SVDJob = 'N'
	SVDAll  SVDJob = 'A'
)

func (j SVDJob) String() string { return string(byte(j)) }

func (j SVDJob) Validate() error {
	switch j {
	case SVDNone, SVDAll:
		return nil
	}
	return fmt.Errorf("svd mode %q: %w", byte(j), ffi.ErrAttrValue)
}

func (j SVDJob) wantVectors() bool { return j == SVDAll }

// EigMode selects whether an eigendecomposition computes eigenvectors. It
// doubles as the per-side switch of the general (geev) decomposition.
type EigMode byte

const (
	EigNone    EigMode = 'N'
	EigVectors EigMode = 'V'
)

func (m EigMode) String() string { return string(byte(m)) }

func (m EigMode) Validate() error {
	switch m {
	case EigNone, EigVectors:
		return nil
	}
	return fmt.Errorf("eig mode %q: %w", byte(m), ffi.ErrAttrValue)
}

func (m EigMode) wantVectors() bool { return m == EigVectors }

// SchurMode selects whether a Schur decomposition accumulates the Schur
// vectors.
type SchurMode byte

const (
	SchurNoVectors SchurMode = 'N'
	SchurVectors   SchurMode = 'V'
)

func (m SchurMode) String() string { return string(byte(m)) }

func (m SchurMode) Validate() error {
	switch m {
	case SchurNoVectors, SchurVectors:
		return nil
	}
	return fmt.Errorf("schur mode %q: %w", byte(m), ffi.ErrAttrValue)
}

func (m SchurMode) wantVectors() bool { return m == SchurVectors }

// SchurSort selects eigenvalue reordering of the Schur form.
type SchurSort byte

const (
	SortNone     SchurSort = 'N'
	SortSelected SchurSort = 'S'
)

func (s SchurSort) String() string { return string(byte(s)) }

func (s SchurSort) Validate() error {
	switch s {
	case SortNone, SortSelected:
		return nil
	}
	return fmt.Errorf("schur sort %q: %w", byte(s), ffi.ErrAttrValue)
}
