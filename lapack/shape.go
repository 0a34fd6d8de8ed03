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

	"github.com/matsen/jax/ffi"
)

// Shared shape bookkeeping for the kernel adapters. All checks run before
// any output buffer is touched, so a shape error leaves outputs unchanged.

// matrixBatch verifies that b flattens to batch matrices of rows×cols.
func matrixBatch(name string, b *ffi.Buffer, batch, rows, cols int) error {
	nb, r, c, err := ffi.SplitBatch2D(b)
	if err != nil {
		return fmt.Errorf("lapack: %s: %w", name, err)
	}
	if nb != batch || r != rows || c != cols {
		return fmt.Errorf("lapack: %s: have %d of %dx%d, want %d of %dx%d: %w",
			name, nb, r, c, batch, rows, cols, ffi.ErrShape)
	}
	return nil
}

// squareBatch splits b into batch square matrices, returning their order.
func squareBatch(name string, b *ffi.Buffer) (batch, n int, err error) {
	batch, r, c, err := ffi.SplitBatch2D(b)
	if err != nil {
		return 0, 0, fmt.Errorf("lapack: %s: %w", name, err)
	}
	if r != c {
		return 0, 0, fmt.Errorf("lapack: %s: %dx%d matrix is not square: %w", name, r, c, ffi.ErrShape)
	}
	return batch, r, nil
}

// vectorBatch verifies that b flattens to batch vectors of length n.
func vectorBatch(name string, b *ffi.Buffer, batch, n int) error {
	nb, ln, err := ffi.SplitBatch1D(b)
	if err != nil {
		return fmt.Errorf("lapack: %s: %w", name, err)
	}
	if nb != batch || ln != n {
		return fmt.Errorf("lapack: %s: have %d of length %d, want %d of length %d: %w",
			name, nb, ln, batch, n, ffi.ErrShape)
	}
	return nil
}

// scalarBatch verifies that b holds exactly one value per batch element
// (the shape of the info and selected outputs).
func scalarBatch(name string, b *ffi.Buffer, batch int) error {
	if b.Len() != batch {
		return fmt.Errorf("lapack: %s: have %d values, want one per batch element (%d): %w",
			name, b.Len(), batch, ffi.ErrShape)
	}
	return nil
}

// workspaceMin verifies that a workspace buffer holds at least min elements.
func workspaceMin(name string, b *ffi.Buffer, min int) error {
	if b.Len() < min {
		return fmt.Errorf("lapack: %s: have %d elements, want at least %d: %w",
			name, b.Len(), min, ffi.ErrWorkspace)
	}
	return nil
}

// primaryCopy returns the backing slice of out after establishing the
// in-place contract: the input's contents are copied over unless the caller
// aliased the two buffers.
func primaryCopy[T ffi.Element](in, out *ffi.Buffer) []T {
	d := ffi.Data[T](out)
	if !ffi.Aliases[T](in, out) {
		copy(d, ffi.Data[T](in))
	}
	return d
}
