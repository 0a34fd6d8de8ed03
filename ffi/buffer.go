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

package ffi

import (
	"fmt"
	"slices"
)

// Buffer is a caller-owned, dense, row-major array of a single element type.
// The leading dimensions are batch dimensions; the trailing one or two are
// the vector or matrix dimensions an operation works on. A rank-0 buffer
// holds a single scalar.
//
// Buffers carry no per-call protocol state: a kernel neither retains nor
// frees them after returning.
type Buffer struct {
	dtype DataType
	dims  []int
	data  any
}

// NewBuffer allocates a zeroed buffer of element type T with the given
// dimensions. It panics on a negative dimension.
func NewBuffer[T Scalar](dims ...int) *Buffer {
	n := 1
	for _, d := range dims {
		if d < 0 {
			panic(fmt.Sprintf("ffi: negative dimension %d", d))
		}
		n *= d
	}
	return &Buffer{dtype: DTypeOf[T](), dims: slices.Clone(dims), data: make([]T, n)}
}

// BufferOf wraps an existing slice as a buffer with the given dimensions.
// The slice is used directly, not copied; it must hold exactly the product
// of the dimensions.
func BufferOf[T Scalar](data []T, dims ...int) *Buffer {
	n := 1
	for _, d := range dims {
		if d < 0 {
			panic(fmt.Sprintf("ffi: negative dimension %d", d))
		}
		n *= d
	}
	if len(data) != n {
		panic(fmt.Sprintf("ffi: buffer data has %d elements, dims %v require %d", len(data), dims, n))
	}
	return &Buffer{dtype: DTypeOf[T](), dims: slices.Clone(dims), data: data}
}

// DType returns the buffer's element type.
func (b *Buffer) DType() DataType { return b.dtype }

// Rank returns the number of dimensions.
func (b *Buffer) Rank() int { return len(b.dims) }

// Dims returns a copy of the buffer's dimensions.
func (b *Buffer) Dims() []int { return slices.Clone(b.dims) }

// Dim returns the i-th dimension.
func (b *Buffer) Dim(i int) int { return b.dims[i] }

// Len returns the total number of elements.
func (b *Buffer) Len() int {
	n := 1
	for _, d := range b.dims {
		n *= d
	}
	return n
}

// Data returns the backing slice of b. It panics if T does not match the
// buffer's element type; bindings validate element types before a kernel
// runs, so a mismatch here is a programming error.
func Data[T Scalar](b *Buffer) []T {
	s, ok := b.data.([]T)
	if !ok {
		panic(fmt.Sprintf("ffi: buffer holds %s, not %s", b.dtype, DTypeOf[T]()))
	}
	return s
}

// ScalarOf returns the single element of a one-element (typically rank-0)
// buffer.
func ScalarOf[T Scalar](b *Buffer) T {
	s := Data[T](b)
	if len(s) != 1 {
		panic(fmt.Sprintf("ffi: scalar access on buffer of %d elements", len(s)))
	}
	return s[0]
}

// SplitBatch2D interprets the buffer's dimensions as [..., rows, cols] and
// returns the flattened batch count together with the trailing matrix
// dimensions. It fails if the buffer has rank below 2.
func SplitBatch2D(b *Buffer) (batch, rows, cols int, err error) {
	if len(b.dims) < 2 {
		return 0, 0, 0, fmt.Errorf("ffi: rank-%d buffer is not a matrix batch: %w", len(b.dims), ErrShape)
	}
	batch = 1
	for _, d := range b.dims[:len(b.dims)-2] {
		batch *= d
	}
	return batch, b.dims[len(b.dims)-2], b.dims[len(b.dims)-1], nil
}

// SplitBatch1D interprets the buffer's dimensions as [..., n] and returns
// the flattened batch count together with the trailing dimension.
func SplitBatch1D(b *Buffer) (batch, n int, err error) {
	if len(b.dims) < 1 {
		return 0, 0, fmt.Errorf("ffi: rank-0 buffer is not a vector batch: %w", ErrShape)
	}
	batch = 1
	for _, d := range b.dims[:len(b.dims)-1] {
		batch *= d
	}
	return batch, b.dims[len(b.dims)-1], nil
}

// Aliases reports whether a and b share the same backing storage. In-place
// operations use this to skip the input-to-output copy when the runtime has
// already aliased the two buffers.
func Aliases[T Scalar](a, b *Buffer) bool {
	as, aok := a.data.([]T)
	bs, bok := b.data.([]T)
	if !aok || !bok || len(as) == 0 || len(bs) == 0 {
		return false
	}
	return &as[0] == &bs[0]
}
