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

// Package ffi implements a buffer-oriented foreign-call protocol for typed
// numerical kernels.
//
// A kernel is published under a stable string symbol together with a binding:
// an ordered list of typed input buffers, an ordered list of typed output
// buffers, and a set of named, typed, by-value attributes. The binding is
// declared once, at registration time, and every invocation is validated
// against it before the kernel runs:
//
//	handler := ffi.Bind().
//		Arg(ffi.F64, "x").
//		Ret(ffi.F64, "x_out").
//		Ret(ffi.S32, "info").
//		Attr(ffi.Attr[SomeEnum]("uplo")).
//		To(kernelImpl)
//	ffi.Register("lapack_dpotrf_ffi", handler)
//
// Validation failures (wrong buffer count, wrong element type, missing or
// invalid attribute) are Go errors and indicate a caller bug; they are
// surfaced before the kernel executes and before anything is written to an
// output buffer. Numerical outcomes are never Go errors: kernels report them
// through integer info buffers, following the classical LAPACK convention.
//
// Registration is a single-writer phase: handlers are published from package
// init functions, after which the symbol table is immutable and may be read
// concurrently without synchronization.
package ffi

// Real is a constraint for real floating-point element types.
type Real interface {
	~float32 | ~float64
}

// Complex is a constraint for complex floating-point element types.
type Complex interface {
	~complex64 | ~complex128
}

// Element is a constraint for the element types kernels compute on.
type Element interface {
	Real | Complex
}

// Scalar is a constraint for every type a Buffer can hold: the kernel
// element types plus the 32-bit integer type used for pivot indices,
// info codes and integer workspaces.
type Scalar interface {
	Element | ~int32
}
