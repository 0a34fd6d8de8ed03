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

import "errors"

// Binding validation errors. All of them indicate a caller or protocol bug,
// never a numerical outcome; numerical failures are reported through info
// buffers only. Errors returned from Handler.Invoke wrap exactly one of
// these sentinels, so callers can classify failures with errors.Is.
var (
	// ErrArgCount is returned when a call supplies the wrong number of
	// input buffers.
	ErrArgCount = errors.New("argument count mismatch")

	// ErrRetCount is returned when a call supplies the wrong number of
	// output buffers.
	ErrRetCount = errors.New("result count mismatch")

	// ErrNilBuffer is returned when a buffer slot holds nil.
	ErrNilBuffer = errors.New("nil buffer")

	// ErrDType is returned when a buffer's element type does not match
	// the bound slot.
	ErrDType = errors.New("element type mismatch")

	// ErrMissingAttr is returned when a bound attribute is absent from
	// the call frame.
	ErrMissingAttr = errors.New("missing attribute")

	// ErrAttrType is returned when an attribute value has the wrong
	// dynamic type.
	ErrAttrType = errors.New("attribute type mismatch")

	// ErrAttrValue is returned when an attribute value is not one of the
	// legal values of its enumeration.
	ErrAttrValue = errors.New("invalid attribute value")

	// ErrShape is returned by kernel adapters when buffer dimensions are
	// inconsistent with the operation.
	ErrShape = errors.New("shape mismatch")

	// ErrWorkspace is returned by kernel adapters when a workspace buffer
	// is smaller than the advertised size for the call's shape.
	ErrWorkspace = errors.New("workspace too small")
)
