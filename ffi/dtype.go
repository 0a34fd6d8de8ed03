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

// DataType identifies the element type of a Buffer.
type DataType int

const (
	// Invalid is the zero DataType; no buffer carries it.
	Invalid DataType = iota

	// F32 is a 32-bit real element (float32).
	F32

	// F64 is a 64-bit real element (float64).
	F64

	// C64 is a 64-bit complex element (complex64).
	C64

	// C128 is a 128-bit complex element (complex128).
	C128

	// S32 is a signed 32-bit integer element, used for pivot indices,
	// info/status codes and integer workspaces.
	S32
)

// String returns the conventional short name for the data type.
func (d DataType) String() string {
	switch d {
	case F32:
		return "f32"
	case F64:
		return "f64"
	case C64:
		return "c64"
	case C128:
		return "c128"
	case S32:
		return "s32"
	default:
		return "invalid"
	}
}

// Size returns the element size in bytes.
func (d DataType) Size() int {
	switch d {
	case F32, S32:
		return 4
	case F64, C64:
		return 8
	case C128:
		return 16
	default:
		return 0
	}
}

// IsComplex reports whether d is a complex element type.
func (d DataType) IsComplex() bool {
	return d == C64 || d == C128
}

// ToReal returns the real-component type of d: the type of quantities that
// are mathematically real even when the input is complex, such as singular
// values and Hermitian eigenvalues. Real types map to themselves.
func (d DataType) ToReal() DataType {
	switch d {
	case C64:
		return F32
	case C128:
		return F64
	default:
		return d
	}
}

// ToComplex returns the complex counterpart of d. Complex types map to
// themselves; S32 has no complex counterpart and maps to Invalid.
func (d DataType) ToComplex() DataType {
	switch d {
	case F32:
		return C64
	case F64:
		return C128
	case C64, C128:
		return d
	default:
		return Invalid
	}
}

// DTypeOf returns the DataType for the exact Go type T.
func DTypeOf[T Scalar]() DataType {
	var z T
	switch any(z).(type) {
	case float32:
		return F32
	case float64:
		return F64
	case complex64:
		return C64
	case complex128:
		return C128
	case int32:
		return S32
	default:
		return Invalid
	}
}
