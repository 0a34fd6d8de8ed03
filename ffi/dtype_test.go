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

import "testing"

func TestDataTypeProperties(t *testing.T) {
	tests := []struct {
		dt        DataType
		str       string
		size      int
		complex   bool
		toReal    DataType
		toComplex DataType
	}{
		{F32, "f32", 4, false, F32, C64},
		{F64, "f64", 8, false, F64, C128},
		{C64, "c64", 8, true, F32, C64},
		{C128, "c128", 16, true, F64, C128},
	}
	for _, tc := range tests {
		t.Run(tc.str, func(t *testing.T) {
			if got := tc.dt.String(); got != tc.str {
				t.Errorf("String() = %q, want %q", got, tc.str)
			}
			if got := tc.dt.Size(); got != tc.size {
				t.Errorf("Size() = %d, want %d", got, tc.size)
			}
			if got := tc.dt.IsComplex(); got != tc.complex {
				t.Errorf("IsComplex() = %v, want %v", got, tc.complex)
			}
			if got := tc.dt.ToReal(); got != tc.toReal {
				t.Errorf("ToReal() = %v, want %v", got, tc.toReal)
			}
			if got := tc.dt.ToComplex(); got != tc.toComplex {
				t.Errorf("ToComplex() = %v, want %v", got, tc.toComplex)
			}
		})
	}
}

func TestDTypeOf(t *testing.T) {
	if dt := DTypeOf[float32](); dt != F32 {
		t.Errorf("DTypeOf[float32] = %v", dt)
	}
	if dt := DTypeOf[float64](); dt != F64 {
		t.Errorf("DTypeOf[float64] = %v", dt)
	}
	if dt := DTypeOf[complex64](); dt != C64 {
		t.Errorf("DTypeOf[complex64] = %v", dt)
	}
	if dt := DTypeOf[complex128](); dt != C128 {
		t.Errorf("DTypeOf[complex128] = %v", dt)
	}
	if dt := DTypeOf[int32](); dt != S32 {
		t.Errorf("DTypeOf[int32] = %v", dt)
	}
}
