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
	"sort"
	"testing"
)

func noopHandler() *Handler {
	return Bind().Arg(F64, "x").Ret(F64, "x_out").To(func(c *Call) error { return nil })
}

func TestRegisterLookup(t *testing.T) {
	h := noopHandler()
	Register("test_lookup_ffi", h)
	got, ok := Lookup("test_lookup_ffi")
	if !ok || got != h {
		t.Fatalf("Lookup returned (%v, %v)", got, ok)
	}
	if _, ok := Lookup("test_absent_ffi"); ok {
		t.Error("Lookup found an unregistered symbol")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_duplicate_ffi", noopHandler())
	defer func() {
		if recover() == nil {
			t.Error("duplicate registration did not panic")
		}
	}()
	Register("test_duplicate_ffi", noopHandler())
}

func TestRegisterNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("nil handler registration did not panic")
		}
	}()
	Register("test_nil_ffi", nil)
}

func TestSymbolsSorted(t *testing.T) {
	Register("test_symbols_b_ffi", noopHandler())
	Register("test_symbols_a_ffi", noopHandler())
	syms := Symbols()
	if !sort.StringsAreSorted(syms) {
		t.Errorf("Symbols() not sorted: %v", syms)
	}
	var a, b bool
	for _, s := range syms {
		switch s {
		case "test_symbols_a_ffi":
			a = true
		case "test_symbols_b_ffi":
			b = true
		}
	}
	if !a || !b {
		t.Errorf("registered symbols missing from %v", syms)
	}
}
