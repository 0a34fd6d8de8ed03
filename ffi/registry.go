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

import "sort"

// handlers is the process-wide symbol table. It is written only during
// package initialization (a single-writer phase) and read-only afterwards,
// so lookups need no synchronization.
var handlers = make(map[string]*Handler)

// Register publishes a handler under a stable symbol name. It panics on a
// duplicate name or a nil handler: both are initialization-time programming
// bugs, and panicking is what keeps the published symbol set collision-free.
func Register(name string, h *Handler) {
	if h == nil {
		panic("ffi: Register called with nil handler: " + name)
	}
	if _, dup := handlers[name]; dup {
		panic("ffi: symbol already registered: " + name)
	}
	handlers[name] = h
}

// Lookup resolves a symbol name to its handler. A missing name is not an
// error condition: an unsupported (operation, element type) combination
// simply has no entry.
func Lookup(name string) (*Handler, bool) {
	h, ok := handlers[name]
	return h, ok
}

// Symbols returns all registered symbol names in sorted order.
func Symbols() []string {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
