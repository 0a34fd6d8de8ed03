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
	"strings"
)

// Attrs holds the by-value configuration entries of one call, keyed by the
// attribute names declared in the binding.
type Attrs map[string]any

// Call is the frame passed to a registered kernel: ordered input buffers,
// ordered output buffers, and the call's attributes. All per-call state
// lives here; handlers keep no state across calls.
type Call struct {
	Args  []*Buffer
	Rets  []*Buffer
	Attrs Attrs
}

// AttrValue is implemented by every enumeration type that can be passed as
// an attribute. Validate reports whether the value is one of the legal
// values of the enumeration; implementations wrap ErrAttrValue.
type AttrValue interface {
	Validate() error
}

// BufferSpec describes one bound buffer slot.
type BufferSpec struct {
	Name  string
	DType DataType
}

// AttrSpec describes one bound attribute: its name, the printable name of
// its Go type, and a check applied to the supplied value during validation.
type AttrSpec struct {
	name     string
	typeName string
	check    func(v any) error
}

// Name returns the attribute's bound name.
func (a AttrSpec) Name() string { return a.name }

// TypeName returns the printable Go type of the attribute.
func (a AttrSpec) TypeName() string { return a.typeName }

// Attr declares an attribute slot of enumeration type A. Validation checks
// the dynamic type of the supplied value and then its Validate method.
func Attr[A AttrValue](name string) AttrSpec {
	var zero A
	return AttrSpec{
		name:     name,
		typeName: fmt.Sprintf("%T", zero),
		check: func(v any) error {
			a, ok := v.(A)
			if !ok {
				return fmt.Errorf("ffi: attribute %q: got %T, want %T: %w", name, v, zero, ErrAttrType)
			}
			if err := a.Validate(); err != nil {
				return fmt.Errorf("ffi: attribute %q: %w", name, err)
			}
			return nil
		},
	}
}

// AttrOf returns the typed value of a bound attribute. It is intended for
// kernel implementations running after validation, so a missing or
// mistyped attribute panics.
func AttrOf[A AttrValue](c *Call, name string) A {
	v, ok := c.Attrs[name]
	if !ok {
		panic(fmt.Sprintf("ffi: attribute %q absent after validation", name))
	}
	return v.(A)
}

// Binding is the declarative signature of a kernel: ordered typed inputs,
// ordered typed outputs, and named typed attributes. Bindings are built
// once, at registration time, and never mutated afterwards.
type Binding struct {
	args  []BufferSpec
	rets  []BufferSpec
	attrs []AttrSpec
}

// Bind starts a new binding.
func Bind() *Binding {
	return &Binding{}
}

// Arg appends an input buffer slot.
func (b *Binding) Arg(dt DataType, name string) *Binding {
	b.args = append(b.args, BufferSpec{Name: name, DType: dt})
	return b
}

// Ret appends an output buffer slot.
func (b *Binding) Ret(dt DataType, name string) *Binding {
	b.rets = append(b.rets, BufferSpec{Name: name, DType: dt})
	return b
}

// Attr appends an attribute slot built with the package-level Attr function.
func (b *Binding) Attr(spec AttrSpec) *Binding {
	b.attrs = append(b.attrs, spec)
	return b
}

// To binds the kernel implementation and produces the handler.
func (b *Binding) To(impl func(*Call) error) *Handler {
	if impl == nil {
		panic("ffi: nil kernel implementation")
	}
	return &Handler{binding: b, impl: impl}
}

func (b *Binding) validate(c *Call) error {
	if c == nil {
		return fmt.Errorf("ffi: nil call frame: %w", ErrNilBuffer)
	}
	if len(c.Args) != len(b.args) {
		return fmt.Errorf("ffi: call has %d args, binding wants %d: %w", len(c.Args), len(b.args), ErrArgCount)
	}
	if len(c.Rets) != len(b.rets) {
		return fmt.Errorf("ffi: call has %d rets, binding wants %d: %w", len(c.Rets), len(b.rets), ErrRetCount)
	}
	for i, spec := range b.args {
		buf := c.Args[i]
		if buf == nil {
			return fmt.Errorf("ffi: arg %d (%s): %w", i, spec.Name, ErrNilBuffer)
		}
		if buf.dtype != spec.DType {
			return fmt.Errorf("ffi: arg %d (%s): have %s, want %s: %w", i, spec.Name, buf.dtype, spec.DType, ErrDType)
		}
	}
	for i, spec := range b.rets {
		buf := c.Rets[i]
		if buf == nil {
			return fmt.Errorf("ffi: ret %d (%s): %w", i, spec.Name, ErrNilBuffer)
		}
		if buf.dtype != spec.DType {
			return fmt.Errorf("ffi: ret %d (%s): have %s, want %s: %w", i, spec.Name, buf.dtype, spec.DType, ErrDType)
		}
	}
	for _, spec := range b.attrs {
		v, ok := c.Attrs[spec.name]
		if !ok {
			return fmt.Errorf("ffi: attribute %q: %w", spec.name, ErrMissingAttr)
		}
		if err := spec.check(v); err != nil {
			return err
		}
	}
	return nil
}

// Handler is a registered entry point: an immutable binding plus the kernel
// implementation it guards. Handlers are safe for concurrent use; each
// invocation touches only the buffers of its own call frame.
type Handler struct {
	binding *Binding
	impl    func(*Call) error
}

// Invoke validates the call frame against the binding and, only if it is
// well formed, runs the kernel. On a validation error no output buffer has
// been written.
func (h *Handler) Invoke(c *Call) error {
	if err := h.binding.validate(c); err != nil {
		return err
	}
	return h.impl(c)
}

// ArgSpecs returns the bound input slots in order.
func (h *Handler) ArgSpecs() []BufferSpec {
	return append([]BufferSpec(nil), h.binding.args...)
}

// RetSpecs returns the bound output slots in order.
func (h *Handler) RetSpecs() []BufferSpec {
	return append([]BufferSpec(nil), h.binding.rets...)
}

// AttrSpecs returns the bound attribute slots in order.
func (h *Handler) AttrSpecs() []AttrSpec {
	return append([]AttrSpec(nil), h.binding.attrs...)
}

// Signature renders the binding as a stable, human-readable string, e.g.
//
//	(x: f64, tau: f64) -> (x_out: f64, info: s32) {uplo: lapack.UpLo}
//
// The rendering is deterministic and uniquely determined by the binding, so
// runtimes can use it for shape/type checking diagnostics.
func (h *Handler) Signature() string {
	var sb strings.Builder
	writeSlots := func(specs []BufferSpec) {
		sb.WriteByte('(')
		for i, s := range specs {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s: %s", s.Name, s.DType)
		}
		sb.WriteByte(')')
	}
	writeSlots(h.binding.args)
	sb.WriteString(" -> ")
	writeSlots(h.binding.rets)
	if len(h.binding.attrs) > 0 {
		sb.WriteString(" {")
		for i, a := range h.binding.attrs {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s: %s", a.name, a.typeName)
		}
		sb.WriteByte('}')
	}
	return sb.String()
}
