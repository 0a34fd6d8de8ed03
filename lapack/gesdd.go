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
	"github.com/matsen/jax/ffi"
	"github.com/matsen/jax/lapack/kernel"
)

// The two singular value decomposition branches share one adapter body; the
// complex branch differs only in the extra real workspace slot and in the
// singular values being typed with the real counterpart of the element type.

// registerGesddReal installs the SVD of a real m×n matrix: x = u·diag(s)·vt.
// With mode SVDAll u is m×m and vt n×n; with SVDNone only s is written.
func registerGesddReal[T ffi.Real]() {
	dt := ffi.DTypeOf[T]()
	ffi.Register(lapackSymbol("gesdd", dt), ffi.Bind().
		Arg(dt, "x").
		Ret(dt, "x_out").
		Ret(dt, "s").
		Ret(dt, "u").
		Ret(dt, "vt").
		Ret(ffi.S32, "info").
		Ret(ffi.S32, "iwork").
		Ret(dt, "work").
		Attr(ffi.Attr[SVDJob]("mode")).
		To(func(c *ffi.Call) error {
			return gesddKernel[T, T](c, c.Rets[5], c.Rets[6], nil)
		}))
}

// registerGesddComplex installs the SVD of a complex matrix. The singular
// values are real-typed, and the binding carries the extra rwork slot of the
// classical complex routine.
func registerGesddComplex[T ffi.Complex, R ffi.Real]() {
	dt := ffi.DTypeOf[T]()
	rt := dt.ToReal()
	ffi.Register(lapackSymbol("gesdd", dt), ffi.Bind().
		Arg(dt, "x").
		Ret(dt, "x_out").
		Ret(rt, "s").
		Ret(dt, "u").
		Ret(dt, "vt").
		Ret(ffi.S32, "info").
		Ret(rt, "rwork").
		Ret(ffi.S32, "iwork").
		Ret(dt, "work").
		Attr(ffi.Attr[SVDJob]("mode")).
		To(func(c *ffi.Call) error {
			return gesddKernel[T, R](c, c.Rets[6], c.Rets[7], c.Rets[5])
		}))
}

// gesddKernel is the shared body. The workspace slots sit at different ret
// indices in the two layouts, so the callers pass them in: work is the
// element-typed slot, iwork the integer slot, and rwork the real workspace
// of the complex branch, nil for the real one.
func gesddKernel[T ffi.Element, R ffi.Real](c *ffi.Call, iwork, work, rwork *ffi.Buffer) error {
	mode := ffi.AttrOf[SVDJob](c, "mode")
	x := c.Args[0]
	xOut, s, u, vt := c.Rets[0], c.Rets[1], c.Rets[2], c.Rets[3]
	info := c.Rets[4]

	batch, m, n, err := ffi.SplitBatch2D(x)
	if err != nil {
		return err
	}
	mn := imin(m, n)
	dt := x.DType()
	if err := matrixBatch("x_out", xOut, batch, m, n); err != nil {
		return err
	}
	if err := vectorBatch("s", s, batch, mn); err != nil {
		return err
	}
	if mode.wantVectors() {
		if err := matrixBatch("u", u, batch, m, m); err != nil {
			return err
		}
		if err := matrixBatch("vt", vt, batch, n, n); err != nil {
			return err
		}
	}
	if err := scalarBatch("info", info, batch); err != nil {
		return err
	}
	if err := workspaceMin("iwork", iwork, GesddIworkSize(m, n)); err != nil {
		return err
	}
	if err := workspaceMin("work", work, GesddWorkspaceSize(dt, m, n, mode)); err != nil {
		return err
	}
	if rwork != nil {
		if err := workspaceMin("rwork", rwork, GesddRworkSize(m, n, mode)); err != nil {
			return err
		}
	}

	a := primaryCopy[T](x, xOut)
	sv := ffi.Data[R](s)
	inf := ffi.Data[int32](info)
	var ud, vtd []T
	if mode.wantVectors() {
		ud = ffi.Data[T](u)
		vtd = ffi.Data[T](vt)
	}
	for i := 0; i < batch; i++ {
		var ui, vti []T
		if mode.wantVectors() {
			ui = ud[i*m*m : (i+1)*m*m]
			vti = vtd[i*n*n : (i+1)*n*n]
		}
		inf[i] = kernel.Gesdd[T, R](mode.wantVectors(), m, n,
			a[i*m*n:(i+1)*m*n], n, sv[i*mn:(i+1)*mn], ui, m, vti, n)
	}
	return nil
}
