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
	"github.com/matsen/jax/lapack/kernel"
)

// registerTrsm installs the triangular solve op X·?(A) = α·B (or the
// left-sided variant) for element type T. The triangular matrix arrives in
// x, the right-hand sides in y, and the solution overwrites y_out.
func registerTrsm[T ffi.Element]() {
	dt := ffi.DTypeOf[T]()
	ffi.Register(blasSymbol("trsm", dt), ffi.Bind().
		Arg(dt, "x").
		Arg(dt, "y").
		Arg(dt, "alpha").
		Ret(dt, "y_out").
		Attr(ffi.Attr[Side]("side")).
		Attr(ffi.Attr[UpLo]("uplo")).
		Attr(ffi.Attr[Trans]("trans_x")).
		Attr(ffi.Attr[Diag]("diag")).
		To(trsmKernel[T]))
}

func trsmKernel[T ffi.Element](c *ffi.Call) error {
	side := ffi.AttrOf[Side](c, "side")
	uplo := ffi.AttrOf[UpLo](c, "uplo")
	trans := ffi.AttrOf[Trans](c, "trans_x")
	diag := ffi.AttrOf[Diag](c, "diag")

	x, y, alpha := c.Args[0], c.Args[1], c.Args[2]
	yOut := c.Rets[0]

	batch, m, n, err := ffi.SplitBatch2D(y)
	if err != nil {
		return err
	}
	k := m
	if side == Right {
		k = n
	}
	if err := matrixBatch("x", x, batch, k, k); err != nil {
		return err
	}
	if err := matrixBatch("y_out", yOut, batch, m, n); err != nil {
		return err
	}
	if alpha.Len() != 1 {
		return fmt.Errorf("lapack: alpha: have %d elements, want a scalar: %w",
			alpha.Len(), ffi.ErrShape)
	}

	a := ffi.Data[T](x)
	b := primaryCopy[T](y, yOut)
	alphaV := ffi.ScalarOf[T](alpha)
	for i := 0; i < batch; i++ {
		kernel.Trsm(side.toBlas(), uplo.toBlas(), trans.toBlas(), diag.toBlas(),
			m, n, alphaV, a[i*k*k:(i+1)*k*k], k, b[i*m*n:(i+1)*m*n], n)
	}
	return nil
}
