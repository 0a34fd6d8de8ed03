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

// registerPotrf installs the Cholesky factorization of a Hermitian positive
// definite matrix for element type T. Only the triangle selected by uplo is
// read and written; info reports the order of the first non-positive-definite
// leading minor, or zero.
func registerPotrf[T ffi.Element]() {
	dt := ffi.DTypeOf[T]()
	ffi.Register(lapackSymbol("potrf", dt), ffi.Bind().
		Arg(dt, "x").
		Attr(ffi.Attr[UpLo]("uplo")).
		Ret(dt, "x_out").
		Ret(ffi.S32, "info").
		To(potrfKernel[T]))
}

func potrfKernel[T ffi.Element](c *ffi.Call) error {
	uplo := ffi.AttrOf[UpLo](c, "uplo")
	x := c.Args[0]
	xOut, info := c.Rets[0], c.Rets[1]

	batch, n, err := squareBatch("x", x)
	if err != nil {
		return err
	}
	if err := matrixBatch("x_out", xOut, batch, n, n); err != nil {
		return err
	}
	if err := scalarBatch("info", info, batch); err != nil {
		return err
	}

	a := primaryCopy[T](x, xOut)
	inf := ffi.Data[int32](info)
	for i := 0; i < batch; i++ {
		inf[i] = kernel.Potrf(uplo.toBlas(), n, a[i*n*n:(i+1)*n*n], n)
	}
	return nil
}
