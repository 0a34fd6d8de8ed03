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

// registerGetrf installs the partially pivoted LU factorization for element
// type T. x_out receives L and U packed into one matrix (unit diagonal of L
// implicit), ipiv the 1-based pivot rows, and info the first singular pivot
// position or zero.
func registerGetrf[T ffi.Element]() {
	dt := ffi.DTypeOf[T]()
	ffi.Register(lapackSymbol("getrf", dt), ffi.Bind().
		Arg(dt, "x").
		Ret(dt, "x_out").
		Ret(ffi.S32, "ipiv").
		Ret(ffi.S32, "info").
		To(getrfKernel[T]))
}

func getrfKernel[T ffi.Element](c *ffi.Call) error {
	x := c.Args[0]
	xOut, ipiv, info := c.Rets[0], c.Rets[1], c.Rets[2]

	batch, m, n, err := ffi.SplitBatch2D(x)
	if err != nil {
		return err
	}
	mn := imin(m, n)
	if err := matrixBatch("x_out", xOut, batch, m, n); err != nil {
		return err
	}
	if err := vectorBatch("ipiv", ipiv, batch, mn); err != nil {
		return err
	}
	if err := scalarBatch("info", info, batch); err != nil {
		return err
	}

	a := primaryCopy[T](x, xOut)
	piv := ffi.Data[int32](ipiv)
	inf := ffi.Data[int32](info)
	for i := 0; i < batch; i++ {
		inf[i] = kernel.Getrf(m, n, a[i*m*n:(i+1)*m*n], n, piv[i*mn:(i+1)*mn])
	}
	return nil
}
