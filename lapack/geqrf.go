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

// registerGeqrf installs the Householder QR factorization for element type
// T. x_out receives R in the upper triangle and the reflector vectors below
// it; tau the reflector coefficients. The factorization itself cannot fail,
// so info is always zero.
func registerGeqrf[T ffi.Element]() {
	dt := ffi.DTypeOf[T]()
	ffi.Register(lapackSymbol("geqrf", dt), ffi.Bind().
		Arg(dt, "x").
		Ret(dt, "x_out").
		Ret(dt, "tau").
		Ret(ffi.S32, "info").
		Ret(dt, "work").
		To(geqrfKernel[T]))
}

func geqrfKernel[T ffi.Element](c *ffi.Call) error {
	x := c.Args[0]
	xOut, tau, info, work := c.Rets[0], c.Rets[1], c.Rets[2], c.Rets[3]

	batch, m, n, err := ffi.SplitBatch2D(x)
	if err != nil {
		return err
	}
	mn := imin(m, n)
	if err := matrixBatch("x_out", xOut, batch, m, n); err != nil {
		return err
	}
	if err := vectorBatch("tau", tau, batch, mn); err != nil {
		return err
	}
	if err := scalarBatch("info", info, batch); err != nil {
		return err
	}
	if err := workspaceMin("work", work, GeqrfWorkspaceSize(m, n)); err != nil {
		return err
	}

	a := primaryCopy[T](x, xOut)
	taus := ffi.Data[T](tau)
	inf := ffi.Data[int32](info)
	ws := ffi.Data[T](work)
	for i := 0; i < batch; i++ {
		kernel.Geqrf(m, n, a[i*m*n:(i+1)*m*n], n, taus[i*mn:(i+1)*mn], ws)
		inf[i] = 0
	}
	return nil
}
