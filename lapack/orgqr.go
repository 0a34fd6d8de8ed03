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

// registerOrgqr installs the explicit-Q assembly for element type T: x_out
// receives the orthonormal (or unitary) columns generated from the
// reflectors a geqrf call left in x and tau. The mnemonic differs by type
// category ("orgqr" for real, "ungqr" for complex), matching the classical
// routine names.
func registerOrgqr[T ffi.Element](mnemonic string) {
	dt := ffi.DTypeOf[T]()
	ffi.Register(lapackSymbol(mnemonic, dt), ffi.Bind().
		Arg(dt, "x").
		Arg(dt, "tau").
		Ret(dt, "x_out").
		Ret(ffi.S32, "info").
		Ret(dt, "work").
		To(orgqrKernel[T]))
}

func orgqrKernel[T ffi.Element](c *ffi.Call) error {
	x, tau := c.Args[0], c.Args[1]
	xOut, info, work := c.Rets[0], c.Rets[1], c.Rets[2]

	batch, m, n, err := ffi.SplitBatch2D(x)
	if err != nil {
		return err
	}
	tb, k, err := ffi.SplitBatch1D(tau)
	if err != nil {
		return err
	}
	if tb != batch || k > n || n > m {
		return fmt.Errorf("lapack: orgqr wants m >= n >= len(tau), have m=%d n=%d k=%d (batch %d vs %d): %w",
			m, n, k, batch, tb, ffi.ErrShape)
	}
	if err := matrixBatch("x_out", xOut, batch, m, n); err != nil {
		return err
	}
	if err := scalarBatch("info", info, batch); err != nil {
		return err
	}
	if err := workspaceMin("work", work, OrgqrWorkspaceSize(m, n, k)); err != nil {
		return err
	}

	a := primaryCopy[T](x, xOut)
	taus := ffi.Data[T](tau)
	inf := ffi.Data[int32](info)
	ws := ffi.Data[T](work)
	for i := 0; i < batch; i++ {
		kernel.Ungqr(m, n, k, a[i*m*n:(i+1)*m*n], n, taus[i*k:(i+1)*k], ws)
		inf[i] = 0
	}
	return nil
}
