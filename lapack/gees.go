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

// The Schur family reports sort=SortSelected through a negative info value
// (the classical invalid-argument convention, position 2 = the sort
// argument): the kernel layer carries no selection callback, so reordering
// cannot be honored. selected_eigvals is always written as zero.
const geesSortUnsupported = -2

// registerGeesReal installs the real Schur decomposition x = Z·T·Zᵀ with T
// quasi upper triangular. Eigenvalues are split into real and imaginary
// parts as in the geev family.
func registerGeesReal[T ffi.Real]() {
	dt := ffi.DTypeOf[T]()
	ffi.Register(lapackSymbol("gees", dt), ffi.Bind().
		Arg(dt, "x").
		Attr(ffi.Attr[SchurMode]("mode")).
		Attr(ffi.Attr[SchurSort]("sort")).
		Ret(dt, "x_out").
		Ret(dt, "eigvals_real").
		Ret(dt, "eigvals_imag").
		Ret(dt, "schur_vectors").
		Ret(ffi.S32, "selected_eigvals").
		Ret(ffi.S32, "info").
		To(geesRealKernel[T]))
}

func geesRealKernel[T ffi.Real](c *ffi.Call) error {
	mode := ffi.AttrOf[SchurMode](c, "mode")
	sort := ffi.AttrOf[SchurSort](c, "sort")
	x := c.Args[0]
	xOut, wr, wi, vs := c.Rets[0], c.Rets[1], c.Rets[2], c.Rets[3]
	selected, info := c.Rets[4], c.Rets[5]

	batch, n, err := squareBatch("x", x)
	if err != nil {
		return err
	}
	if err := matrixBatch("x_out", xOut, batch, n, n); err != nil {
		return err
	}
	if err := vectorBatch("eigvals_real", wr, batch, n); err != nil {
		return err
	}
	if err := vectorBatch("eigvals_imag", wi, batch, n); err != nil {
		return err
	}
	if err := scalarBatch("selected_eigvals", selected, batch); err != nil {
		return err
	}
	if err := scalarBatch("info", info, batch); err != nil {
		return err
	}
	if mode.wantVectors() {
		if err := matrixBatch("schur_vectors", vs, batch, n, n); err != nil {
			return err
		}
	}

	a := primaryCopy[T](x, xOut)
	wrd := ffi.Data[T](wr)
	wid := ffi.Data[T](wi)
	sel := ffi.Data[int32](selected)
	inf := ffi.Data[int32](info)
	var vsd []T
	if mode.wantVectors() {
		vsd = ffi.Data[T](vs)
	}
	for i := 0; i < batch; i++ {
		sel[i] = 0
		if sort == SortSelected {
			inf[i] = geesSortUnsupported
			continue
		}
		var vsi []T
		if mode.wantVectors() {
			vsi = vsd[i*n*n : (i+1)*n*n]
		}
		inf[i] = kernel.Gees(mode.wantVectors(), n, a[i*n*n:(i+1)*n*n], n,
			wrd[i*n:(i+1)*n], wid[i*n:(i+1)*n], vsi, n)
	}
	return nil
}

// registerGeesComplex installs the complex Schur decomposition x = Q·T·Qᴴ
// with T strictly upper triangular and the eigenvalues on its diagonal.
func registerGeesComplex[T ffi.Complex, R ffi.Real]() {
	dt := ffi.DTypeOf[T]()
	rt := dt.ToReal()
	ffi.Register(lapackSymbol("gees", dt), ffi.Bind().
		Arg(dt, "x").
		Attr(ffi.Attr[SchurMode]("mode")).
		Attr(ffi.Attr[SchurSort]("sort")).
		Ret(dt, "x_out").
		Ret(dt, "eigvals").
		Ret(dt, "schur_vectors").
		Ret(ffi.S32, "selected_eigvals").
		Ret(ffi.S32, "info").
		Ret(rt, "rwork").
		To(geesComplexKernel[T]))
}

func geesComplexKernel[T ffi.Complex](c *ffi.Call) error {
	mode := ffi.AttrOf[SchurMode](c, "mode")
	sort := ffi.AttrOf[SchurSort](c, "sort")
	x := c.Args[0]
	xOut, w, vs := c.Rets[0], c.Rets[1], c.Rets[2]
	selected, info, rwork := c.Rets[3], c.Rets[4], c.Rets[5]

	batch, n, err := squareBatch("x", x)
	if err != nil {
		return err
	}
	if err := matrixBatch("x_out", xOut, batch, n, n); err != nil {
		return err
	}
	if err := vectorBatch("eigvals", w, batch, n); err != nil {
		return err
	}
	if err := scalarBatch("selected_eigvals", selected, batch); err != nil {
		return err
	}
	if err := scalarBatch("info", info, batch); err != nil {
		return err
	}
	if err := workspaceMin("rwork", rwork, GeesRworkSize(n)); err != nil {
		return err
	}
	if mode.wantVectors() {
		if err := matrixBatch("schur_vectors", vs, batch, n, n); err != nil {
			return err
		}
	}

	a := primaryCopy[T](x, xOut)
	wd := ffi.Data[T](w)
	sel := ffi.Data[int32](selected)
	inf := ffi.Data[int32](info)
	var vsd []T
	if mode.wantVectors() {
		vsd = ffi.Data[T](vs)
	}
	for i := 0; i < batch; i++ {
		sel[i] = 0
		if sort == SortSelected {
			inf[i] = geesSortUnsupported
			continue
		}
		var vsi []T
		if mode.wantVectors() {
			vsi = vsd[i*n*n : (i+1)*n*n]
		}
		inf[i] = kernel.GeesComplex(mode.wantVectors(), n, a[i*n*n:(i+1)*n*n], n,
			wd[i*n:(i+1)*n], vsi, n)
	}
	return nil
}
