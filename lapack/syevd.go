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

// registerSyevd installs the symmetric eigendecomposition for a real
// element type T. Eigenvalues come back ascending; with mode EigVectors the
// eigenvectors replace the columns of x_out.
func registerSyevd[T ffi.Real]() {
	dt := ffi.DTypeOf[T]()
	ffi.Register(lapackSymbol("syevd", dt), ffi.Bind().
		Arg(dt, "x").
		Attr(ffi.Attr[UpLo]("uplo")).
		Ret(dt, "x_out").
		Ret(dt, "eigenvalues").
		Ret(ffi.S32, "info").
		Ret(dt, "work").
		Ret(ffi.S32, "iwork").
		Attr(ffi.Attr[EigMode]("mode")).
		To(syevdKernel[T]))
}

func syevdKernel[T ffi.Real](c *ffi.Call) error {
	uplo := ffi.AttrOf[UpLo](c, "uplo")
	mode := ffi.AttrOf[EigMode](c, "mode")
	x := c.Args[0]
	xOut, eig, info := c.Rets[0], c.Rets[1], c.Rets[2]
	work, iwork := c.Rets[3], c.Rets[4]

	batch, n, err := squareBatch("x", x)
	if err != nil {
		return err
	}
	if err := matrixBatch("x_out", xOut, batch, n, n); err != nil {
		return err
	}
	if err := vectorBatch("eigenvalues", eig, batch, n); err != nil {
		return err
	}
	if err := scalarBatch("info", info, batch); err != nil {
		return err
	}
	lwork, liwork := SyevdWorkspaceSizes(n)
	if err := workspaceMin("work", work, lwork); err != nil {
		return err
	}
	if err := workspaceMin("iwork", iwork, liwork); err != nil {
		return err
	}

	a := primaryCopy[T](x, xOut)
	w := ffi.Data[T](eig)
	inf := ffi.Data[int32](info)
	for i := 0; i < batch; i++ {
		inf[i] = kernel.Syevd(mode.wantVectors(), uplo.toBlas(), n,
			a[i*n*n:(i+1)*n*n], n, w[i*n:(i+1)*n])
	}
	return nil
}

// registerHeevd installs the Hermitian eigendecomposition for a complex
// element type T. The eigenvalues of a Hermitian matrix are real, so the
// eigenvalue buffer is typed with the real counterpart of T.
func registerHeevd[T ffi.Complex, R ffi.Real]() {
	dt := ffi.DTypeOf[T]()
	rt := dt.ToReal()
	ffi.Register(lapackSymbol("heevd", dt), ffi.Bind().
		Arg(dt, "x").
		Attr(ffi.Attr[UpLo]("uplo")).
		Ret(dt, "x_out").
		Ret(rt, "eigenvalues").
		Ret(ffi.S32, "info").
		Ret(dt, "work").
		Ret(rt, "rwork").
		Ret(ffi.S32, "iwork").
		Attr(ffi.Attr[EigMode]("mode")).
		To(heevdKernel[T, R]))
}

func heevdKernel[T ffi.Complex, R ffi.Real](c *ffi.Call) error {
	uplo := ffi.AttrOf[UpLo](c, "uplo")
	mode := ffi.AttrOf[EigMode](c, "mode")
	x := c.Args[0]
	xOut, eig, info := c.Rets[0], c.Rets[1], c.Rets[2]
	work, rwork, iwork := c.Rets[3], c.Rets[4], c.Rets[5]

	batch, n, err := squareBatch("x", x)
	if err != nil {
		return err
	}
	if err := matrixBatch("x_out", xOut, batch, n, n); err != nil {
		return err
	}
	if err := vectorBatch("eigenvalues", eig, batch, n); err != nil {
		return err
	}
	if err := scalarBatch("info", info, batch); err != nil {
		return err
	}
	lwork, lrwork, liwork := HeevdWorkspaceSizes(n)
	if err := workspaceMin("work", work, lwork); err != nil {
		return err
	}
	if err := workspaceMin("rwork", rwork, lrwork); err != nil {
		return err
	}
	if err := workspaceMin("iwork", iwork, liwork); err != nil {
		return err
	}

	a := primaryCopy[T](x, xOut)
	w := ffi.Data[R](eig)
	inf := ffi.Data[int32](info)
	for i := 0; i < batch; i++ {
		inf[i] = kernel.Heevd[T, R](mode.wantVectors(), uplo.toBlas(), n,
			a[i*n*n:(i+1)*n*n], n, w[i*n:(i+1)*n])
	}
	return nil
}
