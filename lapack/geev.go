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

// registerGeevReal installs the general eigendecomposition for a real
// element type T. Real matrices have conjugate-pair eigenvalues, so the
// values are split into real and imaginary buffers while the eigenvector
// outputs are complex-typed: the classical packed pair representation the
// routine produces internally is unpacked before it reaches the caller.
// x_work is the in-place working copy of the input.
func registerGeevReal[T ffi.Real, C ffi.Complex]() {
	dt := ffi.DTypeOf[T]()
	ct := dt.ToComplex()
	ffi.Register(lapackSymbol("geev", dt), ffi.Bind().
		Arg(dt, "x").
		Attr(ffi.Attr[EigMode]("compute_left")).
		Attr(ffi.Attr[EigMode]("compute_right")).
		Ret(dt, "eigvals_real").
		Ret(dt, "eigvals_imag").
		Ret(ct, "eigvecs_left").
		Ret(ct, "eigvecs_right").
		Ret(ffi.S32, "info").
		Ret(dt, "x_work").
		Ret(dt, "work_eigvecs_left").
		Ret(dt, "work_eigvecs_right").
		To(geevRealKernel[T, C]))
}

func geevRealKernel[T ffi.Real, C ffi.Complex](c *ffi.Call) error {
	left := ffi.AttrOf[EigMode](c, "compute_left").wantVectors()
	right := ffi.AttrOf[EigMode](c, "compute_right").wantVectors()
	x := c.Args[0]
	wr, wi := c.Rets[0], c.Rets[1]
	vecL, vecR, info := c.Rets[2], c.Rets[3], c.Rets[4]
	xWork, workL, workR := c.Rets[5], c.Rets[6], c.Rets[7]

	batch, n, err := squareBatch("x", x)
	if err != nil {
		return err
	}
	if err := vectorBatch("eigvals_real", wr, batch, n); err != nil {
		return err
	}
	if err := vectorBatch("eigvals_imag", wi, batch, n); err != nil {
		return err
	}
	if err := scalarBatch("info", info, batch); err != nil {
		return err
	}
	if err := matrixBatch("x_work", xWork, batch, n, n); err != nil {
		return err
	}
	if left {
		if err := matrixBatch("eigvecs_left", vecL, batch, n, n); err != nil {
			return err
		}
		if err := matrixBatch("work_eigvecs_left", workL, batch, n, n); err != nil {
			return err
		}
	}
	if right {
		if err := matrixBatch("eigvecs_right", vecR, batch, n, n); err != nil {
			return err
		}
		if err := matrixBatch("work_eigvecs_right", workR, batch, n, n); err != nil {
			return err
		}
	}

	a := primaryCopy[T](x, xWork)
	wrd := ffi.Data[T](wr)
	wid := ffi.Data[T](wi)
	inf := ffi.Data[int32](info)
	var wl, wrk []T
	var cl, cr []C
	if left {
		wl = ffi.Data[T](workL)
		cl = ffi.Data[C](vecL)
	}
	if right {
		wrk = ffi.Data[T](workR)
		cr = ffi.Data[C](vecR)
	}
	for i := 0; i < batch; i++ {
		ai := a[i*n*n : (i+1)*n*n]
		wri := wrd[i*n : (i+1)*n]
		wii := wid[i*n : (i+1)*n]
		var vl, vr []T
		if left {
			vl = wl[i*n*n : (i+1)*n*n]
		}
		if right {
			vr = wrk[i*n*n : (i+1)*n*n]
		}
		inf[i] = kernel.Geev(left, right, n, ai, n, wri, wii, vl, n, vr, n)
		if inf[i] != 0 {
			continue
		}
		if left {
			unpackEigvecs(n, wii, vl, cl[i*n*n:(i+1)*n*n])
		}
		if right {
			unpackEigvecs(n, wii, vr, cr[i*n*n:(i+1)*n*n])
		}
	}
	return nil
}

// unpackEigvecs expands the packed conjugate-pair eigenvector columns of a
// real eigendecomposition into explicit complex columns: a zero imaginary
// eigenvalue marks a real column; otherwise columns j, j+1 hold the real and
// imaginary parts of a conjugate pair.
func unpackEigvecs[T ffi.Real, C ffi.Complex](n int, wi []T, packed []T, out []C) {
	for j := 0; j < n; j++ {
		if wi[j] == 0 {
			for i := 0; i < n; i++ {
				out[i*n+j] = C(complex(float64(packed[i*n+j]), 0))
			}
			continue
		}
		for i := 0; i < n; i++ {
			re := float64(packed[i*n+j])
			im := float64(packed[i*n+j+1])
			out[i*n+j] = C(complex(re, im))
			out[i*n+j+1] = C(complex(re, -im))
		}
		j++
	}
}

// registerGeevComplex installs the general eigendecomposition for a complex
// element type T: eigenvalues and eigenvectors are in the element type
// itself and the only asymmetry left is the real-typed rwork slot.
func registerGeevComplex[T ffi.Complex, R ffi.Real]() {
	dt := ffi.DTypeOf[T]()
	rt := dt.ToReal()
	ffi.Register(lapackSymbol("geev", dt), ffi.Bind().
		Arg(dt, "x").
		Attr(ffi.Attr[EigMode]("compute_left")).
		Attr(ffi.Attr[EigMode]("compute_right")).
		Ret(dt, "eigvals").
		Ret(dt, "eigvecs_left").
		Ret(dt, "eigvecs_right").
		Ret(ffi.S32, "info").
		Ret(dt, "x_work").
		Ret(rt, "rwork").
		To(geevComplexKernel[T]))
}

func geevComplexKernel[T ffi.Complex](c *ffi.Call) error {
	left := ffi.AttrOf[EigMode](c, "compute_left").wantVectors()
	right := ffi.AttrOf[EigMode](c, "compute_right").wantVectors()
	x := c.Args[0]
	w, vecL, vecR, info := c.Rets[0], c.Rets[1], c.Rets[2], c.Rets[3]
	xWork, rwork := c.Rets[4], c.Rets[5]

	batch, n, err := squareBatch("x", x)
	if err != nil {
		return err
	}
	if err := vectorBatch("eigvals", w, batch, n); err != nil {
		return err
	}
	if err := scalarBatch("info", info, batch); err != nil {
		return err
	}
	if err := matrixBatch("x_work", xWork, batch, n, n); err != nil {
		return err
	}
	if err := workspaceMin("rwork", rwork, GeevRworkSize(n)); err != nil {
		return err
	}
	if left {
		if err := matrixBatch("eigvecs_left", vecL, batch, n, n); err != nil {
			return err
		}
	}
	if right {
		if err := matrixBatch("eigvecs_right", vecR, batch, n, n); err != nil {
			return err
		}
	}

	a := primaryCopy[T](x, xWork)
	wd := ffi.Data[T](w)
	inf := ffi.Data[int32](info)
	var cl, cr []T
	if left {
		cl = ffi.Data[T](vecL)
	}
	if right {
		cr = ffi.Data[T](vecR)
	}
	for i := 0; i < batch; i++ {
		var vl, vr []T
		if left {
			vl = cl[i*n*n : (i+1)*n*n]
		}
		if right {
			vr = cr[i*n*n : (i+1)*n*n]
		}
		inf[i] = kernel.GeevComplex(left, right, n,
			a[i*n*n:(i+1)*n*n], n, wd[i*n:(i+1)*n], vl, n, vr, n)
	}
	return nil
}
