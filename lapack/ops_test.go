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
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/matsen/jax/ffi"
)

func mustLookup(t *testing.T, name string) *ffi.Handler {
	t.Helper()
	h, ok := ffi.Lookup(name)
	require.True(t, ok, "symbol %s", name)
	return h
}

func TestTrsmRecoversSolution(t *testing.T) {
	// A·X = α·B with A upper triangular: invoking the handler on B must
	// return X.
	h := mustLookup(t, "blas_dtrsm_ffi")
	a := []float64{
		2, 1,
		0, 3,
	}
	x := []float64{
		1, -2,
		4, 0.5,
	}
	// B = A·X (α = 1).
	b := []float64{
		2*x[0] + 1*x[2], 2*x[1] + 1*x[3],
		3 * x[2], 3 * x[3],
	}
	call := &ffi.Call{
		Args: []*ffi.Buffer{
			ffi.BufferOf(a, 2, 2),
			ffi.BufferOf(b, 2, 2),
			ffi.BufferOf([]float64{1}),
		},
		Rets: []*ffi.Buffer{ffi.NewBuffer[float64](2, 2)},
		Attrs: ffi.Attrs{
			"side": Left, "uplo": Upper, "trans_x": NoTrans, "diag": NonUnit,
		},
	}
	require.NoError(t, h.Invoke(call))
	got := ffi.Data[float64](call.Rets[0])
	for i := range x {
		require.InDelta(t, x[i], got[i], 1e-12)
	}
}

func TestGetrfSingularPositiveInfo(t *testing.T) {
	h := mustLookup(t, "lapack_dgetrf_ffi")
	call := &ffi.Call{
		Args: []*ffi.Buffer{ffi.BufferOf([]float64{1, 2, 2, 4}, 2, 2)},
		Rets: []*ffi.Buffer{
			ffi.NewBuffer[float64](2, 2),
			ffi.NewBuffer[int32](2),
			ffi.NewBuffer[int32](),
		},
	}
	require.NoError(t, h.Invoke(call))
	require.Equal(t, int32(2), ffi.ScalarOf[int32](call.Rets[2]))
}

func TestGetrfBatched(t *testing.T) {
	// Two stacked matrices: the second is singular, the first is not; each
	// batch element gets its own info value.
	h := mustLookup(t, "lapack_sgetrf_ffi")
	call := &ffi.Call{
		Args: []*ffi.Buffer{ffi.BufferOf([]float32{
			1, 0, 0, 1,
			1, 2, 2, 4,
		}, 2, 2, 2)},
		Rets: []*ffi.Buffer{
			ffi.NewBuffer[float32](2, 2, 2),
			ffi.NewBuffer[int32](2, 2),
			ffi.NewBuffer[int32](2),
		},
	}
	require.NoError(t, h.Invoke(call))
	info := ffi.Data[int32](call.Rets[2])
	require.Equal(t, int32(0), info[0])
	require.Equal(t, int32(2), info[1])
}

func TestPotrfInvalidUpLoWritesNothing(t *testing.T) {
	h := mustLookup(t, "lapack_dpotrf_ffi")
	out := ffi.NewBuffer[float64](2, 2)
	info := ffi.NewBuffer[int32]()
	call := &ffi.Call{
		Args:  []*ffi.Buffer{ffi.BufferOf([]float64{4, 2, 2, 3}, 2, 2)},
		Rets:  []*ffi.Buffer{out, info},
		Attrs: ffi.Attrs{"uplo": UpLo('X')},
	}
	err := h.Invoke(call)
	require.Error(t, err)
	require.ErrorIs(t, err, ffi.ErrAttrValue)
	for _, v := range ffi.Data[float64](out) {
		require.Zero(t, v, "output written despite validation failure")
	}
}

func TestPotrfShapeMismatch(t *testing.T) {
	h := mustLookup(t, "lapack_dpotrf_ffi")
	call := &ffi.Call{
		Args:  []*ffi.Buffer{ffi.BufferOf([]float64{1, 2, 3, 4, 5, 6}, 2, 3)},
		Rets:  []*ffi.Buffer{ffi.NewBuffer[float64](2, 3), ffi.NewBuffer[int32]()},
		Attrs: ffi.Attrs{"uplo": Upper},
	}
	require.ErrorIs(t, h.Invoke(call), ffi.ErrShape)
}

func TestGeqrfShortWorkspace(t *testing.T) {
	h := mustLookup(t, "lapack_zgeqrf_ffi")
	call := &ffi.Call{
		Args: []*ffi.Buffer{ffi.NewBuffer[complex128](3, 2)},
		Rets: []*ffi.Buffer{
			ffi.NewBuffer[complex128](3, 2),
			ffi.NewBuffer[complex128](2),
			ffi.NewBuffer[int32](),
			ffi.NewBuffer[complex128](1), // needs 2
		},
	}
	require.ErrorIs(t, h.Invoke(call), ffi.ErrWorkspace)
}

func TestGeqrfOrgqrRoundTrip(t *testing.T) {
	// Factor, assemble Q through the handlers, check QᵀQ = I.
	geqrf := mustLookup(t, "lapack_dgeqrf_ffi")
	orgqr := mustLookup(t, "lapack_dorgqr_ffi")
	m, n := 3, 2
	a := []float64{
		1, 2,
		0, 1,
		1, 0,
	}
	factored := ffi.NewBuffer[float64](m, n)
	tau := ffi.NewBuffer[float64](n)
	require.NoError(t, geqrf.Invoke(&ffi.Call{
		Args: []*ffi.Buffer{ffi.BufferOf(a, m, n)},
		Rets: []*ffi.Buffer{
			factored, tau, ffi.NewBuffer[int32](), ffi.NewBuffer[float64](n),
		},
	}))
	q := ffi.NewBuffer[float64](m, n)
	require.NoError(t, orgqr.Invoke(&ffi.Call{
		Args: []*ffi.Buffer{factored, tau},
		Rets: []*ffi.Buffer{
			q, ffi.NewBuffer[int32](), ffi.NewBuffer[float64](n),
		},
	}))
	qd := ffi.Data[float64](q)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var dot float64
			for k := 0; k < m; k++ {
				dot += qd[k*n+i] * qd[k*n+j]
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			require.InDelta(t, want, dot, 1e-12, "QᵀQ[%d,%d]", i, j)
		}
	}
}

func TestInPlaceAliasedPrimary(t *testing.T) {
	// Aliasing x and x_out must give the same factorization as separate
	// buffers.
	h := mustLookup(t, "lapack_dgetrf_ffi")
	data := []float64{4, 3, 6, 3}
	shared := ffi.BufferOf(data, 2, 2)
	call := &ffi.Call{
		Args: []*ffi.Buffer{shared},
		Rets: []*ffi.Buffer{
			ffi.BufferOf(data, 2, 2), // same storage
			ffi.NewBuffer[int32](2),
			ffi.NewBuffer[int32](),
		},
	}
	require.NoError(t, h.Invoke(call))

	separate := &ffi.Call{
		Args: []*ffi.Buffer{ffi.BufferOf([]float64{4, 3, 6, 3}, 2, 2)},
		Rets: []*ffi.Buffer{
			ffi.NewBuffer[float64](2, 2),
			ffi.NewBuffer[int32](2),
			ffi.NewBuffer[int32](),
		},
	}
	require.NoError(t, h.Invoke(separate))
	want := ffi.Data[float64](separate.Rets[0])
	for i := range want {
		require.Equal(t, want[i], data[i])
	}
}

func TestGeesSortUnsupported(t *testing.T) {
	h := mustLookup(t, "lapack_dgees_ffi")
	call := &ffi.Call{
		Args: []*ffi.Buffer{ffi.BufferOf([]float64{1, 2, 3, 4}, 2, 2)},
		Rets: []*ffi.Buffer{
			ffi.NewBuffer[float64](2, 2),
			ffi.NewBuffer[float64](2),
			ffi.NewBuffer[float64](2),
			ffi.NewBuffer[float64](2, 2),
			ffi.NewBuffer[int32](),
			ffi.NewBuffer[int32](),
		},
		Attrs: ffi.Attrs{"mode": SchurVectors, "sort": SortSelected},
	}
	require.NoError(t, h.Invoke(call))
	require.Equal(t, int32(-2), ffi.ScalarOf[int32](call.Rets[5]))
	require.Equal(t, int32(0), ffi.ScalarOf[int32](call.Rets[4]))
}

func TestConcurrentInvocations(t *testing.T) {
	// Handlers keep no per-call state: concurrent calls on disjoint
	// buffers must match the sequential result.
	h := mustLookup(t, "lapack_dpotrf_ffi")
	src := []float64{
		25, 15, -5,
		15, 18, 0,
		-5, 0, 11,
	}
	newCall := func() *ffi.Call {
		in := make([]float64, len(src))
		copy(in, src)
		return &ffi.Call{
			Args:  []*ffi.Buffer{ffi.BufferOf(in, 3, 3)},
			Rets:  []*ffi.Buffer{ffi.NewBuffer[float64](3, 3), ffi.NewBuffer[int32]()},
			Attrs: ffi.Attrs{"uplo": Lower},
		}
	}
	reference := newCall()
	require.NoError(t, h.Invoke(reference))
	want := ffi.Data[float64](reference.Rets[0])

	const workers = 16
	calls := make([]*ffi.Call, workers)
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		c := newCall()
		calls[i] = c
		g.Go(func() error {
			return h.Invoke(c)
		})
	}
	require.NoError(t, g.Wait())
	for i, c := range calls {
		require.Zero(t, ffi.ScalarOf[int32](c.Rets[1]), "worker %d info", i)
		got := ffi.Data[float64](c.Rets[0])
		for j := range want {
			if math.Abs(got[j]-want[j]) > 0 {
				t.Fatalf("worker %d result differs at %d: %g vs %g", i, j, got[j], want[j])
			}
		}
	}
}

func TestAttrEnumValidation(t *testing.T) {
	tests := []struct {
		name string
		v    ffi.AttrValue
		ok   bool
	}{
		{"side left", Left, true},
		{"side bad", Side('Q'), false},
		{"uplo lower", Lower, true},
		{"uplo bad", UpLo(0), false},
		{"trans conj", ConjTrans, true},
		{"trans bad", Trans('X'), false},
		{"diag unit", Unit, true},
		{"svd all", SVDAll, true},
		{"svd bad", SVDJob('V'), false},
		{"eig vectors", EigVectors, true},
		{"schur sort bad", SchurSort('A'), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.v.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ffi.ErrAttrValue)
			}
		})
	}
}

func TestWorkspaceSizes(t *testing.T) {
	require.Equal(t, 4, GeqrfWorkspaceSize(5, 4))
	require.Equal(t, 1, GeqrfWorkspaceSize(3, 0))
	lwork, liwork := SyevdWorkspaceSizes(4)
	require.Equal(t, 1+6*4+2*16, lwork)
	require.Equal(t, 3+5*4, liwork)
	require.Less(t, GesddWorkspaceSize(ffi.C128, 4, 3, SVDNone),
		GesddWorkspaceSize(ffi.C128, 4, 3, SVDAll))
	require.Equal(t, 8*3, GesddIworkSize(4, 3))
}

func TestGesddComplexHandler(t *testing.T) {
	// End-to-end through the registered complex binding, which carries the
	// extra rwork slot between info and iwork.
	h := mustLookup(t, "lapack_zgesdd_ffi")
	a := []complex128{
		1 + 1i, 2,
		-1i, 3,
	}
	call := &ffi.Call{
		Args: []*ffi.Buffer{ffi.BufferOf(a, 2, 2)},
		Rets: []*ffi.Buffer{
			ffi.NewBuffer[complex128](2, 2),
			ffi.NewBuffer[float64](2),
			ffi.NewBuffer[complex128](2, 2),
			ffi.NewBuffer[complex128](2, 2),
			ffi.NewBuffer[int32](),
			ffi.NewBuffer[float64](GesddRworkSize(2, 2, SVDAll)),
			ffi.NewBuffer[int32](GesddIworkSize(2, 2)),
			ffi.NewBuffer[complex128](GesddWorkspaceSize(ffi.C128, 2, 2, SVDAll)),
		},
		Attrs: ffi.Attrs{"mode": SVDAll},
	}
	require.NoError(t, h.Invoke(call))
	require.Equal(t, int32(0), ffi.ScalarOf[int32](call.Rets[4]))

	s := ffi.Data[float64](call.Rets[1])
	require.GreaterOrEqual(t, s[0], s[1])
	require.GreaterOrEqual(t, s[1], 0.0)
	u := ffi.Data[complex128](call.Rets[2])
	vt := ffi.Data[complex128](call.Rets[3])
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			var recon complex128
			for k := 0; k < 2; k++ {
				recon += u[i*2+k] * complex(s[k], 0) * vt[k*2+j]
			}
			require.InDelta(t, 0, cmplx.Abs(recon-a[i*2+j]), 1e-12,
				"U·diag(s)·Vᴴ at (%d,%d)", i, j)
		}
	}
}

func TestTrsmAlphaShapeError(t *testing.T) {
	h := mustLookup(t, "blas_dtrsm_ffi")
	out := ffi.NewBuffer[float64](2, 2)
	call := &ffi.Call{
		Args: []*ffi.Buffer{
			ffi.BufferOf([]float64{1, 0, 0, 1}, 2, 2),
			ffi.BufferOf([]float64{1, 2, 3, 4}, 2, 2),
			ffi.BufferOf([]float64{1, 1}, 2),
		},
		Rets: []*ffi.Buffer{out},
		Attrs: ffi.Attrs{
			"side": Left, "uplo": Upper, "trans_x": NoTrans, "diag": NonUnit,
		},
	}
	require.ErrorIs(t, h.Invoke(call), ffi.ErrShape)
	for _, v := range ffi.Data[float64](out) {
		require.Zero(t, v)
	}
}

func TestGeevRealConjugatePair(t *testing.T) {
	// The rotation generator has eigenvalues ±i; the packed pair columns
	// the routine produces internally must come out as explicit complex
	// conjugate eigenvector columns with A·v = λ·v.
	h := mustLookup(t, "lapack_dgeev_ffi")
	a := []float64{
		0, -1,
		1, 0,
	}
	call := &ffi.Call{
		Args: []*ffi.Buffer{ffi.BufferOf(a, 2, 2)},
		Rets: []*ffi.Buffer{
			ffi.NewBuffer[float64](2),
			ffi.NewBuffer[float64](2),
			ffi.NewBuffer[complex128](2, 2),
			ffi.NewBuffer[complex128](2, 2),
			ffi.NewBuffer[int32](),
			ffi.NewBuffer[float64](2, 2),
			ffi.NewBuffer[float64](2, 2),
			ffi.NewBuffer[float64](2, 2),
		},
		Attrs: ffi.Attrs{"compute_left": EigVectors, "compute_right": EigVectors},
	}
	require.NoError(t, h.Invoke(call))
	require.Equal(t, int32(0), ffi.ScalarOf[int32](call.Rets[4]))

	wr := ffi.Data[float64](call.Rets[0])
	wi := ffi.Data[float64](call.Rets[1])
	vr := ffi.Data[complex128](call.Rets[3])
	for j := 0; j < 2; j++ {
		require.InDelta(t, 0, wr[j], 1e-12)
		lambda := complex(wr[j], wi[j])
		for i := 0; i < 2; i++ {
			var av complex128
			for k := 0; k < 2; k++ {
				av += complex(a[i*2+k], 0) * vr[k*2+j]
			}
			require.InDelta(t, 0, cmplx.Abs(av-lambda*vr[i*2+j]), 1e-12,
				"A·v = λ·v at column %d row %d", j, i)
		}
	}
	require.InDelta(t, 1, math.Abs(wi[0]), 1e-12)
	require.InDelta(t, 0, math.Abs(wi[0]+wi[1]), 1e-12)
	// The pair columns are exact conjugates of one another.
	for i := 0; i < 2; i++ {
		require.Equal(t, cmplx.Conj(vr[i*2]), vr[i*2+1])
	}
}
