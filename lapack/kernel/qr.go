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

package kernel

import "math"

// Geqrf computes the QR factorization of an m×n matrix by Householder
// reflections. On return the upper triangle of a holds R and the elements
// below the diagonal hold the reflector vectors; tau, of length min(m, n),
// holds the reflector scalars. work needs at least n elements.
//
// The reflector construction follows the classical larfg recipe and is
// valid for real and complex element types alike: beta is always real and
// carries the opposite sign of the real part of the leading element.
func Geqrf[T Element](m, n int, a []T, lda int, tau []T, work []T) {
	var zero T
	mn := min(m, n)
	for j := 0; j < mn; j++ {
		alpha := a[j*lda+j]
		var xnormSq float64
		for i := j + 1; i < m; i++ {
			v := a[i*lda+j]
			xnormSq += realOf(v)*realOf(v) + imagOf(v)*imagOf(v)
		}
		ar, ai := realOf(alpha), imagOf(alpha)
		if xnormSq == 0 && ai == 0 {
			tau[j] = zero
			continue
		}
		beta := -math.Copysign(math.Sqrt(ar*ar+ai*ai+xnormSq), ar)
		tau[j] = fromParts[T]((beta-ar)/beta, -ai/beta)
		scale := fromReal[T](1) / (alpha - fromReal[T](beta))
		for i := j + 1; i < m; i++ {
			a[i*lda+j] *= scale
		}
		a[j*lda+j] = fromReal[T](beta)
		if j+1 < n {
			// The trailing matrix takes Hᴴ, not H: with the larfg
			// tau, only Hᴴ maps the pivot column onto beta·e1.
			applyReflectorLeft(m, n, a, lda, j, j+1, conjOf(tau[j]), work)
		}
	}
}

// Ungqr overwrites the m×n matrix a, holding the reflectors and scalars
// produced by Geqrf (k of them), with the first n columns of the
// orthogonal/unitary factor Q. It requires m >= n >= k and at least n
// elements of work. The same routine serves the orgqr (real) and ungqr
// (complex) entry points.
func Ungqr[T Element](m, n, k int, a []T, lda int, tau []T, work []T) {
	var zero T
	one := fromReal[T](1)
	for j := k; j < n; j++ {
		for i := 0; i < m; i++ {
			a[i*lda+j] = zero
		}
		a[j*lda+j] = one
	}
	for i := k - 1; i >= 0; i-- {
		if i+1 < n {
			applyReflectorLeft(m, n, a, lda, i, i+1, tau[i], work)
		}
		for r := i + 1; r < m; r++ {
			a[r*lda+i] *= -tau[i]
		}
		a[i*lda+i] = one - tau[i]
		for r := 0; r < i; r++ {
			a[r*lda+i] = zero
		}
	}
}

// applyReflectorLeft applies H = I - tau·v·vᴴ from the left to the columns
// [c0, n) of the rows [jv, m) of a. The reflector vector v has an implicit
// unit at row jv and its tail stored in column jv below the diagonal.
// work[c0:n] is used as scratch for w = vᴴ·A.
func applyReflectorLeft[T Element](m, n int, a []T, lda int, jv, c0 int, tau T, work []T) {
	var zero T
	if tau == zero {
		return
	}
	for k := c0; k < n; k++ {
		work[k] = a[jv*lda+k]
	}
	for i := jv + 1; i < m; i++ {
		cv := conjOf(a[i*lda+jv])
		if cv == zero {
			continue
		}
		row := a[i*lda:]
		for k := c0; k < n; k++ {
			work[k] += cv * row[k]
		}
	}
	for k := c0; k < n; k++ {
		a[jv*lda+k] -= tau * work[k]
	}
	for i := jv + 1; i < m; i++ {
		vi := a[i*lda+jv]
		if vi == zero {
			continue
		}
		tv := tau * vi
		row := a[i*lda:]
		for k := c0; k < n; k++ {
			row[k] -= tv * work[k]
		}
	}
}
