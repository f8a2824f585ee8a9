package sqmat

import "math"

// Diagonalize computes the eigenvalues (ascending) and eigenvectors of a
// Hermitian matrix src of order p.
//
// gonum.org/v1/gonum/mat ships mat.EigenSym for real symmetric matrices and
// mat.Eigen for the general (non-Hermitian) case, but no complex-Hermitian
// decomposition, so it cannot be used directly on a complex128 sqmat.Matrix
// (see DESIGN.md). Rather than hand-derive complex Jacobi rotations (whose
// phase bookkeeping is easy to get subtly wrong), this realifies the
// Hermitian problem into the classic real symmetric eigenproblem: for
// H = X + iY (X = Re(H) symmetric, Y = Im(H) skew-symmetric), the real
// symmetric 2p-by-2p matrix
//
//	M = [ X  -Y ]
//	    [ Y   X ]
//
// has every eigenvalue of H doubled, and if H w = lambda*w for w = u + i*v,
// then M [u;v] = lambda*[u;v]. A standard cyclic Jacobi sweep (Numerical
// Recipes-style) diagonalizes M; taking every other eigenvalue/eigenvector
// of the resulting (sorted) pairs recovers the p eigenpairs of H. This is
// the same family of method the teacher's numeric stack favours for small
// dense work, applied through a reduction that only needs a real symmetric
// Jacobi routine to be correct.
//
// vecs is returned as a p-by-p matrix whose j-th column is the eigenvector
// for eigenvals[j].
func Diagonalize(src *Matrix) (eigenvals []float64, vecs *Matrix) {
	p := src.p
	n := 2 * p
	m := make([]float64, n*n)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			x := real(src.data[i*p+j])
			y := imag(src.data[i*p+j])
			m[i*n+j] = x
			m[i*n+(p+j)] = -y
			m[(p+i)*n+j] = y
			m[(p+i)*n+(p+j)] = x
		}
	}

	vals, vecsReal := jacobiEigenSymmetric(m, n)

	type pair struct {
		val float64
		idx int
	}
	order := make([]pair, n)
	for i := range order {
		order[i] = pair{vals[i], i}
	}
	for i := 1; i < n; i++ {
		key := order[i]
		j := i - 1
		for j >= 0 && order[j].val > key.val {
			order[j+1] = order[j]
			j--
		}
		order[j+1] = key
	}

	eigenvals = make([]float64, p)
	vecs = New(p)
	for k := 0; k < p; k++ {
		col := order[2*k].idx
		eigenvals[k] = order[2*k].val
		for row := 0; row < p; row++ {
			u := vecsReal[row*n+col]
			v := vecsReal[(p+row)*n+col]
			vecs.data[row*p+k] = complex(u, v)
		}
	}
	return eigenvals, vecs
}

// jacobiEigenSymmetric diagonalizes a real symmetric dense n-by-n matrix a
// (row-major) by the classic cyclic Jacobi rotation sweep, returning the
// (unsorted) eigenvalues and the matching eigenvector matrix (columns).
func jacobiEigenSymmetric(a []float64, n int) (vals []float64, vecs []float64) {
	v := make([]float64, n*n)
	for i := 0; i < n; i++ {
		v[i*n+i] = 1
	}

	const maxSweeps = 100
	const tol = 1e-13
	for sweep := 0; sweep < maxSweeps; sweep++ {
		off := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				off += a[i*n+j] * a[i*n+j]
			}
		}
		if math.Sqrt(2*off) < tol {
			break
		}
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				apq := a[p*n+q]
				if apq == 0 {
					continue
				}
				app, aqq := a[p*n+p], a[q*n+q]
				theta := 0.5 * math.Atan2(2*apq, app-aqq)
				c, s := math.Cos(theta), math.Sin(theta)

				// Apply rotation R (identity except the p,q 2x2 block:
				// R_pp=c, R_pq=-s, R_qp=s, R_qq=c) as A <- R'*A*R.
				for k := 0; k < n; k++ {
					if k == p || k == q {
						continue
					}
					akp, akq := a[k*n+p], a[k*n+q]
					a[k*n+p] = c*akp + s*akq
					a[k*n+q] = -s*akp + c*akq
					a[p*n+k] = a[k*n+p]
					a[q*n+k] = a[k*n+q]
				}
				newApp := c*c*app + 2*s*c*apq + s*s*aqq
				newAqq := s*s*app - 2*s*c*apq + c*c*aqq
				a[p*n+p] = newApp
				a[q*n+q] = newAqq
				a[p*n+q] = 0
				a[q*n+p] = 0

				for k := 0; k < n; k++ {
					vkp, vkq := v[k*n+p], v[k*n+q]
					v[k*n+p] = c*vkp + s*vkq
					v[k*n+q] = -s*vkp + c*vkq
				}
			}
		}
	}

	vals = make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = a[i*n+i]
	}
	return vals, v
}
