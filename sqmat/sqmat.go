// Package sqmat implements the small, fully-replicated p-by-p Hermitian
// matrix primitives consumed by package eigs: Y'Y, U=(Y'Y)^-1, Y'AY, and the
// scratch matrices used while minimizing the trace functional along a search
// direction. p is always small (problems of interest have p in the 1..100
// range), so these are plain dense Go slices, not a sparse or distributed
// representation.
package sqmat

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Matrix is a dense, row-major p-by-p matrix of complex128.
type Matrix struct {
	p    int
	data []complex128
}

// New allocates a zeroed matrix of order p.
func New(p int) *Matrix {
	if p < 1 {
		chk.Panic("sqmat: order must be positive, got %d", p)
	}
	return &Matrix{p: p, data: make([]complex128, p*p)}
}

// Order returns p.
func (m *Matrix) Order() int { return m.p }

// Data returns the backing row-major slice; callers must not retain it past
// the next mutation of m.
func (m *Matrix) Data() []complex128 { return m.data }

// SetData overwrites m's backing data; len(d) must equal p*p.
func (m *Matrix) SetData(d []complex128) {
	if len(d) != m.p*m.p {
		chk.Panic("sqmat: data length %d does not match order %d", len(d), m.p)
	}
	copy(m.data, d)
}

// At returns element (i,j).
func (m *Matrix) At(i, j int) complex128 { return m.data[i*m.p+j] }

// Set assigns element (i,j).
func (m *Matrix) Set(i, j int, v complex128) { m.data[i*m.p+j] = v }

// Identity sets m to the identity matrix.
func (m *Matrix) Identity() {
	for i := range m.data {
		m.data[i] = 0
	}
	for i := 0; i < m.p; i++ {
		m.data[i*m.p+i] = 1
	}
}

// Copy sets m = src. Orders must match.
func (m *Matrix) Copy(src *Matrix) {
	m.checkSameOrder(src)
	copy(m.data, src.data)
}

// AaXpbY sets m = a*X + b*Y (a, b real scalars).
func (m *Matrix) AaXpbY(a float64, x *Matrix, b float64, y *Matrix) {
	m.checkSameOrder(x)
	m.checkSameOrder(y)
	ca, cb := complex(a, 0), complex(b, 0)
	for i := range m.data {
		m.data[i] = ca*x.data[i] + cb*y.data[i]
	}
}

// ApaB adds a*Y to m in place (m += a*Y).
func (m *Matrix) ApaB(a float64, y *Matrix) {
	m.checkSameOrder(y)
	ca := complex(a, 0)
	for i := range m.data {
		m.data[i] += ca * y.data[i]
	}
}

// ApaBC adds a*(B*C) to m in place (m += a*B*C).
func (m *Matrix) ApaBC(a float64, b, c *Matrix) {
	m.checkSameOrder(b)
	m.checkSameOrder(c)
	ca := complex(a, 0)
	p := m.p
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			var sum complex128
			for k := 0; k < p; k++ {
				sum += b.data[i*p+k] * c.data[k*p+j]
			}
			m.data[i*p+j] += ca * sum
		}
	}
}

// AeBC sets m = B*C, optionally treating B as Hermitian-conjugated first
// (bHerm) before multiplying, i.e. m = B'*C when bHerm is true.
func (m *Matrix) AeBC(b *Matrix, bHerm bool, c *Matrix) {
	m.checkSameOrder(b)
	m.checkSameOrder(c)
	p := m.p
	out := make([]complex128, p*p)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			var sum complex128
			for k := 0; k < p; k++ {
				bv := b.data[i*p+k]
				if bHerm {
					bv = cmplxConj(b.data[k*p+i])
				}
				sum += bv * c.data[k*p+j]
			}
			out[i*p+j] = sum
		}
	}
	copy(m.data, out)
}

// Symmetrize sets m = (src + src')/2.
func (m *Matrix) Symmetrize(src *Matrix) {
	m.checkSameOrder(src)
	p := m.p
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			m.data[i*p+j] = (src.data[i*p+j] + cmplxConj(src.data[j*p+i])) / 2
		}
	}
}

// Trace returns tr(m).
func (m *Matrix) Trace() complex128 {
	var sum complex128
	for i := 0; i < m.p; i++ {
		sum += m.data[i*m.p+i]
	}
	return sum
}

// TraceAtB returns tr(A'*B) for two same-order matrices.
func TraceAtB(a, b *Matrix) complex128 {
	a.checkSameOrder(b)
	p := a.p
	var sum complex128
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			sum += cmplxConj(a.data[i*p+j]) * b.data[i*p+j]
		}
	}
	return sum
}

// Invert sets m to the inverse of a Hermitian positive-definite matrix src,
// using Cholesky decomposition (src = L L'), per the spec's explicit
// allowance for Cholesky-based inversion of Y'Y.
func (m *Matrix) Invert(src *Matrix) {
	m.checkSameOrder(src)
	p := m.p
	l := cholesky(src.data, p)
	// Invert L (lower-triangular) by forward substitution, then form
	// inv(src) = inv(L)' * inv(L).
	linv := invertLowerTriangular(l, p)
	out := make([]complex128, p*p)
	for i := 0; i < p; i++ {
		for j := 0; j < p; j++ {
			var sum complex128
			for k := 0; k < p; k++ {
				sum += cmplxConj(linv[k*p+i]) * linv[k*p+j]
			}
			out[i*p+j] = sum
		}
	}
	copy(m.data, out)
}

// cholesky returns the lower-triangular factor L such that a = L L', for a
// Hermitian positive-definite dense matrix a of order p.
func cholesky(a []complex128, p int) []complex128 {
	l := make([]complex128, p*p)
	for i := 0; i < p; i++ {
		for j := 0; j <= i; j++ {
			var sum complex128
			for k := 0; k < j; k++ {
				sum += l[i*p+k] * cmplxConj(l[j*p+k])
			}
			if i == j {
				d := real(a[i*p+i]) - real(sum)
				if d <= 0 {
					chk.Panic("sqmat: matrix is not positive-definite (diagonal %g at pivot %d)", d, i)
				}
				l[i*p+j] = complex(math.Sqrt(d), 0)
			} else {
				l[i*p+j] = (a[i*p+j] - sum) / l[j*p+j]
			}
		}
	}
	return l
}

// invertLowerTriangular inverts a lower-triangular matrix l (order p) by
// forward substitution.
func invertLowerTriangular(l []complex128, p int) []complex128 {
	inv := make([]complex128, p*p)
	for col := 0; col < p; col++ {
		// solve l * x = e_col
		x := make([]complex128, p)
		for i := 0; i < p; i++ {
			var rhs complex128
			if i == col {
				rhs = 1
			}
			var sum complex128
			for k := 0; k < i; k++ {
				sum += l[i*p+k] * x[k]
			}
			x[i] = (rhs - sum) / l[i*p+i]
		}
		for i := 0; i < p; i++ {
			inv[i*p+col] = x[i]
		}
	}
	return inv
}

func (m *Matrix) checkSameOrder(o *Matrix) {
	if m.p != o.p {
		chk.Panic("sqmat: order mismatch %d vs %d", m.p, o.p)
	}
}

func cmplxConj(v complex128) complex128 {
	return complex(real(v), -imag(v))
}
