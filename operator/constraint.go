package operator

import "github.com/cpmech/eigensolve/block"

// FixedComponents is a Constraint that zeroes a caller-supplied set of rows
// (degrees of freedom) of Y on every application. It is idempotent by
// construction: re-zeroing an already-zero row is a no-op, satisfying the
// constraint-idempotence property tests exercise.
type FixedComponents struct {
	Rows []int
}

// ZeroFirstComponent returns the constraint used by spec scenario 3:
// zeroing the first row of Y on every application.
func ZeroFirstComponent() *FixedComponents {
	return &FixedComponents{Rows: []int{0}}
}

// Apply implements Constraint.
func (c *FixedComponents) Apply(y *block.Block) {
	p := y.Cols()
	for _, row := range c.Rows {
		for j := 0; j < p; j++ {
			y.Set(row, j, 0)
		}
	}
}
