// Package operator provides reference implementations of the three
// collaborators the eigensolver driver (package eigs) treats as external:
// the linear operator A, the preconditioner K, and the constraint
// projector. Each type here satisfies the corresponding interface declared
// in package eigs (eigs.Operator, eigs.Preconditioner, eigs.Constraint)
// structurally; this package does not redeclare those interfaces, following
// gofem's own pluggable-model convention (one interface owned by the
// consumer, many concrete implementations selected by the caller).
package operator
