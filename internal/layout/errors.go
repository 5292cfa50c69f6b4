package layout

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by precondition errors caused by an unknown node or
// editor ID.
var ErrNotFound = errors.New("not found")

// PreconditionError reports a request the tree cannot honor: an unknown pane,
// an operation aimed at the wrong node kind, or invalid sizes. The state is
// left untouched; the caller may absorb it as a no-op or surface it.
type PreconditionError struct {
	Op     string // operation that rejected the request
	Reason string
	Err    error // optional wrapped cause, e.g. ErrNotFound
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// StructuralError reports a tree that violates its own invariants. It is never
// produced by a valid operation on a valid state; seeing one means corrupted
// input (e.g. a hand-edited layout file) or an internal bug.
type StructuralError struct {
	Invariant string // short name, e.g. "split has fewer than 2 children"
	NodeID    string // offending node, if known
}

func (e *StructuralError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("structural violation: %s", e.Invariant)
	}
	return fmt.Sprintf("structural violation at node %s: %s", e.NodeID, e.Invariant)
}

// IsPrecondition reports whether err is a rejected request rather than a
// corrupted tree.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// precondition builds a PreconditionError for op.
func precondition(op, format string, args ...interface{}) error {
	return &PreconditionError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// notFound builds a PreconditionError wrapping ErrNotFound.
func notFound(op, what, id string) error {
	return &PreconditionError{
		Op:     op,
		Reason: fmt.Sprintf("%s %q not found", what, id),
		Err:    ErrNotFound,
	}
}
