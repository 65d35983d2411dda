package banana

import "fmt"

// PreconditionError reports that a caller passed an interval/item
// combination that breaks one of this package's invariants: cutting to
// the right of the right endpoint, gluing an interval to itself or to
// one that does not lie to its right, deleting an endpoint through the
// interior-item path, and similar misuse. The
// engine has no recovery path for these; callers are expected to check
// before calling, or recover the panic in test code.
type PreconditionError struct {
	Op  string
	Msg string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("banana: %s: %s", e.Op, e.Msg)
}

// CorruptionError reports that an internal consistency check fired.
// Context.InsertItem raises it when no sample lies left of a position
// inside the interval's bounds. This only happens if the package's own
// invariants have been violated, which indicates a bug in this package rather than
// caller misuse.
type CorruptionError struct {
	Op  string
	Msg string
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("banana: internal consistency check failed in %s: %s", e.Op, e.Msg)
}

func failPrecondition(op, msg string) {
	panic(&PreconditionError{Op: op, Msg: msg})
}

func failCorruption(op, msg string) {
	panic(&CorruptionError{Op: op, Msg: msg})
}
