package engine

import "github.com/pkg/errors"

// ErrMalformedInput is returned when an axiom or goal fails the
// structural preconditions internal/cnf.Validate checks — free
// variables at top level, or a relation nested under a functor's
// arguments.
var ErrMalformedInput = errors.New("malformed input")

// ErrInternalInvariant is returned when Derive's variable-overlap panic
// (infer.ErrVariableOverlap) was recovered at the top of Prove. Prove
// still fails fast (it aborts the run rather than attempting recovery)
// but reports the failure as a normal error instead of letting the
// panic unwind into the caller, since Prove is a library entry point
// that may be called repeatedly by a long-lived host.
var ErrInternalInvariant = errors.New("internal invariant violation")
