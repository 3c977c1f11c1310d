package graph

import "errors"

// ErrInvalidArgument is wrapped by errors that stem from a caller passing an
// unknown vertex id, an arc with an unknown endpoint, or a new vertex whose
// id is not the next dense id (a duplicate id included).
var ErrInvalidArgument = errors.New("graph: invalid argument")

// ErrInvariantViolation is wrapped by errors that indicate the graph's rank
// invariants have been broken by the caller — a rank already held by another
// vertex, or a vertex still without a rank when preprocessing runs. These are
// always programming errors and halt the operation in progress.
var ErrInvariantViolation = errors.New("graph: invariant violation")
