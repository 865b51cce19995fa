package ufl

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrEmpty              = errors.New("empty store or facility set")
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrInvalidDemand      = errors.New("invalid demand")
	ErrInvalidCost        = errors.New("invalid cost")
	ErrDimensionMismatch  = errors.New("dimension mismatch")
	ErrDuplicateEntry     = errors.New("duplicate matrix entry")
	ErrInconsistentResult = errors.New("inconsistent solution vector")
)

// Status is the solver's own termination status, passed through untouched.
type Status struct {
	Backend string `json:"backend"`
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Optimal bool   `json:"optimal"`
}

func (s Status) String() string {
	return fmt.Sprintf("%s status %d (%s)", s.Backend, s.Code, s.Name)
}

// StatusError reports a solve that ended without any usable solution
// (infeasible, unbounded, limit hit before the first incumbent).
type StatusError struct {
	Status Status
}

func (e *StatusError) Error() string {
	return "no solution: " + e.Status.String()
}

// IsStatusError reports whether err carries a solver status and returns it.
func IsStatusError(err error) (Status, bool) {
	if se, ok := errors.Cause(err).(*StatusError); ok {
		return se.Status, true
	}
	return Status{}, false
}
