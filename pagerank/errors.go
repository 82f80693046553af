package pagerank

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

var (
	// ErrInvalidDistribution is matched by every *ValidationError.
	ErrInvalidDistribution = xerrors.New("invalid distribution")

	// ErrNotConverged is matched by every *ConvergenceError.
	ErrNotConverged = xerrors.New("power iteration failed to converge")
)

// Names of the distributions checked by the validator.
const (
	VectorPersonalization = "personalization"
	VectorDangling        = "dangling"
	VectorStart           = "start"
)

// ValidationError is returned when a caller-supplied distribution cannot be
// used for the graph being ranked.
type ValidationError struct {
	// Vector is one of the Vector* constants.
	Vector string

	// Missing lists the graph nodes absent from the distribution, in graph
	// order.
	Missing []string

	// Unknown lists the sorted keys of the distribution that are not graph
	// nodes.
	Unknown []string

	// Reason describes a problem with the values themselves, such as a
	// negative weight or a non-positive total.
	Reason string
}

func (e *ValidationError) Error() string {
	var problems []string
	if len(e.Missing) != 0 {
		problems = append(problems, fmt.Sprintf("missing nodes %v", e.Missing))
	}
	if len(e.Unknown) != 0 {
		problems = append(problems, fmt.Sprintf("unknown nodes %v", e.Unknown))
	}
	if e.Reason != "" {
		problems = append(problems, e.Reason)
	}
	return fmt.Sprintf("invalid %s vector: %s", e.Vector, strings.Join(problems, "; "))
}

// Is allows xerrors.Is(err, ErrInvalidDistribution) to match.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidDistribution }

// ConvergenceError is returned when the power iteration does not satisfy the
// convergence test within the configured number of iterations.
type ConvergenceError struct {
	// MaxIter is the iteration bound that was reached.
	MaxIter int

	// Err is the L1 error of the last iteration, or +Inf if no iteration
	// was performed.
	Err float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("pagerank: power iteration failed to converge in %d iterations (last error %g)", e.MaxIter, e.Err)
}

// Is allows xerrors.Is(err, ErrNotConverged) to match.
func (e *ConvergenceError) Is(target error) bool { return target == ErrNotConverged }
