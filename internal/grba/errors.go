package grba

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain marks an argument outside the region where the model is defined.
	ErrDomain = errors.New("domain violation")
	// ErrNoConverge marks a root search that ran out of iterations.
	ErrNoConverge = errors.New("no convergence")
)

// DomainError reports which parameter was out of range.
type DomainError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s=%g %s", ErrDomain, e.Param, e.Value, e.Reason)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

func domainErr(param string, value float64, reason string) error {
	return &DomainError{Param: param, Value: value, Reason: reason}
}

// NoConvergeError carries the last iterate for diagnostics only; it is never a result.
type NoConvergeError struct {
	Op         string
	Iterations int
	Last       float64
}

func (e *NoConvergeError) Error() string {
	return fmt.Sprintf("%s: %s after %d iterations (last=%g)", ErrNoConverge, e.Op, e.Iterations, e.Last)
}

func (e *NoConvergeError) Unwrap() error { return ErrNoConverge }
