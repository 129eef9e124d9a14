// Package errs defines the tagged error taxonomy the core exposes to
// callers (spec §7). Every kind except MappingMiss is surfaced to the
// caller immediately and aborts the current operation; MappingMiss is not
// an error at all (it contributes nothing to a mapping path) and is kept
// here only so callers that want to log a miss have a sentinel to compare
// against with errors.Is.
package errs

import (
	"errors"
	"fmt"
)

// Kind tags the taxonomy item a Error belongs to.
type Kind int

const (
	// InvalidNucleotide: non-ACGT input to the codec or the Kmer/Sequence
	// constructors.
	InvalidNucleotide Kind = iota
	// GraphInvariantViolation: a graph mutation precondition was broken
	// (deleting a vertex that still has edges, adding an edge between
	// unknown vertices, splitting with edges that don't touch the
	// vertex being split).
	GraphInvariantViolation
	// InconsistentPairedInfo: the paired-info index supplied observations
	// that violate the insert-size/read-length bounds configured on the
	// pair-aware edge remover.
	InconsistentPairedInfo
	// MappingMiss: a k-mer did not occur in the index. Not an error;
	// never aborts an operation.
	MappingMiss
	// ConfigOutOfRange: a policy was constructed with parameters that
	// violate its own documented ordering constraint.
	ConfigOutOfRange
)

func (k Kind) String() string {
	switch k {
	case InvalidNucleotide:
		return "InvalidNucleotide"
	case GraphInvariantViolation:
		return "GraphInvariantViolation"
	case InconsistentPairedInfo:
		return "InconsistentPairedInfo"
	case MappingMiss:
		return "MappingMiss"
	case ConfigOutOfRange:
		return "ConfigOutOfRange"
	}
	return "Unknown"
}

// Error is the concrete type every taxonomy item is reported as.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Kind.String() + ": " + e.Msg }

// New builds a *Error of the given kind with a formatted message.
func New(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an *Error of kind k, so callers can write
// errors.Is(err, errs.InvalidNucleotide) style checks via IsKind instead
// (errors.Is needs a target error value, which Kind alone isn't — IsKind
// is the idiomatic helper for that here).
func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
