// Package diag collects the diagnostics produced while analyzing SQL.
//
// A Sink is append-only: diagnostics are recorded in the order they are raised
// and never modified or removed. Callers check HasErrors after a full pass and
// render the report when analysis failed.
package diag

import (
	"fmt"
)

// Severity of a diagnostic. Everything the analyzer reports is an error.
type Severity int

const SeverityError Severity = iota

// Kind is the category of problem a diagnostic describes.
type Kind int

const (
	KindSyntax Kind = iota + 1
	KindType
	KindReference
	KindCardinality
	KindInternal
)

type (
	// Pos is a source position. Line is 1-based, Column is 0-based.
	Pos struct {
		Line   int
		Column int
	}

	// Diagnostic is a single problem found in the input.
	Diagnostic struct {
		Pos      Pos
		Severity Severity
		Kind     Kind
		Message  string
	}
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "Error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

func (k Kind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindType:
		return "type"
	case KindReference:
		return "reference"
	case KindCardinality:
		return "cardinality"
	case KindInternal:
		return "internal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// String renders the diagnostic as a single report line.
func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d:%d %s: %s", d.Pos.Line, d.Pos.Column, d.Severity, d.Message)
}
