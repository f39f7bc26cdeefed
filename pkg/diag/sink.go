package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type (
	// Sink is an ordered, append-only collection of diagnostics. It is owned by a
	// single analysis session and is not safe for concurrent use.
	Sink struct {
		diagnostics []Diagnostic
	}

	// ReportOptions controls how WriteReport renders the report.
	ReportOptions struct {
		// Color highlights severities and positions with ANSI escapes.
		Color bool
	}
)

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Add records d.
func (s *Sink) Add(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
}

// Errorf records an error of the given kind at pos.
func (s *Sink) Errorf(kind Kind, pos Pos, format string, args ...any) {
	s.Add(Diagnostic{
		Pos:      pos,
		Severity: SeverityError,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Len returns the number of recorded diagnostics.
func (s *Sink) Len() int {
	return len(s.diagnostics)
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Diagnostics returns a copy of the recorded diagnostics in the order they were added.
func (s *Sink) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.diagnostics))
	copy(out, s.diagnostics)
	return out
}

// Report renders the plain-text report.
func (s *Sink) Report() string {
	var sb strings.Builder
	_ = s.WriteReport(&sb, ReportOptions{})
	return sb.String()
}

// WriteReport writes a header followed by one line per diagnostic.
//
// The header reads "1 error seems to have occurred:" for a single diagnostic
// and uses the plural form for every other count, zero included.
func (s *Sink) WriteReport(w io.Writer, opts ReportOptions) error {
	if _, err := fmt.Fprintln(w, header(len(s.diagnostics))); err != nil {
		return err
	}

	severity := color.New(color.FgRed, color.Bold)
	position := color.New(color.FgCyan)
	if opts.Color {
		severity.EnableColor()
		position.EnableColor()
	} else {
		severity.DisableColor()
		position.DisableColor()
	}

	for _, d := range s.diagnostics {
		_, err := fmt.Fprintf(w, "%s %s: %s\n",
			position.Sprintf("line %d:%d", d.Pos.Line, d.Pos.Column),
			severity.Sprint(d.Severity),
			d.Message,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func header(n int) string {
	if n == 1 {
		return "1 error seems to have occurred:"
	}
	return fmt.Sprintf("%d errors seem to have occurred:", n)
}
