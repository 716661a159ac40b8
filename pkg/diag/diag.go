// Package diag defines the structured diagnostic surface shared by the
// lexer, parser, and code generator.
package diag

import "fmt"

// Location names a single point in a source file.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Diagnostic is one reported problem, tied to the location that caused it.
type Diagnostic struct {
	Message  string
	Location Location
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Location, d.Message)
}

// Diagnostics is an ordered, append-only list of diagnostics produced by a
// single compilation stage.
type Diagnostics []Diagnostic

// Add appends a new diagnostic at loc with a printf-style message.
func (ds *Diagnostics) Add(loc Location, format string, args ...any) {
	*ds = append(*ds, Diagnostic{Message: fmt.Sprintf(format, args...), Location: loc})
}

// HasErrors reports whether any diagnostic has been recorded.
func (ds Diagnostics) HasErrors() bool {
	return len(ds) > 0
}
