package sheetplug

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound indicates the input path does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a supported format.
var ErrInvalidFormat = errors.New("unsupported input format")

// ErrDuplicateTable indicates two sources define a table with the same name.
var ErrDuplicateTable = errors.New("duplicate table name")

// LoadError represents an error while loading a source into a dataset.
type LoadError struct {
	Source string
	Sheet  string // empty when the error is not specific to a sheet
	Err    error
}

func (e *LoadError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("load %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("load %s (sheet %q): %v", e.Source, e.Sheet, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// MissingTableError indicates that none of the accepted table names exist.
type MissingTableError struct {
	Kind       string // what the table holds, e.g. "branches"
	Candidates []string
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("could not find a %s table, tried %s", e.Kind, quoteAll(e.Candidates))
}

// MissingColumnError indicates that a required column could not be resolved
// under any of its aliases.
type MissingColumnError struct {
	Table   string
	Aliases []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("table %q is missing required column %s", e.Table, quoteAll(e.Aliases))
}

// Issue is a single structural problem found in a table.
type Issue struct {
	Table   string
	Message string
}

func (i Issue) String() string {
	return i.Table + ": " + i.Message
}

// VerificationError aggregates every issue found by the verifier.
type VerificationError struct {
	Issues []Issue
}

func (e *VerificationError) Error() string {
	return FormatIssues(e.Issues)
}

// FormatIssues renders issues one per line under a common heading.
func FormatIssues(issues []Issue) string {
	var b strings.Builder
	b.WriteString("Verification issues:")
	for _, i := range issues {
		b.WriteString("\n- ")
		b.WriteString(i.String())
	}
	return b.String()
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
