// Package models defines the tabular data structures passed between steps.
package models

import "strings"

// Label is a column header. A Simple label has exactly one part; a
// Structured label comes from a multi-row header and keeps every level.
type Label struct {
	// Parts holds the header levels, outermost first.
	Parts []string
}

// Simple returns a single-level label.
func Simple(name string) Label {
	return Label{Parts: []string{name}}
}

// Structured returns a multi-level label.
func Structured(parts ...string) Label {
	p := make([]string, len(parts))
	copy(p, parts)
	return Label{Parts: p}
}

// Labels converts plain names to Simple labels.
func Labels(names ...string) []Label {
	out := make([]Label, len(names))
	for i, n := range names {
		out[i] = Simple(n)
	}
	return out
}

// IsStructured reports whether the label has more than one level.
func (l Label) IsStructured() bool {
	return len(l.Parts) > 1
}

// Flatten returns the first non-empty part, or "" if all parts are empty.
func (l Label) Flatten() string {
	for _, p := range l.Parts {
		if p != "" {
			return p
		}
	}
	return ""
}

// Key returns a string that is equal for two labels exactly when all their
// parts are equal.
func (l Label) Key() string {
	return strings.Join(l.Parts, "\x1f")
}

// String implements fmt.Stringer.
func (l Label) String() string {
	if !l.IsStructured() {
		return l.Flatten()
	}
	return "(" + strings.Join(l.Parts, ", ") + ")"
}
