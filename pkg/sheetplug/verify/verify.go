// Package verify checks datasets for structural problems.
package verify

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetplug-go/pkg/sheetplug"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/pipeline"
	"go.uber.org/zap"
)

// Mode selects what happens when issues are found.
type Mode string

const (
	// ModeWarn logs the issues and passes the dataset through.
	ModeWarn Mode = "warn"
	// ModeFail returns a *sheetplug.VerificationError.
	ModeFail Mode = "fail"
)

// ParseMode converts a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeWarn:
		return ModeWarn, nil
	case ModeFail:
		return ModeFail, nil
	}
	return "", fmt.Errorf("invalid verify mode: %s (must be warn or fail)", s)
}

// Config configures the verify step.
type Config struct {
	Mode   Mode
	Logger *zap.Logger
}

// Check returns every structural issue in ds, in table order.
func Check(ds *models.Dataset) []sheetplug.Issue {
	var issues []sheetplug.Issue
	for _, e := range ds.Entries() {
		issues = append(issues, checkTable(e.Name, e.Table)...)
	}
	return issues
}

func checkTable(name string, t *models.Table) []sheetplug.Issue {
	if t == nil {
		return []sheetplug.Issue{{Table: name, Message: "not a table"}}
	}
	if err := t.Validate(); err != nil {
		return []sheetplug.Issue{{Table: name, Message: "not a table: " + err.Error()}}
	}

	var issues []sheetplug.Issue
	if t.NumColumns() == 0 {
		issues = append(issues, sheetplug.Issue{Table: name, Message: "no columns"})
	}
	if dups := duplicateColumns(t.Columns); len(dups) > 0 {
		issues = append(issues, sheetplug.Issue{
			Table:   name,
			Message: "duplicated columns detected: " + strings.Join(dups, ", "),
		})
	}
	return issues
}

// duplicateColumns returns each label that occurs more than once, in order
// of its second occurrence.
func duplicateColumns(cols []models.Label) []string {
	seen := make(map[string]int, len(cols))
	var dups []string
	for _, l := range cols {
		k := l.Key()
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, l.String())
		}
	}
	return dups
}

// StepName is the verify step name used when none is given.
const StepName = "verify"

// NewVerifyStep returns a step that checks every table and, when issues are
// found, either fails with all of them or logs them and passes through.
// An empty name selects StepName.
func NewVerifyStep(cfg Config, name string) pipeline.Step {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if name == "" {
		name = StepName
	}

	run := func(ds *models.Dataset) (*models.Dataset, error) {
		issues := Check(ds)
		if len(issues) == 0 {
			return ds, nil
		}

		if cfg.Mode == ModeFail {
			return nil, &sheetplug.VerificationError{Issues: issues}
		}

		messages := make([]string, len(issues))
		for i, issue := range issues {
			messages[i] = issue.String()
		}
		logger.Warn(sheetplug.FormatIssues(issues), zap.Strings("issues", messages))
		return ds, nil
	}

	return pipeline.Step{
		Name:   name,
		Config: map[string]any{"mode": string(cfg.Mode)},
		Fn:     run,
	}
}
