// Package pipeline defines the step contract and a sequential runner.
package pipeline

import (
	"fmt"

	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
)

// Func transforms a dataset. It returns either its input unchanged or a new
// dataset; it never modifies the input.
type Func func(ds *models.Dataset) (*models.Dataset, error)

// Step is a named, configured transform.
type Step struct {
	// Name identifies the step in logs and errors.
	Name string
	// Config records the options the step was built with.
	Config map[string]any
	// Fn performs the transform.
	Fn Func
}

// Run applies the step to ds.
func (s Step) Run(ds *models.Dataset) (*models.Dataset, error) {
	if s.Fn == nil {
		return ds, nil
	}
	return s.Fn(ds)
}

// StepError wraps the failure of a single step.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
