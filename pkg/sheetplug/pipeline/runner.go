package pipeline

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
	"go.uber.org/zap"
)

// Policy decides what the runner does when a step fails.
type Policy string

const (
	// PolicyAbort stops at the first failing step.
	PolicyAbort Policy = "abort"
	// PolicySkip logs the failure, keeps the pre-step dataset and continues.
	PolicySkip Policy = "skip"
)

// ParsePolicy converts a config string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyAbort, "":
		return PolicyAbort, nil
	case PolicySkip:
		return PolicySkip, nil
	}
	return "", fmt.Errorf("invalid error policy: %s (must be abort or skip)", s)
}

// Runner threads a dataset through steps in order.
type Runner struct {
	Steps  []Step
	Policy Policy
	Logger *zap.Logger
}

// NewRunner creates a runner with the abort policy.
func NewRunner(logger *zap.Logger, steps ...Step) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Steps: steps, Policy: PolicyAbort, Logger: logger}
}

// Run applies every step. Under PolicySkip the returned error joins all step
// failures and the dataset reflects the steps that succeeded.
func (r *Runner) Run(ds *models.Dataset) (*models.Dataset, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var errs []error
	for _, step := range r.Steps {
		logger.Debug("running step", zap.String("step", step.Name), zap.Any("config", step.Config))

		out, err := step.Run(ds)
		if err != nil {
			stepErr := &StepError{Step: step.Name, Err: err}
			if r.Policy != PolicySkip {
				return nil, stepErr
			}
			logger.Warn("step failed, skipping", zap.String("step", step.Name), zap.Error(err))
			errs = append(errs, stepErr)
			continue
		}

		if out == ds {
			logger.Debug("step passed dataset through", zap.String("step", step.Name))
		}
		ds = out
	}

	return ds, errors.Join(errs...)
}
