package worker

import (
	"context"
)

// Stepper advances the simulation once
type Stepper interface {
	Step(ctx context.Context)
}

// Saver persists every online character
type Saver interface {
	Autosave(ctx context.Context) (int, error)
}

// StepJob runs one simulation step
type StepJob struct {
	Stepper Stepper
}

func (j StepJob) Name() string { return JobNameStep }

func (j StepJob) Process(ctx context.Context) error {
	j.Stepper.Step(ctx)
	return nil
}

// AutosaveJob saves all online characters in one batch
type AutosaveJob struct {
	Saver Saver
}

func (j AutosaveJob) Name() string { return JobNameAutosave }

func (j AutosaveJob) Process(ctx context.Context) error {
	_, err := j.Saver.Autosave(ctx)
	return err
}
