package coverletters

import (
	"errors"
	"fmt"
)

// Stage is a step of the generation pipeline.
type Stage string

const (
	StageValidating     Stage = "validating"
	StageFetchingResume Stage = "fetching_resume"
	StageGenerating     Stage = "generating"
	StageRendering      Stage = "rendering"
	StagePersisting     Stage = "persisting"
	StageDone           Stage = "done"
	StageFailed         Stage = "error"
)

// StageError records the stage at which the pipeline stopped.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the failing stage carried by err, or "" when there is none.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// Transition formats the last move of a pipeline run for request logs.
func Transition(err error) string {
	if err == nil {
		return string(StagePersisting) + "->" + string(StageDone)
	}
	stage := StageOf(err)
	if stage == "" {
		stage = StageValidating
	}
	return string(stage) + "->" + string(StageFailed)
}

func fail(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
