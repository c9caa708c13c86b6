package domain

import (
	"errors"
	"fmt"
)

// DispatchStage names the dispatch step a failure occurred in.
type DispatchStage string

const (
	DispatchStageInit     DispatchStage = "init"
	DispatchStageResolve  DispatchStage = "resolve"
	DispatchStageValidate DispatchStage = "validate"
	DispatchStageInvoke   DispatchStage = "invoke"
	DispatchStageEncode   DispatchStage = "encode"
)

// StageError records the dispatch stage alongside a failure. Its message is
// the wrapped error's message so the host sees only the causal chain.
type StageError struct {
	Stage DispatchStage
	Err   error
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return string(e.Stage)
	}
	return e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func (e *StageError) String() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func NewStageError(stage DispatchStage, err error) error {
	if err == nil {
		return nil
	}
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return err
	}
	return &StageError{Stage: stage, Err: err}
}

func StageFrom(err error) (DispatchStage, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, true
	}
	return "", false
}
