package listings

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("listing not found")
	ErrStorage      = errors.New("storage error")
)

// Step nombra cada paso del flujo de creación.
type Step string

const (
	StepCheckReferences Step = "check_references"
	StepBegin           Step = "begin"
	StepInsertPet       Step = "insert_pet"
	StepInsertPost      Step = "insert_post"
	StepLinkPet         Step = "link_pet"
	StepUpload          Step = "image_upload"
	StepCommit          Step = "commit"
)

// StepError indica en qué paso falló el flujo. Siempre es ErrStorage.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// Code es el código estable que ve el cliente (sin texto del driver).
func (e *StepError) Code() string {
	return string(e.Step) + "_failed"
}

func stepErr(step Step, err error) error {
	return &StepError{Step: step, Err: err}
}
