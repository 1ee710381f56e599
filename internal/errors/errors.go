package errors

import (
	"encoding/json"
	"fmt"
)

// ValidationErr is raised when caller input is rejected before reaching remote store
type ValidationErr struct {
	target  string
	message string
}

func (e *ValidationErr) Error() string {
	return e.message
}

// Target returns name of the rejected input
func (e *ValidationErr) Target() string {
	return e.target
}

func (e *ValidationErr) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Target  string `json:"target"`
		Message string `json:"message"`
	}{Target: e.target, Message: e.message})
}

func NewValidationErr(target string, msg string) error {
	return &ValidationErr{
		target:  target,
		message: msg,
	}
}

// OperationalErr is raised when remote store didn't report success for requested operation
type OperationalErr struct {
	message  string
	response string
}

func (e *OperationalErr) Error() string {
	if e.response == "" {
		return e.message
	}
	return fmt.Sprintf("%s Response: %s", e.message, e.response)
}

// Response returns raw body of the remote response if it was available
func (e *OperationalErr) Response() string {
	return e.response
}

func NewOperationalErr(msg string) error {
	return &OperationalErr{message: msg}
}

func NewOperationalErrWithResponse(msg string, response string) error {
	return &OperationalErr{message: msg, response: response}
}

// TransportErr wraps failures to reach remote store at all
type TransportErr struct {
	op  string
	err error
}

func (e *TransportErr) Error() string {
	return fmt.Sprintf("failed to %s - %v", e.op, e.err)
}

func (e *TransportErr) Unwrap() error {
	return e.err
}

func NewTransportErr(op string, err error) error {
	return &TransportErr{op: op, err: err}
}
