package provider

import (
	"errors"
	"fmt"
)

const (
	// Twilio REST error codes used for control flow.
	TWILIO_CODE_NOT_FOUND   = 20404
	TWILIO_CODE_ROOM_EXISTS = 53113
)

var ErrUnexpectedResponse = errors.New("unexpected provider response")

// ProviderError is a remote failure the provisioner must not recover from.
type ProviderError struct {
	Op     string
	Code   int
	Status int
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: code %d (status %d): %s", e.Op, e.Code, e.Status, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
