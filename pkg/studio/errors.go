package studio

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is recorded in Report.Err when a request has blank
	// input. No capability is called.
	ErrEmptyInput = errors.New("studio: empty input")

	// ErrUnknownMode is returned by ParseMode and recorded in Report.Err
	// for a mode Run does not know.
	ErrUnknownMode = errors.New("studio: unknown mode")

	// ErrNoCaption is returned when a caption response carries no usable
	// text, including an empty result list.
	ErrNoCaption = errors.New("studio: no caption")

	// ErrEmptyResult is recorded when a capability succeeds without output.
	ErrEmptyResult = errors.New("studio: empty result")

	// ErrNoAdapter is recorded when a stage has no capability bound.
	ErrNoAdapter = errors.New("studio: capability not configured")
)

// ChatApology replaces a chat response that could not be generated.
const ChatApology = "I'm sorry, I couldn't generate a response."

// StageError is the failure of one stage.
type StageError struct {
	Stage Stage
	Err   error
}

// Error returns the message shown to the user, e.g.
// "Image generation error: hfinference: Service Unavailable (status=503)".
func (e *StageError) Error() string {
	if errors.Is(e.Err, ErrNoCaption) {
		return "Unable to generate caption for the image."
	}
	return fmt.Sprintf("%s: %v", e.Stage.errorTag(), e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
