// Package prompt captures operator input for the scheduler. The
// scheduler only ever sees the Prompter interface and the Choice type;
// the terminal mechanics (and the timeout polling they imply) live
// behind it, so a fake Prompter drives the loop deterministically in
// tests.
package prompt

import (
	"context"
	"errors"
	"time"
)

// ErrCanceled reports that the operator interrupted the prompt
// (ctrl+c). Callers treat it as a request for a clean shutdown, not a
// failure.
var ErrCanceled = errors.New("prompt canceled")

// Prompter captures operator input.
type Prompter interface {
	// Line reads a single line. When timeout is positive and elapses
	// before the operator answers, it returns timedOut=true with empty
	// text; a zero timeout waits indefinitely. Never blocks past the
	// timeout.
	Line(ctx context.Context, label string, timeout time.Duration) (text string, timedOut bool, err error)

	// Multiline captures free-form multi-line text.
	Multiline(ctx context.Context, label string) (string, error)
}
