// Package notify is the cross-cutting notification surface. Views are
// the only layer that notifies; stores record messages, they never
// call in here.
package notify

import (
	"errors"
	"fmt"
	"io"
	"time"

	"saglikhep/internal/api"
	"saglikhep/internal/validate"
)

// fieldStagger spaces out consecutive field-error notifications so
// each one is individually readable.
const fieldStagger = 150 * time.Millisecond

// Notifier surfaces messages to the operator.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Terminal writes notifications to a stream.
type Terminal struct {
	Out io.Writer
}

func (t *Terminal) Success(msg string) {
	fmt.Fprintf(t.Out, "tamam: %s\n", msg)
}

func (t *Terminal) Error(msg string) {
	fmt.Fprintf(t.Out, "hata: %s\n", msg)
}

// Surface renders an error the way the panel does: structured
// validation failures become one staggered notification per field,
// everything else becomes a single message.
func Surface(n Notifier, err error) {
	SurfaceWith(n, err, fieldStagger)
}

// SurfaceWith is Surface with an explicit stagger interval.
func SurfaceWith(n Notifier, err error, stagger time.Duration) {
	if err == nil {
		return
	}
	var fieldErrs validate.FieldErrors
	if errors.As(err, &fieldErrs) {
		for i, fe := range fieldErrs {
			if i > 0 && stagger > 0 {
				time.Sleep(stagger)
			}
			n.Error(fmt.Sprintf("%s: %s", fe.Field, fe.Message))
		}
		return
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && len(apiErr.Errors) > 0 {
		for i, fe := range apiErr.Errors {
			if i > 0 && stagger > 0 {
				time.Sleep(stagger)
			}
			n.Error(fmt.Sprintf("%s: %s", fe.Field, fe.Message))
		}
		return
	}
	n.Error(err.Error())
}
