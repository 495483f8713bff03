// Package validate runs client-side pre-submit checks so obviously
// broken forms never reach the service layer.
package validate

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldError is one field-level validation message.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors is the full outcome of a failed pre-submit validation.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

// EventForm is the event create/update form as typed by the operator.
type EventForm struct {
	Title       string     `validate:"required,min=5,max=100"`
	Description string     `validate:"required,min=20,max=2000"`
	Location    string     `validate:"required,max=200"`
	Category    string     `validate:"required"`
	Date        time.Time  `validate:"required"`
	EndDate     *time.Time `validate:"-"`
	Capacity    int        `validate:"gte=0,lte=100000"`
}

var eventValidator = validator.New(validator.WithRequiredStructEnabled())

// Event validates the form and returns nil when it may be submitted.
// The date-ordering rule is checked by hand: an end date, when given,
// may not precede the start date.
func Event(form EventForm) FieldErrors {
	var out FieldErrors
	if err := eventValidator.Struct(form); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				out = append(out, FieldError{
					Field:   fieldKey(fe.Field()),
					Message: messageForTag(fe.Tag(), fe.Param()),
				})
			}
		} else {
			out = append(out, FieldError{Field: "_", Message: "Form verileri geçersiz."})
		}
	}
	if form.EndDate != nil && form.EndDate.Before(form.Date) {
		out = append(out, FieldError{Field: "endDate", Message: "Bitiş tarihi başlangıç tarihinden önce olamaz."})
	}
	return out
}

func fieldKey(structField string) string {
	if structField == "" {
		return structField
	}
	return strings.ToLower(structField[:1]) + structField[1:]
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "Bu alan zorunludur."
	case "min":
		return "En az " + param + " karakter olmalıdır."
	case "max":
		return "En fazla " + param + " karakter olmalıdır."
	case "gte":
		return "En az " + param + " olmalıdır."
	case "lte":
		return "En fazla " + param + " olmalıdır."
	default:
		return "Geçersiz değer."
	}
}
