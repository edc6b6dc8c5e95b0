package ideas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalid        = errors.New("invalid input")
	ErrDuplicateTitle = errors.New("title already exists")
	ErrNotFound       = errors.New("idea not found")
	ErrWrongVariant   = errors.New("not supported for this idea's variant")
	ErrIndex          = errors.New("message index out of range")
	ErrField          = errors.New("unknown field (want commands|notes)")
)

var validate = validator.New()

type titleCategory struct {
	Title    string `validate:"required"`
	Category string `validate:"required"`
}

type messageText struct {
	Text string `validate:"required"`
}

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, formatValidationError(err))
	}
	return nil
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		default:
			parts = append(parts, field+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}

func notFound(title string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, title)
}
