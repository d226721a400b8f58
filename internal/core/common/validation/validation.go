package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	apperrors "github.com/frahmantamala/employee-admin/internal"
	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
	decoder  *form.Decoder
)

func setup() {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report fields under the name the browser posts, not the Go field name
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"form", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})

		decoder = form.NewDecoder()
	})
}

// DecodeForm fills dst from posted form values using `form` struct tags.
func DecodeForm(dst interface{}, values url.Values) error {
	setup()
	if err := decoder.Decode(dst, values); err != nil {
		return apperrors.NewValidationError("malformed form submission", apperrors.ErrCodeValidationFailed).WithCause(err)
	}
	return nil
}

// Struct runs `validate` tags and converts failures into a field-level AppError.
func Struct(v interface{}) error {
	setup()
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewInternalError("validation could not run", err)
	}

	out := make([]apperrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apperrors.ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
			Code:    fe.Tag(),
		})
	}
	return apperrors.NewValidationFieldErrors(out)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
