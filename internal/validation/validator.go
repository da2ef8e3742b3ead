package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	apperrors "github.com/customeros/statusstack/internal/errors"
)

// Validator checks struct constraints declared with `validate` tags.
// Build one at process start and hand it to whoever writes.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: validate}
}

// Struct validates value and returns a *errors.ValidationError listing every
// violated constraint, or nil
func (v *Validator) Struct(value interface{}) error {
	err := v.validate.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return errors.Wrap(err, "validator")
	}

	validationErr := apperrors.NewValidationError()
	for _, fe := range fieldErrors {
		validationErr.Add(fe.Field(), fe.Tag(), message(fe))
	}
	return validationErr
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "uuid":
		return "must be a valid identifier"
	default:
		return fmt.Sprintf("failed on the '%s' constraint", fe.Tag())
	}
}
