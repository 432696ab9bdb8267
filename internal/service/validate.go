package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/storefront/internal/apperror"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput checks struct tags and reports the first failing field as a
// validation error suitable for showing next to the form.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperror.NewErrValidation(fieldMessage(fieldErrs[0]))
	}
	return fmt.Errorf("failed to validate input: %w", err)
}

func fieldMessage(fe validator.FieldError) string {
	name := fieldLabel(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return "please enter a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", name, fe.Param())
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and numbers", name)
	case "numeric":
		return fmt.Sprintf("%s must be a number", name)
	case "eqfield":
		return "passwords have to match"
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

// fieldLabel turns "SignupParams.ConfirmPassword" into "confirm password".
func fieldLabel(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		namespace = rest
	}

	var b strings.Builder
	for i, r := range namespace {
		switch {
		case r == '.':
			b.WriteByte(' ')
		case unicode.IsUpper(r):
			if i > 0 && namespace[i-1] != '.' {
				b.WriteByte(' ')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
