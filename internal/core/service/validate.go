package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/feedwire/feed-service/internal/core/domain"
)

// validate is shared by all services; validator.Validate is safe for
// concurrent use.
var validate = validator.New()

// checkInput runs struct validation and converts the result into the
// multi-entry domain.ValidationError both facade surfaces report. Keeping the
// conversion here means the rule set and its messages exist exactly once.
func checkInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	violations := make([]domain.FieldViolation, 0, len(ve))
	for _, fe := range ve {
		violations = append(violations, domain.FieldViolation{
			Field:   strings.ToLower(fe.Field()),
			Message: violationMessage(fe),
		})
	}
	return &domain.ValidationError{Violations: violations}
}

func violationMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " must not be empty"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
	case "alphanum":
		return field + " must contain only numbers and letters"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
