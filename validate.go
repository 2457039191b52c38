package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateOptions checks the validate tags of an options struct and reports
// violations as an input validation error.
func validateOptions(operation Operation, opts any) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%s: validate options: %w", operation, err)
	}

	violations := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, fmt.Sprintf("%s must satisfy %s", fe.Namespace(), constraint(fe)))
	}

	return &Error{
		Code:      ErrorCodeInputValidation,
		Operation: operation,
		Detail:    strings.Join(violations, "; "),
	}
}

func constraint(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
