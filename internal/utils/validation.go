package contextutils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validator returns the shared validator instance
func Validator() *validator.Validate {
	return validate
}

// ValidateStruct validates a tagged struct and returns an ErrValidationFailed AppError describing
// every failing field
func ValidateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			details := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				details = append(details, fe.Field()+" failed "+fe.Tag())
			}
			return ErrValidationFailed.WithDetails("%s", strings.Join(details, "; "))
		}
		return WrapError(err, "validation failed")
	}
	return nil
}

