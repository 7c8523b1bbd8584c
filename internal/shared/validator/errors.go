package validator

import (
	"errors"
	"fmt"

	sharedError "github.com/enslabs/clubs-admin-api/internal/shared/error"
	"github.com/go-playground/validator/v10"
)

// ToErrorResponse converts gin binding/validator errors into a standardized response.
func ToErrorResponse(err error) (*sharedError.ErrorResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	if len(validationErrors) == 0 {
		return nil, false
	}

	// Only the first validation error is returned (client-friendly)
	fieldErr := validationErrors[0]
	message := getErrorMessage(fieldErr)

	resp := sharedError.ValidationFailed
	resp.Message = message
	return &resp, true
}

// getErrorMessage returns user-friendly error message for validation error
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required.", fe.Field())
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "clubname":
		return "Club name must be 2-50 lowercase letters, digits or underscores."
	case "classification":
		return fmt.Sprintf("'%v' is not a known classification tag.", fe.Value())
	case "ethaddress":
		return "Wallet address must be a 0x-prefixed hex address."
	default:
		return fmt.Sprintf("'%s' field is invalid.", fe.Field())
	}
}
