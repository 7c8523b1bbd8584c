package ensname

import (
	"net/http"

	sharedError "github.com/enslabs/clubs-admin-api/internal/shared/error"
)

const (
	invalidLookupName = "INVALID_LOOKUP_NAME" // errInfo
)

var (
	ErrInvalidLookupName = sharedError.NewDomainError(invalidLookupName)
)

func init() {
	sharedError.RegisterDomainErrorResponse(invalidLookupName, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "NAME-001",
		Message: "The requested name is not a valid ENS name.",
	})
}
