package membership

import (
	"net/http"

	sharedError "github.com/enslabs/clubs-admin-api/internal/shared/error"
)

const (
	batchTooLarge = "BATCH_TOO_LARGE" // errInfo
)

var ErrBatchTooLarge = sharedError.NewDomainError(batchTooLarge)

func init() {
	sharedError.RegisterDomainErrorResponse(batchTooLarge, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-001",
		Message: "Too many names in one request (maximum 1000).",
	})
}
