package auth

import (
	"net/http"

	sharedError "github.com/enslabs/clubs-admin-api/internal/shared/error"
)

const (
	invalidSignature    = "INVALID_SIGNATURE"    // errInfo
	nonceExpired        = "NONCE_EXPIRED"        // errInfo
	walletNotAllowed    = "WALLET_NOT_ALLOWED"   // errInfo
	verifierUnavailable = "VERIFIER_UNAVAILABLE" // errInfo
)

var (
	ErrInvalidSignature    = sharedError.NewDomainError(invalidSignature)
	ErrNonceExpired        = sharedError.NewDomainError(nonceExpired)
	ErrWalletNotAllowed    = sharedError.NewDomainError(walletNotAllowed)
	ErrVerifierUnavailable = sharedError.NewDomainError(verifierUnavailable)
)

func init() {
	sharedError.RegisterDomainErrorResponse(invalidSignature, sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-002",
		Message: "Signature verification failed.",
	})

	sharedError.RegisterDomainErrorResponse(nonceExpired, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "AUTH-003",
		Message: "Login nonce is missing or expired. Request a new one.",
	})

	sharedError.RegisterDomainErrorResponse(walletNotAllowed, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "AUTH-001",
		Message: "This wallet is not authorized to administer clubs.",
	})

	sharedError.RegisterDomainErrorResponse(verifierUnavailable, sharedError.ErrorResponse{
		Status:  http.StatusServiceUnavailable,
		Code:    "AUTH-004",
		Message: "Signature verification is temporarily unavailable.",
	})
}
