package validator

import (
	"regexp"

	"github.com/enslabs/clubs-admin-api/internal/model"
	"github.com/go-playground/validator/v10"
)

var (
	// clubNameRegex matches the club slug grammar:
	// lowercase alphanumeric + underscore, 2-50 chars
	clubNameRegex = regexp.MustCompile(`^[a-z0-9_]{2,50}$`)

	// ethAddressRegex matches 0x-prefixed 20-byte hex addresses
	ethAddressRegex = regexp.MustCompile(`^0[xX][0-9a-fA-F]{40}$`)
)

// ValidateClubName validates a club slug name
func ValidateClubName(fl validator.FieldLevel) bool {
	return clubNameRegex.MatchString(fl.Field().String())
}

// ValidateClassification validates a single classification tag against the
// fixed vocabulary
func ValidateClassification(fl validator.FieldLevel) bool {
	return model.IsValidClassification(fl.Field().String())
}

// ValidateEthAddress validates a wallet address
func ValidateEthAddress(fl validator.FieldLevel) bool {
	return ethAddressRegex.MatchString(fl.Field().String())
}
