package club

import (
	"net/http"

	sharedError "github.com/enslabs/clubs-admin-api/internal/shared/error"
)

const (
	clubNotFound         = "CLUB_NOT_FOUND"         // errInfo
	clubAlreadyExists    = "CLUB_ALREADY_EXISTS"    // errInfo
	invalidImageKind     = "INVALID_IMAGE_KIND"     // errInfo
	imageTooLarge        = "IMAGE_TOO_LARGE"        // errInfo
	unsupportedImageType = "UNSUPPORTED_IMAGE_TYPE" // errInfo
	imageNotFound        = "IMAGE_NOT_FOUND"        // errInfo
)

var (
	ErrClubNotFound         = sharedError.NewDomainError(clubNotFound)
	ErrClubAlreadyExists    = sharedError.NewDomainError(clubAlreadyExists)
	ErrInvalidImageKind     = sharedError.NewDomainError(invalidImageKind)
	ErrImageTooLarge        = sharedError.NewDomainError(imageTooLarge)
	ErrUnsupportedImageType = sharedError.NewDomainError(unsupportedImageType)
	ErrImageNotFound        = sharedError.NewDomainError(imageNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(clubNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "CLUB-001",
		Message: "Club not found.",
	})

	sharedError.RegisterDomainErrorResponse(clubAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "CLUB-002",
		Message: "A club with this name already exists.",
	})

	sharedError.RegisterDomainErrorResponse(invalidImageKind, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "CLUB-003",
		Message: "Image kind must be 'avatar' or 'header'.",
	})

	sharedError.RegisterDomainErrorResponse(imageTooLarge, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "CLUB-004",
		Message: "Image exceeds the maximum allowed size (5 MB).",
	})

	sharedError.RegisterDomainErrorResponse(unsupportedImageType, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "CLUB-005",
		Message: "Only PNG, JPEG, WebP and GIF images are supported.",
	})

	sharedError.RegisterDomainErrorResponse(imageNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "CLUB-006",
		Message: "The club has no image of this kind.",
	})
}
