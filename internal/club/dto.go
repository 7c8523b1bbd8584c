package club

import (
	"time"

	"github.com/enslabs/clubs-admin-api/internal/shared/handler"
)

type CreateClubRequest struct {
	Name            string   `json:"name" binding:"required,clubname"`
	DisplayName     string   `json:"displayName" binding:"omitempty,max=100"`
	Description     string   `json:"description" binding:"omitempty,max=500"`
	Classifications []string `json:"classifications" binding:"omitempty,max=7,dive,classification"`
}

// UpdateClubRequest carries partial edits; nil fields are left untouched.
type UpdateClubRequest struct {
	DisplayName     *string   `json:"displayName" binding:"omitempty,max=100"`
	Description     *string   `json:"description" binding:"omitempty,max=500"`
	Classifications *[]string `json:"classifications" binding:"omitempty,max=7,dive,classification"`
}

type ClubResponse struct {
	Name            string    `json:"name"`
	DisplayName     string    `json:"displayName,omitempty"`
	Description     string    `json:"description,omitempty"`
	Classifications []string  `json:"classifications,omitempty"`
	NameCount       int64     `json:"nameCount"`
	AvatarImageURL  string    `json:"avatarImageUrl,omitempty"`
	HeaderImageURL  string    `json:"headerImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type ListClubsResponse struct {
	Clubs      []ClubResponse     `json:"clubs"`
	Pagination handler.Pagination `json:"pagination"`
}

type UploadImageResponse struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind"`
	Key     string `json:"key"`
	URL     string `json:"url"`
}
