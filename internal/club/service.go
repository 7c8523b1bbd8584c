package club

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/enslabs/clubs-admin-api/internal/model"
	"github.com/enslabs/clubs-admin-api/internal/shared/database"
	"github.com/enslabs/clubs-admin-api/internal/shared/handler"
	"github.com/enslabs/clubs-admin-api/internal/shared/logger"
	"github.com/enslabs/clubs-admin-api/internal/shared/storage"
	"gorm.io/gorm"
)

// Image kinds accepted by the upload/delete endpoints
const (
	ImageKindAvatar = "avatar"
	ImageKindHeader = "header"
)

const maxImageSize = 5 << 20 // 5 MB

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}

type ClubService struct {
	db             *gorm.DB
	clubRepository *ClubRepository
	storage        storage.Uploader
}

func NewClubService(db *gorm.DB, clubRepository *ClubRepository, uploader storage.Uploader) *ClubService {
	return &ClubService{
		db:             db,
		clubRepository: clubRepository,
		storage:        uploader,
	}
}

func (s *ClubService) Create(ctx context.Context, actor string, request *CreateClubRequest) (*ClubResponse, error) {
	log := logger.FromContext(ctx)
	var created *model.Club

	err := database.WithActorTransaction(ctx, s.db, actor, func(tx *gorm.DB) error {
		exists, err := s.clubRepository.IsExist(ctx, tx, request.Name)
		if err != nil {
			return fmt.Errorf("check club existence: %w", err)
		}
		if exists {
			return fmt.Errorf("club %s: %w", request.Name, ErrClubAlreadyExists)
		}

		club := model.NewClub(request.Name, request.DisplayName, request.Description, request.Classifications)
		if err := s.clubRepository.Create(ctx, tx, club); err != nil {
			return fmt.Errorf("create club: %w", err)
		}

		created = club
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("club created", "club", created.Name, "actor", logger.MaskAddress(actor))
	return s.toResponse(created), nil
}

func (s *ClubService) Get(ctx context.Context, name string) (*ClubResponse, error) {
	club, err := s.clubRepository.FindByName(ctx, s.db, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("club %s: %w", name, ErrClubNotFound)
		}
		return nil, fmt.Errorf("find club: %w", err)
	}

	return s.toResponse(club), nil
}

func (s *ClubService) List(ctx context.Context, page, limit int) (*ListClubsResponse, error) {
	clubs, total, err := s.clubRepository.List(ctx, s.db, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}

	responses := make([]ClubResponse, 0, len(clubs))
	for i := range clubs {
		responses = append(responses, *s.toResponse(&clubs[i]))
	}

	return &ListClubsResponse{
		Clubs:      responses,
		Pagination: handler.NewPagination(page, limit, total),
	}, nil
}

func (s *ClubService) Update(ctx context.Context, actor, name string, request *UpdateClubRequest) (*ClubResponse, error) {
	log := logger.FromContext(ctx)
	var updated *model.Club

	err := database.WithActorTransaction(ctx, s.db, actor, func(tx *gorm.DB) error {
		club, err := s.clubRepository.FindByName(ctx, tx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("club %s: %w", name, ErrClubNotFound)
			}
			return fmt.Errorf("find club: %w", err)
		}

		fields := map[string]interface{}{}
		if request.DisplayName != nil {
			fields["display_name"] = *request.DisplayName
			club.DisplayName = *request.DisplayName
		}
		if request.Description != nil {
			fields["description"] = *request.Description
			club.Description = *request.Description
		}
		if request.Classifications != nil {
			fields["classifications"] = *request.Classifications
			club.Classifications = *request.Classifications
		}

		if len(fields) > 0 {
			if _, err := s.clubRepository.UpdateFields(ctx, tx, name, fields); err != nil {
				return fmt.Errorf("update club: %w", err)
			}
		}

		updated = club
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("club updated", "club", name, "actor", logger.MaskAddress(actor))
	return s.toResponse(updated), nil
}

func (s *ClubService) Delete(ctx context.Context, actor, name string) error {
	log := logger.FromContext(ctx)

	err := database.WithActorTransaction(ctx, s.db, actor, func(tx *gorm.DB) error {
		// memberships go first so the cascade shares the actor attribution
		err := tx.WithContext(ctx).
			Where("club_name = ?", name).
			Delete(&model.ClubMember{}).Error
		if err != nil {
			return fmt.Errorf("delete club members: %w", err)
		}

		rows, err := s.clubRepository.Delete(ctx, tx, name)
		if err != nil {
			return fmt.Errorf("delete club: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("club %s: %w", name, ErrClubNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("club deleted", "club", name, "actor", logger.MaskAddress(actor))
	return nil
}

func (s *ClubService) toResponse(club *model.Club) *ClubResponse {
	response := &ClubResponse{
		Name:            club.Name,
		DisplayName:     club.DisplayName,
		Description:     club.Description,
		Classifications: club.Classifications,
		NameCount:       club.NameCount,
		CreatedAt:       club.CreatedAt,
		UpdatedAt:       club.UpdatedAt,
	}

	if club.AvatarImageKey != nil {
		response.AvatarImageURL = s.storage.PublicURL(*club.AvatarImageKey)
	}
	if club.HeaderImageKey != nil {
		response.HeaderImageURL = s.storage.PublicURL(*club.HeaderImageKey)
	}

	return response
}

// UploadImage stores a new avatar/header image, points the club at it and
// removes the previous object best-effort after commit.
func (s *ClubService) UploadImage(ctx context.Context, actor, name, kind string, file io.Reader, filename, contentType string, size int64) (*UploadImageResponse, error) {
	log := logger.FromContext(ctx)

	column, err := imageColumn(kind)
	if err != nil {
		return nil, err
	}
	if size > maxImageSize {
		return nil, fmt.Errorf("image of %d bytes: %w", size, ErrImageTooLarge)
	}
	if !allowedImageTypes[contentType] {
		return nil, fmt.Errorf("image of type %s: %w", contentType, ErrUnsupportedImageType)
	}

	club, err := s.clubRepository.FindByName(ctx, s.db, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("club %s: %w", name, ErrClubNotFound)
		}
		return nil, fmt.Errorf("find club: %w", err)
	}

	key := storage.GenerateKey(name+"/"+kind, filename)
	result, err := s.storage.Upload(ctx, key, file, contentType, size)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	oldKey := club.AvatarImageKey
	if kind == ImageKindHeader {
		oldKey = club.HeaderImageKey
	}

	err = database.WithActorTransaction(ctx, s.db, actor, func(tx *gorm.DB) error {
		_, err := s.clubRepository.UpdateFields(ctx, tx, name, map[string]interface{}{column: result.Key})
		return err
	})
	if err != nil {
		// roll back the orphaned object; the row still points at the old key
		if delErr := s.storage.Delete(ctx, result.Key); delErr != nil {
			log.Warn("failed to clean up orphaned image", "key", result.Key, "error", delErr)
		}
		return nil, fmt.Errorf("point club at image: %w", err)
	}

	if oldKey != nil && *oldKey != result.Key {
		if err := s.storage.Delete(ctx, *oldKey); err != nil {
			log.Warn("failed to delete replaced image", "key", *oldKey, "error", err)
		}
	}

	log.Info("club image uploaded", "club", name, "kind", kind, "key", result.Key, "actor", logger.MaskAddress(actor))

	return &UploadImageResponse{
		Success: true,
		Kind:    kind,
		Key:     result.Key,
		URL:     s.storage.PublicURL(result.Key),
	}, nil
}

// DeleteImage clears the image pointer and removes the object best-effort.
func (s *ClubService) DeleteImage(ctx context.Context, actor, name, kind string) error {
	log := logger.FromContext(ctx)

	column, err := imageColumn(kind)
	if err != nil {
		return err
	}

	club, err := s.clubRepository.FindByName(ctx, s.db, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("club %s: %w", name, ErrClubNotFound)
		}
		return fmt.Errorf("find club: %w", err)
	}

	key := club.AvatarImageKey
	if kind == ImageKindHeader {
		key = club.HeaderImageKey
	}
	if key == nil {
		return fmt.Errorf("club %s has no %s image: %w", name, kind, ErrImageNotFound)
	}

	err = database.WithActorTransaction(ctx, s.db, actor, func(tx *gorm.DB) error {
		_, err := s.clubRepository.UpdateFields(ctx, tx, name, map[string]interface{}{column: nil})
		return err
	})
	if err != nil {
		return fmt.Errorf("clear image pointer: %w", err)
	}

	if err := s.storage.Delete(ctx, *key); err != nil {
		log.Warn("failed to delete image object", "key", *key, "error", err)
	}

	log.Info("club image deleted", "club", name, "kind", kind, "actor", logger.MaskAddress(actor))
	return nil
}

func imageColumn(kind string) (string, error) {
	switch kind {
	case ImageKindAvatar:
		return "avatar_image_key", nil
	case ImageKindHeader:
		return "header_image_key", nil
	default:
		return "", fmt.Errorf("image kind %q: %w", kind, ErrInvalidImageKind)
	}
}
