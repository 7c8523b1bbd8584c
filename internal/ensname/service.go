package ensname

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/enslabs/clubs-admin-api/internal/grails"
	"github.com/enslabs/clubs-admin-api/internal/shared/cache"
	"github.com/enslabs/clubs-admin-api/internal/shared/logger"
	"gorm.io/gorm"
)

// MarketClient is the slice of the grails client the lookup path needs.
type MarketClient interface {
	GetListing(ctx context.Context, name string) (*grails.Listing, error)
}

type Service struct {
	db         *gorm.DB
	repository *Repository
	market     MarketClient
	cache      cache.Service
	cacheTTL   time.Duration
}

func NewService(db *gorm.DB, repository *Repository, market MarketClient, cacheService cache.Service, cacheTTL time.Duration) *Service {
	return &Service{
		db:         db,
		repository: repository,
		market:     market,
		cache:      cacheService,
		cacheTTL:   cacheTTL,
	}
}

// Lookup resolves one name against the local directory and the upstream
// market, with a bounded TTL cache in front of the upstream call.
func (s *Service) Lookup(ctx context.Context, raw string) (*LookupResponse, error) {
	log := logger.FromContext(ctx)

	normalized, err := Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("lookup of %q: %w", raw, ErrInvalidLookupName)
	}

	response := &LookupResponse{Name: normalized}

	row, err := s.repository.FindByName(ctx, s.db, normalized)
	switch {
	case err == nil:
		response.InDirectory = true
		response.Owner = row.Owner
		response.ExpiresAt = row.ExpiresAt
	case errors.Is(err, gorm.ErrRecordNotFound):
		// tolerated: the directory may lag the registry
	default:
		return nil, fmt.Errorf("directory lookup failed: %w", err)
	}

	response.Market = s.marketListing(ctx, normalized)
	if response.Market == nil && !response.InDirectory {
		log.Debug("name unknown locally and upstream", "name", normalized)
	}

	return response, nil
}

func (s *Service) marketListing(ctx context.Context, name string) *grails.Listing {
	log := logger.FromContext(ctx)
	key := "grails:listing:" + name

	var cached grails.Listing
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached
	}

	listing, err := s.market.GetListing(ctx, name)
	if err != nil {
		if !errors.Is(err, grails.ErrNameNotFound) {
			// market data is advisory; lookups still succeed without it
			log.Warn("market lookup failed", "name", name, "error", err)
		}
		return nil
	}

	if err := s.cache.Set(ctx, key, listing, s.cacheTTL); err != nil {
		log.Warn("failed to cache market listing", "name", name, "error", err)
	}

	return listing
}
