package membership

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/enslabs/clubs-admin-api/internal/club"
	"github.com/enslabs/clubs-admin-api/internal/ensname"
	"github.com/enslabs/clubs-admin-api/internal/model"
	"github.com/enslabs/clubs-admin-api/internal/shared/database"
	"github.com/enslabs/clubs-admin-api/internal/shared/handler"
	"github.com/enslabs/clubs-admin-api/internal/shared/logger"
	"gorm.io/gorm"
)

// MaxBatchSize caps one bulk add request. Oversized batches are rejected
// outright before any validation work happens.
const MaxBatchSize = 1000

type MembershipService struct {
	db                   *gorm.DB
	membershipRepository *MembershipRepository
	clubRepository       *club.ClubRepository
	nameDirectory        *ensname.Repository
}

func NewMembershipService(
	db *gorm.DB,
	membershipRepository *MembershipRepository,
	clubRepository *club.ClubRepository,
	nameDirectory *ensname.Repository,
) *MembershipService {
	return &MembershipService{
		db:                   db,
		membershipRepository: membershipRepository,
		clubRepository:       clubRepository,
		nameDirectory:        nameDirectory,
	}
}

// AddNames validates and inserts a batch of names into a club.
//
// The whole batch passes a validity gate before anything is written: every
// name must already be in canonical ENS form and exist in the name
// directory. One bad name rejects the entire batch with zero writes; the
// response then carries per-name reasons. Names that pass the gate but are
// already members are skipped, not errors.
func (s *MembershipService) AddNames(ctx context.Context, actor, clubName string, names []string) (*AddNamesResponse, error) {
	log := logger.FromContext(ctx)

	if len(names) > MaxBatchSize {
		return nil, fmt.Errorf("%d names requested: %w", len(names), ErrBatchTooLarge)
	}

	if err := s.requireClub(ctx, clubName); err != nil {
		return nil, err
	}

	details := &InvalidDetails{
		InvalidFormat: []InvalidFormatEntry{},
		NotInDatabase: []string{},
	}

	// format gate: input must already be the canonical form
	valid := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, raw := range names {
		canonical, reason := checkCanonical(raw)
		if reason != "" {
			details.InvalidFormat = append(details.InvalidFormat, InvalidFormatEntry{Name: raw, Reason: reason})
			continue
		}
		if !seen[canonical] {
			seen[canonical] = true
			valid = append(valid, canonical)
		}
	}

	// existence gate: every surviving name must be a known registered name
	if len(valid) > 0 {
		known, err := s.nameDirectory.FilterKnown(ctx, s.db, valid)
		if err != nil {
			return nil, fmt.Errorf("look up name directory: %w", err)
		}

		remaining := valid[:0]
		for _, name := range valid {
			if known[strings.ToLower(name)] {
				remaining = append(remaining, name)
			} else {
				details.NotInDatabase = append(details.NotInDatabase, name)
			}
		}
		valid = remaining
	}

	if len(details.InvalidFormat) > 0 || len(details.NotInDatabase) > 0 {
		invalid := make([]string, 0, len(details.InvalidFormat)+len(details.NotInDatabase))
		for _, entry := range details.InvalidFormat {
			invalid = append(invalid, entry.Name)
		}
		invalid = append(invalid, details.NotInDatabase...)

		log.Info("bulk add rejected at validity gate",
			"club", clubName,
			"requested", len(names),
			"invalid", len(invalid),
		)

		return &AddNamesResponse{
			Success:      false,
			InvalidNames: invalid,
			Details:      details,
		}, nil
	}

	members := make([]model.ClubMember, 0, len(valid))
	for _, name := range valid {
		members = append(members, model.ClubMember{ClubName: clubName, Name: name})
	}

	var added int64
	err := database.WithActorTransaction(ctx, s.db, actor, func(tx *gorm.DB) error {
		inserted, err := s.membershipRepository.InsertIgnoreDuplicates(ctx, tx, members)
		if err != nil {
			return fmt.Errorf("insert memberships: %w", err)
		}
		added = inserted
		return nil
	})
	if err != nil {
		return nil, err
	}

	skipped := int64(len(valid)) - added

	log.Info("names added to club",
		"club", clubName,
		"added", added,
		"skipped", skipped,
		"actor", logger.MaskAddress(actor),
	)

	return &AddNamesResponse{
		Success: true,
		Added:   added,
		Skipped: skipped,
	}, nil
}

// RemoveNames deletes the requested memberships case-insensitively. Removing
// a name that is not a member is a no-op, reflected only in the count.
func (s *MembershipService) RemoveNames(ctx context.Context, actor, clubName string, names []string) (*RemoveNamesResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.requireClub(ctx, clubName); err != nil {
		return nil, err
	}

	var removed int64
	err := database.WithActorTransaction(ctx, s.db, actor, func(tx *gorm.DB) error {
		deleted, err := s.membershipRepository.DeleteNames(ctx, tx, clubName, names)
		if err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		removed = deleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("names removed from club",
		"club", clubName,
		"removed", removed,
		"actor", logger.MaskAddress(actor),
	)

	return &RemoveNamesResponse{
		Success: true,
		Removed: removed,
	}, nil
}

func (s *MembershipService) ListMembers(ctx context.Context, clubName string, page, limit int) (*ListMembersResponse, error) {
	if err := s.requireClub(ctx, clubName); err != nil {
		return nil, err
	}

	members, total, err := s.membershipRepository.ListByClub(ctx, s.db, clubName, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	responses := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, MemberResponse{Name: m.Name, AddedAt: m.AddedAt})
	}

	return &ListMembersResponse{
		Members:    responses,
		Pagination: handler.NewPagination(page, limit, total),
	}, nil
}

// Scan re-validates every stored member name of a club and reports the ones
// that fail normalization or fall below the .eth label length floor. Pure
// read: nothing is mutated, and cleanup is a separate operator decision.
func (s *MembershipService) Scan(ctx context.Context, clubName string) (*ScanResponse, error) {
	if err := s.requireClub(ctx, clubName); err != nil {
		return nil, err
	}

	members, err := s.membershipRepository.AllByClub(ctx, s.db, clubName)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}

	invalid := []InvalidNameEntry{}
	for _, m := range members {
		reason, flagged := classifyStoredName(m.Name)
		if flagged {
			invalid = append(invalid, InvalidNameEntry{
				Name:    m.Name,
				Reason:  reason,
				AddedAt: m.AddedAt,
			})
		}
	}

	return &ScanResponse{
		TotalScanned: len(members),
		InvalidCount: len(invalid),
		InvalidNames: invalid,
	}, nil
}

func (s *MembershipService) requireClub(ctx context.Context, clubName string) error {
	_, err := s.clubRepository.FindByName(ctx, s.db, clubName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("club %s: %w", clubName, club.ErrClubNotFound)
		}
		return fmt.Errorf("find club: %w", err)
	}
	return nil
}

// checkCanonical enforces the strict-input policy of the bulk add form: the
// submitted name (after trimming and .eth completion for bare labels) must
// equal its own canonical form. The caller surfaces the canonical form as
// guidance instead of silently rewriting the input.
func checkCanonical(raw string) (canonical string, reason string) {
	normalized, err := ensname.Normalize(raw)
	if err != nil {
		switch {
		case errors.Is(err, ensname.ErrEmptyName):
			return "", "empty name"
		case errors.Is(err, ensname.ErrUnsupportedTLD):
			return "", "only .eth names are supported"
		default:
			return "", "failed ENS normalization"
		}
	}

	submitted := ensname.CompleteTLD(raw)
	if submitted != normalized {
		return "", fmt.Sprintf("must be in canonical form: %s", normalized)
	}

	return normalized, ""
}

// classifyStoredName applies the scanner's two rules to a persisted name.
func classifyStoredName(name string) (reason string, flagged bool) {
	if _, err := ensname.Normalize(name); err != nil {
		return "failed ENS normalization", true
	}

	if strings.HasSuffix(strings.ToLower(name), ensname.TLD) &&
		ensname.LabelLength(name) < ensname.MinLabelLength {
		return fmt.Sprintf("label shorter than %d characters", ensname.MinLabelLength), true
	}

	return "", false
}
