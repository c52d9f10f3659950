package eventstore

import (
	"context"
	"errors"
	"time"

	"pulse/internal/shared/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the read interface the metric components consume. Every call takes
// a context so a stalled pass can be abandoned cleanly; implementations wrap
// their failures as errs.DataUnavailable so callers never mistake a broken
// read for an empty result.
type Store interface {
	// Raw event queries
	GetActivityEvents(ctx context.Context, userID *uuid.UUID, since, until time.Time) ([]ActivityEvent, error)
	GetFeatureEvents(ctx context.Context, userID *uuid.UUID, since, until time.Time) ([]ActivityEvent, error)
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error)
	GetSignups(ctx context.Context, weekStart, weekEnd time.Time) ([]UserProfile, error)
	GetCampaignClicks(ctx context.Context, campaignID uuid.UUID) ([]CampaignClick, error)
	GetCampaignEmailEvents(ctx context.Context, campaignID uuid.UUID) ([]EmailEvent, error)

	// Per-user aggregates
	DistinctFeatureCount(ctx context.Context, userID uuid.UUID) (int, error)
	TotalFeatureOpens(ctx context.Context, userID uuid.UUID) (int, error)
	ProFeaturesUsed(ctx context.Context, userID uuid.UUID) (int, error)

	// Catalog / population queries
	ProFeatureCatalogSize(ctx context.Context) (int, error)
	GetProfilesByTier(ctx context.Context, tiers ...Tier) ([]UserProfile, error)
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
	CountUsers(ctx context.Context) (int64, error)

	// Click classification persistence (IsBot is write-once)
	SaveClickClassification(ctx context.Context, clickID uuid.UUID, isBot bool) error
}

// store implements Store over gorm
type store struct {
	db *gorm.DB
}

// NewStore creates the gorm-backed event store
func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

// validateWindow rejects inverted or empty windows before any query runs.
// A zero `since` means "all time" and is allowed.
func validateWindow(since, until time.Time) error {
	if until.IsZero() {
		return errs.ErrInvalidWindow
	}
	if !since.IsZero() && !until.After(since) {
		return errs.ErrInvalidWindow
	}
	return nil
}

func (s *store) GetActivityEvents(ctx context.Context, userID *uuid.UUID, since, until time.Time) ([]ActivityEvent, error) {
	if err := validateWindow(since, until); err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Model(&ActivityEvent{}).Where("occurred_at < ?", until)
	if !since.IsZero() {
		q = q.Where("occurred_at >= ?", since)
	}
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var events []ActivityEvent
	if err := q.Order("occurred_at ASC").Find(&events).Error; err != nil {
		return nil, errs.DataUnavailable("get activity events", err)
	}
	return events, nil
}

func (s *store) GetFeatureEvents(ctx context.Context, userID *uuid.UUID, since, until time.Time) ([]ActivityEvent, error) {
	if err := validateWindow(since, until); err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Model(&ActivityEvent{}).
		Where("occurred_at < ?", until).
		Where("feature_name <> ''")
	if !since.IsZero() {
		q = q.Where("occurred_at >= ?", since)
	}
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var events []ActivityEvent
	if err := q.Order("occurred_at ASC").Find(&events).Error; err != nil {
		return nil, errs.DataUnavailable("get feature events", err)
	}
	return events, nil
}

func (s *store) GetUserProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	var profile UserProfile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.DataUnavailable("get user profile", err)
	}
	return &profile, nil
}

func (s *store) GetSignups(ctx context.Context, weekStart, weekEnd time.Time) ([]UserProfile, error) {
	if err := validateWindow(weekStart, weekEnd); err != nil {
		return nil, err
	}

	var profiles []UserProfile
	err := s.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", weekStart, weekEnd).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, errs.DataUnavailable("get signups", err)
	}
	return profiles, nil
}

func (s *store) GetCampaignClicks(ctx context.Context, campaignID uuid.UUID) ([]CampaignClick, error) {
	var clicks []CampaignClick
	err := s.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("clicked_at ASC").
		Find(&clicks).Error
	if err != nil {
		return nil, errs.DataUnavailable("get campaign clicks", err)
	}
	return clicks, nil
}

func (s *store) GetCampaignEmailEvents(ctx context.Context, campaignID uuid.UUID) ([]EmailEvent, error) {
	var events []EmailEvent
	err := s.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("occurred_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, errs.DataUnavailable("get campaign email events", err)
	}
	return events, nil
}

func (s *store) DistinctFeatureCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&ActivityEvent{}).
		Where("user_id = ? AND feature_name <> ''", userID).
		Distinct("feature_name").
		Count(&count).Error
	if err != nil {
		return 0, errs.DataUnavailable("distinct feature count", err)
	}
	return int(count), nil
}

func (s *store) TotalFeatureOpens(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&ActivityEvent{}).
		Where("user_id = ? AND event_type = ?", userID, EventOpen).
		Count(&count).Error
	if err != nil {
		return 0, errs.DataUnavailable("total feature opens", err)
	}
	return int(count), nil
}

func (s *store) ProFeaturesUsed(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&ActivityEvent{}).
		Where("user_id = ?", userID).
		Where("feature_name IN (?)", s.db.Model(&ProFeature{}).Select("name")).
		Distinct("feature_name").
		Count(&count).Error
	if err != nil {
		return 0, errs.DataUnavailable("pro features used", err)
	}
	return int(count), nil
}

func (s *store) ProFeatureCatalogSize(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&ProFeature{}).Count(&count).Error; err != nil {
		return 0, errs.DataUnavailable("pro feature catalog size", err)
	}
	return int(count), nil
}

func (s *store) GetProfilesByTier(ctx context.Context, tiers ...Tier) ([]UserProfile, error) {
	q := s.db.WithContext(ctx).Model(&UserProfile{})
	if len(tiers) > 0 {
		q = q.Where("tier IN ?", tiers)
	}

	var profiles []UserProfile
	if err := q.Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, errs.DataUnavailable("get profiles by tier", err)
	}
	return profiles, nil
}

func (s *store) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&UserProfile{}).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, errs.DataUnavailable("list user ids", err)
	}
	return ids, nil
}

func (s *store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&UserProfile{}).Count(&count).Error; err != nil {
		return 0, errs.DataUnavailable("count users", err)
	}
	return count, nil
}

func (s *store) SaveClickClassification(ctx context.Context, clickID uuid.UUID, isBot bool) error {
	err := s.db.WithContext(ctx).Model(&CampaignClick{}).
		Where("id = ? AND classified = false", clickID).
		Updates(map[string]interface{}{"is_bot": isBot, "classified": true}).Error
	if err != nil {
		return errs.DataUnavailable("save click classification", err)
	}
	return nil
}
