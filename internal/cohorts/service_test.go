package cohorts

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/eventstore"
	"pulse/internal/shared/errs"
	"pulse/pkg/cache"
)

// memStore serves profiles and activity events from memory, applying the
// same half-open window filter the gorm store uses.
type memStore struct {
	profiles []eventstore.UserProfile
	events   []eventstore.ActivityEvent
}

func (m *memStore) GetActivityEvents(_ context.Context, userID *uuid.UUID, since, until time.Time) ([]eventstore.ActivityEvent, error) {
	var out []eventstore.ActivityEvent
	for _, event := range m.events {
		if userID != nil && event.UserID != *userID {
			continue
		}
		if !since.IsZero() && event.OccurredAt.Before(since) {
			continue
		}
		if !event.OccurredAt.Before(until) {
			continue
		}
		out = append(out, event)
	}
	return out, nil
}

func (m *memStore) GetFeatureEvents(ctx context.Context, userID *uuid.UUID, since, until time.Time) ([]eventstore.ActivityEvent, error) {
	return m.GetActivityEvents(ctx, userID, since, until)
}

func (m *memStore) GetUserProfile(context.Context, uuid.UUID) (*eventstore.UserProfile, error) {
	return nil, nil
}

func (m *memStore) GetSignups(_ context.Context, weekStart, weekEnd time.Time) ([]eventstore.UserProfile, error) {
	var out []eventstore.UserProfile
	for _, profile := range m.profiles {
		if !profile.CreatedAt.Before(weekStart) && profile.CreatedAt.Before(weekEnd) {
			out = append(out, profile)
		}
	}
	return out, nil
}

func (m *memStore) GetCampaignClicks(context.Context, uuid.UUID) ([]eventstore.CampaignClick, error) {
	return nil, nil
}

func (m *memStore) GetCampaignEmailEvents(context.Context, uuid.UUID) ([]eventstore.EmailEvent, error) {
	return nil, nil
}

func (m *memStore) DistinctFeatureCount(context.Context, uuid.UUID) (int, error) { return 0, nil }
func (m *memStore) TotalFeatureOpens(context.Context, uuid.UUID) (int, error) { return 0, nil }
func (m *memStore) ProFeaturesUsed(context.Context, uuid.UUID) (int, error) { return 0, nil }
func (m *memStore) ProFeatureCatalogSize(context.Context) (int, error) { return 0, nil }

func (m *memStore) GetProfilesByTier(context.Context, ...eventstore.Tier) ([]eventstore.UserProfile, error) {
	return m.profiles, nil
}

func (m *memStore) ListUserIDs(context.Context) ([]uuid.UUID, error) { return nil, nil }
func (m *memStore) CountUsers(context.Context) (int64, error) { return int64(len(m.profiles)), nil }

func (m *memStore) SaveClickClassification(context.Context, uuid.UUID, bool) error { return nil }

// passthroughCache always misses and hands the fetched value straight back.
type passthroughCache struct{}

func (passthroughCache) Get(context.Context, string, interface{}) error { return cache.ErrCacheMiss }
func (passthroughCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (passthroughCache) Delete(context.Context, string) error { return nil }
func (passthroughCache) DeletePattern(context.Context, string) error { return nil }
func (passthroughCache) Exists(context.Context, string) bool { return false }
func (passthroughCache) Ping(context.Context) error { return nil }

func (passthroughCache) GetOrSet(_ context.Context, _ string, _ time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	data, err := fetcher()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func TestGetCohortsCountsLateDayThirtyActivity(t *testing.T) {
	now := time.Now().UTC()
	signupDay := dateOf(now.AddDate(0, 0, -31))
	signup := signupDay.Add(9 * time.Hour)

	userID := uuid.New()
	store := &memStore{
		profiles: []eventstore.UserProfile{{
			ID:        userID,
			Email:     "late@example.com",
			Tier:      eventstore.TierFree,
			CreatedAt: signup,
		}},
		events: []eventstore.ActivityEvent{{
			ID:          uuid.New(),
			UserID:      userID,
			FeatureName: "journal",
			EventType:   eventstore.EventOpen,
			// Calendar day 30, but later in the day than the signup's
			// clock time. A 30*24h load window would drop it.
			OccurredAt: signupDay.AddDate(0, 0, 30).Add(15 * time.Hour),
		}},
	}

	svc := NewService(store, passthroughCache{})
	cohorts, err := svc.GetCohorts(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, cohorts, 8)

	var found *Cohort
	for i := range cohorts {
		if cohorts[i].WeekStart.Equal(WeekStartOf(signup)) {
			found = &cohorts[i]
		}
	}
	require.NotNil(t, found, "signup week missing from cohort series")

	assert.Equal(t, 1, found.Signups)
	assert.Equal(t, 1, found.D30)
	assert.Equal(t, 100, found.D30Rate)
}

func TestGetCohortsRejectsNonPositiveWeeks(t *testing.T) {
	svc := NewService(&memStore{}, passthroughCache{})

	_, err := svc.GetCohorts(context.Background(), 0)
	assert.ErrorIs(t, err, errs.ErrInvalidWindow)
}
