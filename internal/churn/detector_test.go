package churn

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/eventstore"
)

var now = time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)

func promoProfile(expiresIn time.Duration, lastActiveDaysAgo int) eventstore.UserProfile {
	expiry := now.Add(expiresIn)
	active := now.AddDate(0, 0, -lastActiveDaysAgo)
	return eventstore.UserProfile{
		ID:             uuid.New(),
		Email:          "user@example.com",
		Tier:           eventstore.TierPromo,
		PromoExpiresAt: &expiry,
		LastActivityAt: &active,
	}
}

func TestEvaluateCriticalOnExpiryPressureWithLowUsage(t *testing.T) {
	in := RiskInputs{
		Profile:         promoProfile(48*time.Hour, 1),
		ProFeaturesUsed: 1,
		ProCatalogSize:  10,
	}

	flag, flagged := Evaluate(in, now)

	require.True(t, flagged)
	assert.Equal(t, LevelCritical, flag.Level)
	assert.Contains(t, flag.Reason, "promo expires")
}

func TestEvaluateHighOnInactivity(t *testing.T) {
	active := now.AddDate(0, 0, -20)
	in := RiskInputs{
		Profile: eventstore.UserProfile{
			ID:             uuid.New(),
			Tier:           eventstore.TierPro,
			LastActivityAt: &active,
		},
		ProFeaturesUsed: 8,
		ProCatalogSize:  10,
	}

	flag, flagged := Evaluate(in, now)

	require.True(t, flagged)
	assert.Equal(t, LevelHigh, flag.Level)
	assert.Contains(t, flag.Reason, "inactive for 20 days")
}

func TestEvaluateHighWhenNeverActive(t *testing.T) {
	in := RiskInputs{
		Profile:         eventstore.UserProfile{ID: uuid.New(), Tier: eventstore.TierTrial},
		ProFeaturesUsed: 0,
		ProCatalogSize:  10,
	}

	flag, flagged := Evaluate(in, now)

	require.True(t, flagged)
	assert.Equal(t, LevelHigh, flag.Level)
}

func TestEvaluateMediumOnUnderuseWithoutExpiryPressure(t *testing.T) {
	active := now.AddDate(0, 0, -2)
	in := RiskInputs{
		Profile: eventstore.UserProfile{
			ID:             uuid.New(),
			Tier:           eventstore.TierPro,
			LastActivityAt: &active,
		},
		ProFeaturesUsed: 2,
		ProCatalogSize:  10,
	}

	flag, flagged := Evaluate(in, now)

	require.True(t, flagged)
	assert.Equal(t, LevelMedium, flag.Level)
	assert.Contains(t, flag.Reason, "20% of pro features")
}

func TestEvaluateHealthyUserNotFlagged(t *testing.T) {
	active := now.AddDate(0, 0, -1)
	in := RiskInputs{
		Profile: eventstore.UserProfile{
			ID:             uuid.New(),
			Tier:           eventstore.TierPro,
			LastActivityAt: &active,
		},
		ProFeaturesUsed: 7,
		ProCatalogSize:  10,
	}

	_, flagged := Evaluate(in, now)
	assert.False(t, flagged)
}

func TestEvaluatePrecedenceCriticalBeatsMedium(t *testing.T) {
	// Low usage (would be medium) plus imminent expiry resolves to exactly
	// one flag at critical.
	in := RiskInputs{
		Profile:         promoProfile(24*time.Hour, 1),
		ProFeaturesUsed: 1,
		ProCatalogSize:  10,
	}

	flag, flagged := Evaluate(in, now)

	require.True(t, flagged)
	assert.Equal(t, LevelCritical, flag.Level)
}

func TestEvaluateEmptyCatalogSkipsUsageRules(t *testing.T) {
	// Without a pro catalog there is no usage signal; an active user on an
	// expiring promo is not flagged by ratio rules.
	in := RiskInputs{
		Profile:         promoProfile(24*time.Hour, 1),
		ProFeaturesUsed: 0,
		ProCatalogSize:  0,
	}

	_, flagged := Evaluate(in, now)
	assert.False(t, flagged)
}

func TestEvaluateExpiredPromoIsNotPressure(t *testing.T) {
	// Expiry already in the past: no critical, falls through to medium on
	// underuse since there is no pressure window.
	in := RiskInputs{
		Profile:         promoProfile(-24*time.Hour, 1),
		ProFeaturesUsed: 1,
		ProCatalogSize:  10,
	}

	flag, flagged := Evaluate(in, now)

	require.True(t, flagged)
	assert.Equal(t, LevelMedium, flag.Level)
}

func TestResolveTiers(t *testing.T) {
	all, err := resolveTiers("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	one, err := resolveTiers("pro")
	require.NoError(t, err)
	assert.Equal(t, []eventstore.Tier{eventstore.TierPro}, one)

	_, err = resolveTiers("free")
	assert.Error(t, err)

	_, err = resolveTiers("platinum")
	assert.Error(t, err)
}
