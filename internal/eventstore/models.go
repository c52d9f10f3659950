package eventstore

import (
	"time"

	"github.com/google/uuid"
)

// Subscription tiers
type Tier string

const (
	TierFree  Tier = "free"
	TierTrial Tier = "trial"
	TierPro   Tier = "pro"
	TierPromo Tier = "promo"
)

func IsValidTier(tier string) bool {
	switch Tier(tier) {
	case TierFree, TierTrial, TierPro, TierPromo:
		return true
	default:
		return false
	}
}

// Activity event types
type EventType string

const (
	EventOpen     EventType = "open"
	EventComplete EventType = "complete"
)

// ActivityEvent is one feature interaction. Append-only; the source of all
// usage aggregates.
type ActivityEvent struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_activity_user_time,priority:1"`
	FeatureName string    `json:"feature_name" gorm:"not null;index"`
	EventType   EventType `json:"event_type" gorm:"not null"`
	OccurredAt  time.Time `json:"occurred_at" gorm:"not null;index:idx_activity_user_time,priority:2"`
}

// UserProfile carries the subscription state plus the engagement counters the
// app maintains (analyses, journal entries, streak, team activity). Mutated by
// the subscription lifecycle elsewhere; read-only for this service.
type UserProfile struct {
	ID             uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Email          string     `json:"email" gorm:"uniqueIndex;not null"`
	Tier           Tier       `json:"tier" gorm:"not null;default:'free';index"`
	CreatedAt      time.Time  `json:"created_at" gorm:"index"`
	PromoExpiresAt *time.Time `json:"promo_expires_at,omitempty"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
	TrialStartedAt *time.Time `json:"trial_started_at,omitempty"`
	ConvertedAt    *time.Time `json:"converted_at,omitempty"` // first reached a paid tier

	AnalysesCount     int `json:"analyses_count" gorm:"default:0"`
	JournalEntries    int `json:"journal_entries" gorm:"default:0"`
	CurrentStreakDays int `json:"current_streak_days" gorm:"default:0"`
	TeamMemberships   int `json:"team_memberships" gorm:"default:0"`
	MessagesSent      int `json:"messages_sent" gorm:"default:0"`
}

// Outreach email lifecycle events (B2B campaign side).
type EmailEventType string

const (
	EmailSent     EmailEventType = "sent"
	EmailOpened   EmailEventType = "open"
	EmailClicked  EmailEventType = "click"
	EmailBooked   EmailEventType = "booked"
	EmailSignedUp EmailEventType = "signed_up"
)

// EmailEvent is one step of a contact's journey through a campaign.
type EmailEvent struct {
	ID         uuid.UUID      `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	CampaignID uuid.UUID      `json:"campaign_id" gorm:"type:uuid;not null;index"`
	ContactID  uuid.UUID      `json:"contact_id" gorm:"type:uuid;not null;index"`
	EventType  EmailEventType `json:"event_type" gorm:"not null"`
	OccurredAt time.Time      `json:"occurred_at" gorm:"not null"`
}

// Campaign link taxonomy
type LinkType string

const (
	LinkCTACalendly LinkType = "cta_calendly"
	LinkCTAWebsite  LinkType = "cta_website"
	LinkLogo        LinkType = "logo"
	LinkUnsubscribe LinkType = "unsubscribe"
	LinkUnknown     LinkType = "unknown"
)

// CampaignClick is a tracked link click. IsBot is assigned once at
// classification time and never revised retroactively; rule changes apply to
// unclassified clicks only.
type CampaignClick struct {
	ID         uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	CampaignID uuid.UUID `json:"campaign_id" gorm:"type:uuid;not null;index"`
	ContactID  uuid.UUID `json:"contact_id" gorm:"type:uuid;not null;index"`
	LinkType   LinkType  `json:"link_type" gorm:"not null;default:'unknown'"`
	ClickedAt  time.Time `json:"clicked_at" gorm:"not null"`
	UserAgent  string    `json:"user_agent"`
	IsBot      bool      `json:"is_bot" gorm:"default:false"`
	Classified bool      `json:"classified" gorm:"default:false"`
}

// ProFeature names a feature gated to the pro tier; the catalog size is the
// denominator of the pro-usage ratio used by churn detection.
type ProFeature struct {
	Name string `json:"name" gorm:"primaryKey"`
}
