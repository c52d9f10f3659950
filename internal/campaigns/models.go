package campaigns

import (
	"time"

	"github.com/google/uuid"

	"pulse/internal/eventstore"
)

// DataSource names where the click data came from. Per-click tracking gives
// the full breakdown; the webhook fallback only knows aggregate counts.
type DataSource string

const (
	SourceTracked DataSource = "tracked"
	SourceResend  DataSource = "resend"
)

// LinkTypeStats splits one link type's clicks by classification.
type LinkTypeStats struct {
	Total int `json:"total"`
	Human int `json:"human"`
	Bot   int `json:"bot"`
}

// TrackedBreakdown is the per-click analysis available only when the
// campaign uses tracked links. Absent in the resend fallback so the response
// never fabricates zeros that look authoritative.
type TrackedBreakdown struct {
	HumanClicks         int                                   `json:"human_clicks"`
	BotClicks           int                                   `json:"bot_clicks"`
	UniqueHumanClickers int                                   `json:"unique_human_clickers"`
	ClickToBookingRate  int                                   `json:"click_to_booking_rate"`
	ByLinkType          map[eventstore.LinkType]LinkTypeStats `json:"by_link_type"`
}

// AcquisitionFunnel is the contact journey through a campaign, built from
// email lifecycle events. Counts are distinct contacts; rates are whole
// percents of contacts emailed.
type AcquisitionFunnel struct {
	Sent       int `json:"sent"`
	Clicked    int `json:"clicked"`
	Booked     int `json:"booked"`
	SignedUp   int `json:"signed_up"`
	ClickRate  int `json:"click_rate"`
	BookedRate int `json:"booked_rate"`
	SignupRate int `json:"signup_rate"`
}

// ClickStats is the campaign click report.
type ClickStats struct {
	CampaignID  uuid.UUID         `json:"campaign_id"`
	DataSource  DataSource        `json:"data_source"`
	TotalClicks int               `json:"total_clicks"`
	Tracked     *TrackedBreakdown `json:"tracked,omitempty"`
	Funnel      AcquisitionFunnel `json:"funnel"`
	ComputedAt  time.Time         `json:"computed_at"`
}

// Verdict pairs a click with its classification. Matched names the heuristic
// that fired; empty for human clicks and for clicks classified in an earlier
// pass, whose stored verdict is final.
type Verdict struct {
	Click   eventstore.CampaignClick `json:"click"`
	IsBot   bool                     `json:"is_bot"`
	Matched string                   `json:"matched,omitempty"`
}
