package dashboard

import (
	"time"

	"pulse/internal/churn"
	"pulse/internal/cohorts"
	"pulse/internal/eventstore"
	"pulse/internal/funnel"
	"pulse/internal/opportunities"
	"pulse/internal/segments"
)

// Overview is the dashboard headline strip.
type Overview struct {
	TotalUsers        int64                   `json:"total_users"`
	UsersByTier       map[eventstore.Tier]int `json:"users_by_tier"`
	ChurnRisksFlagged int                     `json:"churn_risks_flagged"`
	CriticalRisks     int                     `json:"critical_risks"`
	Opportunities     int                     `json:"opportunities"`
}

// DashboardAnalytics is the aggregate the admin dashboard renders on load:
// one response composing every metric component.
type DashboardAnalytics struct {
	Overview            Overview                              `json:"overview"`
	SegmentDistribution map[segments.Segment]int              `json:"segment_distribution"`
	Funnel              funnel.FunnelSnapshot                 `json:"funnel"`
	Cohorts             []cohorts.Cohort                      `json:"cohorts"`
	TopChurnRisks       []churn.ChurnRiskFlag                 `json:"top_churn_risks"`
	TopOpportunities    []opportunities.ConversionOpportunity `json:"top_opportunities"`
	GeneratedAt         time.Time                             `json:"generated_at"`
}
