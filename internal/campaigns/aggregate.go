package campaigns

import (
	"math"
	"time"

	"github.com/google/uuid"

	"pulse/internal/eventstore"
)

// Aggregate folds classified clicks and email lifecycle events into the
// campaign report. human = total - bot holds exactly by construction.
func Aggregate(campaignID uuid.UUID, verdicts []Verdict, emails []eventstore.EmailEvent, now time.Time) ClickStats {
	stats := ClickStats{
		CampaignID:  campaignID,
		DataSource:  SourceTracked,
		TotalClicks: len(verdicts),
		Funnel:      buildFunnel(emails),
		ComputedAt:  now,
	}

	breakdown := &TrackedBreakdown{
		ByLinkType: make(map[eventstore.LinkType]LinkTypeStats),
	}
	humanContacts := make(map[uuid.UUID]bool)
	for _, v := range verdicts {
		linkStats := breakdown.ByLinkType[v.Click.LinkType]
		linkStats.Total++
		if v.IsBot {
			breakdown.BotClicks++
			linkStats.Bot++
		} else {
			breakdown.HumanClicks++
			linkStats.Human++
			humanContacts[v.Click.ContactID] = true
		}
		breakdown.ByLinkType[v.Click.LinkType] = linkStats
	}
	breakdown.UniqueHumanClickers = len(humanContacts)
	breakdown.ClickToBookingRate = pct(stats.Funnel.Booked, breakdown.HumanClicks)

	stats.Tracked = breakdown
	return stats
}

// AggregateResend builds the degraded report from webhook-level email events
// alone. No per-click data exists, so the tracked breakdown is omitted
// entirely rather than reported as zeros.
func AggregateResend(campaignID uuid.UUID, emails []eventstore.EmailEvent, now time.Time) ClickStats {
	totalClicks := 0
	for _, event := range emails {
		if event.EventType == eventstore.EmailClicked {
			totalClicks++
		}
	}

	return ClickStats{
		CampaignID:  campaignID,
		DataSource:  SourceResend,
		TotalClicks: totalClicks,
		Funnel:      buildFunnel(emails),
		ComputedAt:  now,
	}
}

// buildFunnel counts distinct contacts per lifecycle stage.
func buildFunnel(emails []eventstore.EmailEvent) AcquisitionFunnel {
	stages := map[eventstore.EmailEventType]map[uuid.UUID]bool{
		eventstore.EmailSent:     {},
		eventstore.EmailClicked:  {},
		eventstore.EmailBooked:   {},
		eventstore.EmailSignedUp: {},
	}
	for _, event := range emails {
		if contacts, ok := stages[event.EventType]; ok {
			contacts[event.ContactID] = true
		}
	}

	funnel := AcquisitionFunnel{
		Sent:     len(stages[eventstore.EmailSent]),
		Clicked:  len(stages[eventstore.EmailClicked]),
		Booked:   len(stages[eventstore.EmailBooked]),
		SignedUp: len(stages[eventstore.EmailSignedUp]),
	}
	funnel.ClickRate = pct(funnel.Clicked, funnel.Sent)
	funnel.BookedRate = pct(funnel.Booked, funnel.Sent)
	funnel.SignupRate = pct(funnel.SignedUp, funnel.Sent)
	return funnel
}

func pct(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) * 100 / float64(total)))
}
