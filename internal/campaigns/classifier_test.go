package campaigns

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse/internal/eventstore"
)

var (
	campaignID = uuid.New()
	sendTime   = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
)

func click(contactID uuid.UUID, after time.Duration, userAgent string) eventstore.CampaignClick {
	return eventstore.CampaignClick{
		ID:         uuid.New(),
		CampaignID: campaignID,
		ContactID:  contactID,
		LinkType:   eventstore.LinkCTACalendly,
		ClickedAt:  sendTime.Add(after),
		UserAgent:  userAgent,
	}
}

func sentEvent(contactID uuid.UUID) eventstore.EmailEvent {
	return eventstore.EmailEvent{
		ID:         uuid.New(),
		CampaignID: campaignID,
		ContactID:  contactID,
		EventType:  eventstore.EmailSent,
		OccurredAt: sendTime,
	}
}

func sentMap(contacts ...uuid.UUID) map[uuid.UUID]time.Time {
	m := make(map[uuid.UUID]time.Time, len(contacts))
	for _, c := range contacts {
		m[c] = sendTime
	}
	return m
}

const humanUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Safari/605.1.15"

func TestScannerUserAgentAlwaysBot(t *testing.T) {
	contact := uuid.New()
	// Hours after the send, so timing heuristics cannot be the trigger.
	c := click(contact, 6*time.Hour, "Barracuda Sentinel (EE)")

	verdicts := Classify([]eventstore.CampaignClick{c}, sentMap(contact), DefaultHeuristics())

	require.Len(t, verdicts, 1)
	assert.True(t, verdicts[0].IsBot)
	assert.Equal(t, "scanner_user_agent", verdicts[0].Matched)
}

func TestFastClickAfterSendIsBot(t *testing.T) {
	contact := uuid.New()
	c := click(contact, 2*time.Second, humanUA)

	verdicts := Classify([]eventstore.CampaignClick{c}, sentMap(contact), DefaultHeuristics())

	require.Len(t, verdicts, 1)
	assert.True(t, verdicts[0].IsBot)
	assert.Equal(t, "fast_click_after_send", verdicts[0].Matched)
}

func TestSlowHumanClickNotBot(t *testing.T) {
	contact := uuid.New()
	c := click(contact, 3*time.Hour, humanUA)

	verdicts := Classify([]eventstore.CampaignClick{c}, sentMap(contact), DefaultHeuristics())

	require.Len(t, verdicts, 1)
	assert.False(t, verdicts[0].IsBot)
	assert.Empty(t, verdicts[0].Matched)
}

func TestRapidFireDuplicatesAreBots(t *testing.T) {
	contact := uuid.New()
	clicks := []eventstore.CampaignClick{
		click(contact, 1*time.Hour, humanUA),
		click(contact, 1*time.Hour+3*time.Second, humanUA),
		click(contact, 1*time.Hour+6*time.Second, humanUA),
	}

	verdicts := Classify(clicks, sentMap(contact), DefaultHeuristics())

	for _, v := range verdicts {
		assert.True(t, v.IsBot)
		assert.Equal(t, "rapid_fire_duplicates", v.Matched)
	}
}

func TestTwoSpacedClicksAreNotRapidFire(t *testing.T) {
	contact := uuid.New()
	clicks := []eventstore.CampaignClick{
		click(contact, 1*time.Hour, humanUA),
		click(contact, 2*time.Hour, humanUA),
	}

	verdicts := Classify(clicks, sentMap(contact), DefaultHeuristics())

	for _, v := range verdicts {
		assert.False(t, v.IsBot)
	}
}

func TestClassifiedClicksKeepStoredVerdict(t *testing.T) {
	contact := uuid.New()
	// Stored as human in an earlier pass even though the UA would match
	// today's rules. Classification is write-once.
	c := click(contact, 4*time.Hour, "curl/8.4.0")
	c.Classified = true
	c.IsBot = false

	verdicts := Classify([]eventstore.CampaignClick{c}, sentMap(contact), DefaultHeuristics())

	require.Len(t, verdicts, 1)
	assert.False(t, verdicts[0].IsBot)
	assert.Empty(t, verdicts[0].Matched)
}

func TestCustomRuleSetIsSwappable(t *testing.T) {
	contact := uuid.New()
	flagEverything := []Heuristic{{
		Name:  "flag_everything",
		Match: func(eventstore.CampaignClick, *ClickEnv) bool { return true },
	}}

	verdicts := Classify([]eventstore.CampaignClick{click(contact, time.Hour, humanUA)}, sentMap(contact), flagEverything)

	require.Len(t, verdicts, 1)
	assert.True(t, verdicts[0].IsBot)
	assert.Equal(t, "flag_everything", verdicts[0].Matched)
}

func TestAggregateHumanEqualsTotalMinusBot(t *testing.T) {
	human1, human2, scanner := uuid.New(), uuid.New(), uuid.New()
	clicks := []eventstore.CampaignClick{
		click(human1, 2*time.Hour, humanUA),
		click(human1, 5*time.Hour, humanUA),
		click(human2, 3*time.Hour, humanUA),
		click(scanner, 1*time.Second, "python-requests/2.31"),
	}
	emails := []eventstore.EmailEvent{sentEvent(human1), sentEvent(human2), sentEvent(scanner)}

	verdicts := Classify(clicks, sendTimes(emails), DefaultHeuristics())
	stats := Aggregate(campaignID, verdicts, emails, sendTime.Add(24*time.Hour))

	require.NotNil(t, stats.Tracked)
	assert.Equal(t, SourceTracked, stats.DataSource)
	assert.Equal(t, 4, stats.TotalClicks)
	assert.Equal(t, 1, stats.Tracked.BotClicks)
	assert.Equal(t, stats.TotalClicks-stats.Tracked.BotClicks, stats.Tracked.HumanClicks)
	assert.Equal(t, 2, stats.Tracked.UniqueHumanClickers)

	calendly := stats.Tracked.ByLinkType[eventstore.LinkCTACalendly]
	assert.Equal(t, 4, calendly.Total)
	assert.Equal(t, 3, calendly.Human)
	assert.Equal(t, 1, calendly.Bot)
}

func TestAggregateClickToBookingRate(t *testing.T) {
	human := uuid.New()
	clicks := []eventstore.CampaignClick{
		click(human, 2*time.Hour, humanUA),
	}
	emails := []eventstore.EmailEvent{
		sentEvent(human),
		{ID: uuid.New(), CampaignID: campaignID, ContactID: human, EventType: eventstore.EmailBooked, OccurredAt: sendTime.Add(3 * time.Hour)},
	}

	verdicts := Classify(clicks, sendTimes(emails), DefaultHeuristics())
	stats := Aggregate(campaignID, verdicts, emails, sendTime.Add(24*time.Hour))

	require.NotNil(t, stats.Tracked)
	assert.Equal(t, 100, stats.Tracked.ClickToBookingRate)
}

func TestAggregateBookingRateZeroWithoutHumanClicks(t *testing.T) {
	scanner := uuid.New()
	clicks := []eventstore.CampaignClick{click(scanner, 1*time.Second, "slackbot 1.0")}
	emails := []eventstore.EmailEvent{sentEvent(scanner)}

	verdicts := Classify(clicks, sendTimes(emails), DefaultHeuristics())
	stats := Aggregate(campaignID, verdicts, emails, sendTime.Add(24*time.Hour))

	require.NotNil(t, stats.Tracked)
	assert.Zero(t, stats.Tracked.HumanClicks)
	assert.Zero(t, stats.Tracked.ClickToBookingRate)
}

func TestAggregateResendOmitsTrackedBreakdown(t *testing.T) {
	c1, c2 := uuid.New(), uuid.New()
	emails := []eventstore.EmailEvent{
		sentEvent(c1),
		sentEvent(c2),
		{ID: uuid.New(), CampaignID: campaignID, ContactID: c1, EventType: eventstore.EmailClicked, OccurredAt: sendTime.Add(time.Hour)},
		{ID: uuid.New(), CampaignID: campaignID, ContactID: c1, EventType: eventstore.EmailClicked, OccurredAt: sendTime.Add(2 * time.Hour)},
	}

	stats := AggregateResend(campaignID, emails, sendTime.Add(24*time.Hour))

	assert.Equal(t, SourceResend, stats.DataSource)
	assert.Equal(t, 2, stats.TotalClicks)
	assert.Nil(t, stats.Tracked)
	assert.Equal(t, 2, stats.Funnel.Sent)
	assert.Equal(t, 1, stats.Funnel.Clicked)
	assert.Equal(t, 50, stats.Funnel.ClickRate)
}
