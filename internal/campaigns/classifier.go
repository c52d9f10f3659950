package campaigns

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"pulse/internal/eventstore"
	"pulse/internal/shared/constants"
)

// Heuristic is one bot signal. Heuristics are OR'd: any single match marks
// the click as a bot. The exact rule mix is product-tuned, so the set is a
// plain slice callers can swap or extend.
type Heuristic struct {
	Name  string
	Match func(click eventstore.CampaignClick, env *ClickEnv) bool
}

// ClickEnv is the shared context heuristics evaluate against.
type ClickEnv struct {
	// SentAt maps each contact to the campaign send time.
	SentAt map[uuid.UUID]time.Time

	rapidFire map[uuid.UUID]bool
}

// DefaultHeuristics is the starting bot-detection policy.
func DefaultHeuristics() []Heuristic {
	return []Heuristic{
		ScannerUserAgent(),
		FastClickAfterSend(),
		RapidFireDuplicates(),
	}
}

// ScannerUserAgent matches known scanner and crawler user-agent substrings,
// case-insensitively.
func ScannerUserAgent() Heuristic {
	return Heuristic{
		Name: "scanner_user_agent",
		Match: func(click eventstore.CampaignClick, _ *ClickEnv) bool {
			ua := strings.ToLower(click.UserAgent)
			for _, marker := range constants.BotUserAgentMarkers {
				if strings.Contains(ua, marker) {
					return true
				}
			}
			return false
		},
	}
}

// FastClickAfterSend matches clicks implausibly soon after the send, the
// signature of mail-gateway link scanners.
func FastClickAfterSend() Heuristic {
	return Heuristic{
		Name: "fast_click_after_send",
		Match: func(click eventstore.CampaignClick, env *ClickEnv) bool {
			sent, ok := env.SentAt[click.ContactID]
			if !ok {
				return false
			}
			delta := click.ClickedAt.Sub(sent)
			return delta >= 0 && delta <= constants.CLICK_BOT_FAST_CLICK_WINDOW
		},
	}
}

// RapidFireDuplicates matches clicks that belong to a burst of repeats from
// one contact within seconds.
func RapidFireDuplicates() Heuristic {
	return Heuristic{
		Name: "rapid_fire_duplicates",
		Match: func(click eventstore.CampaignClick, env *ClickEnv) bool {
			return env.rapidFire[click.ID]
		},
	}
}

// Classify runs the rule set over a campaign's clicks. Clicks classified in
// an earlier pass keep their stored verdict untouched; rule changes only ever
// apply to unclassified clicks.
func Classify(clicks []eventstore.CampaignClick, sentAt map[uuid.UUID]time.Time, rules []Heuristic) []Verdict {
	env := &ClickEnv{
		SentAt:    sentAt,
		rapidFire: detectRapidFire(clicks),
	}

	verdicts := make([]Verdict, 0, len(clicks))
	for _, click := range clicks {
		if click.Classified {
			verdicts = append(verdicts, Verdict{Click: click, IsBot: click.IsBot})
			continue
		}

		verdict := Verdict{Click: click}
		for _, rule := range rules {
			if rule.Match(click, env) {
				verdict.IsBot = true
				verdict.Matched = rule.Name
				break
			}
		}
		verdicts = append(verdicts, verdict)
	}
	return verdicts
}

// detectRapidFire marks every click that sits inside a run of at least
// CLICK_BOT_DUPLICATE_MIN_HITS clicks from the same contact within the
// duplicate window.
func detectRapidFire(clicks []eventstore.CampaignClick) map[uuid.UUID]bool {
	byContact := make(map[uuid.UUID][]eventstore.CampaignClick)
	for _, click := range clicks {
		byContact[click.ContactID] = append(byContact[click.ContactID], click)
	}

	marked := make(map[uuid.UUID]bool)
	for _, contactClicks := range byContact {
		sort.Slice(contactClicks, func(i, j int) bool {
			return contactClicks[i].ClickedAt.Before(contactClicks[j].ClickedAt)
		})

		left := 0
		for right := range contactClicks {
			for contactClicks[right].ClickedAt.Sub(contactClicks[left].ClickedAt) > constants.CLICK_BOT_DUPLICATE_WINDOW {
				left++
			}
			if right-left+1 >= constants.CLICK_BOT_DUPLICATE_MIN_HITS {
				for i := left; i <= right; i++ {
					marked[contactClicks[i].ID] = true
				}
			}
		}
	}
	return marked
}
