package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pulse/internal/eventstore"
	"pulse/internal/shared/config"
	"pulse/internal/shared/database"

	"github.com/google/uuid"
)

type Seeder struct {
	db  *database.DB
	rng *rand.Rand
}

func main() {
	fmt.Println("Starting Pulse database seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(42)), // deterministic fixtures
	}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed. Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"campaign_clicks",
		"email_events",
		"activity_events",
		"pro_features",
		"user_profiles",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds the pro-feature catalog, user population, activity history
// and one outreach campaign with clicks
func (s *Seeder) SeedAll() error {
	if err := s.SeedProFeatures(); err != nil {
		return fmt.Errorf("failed to seed pro features: %w", err)
	}

	profiles, err := s.SeedUserProfiles()
	if err != nil {
		return fmt.Errorf("failed to seed user profiles: %w", err)
	}

	if err := s.SeedActivityEvents(profiles); err != nil {
		return fmt.Errorf("failed to seed activity events: %w", err)
	}

	if err := s.SeedCampaign(); err != nil {
		return fmt.Errorf("failed to seed campaign data: %w", err)
	}

	return nil
}

var featureCatalog = []string{
	"workout_planner", "session_timer", "progress_chart", "video_analysis",
	"journal", "team_feed", "leaderboard", "goal_tracker", "nutrition_log",
	"coach_chat", "export_reports", "custom_drills",
}

// Pro-gated subset of the catalog; the denominator of the churn usage ratio.
var proFeatures = []string{
	"video_analysis", "coach_chat", "export_reports", "custom_drills", "nutrition_log",
}

func (s *Seeder) SeedProFeatures() error {
	for _, name := range proFeatures {
		if err := s.db.PostgreSQL.Create(&eventstore.ProFeature{Name: name}).Error; err != nil {
			return err
		}
	}
	fmt.Printf("  Seeded %d pro features\n", len(proFeatures))
	return nil
}

// SeedUserProfiles creates a mixed population across tiers and signup weeks:
// recent power users, growing users, dormant paid users and expiring promos,
// so every metric endpoint has something to show.
func (s *Seeder) SeedUserProfiles() ([]eventstore.UserProfile, error) {
	now := time.Now().UTC()
	profiles := make([]eventstore.UserProfile, 0, 120)

	for i := 0; i < 120; i++ {
		weeksAgo := s.rng.Intn(12)
		signup := now.AddDate(0, 0, -7*weeksAgo-s.rng.Intn(7))

		profile := eventstore.UserProfile{
			ID:        uuid.New(),
			Email:     fmt.Sprintf("user%03d@example.com", i),
			Tier:      s.pickTier(i),
			CreatedAt: signup,
		}

		switch {
		case i%10 == 0:
			// Dormant: no activity since shortly after signup.
			stale := signup.AddDate(0, 0, 2)
			profile.LastActivityAt = &stale
		case i%7 == 0:
			// Inactive long enough to trip churn detection.
			inactive := now.AddDate(0, 0, -16)
			profile.LastActivityAt = &inactive
		default:
			recent := now.AddDate(0, 0, -s.rng.Intn(5))
			profile.LastActivityAt = &recent
			profile.AnalysesCount = s.rng.Intn(15)
			profile.JournalEntries = s.rng.Intn(20)
			profile.CurrentStreakDays = s.rng.Intn(12)
			profile.TeamMemberships = s.rng.Intn(3)
			profile.MessagesSent = s.rng.Intn(60)
		}

		if profile.Tier == eventstore.TierPromo {
			expiry := now.AddDate(0, 0, s.rng.Intn(10)-2)
			profile.PromoExpiresAt = &expiry
		}
		if profile.Tier == eventstore.TierTrial || profile.Tier == eventstore.TierPro {
			trialStart := signup.AddDate(0, 0, 1)
			profile.TrialStartedAt = &trialStart
		}
		if profile.Tier == eventstore.TierPro {
			converted := signup.AddDate(0, 0, 3+s.rng.Intn(20))
			profile.ConvertedAt = &converted
		}

		if err := s.db.PostgreSQL.Create(&profile).Error; err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}

	fmt.Printf("  Seeded %d user profiles\n", len(profiles))
	return profiles, nil
}

func (s *Seeder) pickTier(i int) eventstore.Tier {
	switch {
	case i%5 == 0:
		return eventstore.TierPro
	case i%5 == 1:
		return eventstore.TierTrial
	case i%5 == 2:
		return eventstore.TierPromo
	default:
		return eventstore.TierFree
	}
}

func (s *Seeder) SeedActivityEvents(profiles []eventstore.UserProfile) error {
	total := 0
	for idx, profile := range profiles {
		if profile.LastActivityAt == nil {
			continue
		}

		// Breadth scales with position so the population spans all segments.
		breadth := 1 + idx%len(featureCatalog)
		for day := 0; day < 30; day++ {
			if s.rng.Intn(3) != 0 {
				continue
			}
			occurred := profile.CreatedAt.AddDate(0, 0, day).Add(time.Duration(s.rng.Intn(12)) * time.Hour)
			event := eventstore.ActivityEvent{
				ID:          uuid.New(),
				UserID:      profile.ID,
				FeatureName: featureCatalog[s.rng.Intn(breadth)],
				EventType:   eventstore.EventOpen,
				OccurredAt:  occurred,
			}
			if err := s.db.PostgreSQL.Create(&event).Error; err != nil {
				return err
			}
			total++
		}
	}

	fmt.Printf("  Seeded %d activity events\n", total)
	return nil
}

// SeedCampaign creates one campaign with sends, human clicks and an obvious
// scanner burst so the classifier has both classes to find.
func (s *Seeder) SeedCampaign() error {
	campaignID := uuid.New()
	sendTime := time.Now().UTC().AddDate(0, 0, -3)

	for i := 0; i < 40; i++ {
		contactID := uuid.New()

		sent := eventstore.EmailEvent{
			ID:         uuid.New(),
			CampaignID: campaignID,
			ContactID:  contactID,
			EventType:  eventstore.EmailSent,
			OccurredAt: sendTime,
		}
		if err := s.db.PostgreSQL.Create(&sent).Error; err != nil {
			return err
		}

		switch {
		case i < 8:
			// Gateway scanner: instant clicks on every link.
			for j := 0; j < 3; j++ {
				click := eventstore.CampaignClick{
					ID:         uuid.New(),
					CampaignID: campaignID,
					ContactID:  contactID,
					LinkType:   eventstore.LinkCTAWebsite,
					ClickedAt:  sendTime.Add(time.Duration(j+1) * time.Second),
					UserAgent:  "Barracuda Sentinel (EE)",
				}
				if err := s.db.PostgreSQL.Create(&click).Error; err != nil {
					return err
				}
			}
		case i < 20:
			// Human click hours later, some booking a call.
			click := eventstore.CampaignClick{
				ID:         uuid.New(),
				CampaignID: campaignID,
				ContactID:  contactID,
				LinkType:   eventstore.LinkCTACalendly,
				ClickedAt:  sendTime.Add(time.Duration(2+s.rng.Intn(40)) * time.Hour),
				UserAgent:  "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Safari/605.1.15",
			}
			if err := s.db.PostgreSQL.Create(&click).Error; err != nil {
				return err
			}

			clicked := eventstore.EmailEvent{
				ID:         uuid.New(),
				CampaignID: campaignID,
				ContactID:  contactID,
				EventType:  eventstore.EmailClicked,
				OccurredAt: click.ClickedAt,
			}
			if err := s.db.PostgreSQL.Create(&clicked).Error; err != nil {
				return err
			}

			if i < 14 {
				booked := eventstore.EmailEvent{
					ID:         uuid.New(),
					CampaignID: campaignID,
					ContactID:  contactID,
					EventType:  eventstore.EmailBooked,
					OccurredAt: click.ClickedAt.Add(time.Hour),
				}
				if err := s.db.PostgreSQL.Create(&booked).Error; err != nil {
					return err
				}
			}
		}
	}

	fmt.Printf("  Seeded campaign %s\n", campaignID)
	return nil
}
