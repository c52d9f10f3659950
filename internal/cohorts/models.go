package cohorts

import (
	"time"
)

// Cohort is one ISO signup week with its day-bucketed retention curve.
// Retained counts are exact-day presence: D7 counts signups with at least one
// activity event on calendar day 7 after signup, not "within 7 days". Rates
// are whole percents of the signup count.
type Cohort struct {
	WeekStart time.Time `json:"week_start"`
	Signups   int       `json:"signups"`

	D1        int `json:"d1"`
	D7        int `json:"d7"`
	D14       int `json:"d14"`
	D30       int `json:"d30"`
	Converted int `json:"converted"`

	D1Rate         int `json:"d1_rate"`
	D7Rate         int `json:"d7_rate"`
	D14Rate        int `json:"d14_rate"`
	D30Rate        int `json:"d30_rate"`
	ConversionRate int `json:"conversion_rate"`
}

// SignupActivity is one cohort member's observed behavior: activity
// timestamps inside the observation window and the conversion moment, if any.
type SignupActivity struct {
	SignedUpAt  time.Time
	ActivityAt  []time.Time
	ConvertedAt *time.Time
}
