package billing

import (
	"math"
	"time"
)

// DaysRemaining returns ceil((end - now) / 1 day), or nil when end is nil.
// A negative value means the period expired that many days ago.
func DaysRemaining(end *time.Time, now time.Time) *int {
	if end == nil {
		return nil
	}
	days := int(math.Ceil(end.Sub(now).Hours() / 24))
	return &days
}

// TrialRemaining is the decomposed time left in a trial.
type TrialRemaining struct {
	Expired      bool `json:"expired"`
	Days         int  `json:"days"`
	Hours        int  `json:"hours"`
	Minutes      int  `json:"minutes"`
	TotalMinutes int  `json:"total_minutes"`
}

// TrialTimeRemaining decomposes the time until trialEndsAt into day, hour and
// minute components. A lapsed or exactly-now trial returns Expired with
// zeroed components; a nil trial end returns nil.
func TrialTimeRemaining(trialEndsAt *time.Time, now time.Time) *TrialRemaining {
	if trialEndsAt == nil {
		return nil
	}
	diff := trialEndsAt.Sub(now)
	if diff <= 0 {
		return &TrialRemaining{Expired: true}
	}
	return &TrialRemaining{
		Days:         int(diff / (24 * time.Hour)),
		Hours:        int(diff % (24 * time.Hour) / time.Hour),
		Minutes:      int(diff % time.Hour / time.Minute),
		TotalMinutes: int(diff / time.Minute),
	}
}
