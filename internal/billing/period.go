package billing

import (
	"time"

	"fitops/internal/models"
)

// Plan holds the terms written to a subscription row on activation.
type Plan struct {
	Name     string
	Amount   float64
	Currency string
}

// DefaultPlan is the single standard plan used when a tenant is activated
// without an approved plan request (payment approval and the manual
// recovery action). Plan-request approvals carry their own terms.
var DefaultPlan = Plan{
	Name:     "Annual",
	Amount:   12000,
	Currency: "INR",
}

// annualDays is the fixed window length for the default annual plan and for
// requests with an unrecognized billing cycle.
const annualDays = 365

// StartOfDay truncates t to 00:00:00 in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay truncates t to 23:59:59 in its location.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// AnnualWindow computes the billing period for the default annual plan:
// start is the anchor truncated to start-of-day, end is start plus 365 days
// truncated to end-of-day.
func AnnualWindow(anchor time.Time) (time.Time, time.Time) {
	start := StartOfDay(anchor)
	end := EndOfDay(start.Add(annualDays * 24 * time.Hour))
	return start, end
}

// Window computes the billing period for a requested plan by billing cycle:
// monthly adds one calendar month, quarterly three, annual one year. An
// unrecognized cycle falls back to 365 days.
func Window(anchor time.Time, cycle models.BillingCycle) (time.Time, time.Time) {
	start := StartOfDay(anchor)
	var end time.Time
	switch cycle {
	case models.BillingCycleMonthly:
		end = start.AddDate(0, 1, 0)
	case models.BillingCycleQuarterly:
		end = start.AddDate(0, 3, 0)
	case models.BillingCycleAnnual:
		end = start.AddDate(1, 0, 0)
	default:
		end = start.Add(annualDays * 24 * time.Hour)
	}
	return start, EndOfDay(end)
}

// TrialEnd computes the trial expiry for a tenant created at createdAt with
// the configured trial-day count.
func TrialEnd(createdAt time.Time, trialDays int) time.Time {
	return createdAt.AddDate(0, 0, trialDays)
}
