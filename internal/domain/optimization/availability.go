package optimization

import (
	"time"
)

// DefaultAvailabilityWindow is the activity window the monthly policy
// checks distributors against.
const DefaultAvailabilityWindow = 30 * 24 * time.Hour

// AvailabilityPolicy computes the distributor activity signal shown
// alongside recommendations: has this distributor been seen paying
// recently? The signal is informational display data only and must
// never gate which distributor gets recommended.
type AvailabilityPolicy interface {
	// Name identifies the policy in configuration and logs
	Name() string

	// IsAvailable reports whether a distributor whose latest matching
	// observation is lastObserved counts as active at now
	IsAvailable(lastObserved, now time.Time) bool
}

// AlwaysAvailablePolicy marks every distributor active. This is the
// production default: the monthly window policy below is fully built
// but switched off, so all distributors display as available.
type AlwaysAvailablePolicy struct{}

// Name returns the policy name
func (AlwaysAvailablePolicy) Name() string { return "always_available" }

// IsAvailable always reports true
func (AlwaysAvailablePolicy) IsAvailable(_, _ time.Time) bool { return true }

// MonthlyWindowPolicy marks a distributor active only when its latest
// observation falls inside the window. Currently dormant: selectable
// through configuration but not enabled by default.
type MonthlyWindowPolicy struct {
	Window time.Duration
}

// NewMonthlyWindowPolicy creates the policy with the default 30-day window
func NewMonthlyWindowPolicy() MonthlyWindowPolicy {
	return MonthlyWindowPolicy{Window: DefaultAvailabilityWindow}
}

// Name returns the policy name
func (MonthlyWindowPolicy) Name() string { return "monthly_window" }

// IsAvailable reports whether lastObserved falls within the window of now
func (p MonthlyWindowPolicy) IsAvailable(lastObserved, now time.Time) bool {
	window := p.Window
	if window <= 0 {
		window = DefaultAvailabilityWindow
	}
	if lastObserved.IsZero() {
		return false
	}
	return !lastObserved.Before(now.Add(-window))
}

// PolicyFromName resolves a configured policy name, falling back to the
// always-available default for unknown names.
func PolicyFromName(name string) AvailabilityPolicy {
	switch name {
	case "monthly_window":
		return NewMonthlyWindowPolicy()
	default:
		return AlwaysAvailablePolicy{}
	}
}
