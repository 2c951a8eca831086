package domain

import "time"

// Period selects a lookback window for a metric bundle.
type Period string

const (
	Period7d  Period = "7d"
	Period30d Period = "30d"
	Period90d Period = "90d"
	Period1y  Period = "1y"
)

// Days returns the lookback length in days for the period token.
func (p Period) Days() (int, bool) {
	switch p {
	case Period7d:
		return 7, true
	case Period30d:
		return 30, true
	case Period90d:
		return 90, true
	case Period1y:
		return 365, true
	default:
		return 0, false
	}
}

// Range resolves the period against now. Both bounds are filtered
// inclusively by every aggregation, matching the dashboard's historical
// behavior; boundary instants written concurrently can be double counted.
func (p Period) Range(now time.Time) (time.Time, time.Time, bool) {
	days, ok := p.Days()
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end := now.UTC()
	return end.AddDate(0, 0, -days), end, true
}

// In reports whether the period is a member of the allowed set.
func (p Period) In(allowed []Period) bool {
	for _, candidate := range allowed {
		if p == candidate {
			return true
		}
	}
	return false
}

// Accepted period sets per metric bundle. Shorter windows are excluded
// where the metric has no business relevance at that grain and longer
// ones where the chart would be unreadable.
var (
	GrowthPeriods          = []Period{Period7d, Period30d, Period90d, Period1y}
	RetentionPeriods       = []Period{Period7d, Period30d, Period90d, Period1y}
	EngagementPeriods      = []Period{Period7d, Period30d, Period90d, Period1y}
	MessageVolumePeriods   = []Period{Period7d, Period30d, Period90d}
	FunnelPeriods          = []Period{Period30d, Period90d, Period1y}
	RevenuePeriods         = []Period{Period30d, Period90d, Period1y}
	PaymentAnalysisPeriods = []Period{Period30d, Period90d, Period1y}
	SystemHealthPeriods    = []Period{Period7d, Period30d, Period90d}
	RateLimitPeriods       = []Period{Period7d, Period30d, Period90d}
)
