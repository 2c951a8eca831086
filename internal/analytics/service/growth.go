package service

import (
	"context"
	"math"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
)

const maxGrowthBuckets = 30

// GetGrowthMetrics synthesizes a daily signup series. Users carry no
// creation timestamp, so the series spreads the total user count evenly
// over the window with ±20% jitter per bucket. The output is
// non-deterministic and approximate; it must not be read as registration
// history.
func (s *Service) GetGrowthMetrics(ctx context.Context, req analytics.MetricsRequest) (analytics.GrowthMetrics, error) {
	days, ok := req.Period.Days()
	if !ok {
		return analytics.GrowthMetrics{}, analytics.ErrInvalidPeriod
	}

	var totalUsers int64
	if err := s.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM users`).Scan(&totalUsers).Error; err != nil {
		return analytics.GrowthMetrics{}, err
	}

	buckets := days
	if buckets > maxGrowthBuckets {
		buckets = maxGrowthBuckets
	}
	base := float64(totalUsers) / float64(buckets)

	now := s.clock.Now()
	dailySignups := make([]analytics.DailyCount, 0, buckets)
	var newUsers int64
	for i := buckets - 1; i >= 0; i-- {
		// jitter multiplier in [0.8, 1.2)
		multiplier := 0.8 + 0.4*s.jitter.Float64()
		count := int64(math.Round(base * multiplier))
		if count < 0 {
			count = 0
		}
		newUsers += count
		dailySignups = append(dailySignups, analytics.DailyCount{
			Date:  now.AddDate(0, 0, -i).Format("2006-01-02"),
			Count: count,
		})
	}

	denominator := totalUsers - newUsers
	if denominator < 1 {
		denominator = 1
	}
	growthRate := formatFixed(float64(newUsers) / float64(denominator) * 100)

	return analytics.GrowthMetrics{
		DailySignups:     dailySignups,
		TotalUsers:       totalUsers,
		NewUsersInPeriod: newUsers,
		GrowthRate:       growthRate,
	}, nil
}
