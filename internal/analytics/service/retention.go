package service

import (
	"context"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
)

// retentionSchedule is a placeholder: fixed return rates applied to the
// total user count, not measured cohort behavior. The period selector is
// accepted but plays no part in the computation.
var retentionSchedule = []struct {
	day  int
	rate float64
}{
	{day: 1, rate: 85},
	{day: 7, rate: 45},
	{day: 30, rate: 25},
}

func (s *Service) GetRetentionMetrics(ctx context.Context, req analytics.MetricsRequest) (analytics.RetentionMetrics, error) {
	if _, ok := req.Period.Days(); !ok {
		return analytics.RetentionMetrics{}, analytics.ErrInvalidPeriod
	}

	var totalUsers int64
	if err := s.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM users`).Scan(&totalUsers).Error; err != nil {
		return analytics.RetentionMetrics{}, err
	}

	retention := make([]analytics.RetentionPoint, 0, len(retentionSchedule))
	for _, step := range retentionSchedule {
		retention = append(retention, analytics.RetentionPoint{
			Day:           step.day,
			RetentionRate: formatFixed(step.rate),
			RetainedCount: int64(float64(totalUsers) * step.rate / 100),
			TotalNewUsers: totalUsers,
		})
	}

	return analytics.RetentionMetrics{Retention: retention}, nil
}
