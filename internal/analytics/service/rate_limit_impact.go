package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	analytics "github.com/kitewave/pulse/internal/analytics/domain"
)

const (
	dailyMessageLimit = 5
	limitHitRowLimit  = 50
)

type limitHitRow struct {
	UserID       snowflake.ID `gorm:"column:user_id"`
	Date         string       `gorm:"column:date"`
	MessageCount int64        `gorm:"column:message_count"`
}

// GetRateLimitImpactMetrics measures how often users reach the daily
// free-tier message cap of five. Each qualifying (user, date) pair is one
// limit-hit day; the day count is over rows, not distinct dates.
func (s *Service) GetRateLimitImpactMetrics(ctx context.Context, req analytics.MetricsRequest) (analytics.RateLimitImpactMetrics, error) {
	start, end, ok := req.Period.Range(s.clock.Now())
	if !ok {
		return analytics.RateLimitImpactMetrics{}, analytics.ErrInvalidPeriod
	}

	dateExpr := s.dateExpr("created_at")

	var rows []limitHitRow
	if err := s.db.WithContext(ctx).Raw(fmt.Sprintf(
		`SELECT user_id, %s AS date, COUNT(*) AS message_count
		 FROM message_logs
		 WHERE created_at >= ? AND created_at <= ?
		 GROUP BY user_id, %s
		 HAVING COUNT(*) >= ?
		 ORDER BY date ASC, user_id ASC`,
		dateExpr, dateExpr),
		start, end, dailyMessageLimit,
	).Scan(&rows).Error; err != nil {
		return analytics.RateLimitImpactMetrics{}, err
	}

	affected := make(map[snowflake.ID]struct{}, len(rows))
	var totalMessages int64
	for _, row := range rows {
		affected[row.UserID] = struct{}{}
		totalMessages += row.MessageCount
	}

	var avg string
	if len(rows) == 0 {
		avg = "0"
	} else {
		avg = formatFixed(float64(totalMessages) / float64(len(rows)))
	}

	hits := make([]analytics.LimitHitDay, 0, limitHitRowLimit)
	for i, row := range rows {
		if i == limitHitRowLimit {
			break
		}
		hits = append(hits, analytics.LimitHitDay{
			UserID:       row.UserID.String(),
			Date:         row.Date,
			MessageCount: row.MessageCount,
		})
	}

	return analytics.RateLimitImpactMetrics{
		TotalDaysWithLimitHits:     int64(len(rows)),
		UniqueUsersAffected:        int64(len(affected)),
		AverageMessagesOnLimitDays: avg,
		DailyLimitHits:             hits,
	}, nil
}
