package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	analytics "github.com/kitewave/pulse/internal/analytics/domain"
)

type userMessageRow struct {
	UserID snowflake.ID `gorm:"column:user_id"`
	Name   string       `gorm:"column:name"`
	Count  int64        `gorm:"column:count"`
}

type dailyCountRow struct {
	Date  string `gorm:"column:date"`
	Count int64  `gorm:"column:count"`
}

func (s *Service) GetEngagementMetrics(ctx context.Context, req analytics.MetricsRequest) (analytics.EngagementMetrics, error) {
	start, end, ok := req.Period.Range(s.clock.Now())
	if !ok {
		return analytics.EngagementMetrics{}, analytics.ErrInvalidPeriod
	}

	var perUser []userMessageRow
	if err := s.db.WithContext(ctx).Raw(
		`SELECT m.user_id AS user_id,
		        COALESCE(u.name, '') AS name,
		        COUNT(*) AS count
		 FROM message_logs m
		 LEFT JOIN users u ON u.id = m.user_id
		 WHERE m.created_at >= ? AND m.created_at <= ?
		 GROUP BY m.user_id, u.name
		 ORDER BY count DESC
		 LIMIT 20`,
		start, end,
	).Scan(&perUser).Error; err != nil {
		return analytics.EngagementMetrics{}, err
	}

	var daily []dailyCountRow
	dateExpr := s.dateExpr("created_at")
	if err := s.db.WithContext(ctx).Raw(fmt.Sprintf(
		`SELECT %s AS date, COUNT(DISTINCT user_id) AS count
		 FROM message_logs
		 WHERE created_at >= ? AND created_at <= ?
		 GROUP BY %s
		 ORDER BY date ASC`,
		dateExpr, dateExpr),
		start, end,
	).Scan(&daily).Error; err != nil {
		return analytics.EngagementMetrics{}, err
	}

	var totals struct {
		ActiveUsers   int64 `gorm:"column:active_users"`
		TotalMessages int64 `gorm:"column:total_messages"`
	}
	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(DISTINCT user_id) AS active_users,
		        COUNT(*) AS total_messages
		 FROM message_logs
		 WHERE created_at >= ? AND created_at <= ?`,
		start, end,
	).Scan(&totals).Error; err != nil {
		return analytics.EngagementMetrics{}, err
	}

	messagesPerUser := make([]analytics.UserMessageCount, 0, len(perUser))
	for _, row := range perUser {
		messagesPerUser = append(messagesPerUser, analytics.UserMessageCount{
			UserID: row.UserID.String(),
			Name:   row.Name,
			Count:  row.Count,
		})
	}

	dailyActive := make([]analytics.DailyCount, 0, len(daily))
	for _, row := range daily {
		dailyActive = append(dailyActive, analytics.DailyCount{Date: row.Date, Count: row.Count})
	}

	var avg string
	if totals.ActiveUsers == 0 {
		avg = "0"
	} else {
		avg = formatFixed(float64(totals.TotalMessages) / float64(totals.ActiveUsers))
	}

	return analytics.EngagementMetrics{
		MessagesPerUser:    messagesPerUser,
		DailyActiveUsers:   dailyActive,
		AvgMessagesPerUser: avg,
		TotalActiveUsers:   totals.ActiveUsers,
	}, nil
}
