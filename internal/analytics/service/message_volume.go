package service

import (
	"context"
	"fmt"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
)

type dateHourRow struct {
	Date  string `gorm:"column:date"`
	Hour  int    `gorm:"column:hour"`
	Count int64  `gorm:"column:count"`
}

type hourRow struct {
	Hour  int   `gorm:"column:hour"`
	Count int64 `gorm:"column:count"`
}

func (s *Service) GetMessageVolumeMetrics(ctx context.Context, req analytics.MetricsRequest) (analytics.MessageVolumeMetrics, error) {
	start, end, ok := req.Period.Range(s.clock.Now())
	if !ok {
		return analytics.MessageVolumeMetrics{}, analytics.ErrInvalidPeriod
	}

	dateExpr := s.dateExpr("created_at")
	hourExpr := s.hourExpr("created_at")

	var dateHour []dateHourRow
	if err := s.db.WithContext(ctx).Raw(fmt.Sprintf(
		`SELECT %s AS date, %s AS hour, COUNT(*) AS count
		 FROM message_logs
		 WHERE created_at >= ? AND created_at <= ?
		 GROUP BY %s, %s
		 ORDER BY date ASC, hour ASC`,
		dateExpr, hourExpr, dateExpr, hourExpr),
		start, end,
	).Scan(&dateHour).Error; err != nil {
		return analytics.MessageVolumeMetrics{}, err
	}

	var hourly []hourRow
	if err := s.db.WithContext(ctx).Raw(fmt.Sprintf(
		`SELECT %s AS hour, COUNT(*) AS count
		 FROM message_logs
		 WHERE created_at >= ? AND created_at <= ?
		 GROUP BY %s
		 ORDER BY hour ASC`,
		hourExpr, hourExpr),
		start, end,
	).Scan(&hourly).Error; err != nil {
		return analytics.MessageVolumeMetrics{}, err
	}

	daily := make([]analytics.DateHourCount, 0, len(dateHour))
	var total int64
	for _, row := range dateHour {
		total += row.Count
		daily = append(daily, analytics.DateHourCount{Date: row.Date, Hour: row.Hour, Count: row.Count})
	}

	hourlyStats := make([]analytics.HourCount, 0, len(hourly))
	for _, row := range hourly {
		hourlyStats = append(hourlyStats, analytics.HourCount{Hour: row.Hour, Count: row.Count})
	}

	return analytics.MessageVolumeMetrics{
		DailyMessages: daily,
		HourlyStats:   hourlyStats,
		TotalMessages: total,
	}, nil
}
