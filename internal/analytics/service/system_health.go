package service

import (
	"context"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
)

const errorPatternLimit = 10

type apiStatRow struct {
	Action             string `gorm:"column:action"`
	TotalRequests      int64  `gorm:"column:total_requests"`
	SuccessfulRequests int64  `gorm:"column:successful_requests"`
}

type errorPatternRow struct {
	Error      string `gorm:"column:error"`
	StatusCode int    `gorm:"column:status_code"`
	Count      int64  `gorm:"column:count"`
}

func (s *Service) GetSystemHealthMetrics(ctx context.Context, req analytics.MetricsRequest) (analytics.SystemHealthMetrics, error) {
	start, end, ok := req.Period.Range(s.clock.Now())
	if !ok {
		return analytics.SystemHealthMetrics{}, analytics.ErrInvalidPeriod
	}

	var perAction []apiStatRow
	if err := s.db.WithContext(ctx).Raw(
		`SELECT action,
		        COUNT(*) AS total_requests,
		        SUM(CASE WHEN success = ? THEN 1 ELSE 0 END) AS successful_requests
		 FROM request_logs
		 WHERE created_at >= ? AND created_at <= ?
		 GROUP BY action
		 ORDER BY total_requests DESC`,
		true, start, end,
	).Scan(&perAction).Error; err != nil {
		return analytics.SystemHealthMetrics{}, err
	}

	var failures []errorPatternRow
	if err := s.db.WithContext(ctx).Raw(
		`SELECT COALESCE(error, '') AS error,
		        status_code,
		        COUNT(*) AS count
		 FROM request_logs
		 WHERE success = ? AND created_at >= ? AND created_at <= ?
		 GROUP BY error, status_code
		 ORDER BY count DESC
		 LIMIT ?`,
		false, start, end, errorPatternLimit,
	).Scan(&failures).Error; err != nil {
		return analytics.SystemHealthMetrics{}, err
	}

	apiStats := make([]analytics.APIStat, 0, len(perAction))
	var total int64
	for _, row := range perAction {
		total += row.TotalRequests
		apiStats = append(apiStats, analytics.APIStat{
			Action:             row.Action,
			TotalRequests:      row.TotalRequests,
			SuccessfulRequests: row.SuccessfulRequests,
			SuccessRate:        formatRatio(float64(row.SuccessfulRequests), float64(row.TotalRequests)),
		})
	}

	errorPatterns := make([]analytics.ErrorPattern, 0, len(failures))
	for _, row := range failures {
		errorPatterns = append(errorPatterns, analytics.ErrorPattern{
			Error:      row.Error,
			StatusCode: row.StatusCode,
			Count:      row.Count,
		})
	}

	return analytics.SystemHealthMetrics{
		APIStats:      apiStats,
		ErrorPatterns: errorPatterns,
		TotalRequests: total,
	}, nil
}
