package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	analytics "github.com/kitewave/pulse/internal/analytics/domain"
)

const (
	heavyUserThreshold = 10
	segmentSampleSize  = 10
)

type segmentRow struct {
	UserID       snowflake.ID `gorm:"column:user_id"`
	Name         string       `gorm:"column:name"`
	Email        string       `gorm:"column:email"`
	Balance      int64        `gorm:"column:balance"`
	MessageCount int64        `gorm:"column:message_count"`
	// sqlite reports booleans as integers, so the EXISTS result is
	// scanned as int and compared in Go.
	HasPaid int `gorm:"column:has_paid"`
}

// GetUserSegmentationMetrics classifies every user along two independent
// axes: paid versus free, and heavy versus light. A user counts as paid
// when any payment record exists for them, whatever its status; heavy
// means strictly more than ten messages all-time. The first ten users per
// segment, in id order, are returned as samples.
func (s *Service) GetUserSegmentationMetrics(ctx context.Context) (analytics.UserSegmentationMetrics, error) {
	var rows []segmentRow
	if err := s.db.WithContext(ctx).Raw(
		`SELECT u.id AS user_id,
		        COALESCE(u.name, '') AS name,
		        COALESCE(u.email, '') AS email,
		        COALESCE(c.balance, 0) AS balance,
		        COALESCE(m.message_count, 0) AS message_count,
		        CASE WHEN EXISTS (
		            SELECT 1 FROM payment_records p WHERE p.user_id = u.id
		        ) THEN 1 ELSE 0 END AS has_paid
		 FROM users u
		 LEFT JOIN user_credits c ON c.user_id = u.id
		 LEFT JOIN (
		     SELECT user_id, COUNT(*) AS message_count
		     FROM message_logs
		     GROUP BY user_id
		 ) m ON m.user_id = u.id
		 ORDER BY u.id ASC`,
	).Scan(&rows).Error; err != nil {
		return analytics.UserSegmentationMetrics{}, err
	}

	metrics := analytics.UserSegmentationMetrics{
		Segments: analytics.SegmentSamples{
			Free:  []analytics.UserSegment{},
			Paid:  []analytics.UserSegment{},
			Heavy: []analytics.UserSegment{},
			Light: []analytics.UserSegment{},
		},
	}

	for _, row := range rows {
		segment := analytics.UserSegment{
			UserID:       row.UserID.String(),
			Name:         row.Name,
			Email:        row.Email,
			Balance:      row.Balance,
			MessageCount: row.MessageCount,
			HasPaid:      row.HasPaid != 0,
		}

		if segment.HasPaid {
			metrics.PaidUsers++
			if len(metrics.Segments.Paid) < segmentSampleSize {
				metrics.Segments.Paid = append(metrics.Segments.Paid, segment)
			}
		} else {
			metrics.FreeUsers++
			if len(metrics.Segments.Free) < segmentSampleSize {
				metrics.Segments.Free = append(metrics.Segments.Free, segment)
			}
		}

		if segment.MessageCount > heavyUserThreshold {
			metrics.HeavyUsers++
			if len(metrics.Segments.Heavy) < segmentSampleSize {
				metrics.Segments.Heavy = append(metrics.Segments.Heavy, segment)
			}
		} else {
			metrics.LightUsers++
			if len(metrics.Segments.Light) < segmentSampleSize {
				metrics.Segments.Light = append(metrics.Segments.Light, segment)
			}
		}
	}

	return metrics, nil
}
