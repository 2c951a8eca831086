package service

import (
	"context"
	"fmt"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
	"github.com/kitewave/pulse/internal/payment/domain"
)

const processingTimeSampleSize = 100

type tierRow struct {
	Tier          string `gorm:"column:tier"`
	TotalAttempts int64  `gorm:"column:total_attempts"`
	Successful    int64  `gorm:"column:successful"`
}

// GetPaymentAnalysisMetrics reports per-tier payment outcomes and the
// intent completion latency. Success is determined by joining intents to
// their provider-side record on provider_payment_id; latency averages
// over completed intents only.
func (s *Service) GetPaymentAnalysisMetrics(ctx context.Context, req analytics.MetricsRequest) (analytics.PaymentAnalysisMetrics, error) {
	start, end, ok := req.Period.Range(s.clock.Now())
	if !ok {
		return analytics.PaymentAnalysisMetrics{}, analytics.ErrInvalidPeriod
	}

	var tiers []tierRow
	if err := s.db.WithContext(ctx).Raw(
		`SELECT i.tier AS tier,
		        COUNT(*) AS total_attempts,
		        COUNT(r.id) AS successful
		 FROM payment_intents i
		 LEFT JOIN payment_records r
		   ON r.provider_payment_id = i.provider_payment_id AND r.status = ?
		 WHERE i.created_at >= ? AND i.created_at <= ?
		 GROUP BY i.tier
		 ORDER BY total_attempts DESC`,
		domain.RecordStatusSucceeded, start, end,
	).Scan(&tiers).Error; err != nil {
		return analytics.PaymentAnalysisMetrics{}, err
	}

	var durations []float64
	if err := s.db.WithContext(ctx).Raw(fmt.Sprintf(
		`SELECT %s AS seconds
		 FROM payment_intents
		 WHERE status = ? AND completed_at IS NOT NULL
		   AND created_at >= ? AND created_at <= ?`,
		s.epochDiffExpr("completed_at", "created_at")),
		domain.IntentStatusCompleted, start, end,
	).Scan(&durations).Error; err != nil {
		return analytics.PaymentAnalysisMetrics{}, err
	}

	tierStats := make([]analytics.TierStat, 0, len(tiers))
	for _, row := range tiers {
		tierStats = append(tierStats, analytics.TierStat{
			Tier:          row.Tier,
			TotalAttempts: row.TotalAttempts,
			Successful:    row.Successful,
			SuccessRate:   formatRatio(float64(row.Successful), float64(row.TotalAttempts)),
		})
	}

	var avg string
	if len(durations) == 0 {
		avg = "0"
	} else {
		var sum float64
		for _, seconds := range durations {
			sum += seconds
		}
		avg = formatFixed(sum / float64(len(durations)) / 60)
	}

	samples := durations
	if len(samples) > processingTimeSampleSize {
		samples = samples[:processingTimeSampleSize]
	}
	if samples == nil {
		samples = []float64{}
	}

	return analytics.PaymentAnalysisMetrics{
		TierStats:             tierStats,
		AverageProcessingTime: avg,
		ProcessingTimes:       samples,
	}, nil
}
