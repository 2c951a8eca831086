package service

import (
	"context"
	"fmt"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
	"github.com/kitewave/pulse/internal/payment/domain"
)

type monthlyRevenueRow struct {
	Month        string `gorm:"column:month"`
	Revenue      int64  `gorm:"column:revenue"`
	Transactions int64  `gorm:"column:transactions"`
}

// GetRevenueMetrics aggregates succeeded payment records over the
// period. Amounts are stored in cents; the currency-unit fields divide by
// 100 at the edge.
func (s *Service) GetRevenueMetrics(ctx context.Context, req analytics.MetricsRequest) (analytics.RevenueMetrics, error) {
	start, end, ok := req.Period.Range(s.clock.Now())
	if !ok {
		return analytics.RevenueMetrics{}, analytics.ErrInvalidPeriod
	}

	monthExpr := s.monthExpr("created_at")

	var rows []monthlyRevenueRow
	if err := s.db.WithContext(ctx).Raw(fmt.Sprintf(
		`SELECT %s AS month,
		        COALESCE(SUM(amount_cents), 0) AS revenue,
		        COUNT(*) AS transactions
		 FROM payment_records
		 WHERE status = ? AND created_at >= ? AND created_at <= ?
		 GROUP BY %s
		 ORDER BY month ASC`,
		monthExpr, monthExpr),
		domain.RecordStatusSucceeded, start, end,
	).Scan(&rows).Error; err != nil {
		return analytics.RevenueMetrics{}, err
	}

	var payers int64
	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(DISTINCT user_id) FROM payment_records
		 WHERE status = ? AND created_at >= ? AND created_at <= ?`,
		domain.RecordStatusSucceeded, start, end,
	).Scan(&payers).Error; err != nil {
		return analytics.RevenueMetrics{}, err
	}

	monthly := make([]analytics.MonthlyRevenue, 0, len(rows))
	var totalCents int64
	for _, row := range rows {
		totalCents += row.Revenue
		monthly = append(monthly, analytics.MonthlyRevenue{
			Month:             row.Month,
			Revenue:           row.Revenue,
			Transactions:      row.Transactions,
			RevenueInCurrency: float64(row.Revenue) / 100,
		})
	}

	var arpu string
	if payers == 0 {
		arpu = "0"
	} else {
		arpu = formatFixed(float64(totalCents) / float64(payers) / 100)
	}

	return analytics.RevenueMetrics{
		MonthlyRevenue:    monthly,
		TotalRevenue:      float64(totalCents) / 100,
		ARPU:              arpu,
		UniquePayingUsers: payers,
	}, nil
}
