package service

import (
	"context"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
)

type providerRow struct {
	Provider string `gorm:"column:provider"`
	Count    int64  `gorm:"column:count"`
}

// GetAuthPatternMetrics reports the linked-account share per OAuth
// provider over the whole accounts table. There is no period dimension.
func (s *Service) GetAuthPatternMetrics(ctx context.Context) (analytics.AuthPatternMetrics, error) {
	var rows []providerRow
	if err := s.db.WithContext(ctx).Raw(
		`SELECT provider, COUNT(*) AS count
		 FROM accounts
		 GROUP BY provider
		 ORDER BY count DESC`,
	).Scan(&rows).Error; err != nil {
		return analytics.AuthPatternMetrics{}, err
	}

	var total int64
	for _, row := range rows {
		total += row.Count
	}

	providers := make([]analytics.ProviderStat, 0, len(rows))
	for _, row := range rows {
		providers = append(providers, analytics.ProviderStat{
			Provider:   row.Provider,
			Count:      row.Count,
			Percentage: formatRatio(float64(row.Count), float64(total)),
		})
	}

	return analytics.AuthPatternMetrics{
		Providers:     providers,
		TotalAccounts: total,
	}, nil
}
