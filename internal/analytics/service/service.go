package service

import (
	"fmt"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
	"github.com/kitewave/pulse/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Clock  clock.Clock
	Jitter analytics.JitterSource
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	clock  clock.Clock
	jitter analytics.JitterSource
}

func NewService(p Params) analytics.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("analytics.service"),
		clock:  p.Clock,
		jitter: p.Jitter,
	}
}

// formatRatio renders numerator/denominator as a percentage with two
// decimals, returning "0" when the denominator is zero. Every ratio in the
// dashboard shares this guard.
func formatRatio(numerator, denominator float64) string {
	if denominator == 0 {
		return "0"
	}
	return fmt.Sprintf("%.2f", numerator/denominator*100)
}

func formatFixed(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// The aggregations below need date, month, hour-of-day and epoch-difference
// expressions, which have no portable SQL spelling. Production runs on
// postgres; the test harness runs on sqlite.

func (s *Service) dateExpr(column string) string {
	switch s.db.Dialector.Name() {
	case "postgres":
		return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", column)
	case "mysql":
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m-%%d')", column)
	default:
		return fmt.Sprintf("date(%s)", column)
	}
}

func (s *Service) monthExpr(column string) string {
	switch s.db.Dialector.Name() {
	case "postgres":
		return fmt.Sprintf("to_char(%s, 'YYYY-MM')", column)
	case "mysql":
		return fmt.Sprintf("DATE_FORMAT(%s, '%%Y-%%m')", column)
	default:
		return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
	}
}

func (s *Service) hourExpr(column string) string {
	switch s.db.Dialector.Name() {
	case "postgres":
		return fmt.Sprintf("CAST(EXTRACT(HOUR FROM %s) AS INTEGER)", column)
	case "mysql":
		return fmt.Sprintf("HOUR(%s)", column)
	default:
		return fmt.Sprintf("CAST(strftime('%%H', %s) AS INTEGER)", column)
	}
}

func (s *Service) epochDiffExpr(endColumn, startColumn string) string {
	switch s.db.Dialector.Name() {
	case "postgres":
		return fmt.Sprintf("EXTRACT(EPOCH FROM (%s - %s))", endColumn, startColumn)
	case "mysql":
		return fmt.Sprintf("TIMESTAMPDIFF(SECOND, %s, %s)", startColumn, endColumn)
	default:
		return fmt.Sprintf("(julianday(%s) - julianday(%s)) * 86400.0", endColumn, startColumn)
	}
}
