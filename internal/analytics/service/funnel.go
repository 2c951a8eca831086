package service

import (
	"context"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
	"github.com/kitewave/pulse/internal/payment/domain"
)

// GetConversionFunnelMetrics counts users at each acquisition stage. The
// registrations stage covers the entire users table while the later
// stages are period-bounded, so downstream rates can exceed 100% when the
// user base predates the window; they are reported unclamped.
func (s *Service) GetConversionFunnelMetrics(ctx context.Context, req analytics.MetricsRequest) (analytics.ConversionFunnelMetrics, error) {
	start, end, ok := req.Period.Range(s.clock.Now())
	if !ok {
		return analytics.ConversionFunnelMetrics{}, analytics.ErrInvalidPeriod
	}

	var registrations int64
	if err := s.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM users`).Scan(&registrations).Error; err != nil {
		return analytics.ConversionFunnelMetrics{}, err
	}

	var firstMessage int64
	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(DISTINCT user_id) FROM message_logs
		 WHERE created_at >= ? AND created_at <= ?`,
		start, end,
	).Scan(&firstMessage).Error; err != nil {
		return analytics.ConversionFunnelMetrics{}, err
	}

	var paymentIntent int64
	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(DISTINCT user_id) FROM payment_intents
		 WHERE created_at >= ? AND created_at <= ?`,
		start, end,
	).Scan(&paymentIntent).Error; err != nil {
		return analytics.ConversionFunnelMetrics{}, err
	}

	var completedPayment int64
	if err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(DISTINCT user_id) FROM payment_records
		 WHERE status = ? AND created_at >= ? AND created_at <= ?`,
		domain.RecordStatusSucceeded, start, end,
	).Scan(&completedPayment).Error; err != nil {
		return analytics.ConversionFunnelMetrics{}, err
	}

	return analytics.ConversionFunnelMetrics{
		Registrations:    registrations,
		FirstMessage:     firstMessage,
		PaymentIntent:    paymentIntent,
		CompletedPayment: completedPayment,
		Rates: analytics.FunnelRates{
			RegistrationToFirstMessage:  formatRatio(float64(firstMessage), float64(registrations)),
			FirstMessageToPaymentIntent: formatRatio(float64(paymentIntent), float64(firstMessage)),
			PaymentIntentToCompletion:   formatRatio(float64(completedPayment), float64(paymentIntent)),
			OverallConversion:           formatRatio(float64(completedPayment), float64(registrations)),
		},
	}, nil
}
