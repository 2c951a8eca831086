package domain

import (
	"context"
	"errors"
)

// Service exposes the dashboard's read-only metric bundles. Every
// operation re-executes its aggregations against current data; sub-queries
// within a bundle run without a shared snapshot.
type Service interface {
	GetGrowthMetrics(ctx context.Context, req MetricsRequest) (GrowthMetrics, error)
	GetRetentionMetrics(ctx context.Context, req MetricsRequest) (RetentionMetrics, error)
	GetEngagementMetrics(ctx context.Context, req MetricsRequest) (EngagementMetrics, error)
	GetAuthPatternMetrics(ctx context.Context) (AuthPatternMetrics, error)
	GetMessageVolumeMetrics(ctx context.Context, req MetricsRequest) (MessageVolumeMetrics, error)
	GetUserSegmentationMetrics(ctx context.Context) (UserSegmentationMetrics, error)
	GetConversionFunnelMetrics(ctx context.Context, req MetricsRequest) (ConversionFunnelMetrics, error)
	GetRevenueMetrics(ctx context.Context, req MetricsRequest) (RevenueMetrics, error)
	GetPaymentAnalysisMetrics(ctx context.Context, req MetricsRequest) (PaymentAnalysisMetrics, error)
	GetSystemHealthMetrics(ctx context.Context, req MetricsRequest) (SystemHealthMetrics, error)
	GetRateLimitImpactMetrics(ctx context.Context, req MetricsRequest) (RateLimitImpactMetrics, error)
}

// JitterSource supplies randomness for the growth series synthesis so
// tests can pin the jitter.
type JitterSource interface {
	Float64() float64
}

var (
	ErrInvalidPeriod = errors.New("invalid_period")
)
