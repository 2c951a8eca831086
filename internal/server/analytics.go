package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	analyticsdomain "github.com/kitewave/pulse/internal/analytics/domain"
)

func (s *Server) recordQuery(c *gin.Context, bundle string, start time.Time, err error) {
	if s.obsMetrics == nil {
		return
	}
	ctx := c.Request.Context()
	if err != nil {
		s.obsMetrics.RecordAnalyticsFailure(ctx, bundle)
		return
	}
	s.obsMetrics.RecordAnalyticsQuery(ctx, bundle, time.Since(start))
}

func (s *Server) GetGrowthMetrics(c *gin.Context) {
	period, err := parsePeriod(c, analyticsdomain.GrowthPeriods, analyticsdomain.Period30d)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.analyticsSvc.GetGrowthMetrics(c.Request.Context(), analyticsdomain.MetricsRequest{Period: period})
	s.recordQuery(c, "growth", start, err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetRetentionMetrics(c *gin.Context) {
	period, err := parsePeriod(c, analyticsdomain.RetentionPeriods, analyticsdomain.Period30d)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.analyticsSvc.GetRetentionMetrics(c.Request.Context(), analyticsdomain.MetricsRequest{Period: period})
	s.recordQuery(c, "retention", start, err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetEngagementMetrics(c *gin.Context) {
	period, err := parsePeriod(c, analyticsdomain.EngagementPeriods, analyticsdomain.Period30d)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.analyticsSvc.GetEngagementMetrics(c.Request.Context(), analyticsdomain.MetricsRequest{Period: period})
	s.recordQuery(c, "engagement", start, err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetAuthPatternMetrics(c *gin.Context) {
	start := time.Now()
	resp, err := s.analyticsSvc.GetAuthPatternMetrics(c.Request.Context())
	s.recordQuery(c, "auth_patterns", start, err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetMessageVolumeMetrics(c *gin.Context) {
	period, err := parsePeriod(c, analyticsdomain.MessageVolumePeriods, analyticsdomain.Period30d)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.analyticsSvc.GetMessageVolumeMetrics(c.Request.Context(), analyticsdomain.MetricsRequest{Period: period})
	s.recordQuery(c, "message_volume", start, err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetUserSegmentationMetrics(c *gin.Context) {
	start := time.Now()
	resp, err := s.analyticsSvc.GetUserSegmentationMetrics(c.Request.Context())
	s.recordQuery(c, "segmentation", start, err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetConversionFunnelMetrics(c *gin.Context) {
	period, err := parsePeriod(c, analyticsdomain.FunnelPeriods, analyticsdomain.Period30d)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.analyticsSvc.GetConversionFunnelMetrics(c.Request.Context(), analyticsdomain.MetricsRequest{Period: period})
	s.recordQuery(c, "funnel", start, err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetRevenueMetrics(c *gin.Context) {
	period, err := parsePeriod(c, analyticsdomain.RevenuePeriods, analyticsdomain.Period30d)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.analyticsSvc.GetRevenueMetrics(c.Request.Context(), analyticsdomain.MetricsRequest{Period: period})
	s.recordQuery(c, "revenue", start, err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetPaymentAnalysisMetrics(c *gin.Context) {
	period, err := parsePeriod(c, analyticsdomain.PaymentAnalysisPeriods, analyticsdomain.Period30d)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.analyticsSvc.GetPaymentAnalysisMetrics(c.Request.Context(), analyticsdomain.MetricsRequest{Period: period})
	s.recordQuery(c, "payment_analysis", start, err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetSystemHealthMetrics(c *gin.Context) {
	period, err := parsePeriod(c, analyticsdomain.SystemHealthPeriods, analyticsdomain.Period30d)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.analyticsSvc.GetSystemHealthMetrics(c.Request.Context(), analyticsdomain.MetricsRequest{Period: period})
	s.recordQuery(c, "system_health", start, err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetRateLimitImpactMetrics(c *gin.Context) {
	period, err := parsePeriod(c, analyticsdomain.RateLimitPeriods, analyticsdomain.Period30d)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	start := time.Now()
	resp, err := s.analyticsSvc.GetRateLimitImpactMetrics(c.Request.Context(), analyticsdomain.MetricsRequest{Period: period})
	s.recordQuery(c, "rate_limit_impact", start, err)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
