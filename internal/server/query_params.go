package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	analyticsdomain "github.com/kitewave/pulse/internal/analytics/domain"
)

// parsePeriod validates the period query parameter against the bundle's
// accepted set before any query logic runs. An absent parameter falls
// back to the bundle default.
func parsePeriod(c *gin.Context, allowed []analyticsdomain.Period, fallback analyticsdomain.Period) (analyticsdomain.Period, error) {
	raw := strings.TrimSpace(c.Query("period"))
	if raw == "" {
		return fallback, nil
	}

	period := analyticsdomain.Period(raw)
	if !period.In(allowed) {
		return "", newValidationError("period", "invalid_period", "invalid period")
	}
	return period, nil
}
