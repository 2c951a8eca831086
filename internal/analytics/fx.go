package analytics

import (
	"math/rand"
	"time"

	"go.uber.org/fx"

	"github.com/kitewave/pulse/internal/analytics/domain"
	"github.com/kitewave/pulse/internal/analytics/service"
)

// NewJitterSource seeds a dedicated PRNG for the growth series so the
// shared global source is never locked on the request path.
func NewJitterSource() domain.JitterSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

var Module = fx.Module("analytics",
	fx.Provide(
		NewJitterSource,
		service.NewService,
	),
)
