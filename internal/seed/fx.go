package seed

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kitewave/pulse/internal/clock"
	"github.com/kitewave/pulse/internal/config"
	"github.com/kitewave/pulse/internal/ratelimit"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Cfg     config.Config
	Clock   clock.Clock
	Log     *zap.Logger
	Limiter *ratelimit.QueryLimiter `optional:"true"`
}

var Module = fx.Module("seed",
	fx.Invoke(func(p Params) error {
		if !p.Cfg.SeedDemoData {
			return nil
		}

		// Replicas sharing one store race to seed; the redis lock picks a
		// winner. Without redis the count check inside EnsureDemoData is
		// the only guard.
		ctx := context.Background()
		token, acquired, err := p.Limiter.TryLockSeed(ctx)
		if err != nil {
			p.Log.Warn("seed lock unavailable, continuing", zap.Error(err))
		} else if !acquired {
			return nil
		}
		defer func() {
			_ = p.Limiter.ReleaseSeed(ctx, token)
		}()

		return EnsureDemoData(p.DB, p.Clock)
	}),
)
