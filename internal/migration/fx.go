package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	apilogdomain "github.com/kitewave/pulse/internal/apilog/domain"
	chatdomain "github.com/kitewave/pulse/internal/chat/domain"
	creditdomain "github.com/kitewave/pulse/internal/credit/domain"
	identitydomain "github.com/kitewave/pulse/internal/identity/domain"
	paymentdomain "github.com/kitewave/pulse/internal/payment/domain"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB) error {
		// Versioned migrations target postgres; sqlite and mysql
		// deployments are dev conveniences and use the model schema
		// directly.
		if conn.Dialector.Name() != "postgres" {
			return conn.AutoMigrate(
				&identitydomain.User{},
				&identitydomain.Account{},
				&chatdomain.MessageLog{},
				&apilogdomain.RequestLog{},
				&creditdomain.UserCredit{},
				&paymentdomain.PaymentIntent{},
				&paymentdomain.PaymentRecord{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
