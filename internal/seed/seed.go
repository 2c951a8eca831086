// Package seed populates a development database with demo traffic so the
// dashboard renders something useful on first boot.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apilogdomain "github.com/kitewave/pulse/internal/apilog/domain"
	chatdomain "github.com/kitewave/pulse/internal/chat/domain"
	"github.com/kitewave/pulse/internal/clock"
	creditdomain "github.com/kitewave/pulse/internal/credit/domain"
	identitydomain "github.com/kitewave/pulse/internal/identity/domain"
	paymentdomain "github.com/kitewave/pulse/internal/payment/domain"
	pkgdb "github.com/kitewave/pulse/pkg/db"
)

const (
	demoUserCount = 40
	demoDays      = 90
)

var demoProviders = []string{"google", "github", "discord"}

var demoTiers = []struct {
	name    string
	credits int64
	cents   int64
}{
	{name: "starter", credits: 100, cents: 499},
	{name: "plus", credits: 500, cents: 1999},
	{name: "pro", credits: 2000, cents: 4999},
}

var demoActions = []string{"chat.send", "chat.history", "credits.balance", "auth.refresh"}

// EnsureDemoData fills an empty store with a plausible slice of traffic:
// users with linked accounts, message history, request logs, credit
// balances and a payment trail. A store that already has users is left
// untouched.
func EnsureDemoData(db *gorm.DB, clk clock.Clock) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var userCount int64
	if err := db.WithContext(ctx).Model(&identitydomain.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(clk.Now().UnixNano()))
	now := clk.Now()

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, err := seedUsers(ctx, tx, node, rng, now)
		if err != nil {
			return err
		}
		if err := seedMessages(ctx, tx, node, rng, now, users); err != nil {
			return err
		}
		if err := seedRequestLogs(ctx, tx, node, rng, now, users); err != nil {
			return err
		}
		return seedPayments(ctx, tx, node, rng, now, users)
	})
	if pkgdb.IsDuplicateKeyErr(err) {
		// Another replica started seeding between our count check and the
		// first insert. The demo emails are fixed, so its rows collide with
		// ours; let its copy stand.
		return nil
	}
	return err
}

func seedUsers(ctx context.Context, tx *gorm.DB, node *snowflake.Node, rng *rand.Rand, now time.Time) ([]identitydomain.User, error) {
	users := make([]identitydomain.User, 0, demoUserCount)
	for i := 0; i < demoUserCount; i++ {
		user := identitydomain.User{
			ID:    node.Generate(),
			Name:  fmt.Sprintf("Demo User %02d", i+1),
			Email: fmt.Sprintf("demo%02d@pulse.local", i+1),
		}
		if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, err
		}

		account := identitydomain.Account{
			ID:                node.Generate(),
			UserID:            user.ID,
			Provider:          demoProviders[rng.Intn(len(demoProviders))],
			ProviderAccountID: uuid.NewString(),
		}
		if err := tx.WithContext(ctx).Create(&account).Error; err != nil {
			return nil, err
		}

		credit := creditdomain.UserCredit{
			ID:        node.Generate(),
			UserID:    user.ID,
			Balance:   int64(rng.Intn(500)),
			UpdatedAt: now,
		}
		if err := tx.WithContext(ctx).Create(&credit).Error; err != nil {
			return nil, err
		}

		users = append(users, user)
	}
	return users, nil
}

func seedMessages(ctx context.Context, tx *gorm.DB, node *snowflake.Node, rng *rand.Rand, now time.Time, users []identitydomain.User) error {
	for _, user := range users {
		// A minority of users are heavy; everyone else trickles.
		perDay := 1 + rng.Intn(3)
		if rng.Intn(5) == 0 {
			perDay = 6 + rng.Intn(6)
		}
		for day := 0; day < demoDays; day++ {
			if rng.Intn(3) == 0 {
				continue
			}
			base := now.AddDate(0, 0, -day)
			for n := 0; n < perDay; n++ {
				msg := chatdomain.MessageLog{
					ID:        node.Generate(),
					UserID:    user.ID,
					CreatedAt: base.Add(-time.Duration(rng.Intn(24)) * time.Hour),
				}
				if err := tx.WithContext(ctx).Create(&msg).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func seedRequestLogs(ctx context.Context, tx *gorm.DB, node *snowflake.Node, rng *rand.Rand, now time.Time, users []identitydomain.User) error {
	for _, user := range users {
		total := 20 + rng.Intn(60)
		for n := 0; n < total; n++ {
			success := rng.Intn(20) != 0
			entry := apilogdomain.RequestLog{
				ID:         node.Generate(),
				UserID:     user.ID,
				Action:     demoActions[rng.Intn(len(demoActions))],
				StatusCode: 200,
				Success:    success,
				CreatedAt:  now.AddDate(0, 0, -rng.Intn(demoDays)),
				Metadata:   datatypes.JSONMap{"source": "seed"},
			}
			if !success {
				entry.StatusCode = 500
				entry.Error = "upstream timeout"
			}
			if err := tx.WithContext(ctx).Create(&entry).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedPayments(ctx context.Context, tx *gorm.DB, node *snowflake.Node, rng *rand.Rand, now time.Time, users []identitydomain.User) error {
	for _, user := range users {
		// Roughly a third of demo users ever start a purchase.
		if rng.Intn(3) != 0 {
			continue
		}
		attempts := 1 + rng.Intn(3)
		for n := 0; n < attempts; n++ {
			tier := demoTiers[rng.Intn(len(demoTiers))]
			createdAt := now.AddDate(0, 0, -rng.Intn(demoDays))
			providerPaymentID := uuid.NewString()

			intent := paymentdomain.PaymentIntent{
				ID:                node.Generate(),
				UserID:            user.ID,
				Tier:              tier.name,
				CreditsToGrant:    tier.credits,
				AmountCents:       tier.cents,
				Status:            paymentdomain.IntentStatusPending,
				ProviderPaymentID: providerPaymentID,
				CreatedAt:         createdAt,
			}

			succeeded := rng.Intn(4) != 0
			if succeeded {
				completedAt := createdAt.Add(time.Duration(30+rng.Intn(600)) * time.Second)
				intent.Status = paymentdomain.IntentStatusCompleted
				intent.CompletedAt = &completedAt
			} else {
				intent.Status = paymentdomain.IntentStatusFailed
			}
			if err := tx.WithContext(ctx).Create(&intent).Error; err != nil {
				return err
			}

			record := paymentdomain.PaymentRecord{
				ID:                node.Generate(),
				UserID:            user.ID,
				ProviderPaymentID: providerPaymentID,
				Status:            paymentdomain.RecordStatusFailed,
				AmountCents:       tier.cents,
				PaymentIntentID:   intent.ID,
				CreatedAt:         createdAt,
			}
			if succeeded {
				record.Status = paymentdomain.RecordStatusSucceeded
				record.CreditsGranted = tier.credits
			}
			if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
