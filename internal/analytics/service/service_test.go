package service

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
	apilogdomain "github.com/kitewave/pulse/internal/apilog/domain"
	chatdomain "github.com/kitewave/pulse/internal/chat/domain"
	"github.com/kitewave/pulse/internal/clock"
	creditdomain "github.com/kitewave/pulse/internal/credit/domain"
	identitydomain "github.com/kitewave/pulse/internal/identity/domain"
	paymentdomain "github.com/kitewave/pulse/internal/payment/domain"
	"github.com/kitewave/pulse/pkg/db"
)

// fixedJitter pins the growth synthesis multiplier for deterministic tests.
type fixedJitter struct {
	value float64
}

func (f fixedJitter) Float64() float64 { return f.value }

var testNow = time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)

func setupService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&identitydomain.User{},
		&identitydomain.Account{},
		&chatdomain.MessageLog{},
		&apilogdomain.RequestLog{},
		&creditdomain.UserCredit{},
		&paymentdomain.PaymentIntent{},
		&paymentdomain.PaymentRecord{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:     dbConn,
		Log:    zap.NewNop(),
		Clock:  clock.NewFakeClock(testNow),
		Jitter: fixedJitter{value: 0.5},
	}).(*Service)

	return svc, dbConn, node
}

func createUser(t *testing.T, dbConn *gorm.DB, node *snowflake.Node, name, email string) identitydomain.User {
	t.Helper()
	user := identitydomain.User{ID: node.Generate(), Name: name, Email: email}
	require.NoError(t, dbConn.Create(&user).Error)
	return user
}

func createMessages(t *testing.T, dbConn *gorm.DB, node *snowflake.Node, userID snowflake.ID, at time.Time, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		msg := chatdomain.MessageLog{ID: node.Generate(), UserID: userID, CreatedAt: at}
		require.NoError(t, dbConn.Create(&msg).Error)
	}
}

func req(period analytics.Period) analytics.MetricsRequest {
	return analytics.MetricsRequest{Period: period}
}
