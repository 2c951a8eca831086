package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apilogdomain "github.com/kitewave/pulse/internal/apilog/domain"
	chatdomain "github.com/kitewave/pulse/internal/chat/domain"
	"github.com/kitewave/pulse/internal/clock"
	creditdomain "github.com/kitewave/pulse/internal/credit/domain"
	identitydomain "github.com/kitewave/pulse/internal/identity/domain"
	paymentdomain "github.com/kitewave/pulse/internal/payment/domain"
	"github.com/kitewave/pulse/pkg/db"
)

var seedNow = time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)

func setupSeedDB(t *testing.T) *gorm.DB {
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
	return dbConn
}

func TestEnsureDemoDataPopulatesEmptyStore(t *testing.T) {
	dbConn := setupSeedDB(t)

	require.NoError(t, EnsureDemoData(dbConn, clock.NewFakeClock(seedNow)))

	var users, accounts, credits, messages, logs int64
	require.NoError(t, dbConn.Model(&identitydomain.User{}).Count(&users).Error)
	require.NoError(t, dbConn.Model(&identitydomain.Account{}).Count(&accounts).Error)
	require.NoError(t, dbConn.Model(&creditdomain.UserCredit{}).Count(&credits).Error)
	require.NoError(t, dbConn.Model(&chatdomain.MessageLog{}).Count(&messages).Error)
	require.NoError(t, dbConn.Model(&apilogdomain.RequestLog{}).Count(&logs).Error)

	assert.Equal(t, int64(demoUserCount), users)
	assert.Equal(t, int64(demoUserCount), accounts)
	assert.Equal(t, int64(demoUserCount), credits)
	assert.Greater(t, messages, int64(0))
	assert.Greater(t, logs, int64(0))
}

func TestEnsureDemoDataSkipsPopulatedStore(t *testing.T) {
	dbConn := setupSeedDB(t)
	existing := identitydomain.User{ID: 1, Name: "Existing", Email: "existing@x.test"}
	require.NoError(t, dbConn.Create(&existing).Error)

	require.NoError(t, EnsureDemoData(dbConn, clock.NewFakeClock(seedNow)))

	var users int64
	require.NoError(t, dbConn.Model(&identitydomain.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestEnsureDemoDataStampsCreditsFromClock(t *testing.T) {
	dbConn := setupSeedDB(t)

	require.NoError(t, EnsureDemoData(dbConn, clock.NewFakeClock(seedNow)))

	var credits []creditdomain.UserCredit
	require.NoError(t, dbConn.Find(&credits).Error)
	require.NotEmpty(t, credits)
	for _, credit := range credits {
		assert.WithinDuration(t, seedNow, credit.UpdatedAt, time.Second)
	}
}
