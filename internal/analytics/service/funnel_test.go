package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
	paymentdomain "github.com/kitewave/pulse/internal/payment/domain"
)

func TestFunnelCountsEachStage(t *testing.T) {
	svc, dbConn, node := setupService(t)

	alice := createUser(t, dbConn, node, "Alice", "alice@x.test")
	bob := createUser(t, dbConn, node, "Bob", "bob@x.test")
	createUser(t, dbConn, node, "Silent", "silent@x.test")
	createUser(t, dbConn, node, "Lurker", "lurker@x.test")

	inRange := testNow.AddDate(0, 0, -3)
	createMessages(t, dbConn, node, alice.ID, inRange, 2)
	createMessages(t, dbConn, node, bob.ID, inRange, 1)

	intent := paymentdomain.PaymentIntent{
		ID:                node.Generate(),
		UserID:            alice.ID,
		Tier:              "starter",
		AmountCents:       499,
		Status:            paymentdomain.IntentStatusCompleted,
		ProviderPaymentID: uuid.NewString(),
		CreatedAt:         inRange,
	}
	require.NoError(t, dbConn.Create(&intent).Error)

	record := paymentdomain.PaymentRecord{
		ID:                node.Generate(),
		UserID:            alice.ID,
		ProviderPaymentID: intent.ProviderPaymentID,
		Status:            paymentdomain.RecordStatusSucceeded,
		AmountCents:       499,
		PaymentIntentID:   intent.ID,
		CreatedAt:         inRange,
	}
	require.NoError(t, dbConn.Create(&record).Error)

	got, err := svc.GetConversionFunnelMetrics(context.Background(), req(analytics.Period30d))
	require.NoError(t, err)

	assert.Equal(t, int64(4), got.Registrations)
	assert.Equal(t, int64(2), got.FirstMessage)
	assert.Equal(t, int64(1), got.PaymentIntent)
	assert.Equal(t, int64(1), got.CompletedPayment)

	assert.Equal(t, "50.00", got.Rates.RegistrationToFirstMessage)
	assert.Equal(t, "50.00", got.Rates.FirstMessageToPaymentIntent)
	assert.Equal(t, "100.00", got.Rates.PaymentIntentToCompletion)
	assert.Equal(t, "25.00", got.Rates.OverallConversion)
}

func TestFunnelRatesAreNotClamped(t *testing.T) {
	svc, dbConn, node := setupService(t)

	// registrations are unbounded by the period while message activity is
	// period-scoped; an old user base with recent activity can push the
	// first stage above 100%, and that is reported as-is.
	alice := createUser(t, dbConn, node, "Alice", "alice@x.test")
	createMessages(t, dbConn, node, alice.ID, testNow.AddDate(0, 0, -2), 1)
	createMessages(t, dbConn, node, node.Generate(), testNow.AddDate(0, 0, -2), 1)
	createMessages(t, dbConn, node, node.Generate(), testNow.AddDate(0, 0, -2), 1)

	got, err := svc.GetConversionFunnelMetrics(context.Background(), req(analytics.Period30d))
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.Registrations)
	assert.Equal(t, int64(3), got.FirstMessage)
	assert.Equal(t, "300.00", got.Rates.RegistrationToFirstMessage)
}

func TestFunnelEmptyStoreGuardsDivisions(t *testing.T) {
	svc, _, _ := setupService(t)

	got, err := svc.GetConversionFunnelMetrics(context.Background(), req(analytics.Period1y))
	require.NoError(t, err)

	assert.Equal(t, "0", got.Rates.RegistrationToFirstMessage)
	assert.Equal(t, "0", got.Rates.FirstMessageToPaymentIntent)
	assert.Equal(t, "0", got.Rates.PaymentIntentToCompletion)
	assert.Equal(t, "0", got.Rates.OverallConversion)
}
