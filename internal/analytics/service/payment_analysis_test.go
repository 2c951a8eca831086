package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
	paymentdomain "github.com/kitewave/pulse/internal/payment/domain"
)

func TestPaymentAnalysisTierSuccessRates(t *testing.T) {
	svc, dbConn, node := setupService(t)
	alice := createUser(t, dbConn, node, "Alice", "alice@x.test")

	at := testNow.AddDate(0, 0, -10)

	okPayment := uuid.NewString()
	intents := []paymentdomain.PaymentIntent{
		{ID: node.Generate(), UserID: alice.ID, Tier: "starter", AmountCents: 499, Status: paymentdomain.IntentStatusCompleted, ProviderPaymentID: okPayment, CreatedAt: at},
		{ID: node.Generate(), UserID: alice.ID, Tier: "starter", AmountCents: 499, Status: paymentdomain.IntentStatusFailed, ProviderPaymentID: uuid.NewString(), CreatedAt: at},
		{ID: node.Generate(), UserID: alice.ID, Tier: "pro", AmountCents: 4999, Status: paymentdomain.IntentStatusFailed, ProviderPaymentID: uuid.NewString(), CreatedAt: at},
	}
	for i := range intents {
		require.NoError(t, dbConn.Create(&intents[i]).Error)
	}

	record := paymentdomain.PaymentRecord{
		ID:                node.Generate(),
		UserID:            alice.ID,
		ProviderPaymentID: okPayment,
		Status:            paymentdomain.RecordStatusSucceeded,
		AmountCents:       499,
		PaymentIntentID:   intents[0].ID,
		CreatedAt:         at,
	}
	require.NoError(t, dbConn.Create(&record).Error)

	got, err := svc.GetPaymentAnalysisMetrics(context.Background(), req(analytics.Period30d))
	require.NoError(t, err)

	require.Len(t, got.TierStats, 2)
	assert.Equal(t, "starter", got.TierStats[0].Tier)
	assert.Equal(t, int64(2), got.TierStats[0].TotalAttempts)
	assert.Equal(t, int64(1), got.TierStats[0].Successful)
	assert.Equal(t, "50.00", got.TierStats[0].SuccessRate)

	assert.Equal(t, "pro", got.TierStats[1].Tier)
	assert.Equal(t, int64(0), got.TierStats[1].Successful)
	assert.Equal(t, "0.00", got.TierStats[1].SuccessRate)
}

func TestPaymentAnalysisProcessingTime(t *testing.T) {
	svc, dbConn, node := setupService(t)
	alice := createUser(t, dbConn, node, "Alice", "alice@x.test")

	createdAt := time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC)
	fast := createdAt.Add(300 * time.Second)
	slow := createdAt.Add(900 * time.Second)

	intents := []paymentdomain.PaymentIntent{
		{ID: node.Generate(), UserID: alice.ID, Tier: "starter", Status: paymentdomain.IntentStatusCompleted, ProviderPaymentID: uuid.NewString(), CreatedAt: createdAt, CompletedAt: &fast},
		{ID: node.Generate(), UserID: alice.ID, Tier: "starter", Status: paymentdomain.IntentStatusCompleted, ProviderPaymentID: uuid.NewString(), CreatedAt: createdAt, CompletedAt: &slow},
		// pending intents contribute no latency sample
		{ID: node.Generate(), UserID: alice.ID, Tier: "starter", Status: paymentdomain.IntentStatusPending, ProviderPaymentID: uuid.NewString(), CreatedAt: createdAt},
	}
	for i := range intents {
		require.NoError(t, dbConn.Create(&intents[i]).Error)
	}

	got, err := svc.GetPaymentAnalysisMetrics(context.Background(), req(analytics.Period30d))
	require.NoError(t, err)

	require.Len(t, got.ProcessingTimes, 2)
	assert.InDelta(t, 300, got.ProcessingTimes[0], 1)
	assert.InDelta(t, 900, got.ProcessingTimes[1], 1)
	// (300+900)/2 seconds is ten minutes
	assert.Equal(t, "10.00", got.AverageProcessingTime)
}

func TestPaymentAnalysisEmptyStore(t *testing.T) {
	svc, _, _ := setupService(t)

	got, err := svc.GetPaymentAnalysisMetrics(context.Background(), req(analytics.Period1y))
	require.NoError(t, err)

	assert.Empty(t, got.TierStats)
	assert.Empty(t, got.ProcessingTimes)
	assert.Equal(t, "0", got.AverageProcessingTime)
}
