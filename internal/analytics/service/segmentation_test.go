package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	creditdomain "github.com/kitewave/pulse/internal/credit/domain"
	paymentdomain "github.com/kitewave/pulse/internal/payment/domain"
)

func TestSegmentationSplitsPaidAndHeavyCohorts(t *testing.T) {
	svc, dbConn, node := setupService(t)

	payer := createUser(t, dbConn, node, "Payer", "payer@x.test")
	heavy := createUser(t, dbConn, node, "Heavy", "heavy@x.test")
	casual := createUser(t, dbConn, node, "Casual", "casual@x.test")

	record := paymentdomain.PaymentRecord{
		ID:                node.Generate(),
		UserID:            payer.ID,
		ProviderPaymentID: uuid.NewString(),
		Status:            paymentdomain.RecordStatusSucceeded,
		AmountCents:       499,
		CreatedAt:         testNow.AddDate(0, 0, -5),
	}
	require.NoError(t, dbConn.Create(&record).Error)

	credit := creditdomain.UserCredit{ID: node.Generate(), UserID: payer.ID, Balance: 120, UpdatedAt: testNow}
	require.NoError(t, dbConn.Create(&credit).Error)

	createMessages(t, dbConn, node, heavy.ID, testNow.AddDate(0, 0, -1), 11)
	createMessages(t, dbConn, node, casual.ID, testNow.AddDate(0, 0, -1), 3)

	got, err := svc.GetUserSegmentationMetrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.PaidUsers)
	assert.Equal(t, int64(2), got.FreeUsers)
	assert.Equal(t, int64(1), got.HeavyUsers)
	assert.Equal(t, int64(2), got.LightUsers)

	// every user lands in exactly one of each pair
	assert.Equal(t, int64(3), got.PaidUsers+got.FreeUsers)
	assert.Equal(t, int64(3), got.HeavyUsers+got.LightUsers)

	require.Len(t, got.Segments.Paid, 1)
	assert.Equal(t, "Payer", got.Segments.Paid[0].Name)
	assert.Equal(t, int64(120), got.Segments.Paid[0].Balance)
	assert.True(t, got.Segments.Paid[0].HasPaid)

	require.Len(t, got.Segments.Heavy, 1)
	assert.Equal(t, "Heavy", got.Segments.Heavy[0].Name)
	assert.Equal(t, int64(11), got.Segments.Heavy[0].MessageCount)
}

func TestSegmentationHeavyThresholdIsStrict(t *testing.T) {
	svc, dbConn, node := setupService(t)
	user := createUser(t, dbConn, node, "Boundary", "boundary@x.test")
	createMessages(t, dbConn, node, user.ID, testNow.AddDate(0, 0, -1), 10)

	got, err := svc.GetUserSegmentationMetrics(context.Background())
	require.NoError(t, err)

	// exactly ten messages is still light
	assert.Equal(t, int64(0), got.HeavyUsers)
	assert.Equal(t, int64(1), got.LightUsers)
}

func TestSegmentationPaidIgnoresRecordStatus(t *testing.T) {
	svc, dbConn, node := setupService(t)
	user := createUser(t, dbConn, node, "Failed", "failed@x.test")

	record := paymentdomain.PaymentRecord{
		ID:                node.Generate(),
		UserID:            user.ID,
		ProviderPaymentID: uuid.NewString(),
		Status:            paymentdomain.RecordStatusFailed,
		AmountCents:       499,
		CreatedAt:         testNow.AddDate(0, 0, -5),
	}
	require.NoError(t, dbConn.Create(&record).Error)

	got, err := svc.GetUserSegmentationMetrics(context.Background())
	require.NoError(t, err)

	// any payment record marks the user paid, even a failed one
	assert.Equal(t, int64(1), got.PaidUsers)
	assert.Equal(t, int64(0), got.FreeUsers)
}
