package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
)

func TestMessageVolumeMetricsBucketsByDateAndHour(t *testing.T) {
	svc, dbConn, node := setupService(t)
	user := createUser(t, dbConn, node, "Alice", "alice@x.test")

	morning := time.Date(2025, 8, 14, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 8, 14, 21, 0, 0, 0, time.UTC)
	nextMorning := time.Date(2025, 8, 15, 9, 0, 0, 0, time.UTC)

	createMessages(t, dbConn, node, user.ID, morning, 3)
	createMessages(t, dbConn, node, user.ID, evening, 2)
	createMessages(t, dbConn, node, user.ID, nextMorning, 1)

	got, err := svc.GetMessageVolumeMetrics(context.Background(), req(analytics.Period7d))
	require.NoError(t, err)

	assert.Equal(t, int64(6), got.TotalMessages)

	require.Len(t, got.DailyMessages, 3)
	assert.Equal(t, "2025-08-14", got.DailyMessages[0].Date)
	assert.Equal(t, 9, got.DailyMessages[0].Hour)
	assert.Equal(t, int64(3), got.DailyMessages[0].Count)
	assert.Equal(t, 21, got.DailyMessages[1].Hour)
	assert.Equal(t, "2025-08-15", got.DailyMessages[2].Date)

	// hour 9 aggregates across both days
	require.Len(t, got.HourlyStats, 2)
	assert.Equal(t, 9, got.HourlyStats[0].Hour)
	assert.Equal(t, int64(4), got.HourlyStats[0].Count)
	assert.Equal(t, 21, got.HourlyStats[1].Hour)
	assert.Equal(t, int64(2), got.HourlyStats[1].Count)
}

func TestMessageVolumeMetricsExcludesOutOfRange(t *testing.T) {
	svc, dbConn, node := setupService(t)
	user := createUser(t, dbConn, node, "Alice", "alice@x.test")

	createMessages(t, dbConn, node, user.ID, testNow.AddDate(0, 0, -10), 5)

	got, err := svc.GetMessageVolumeMetrics(context.Background(), req(analytics.Period7d))
	require.NoError(t, err)

	assert.Equal(t, int64(0), got.TotalMessages)
	assert.Empty(t, got.DailyMessages)
}
