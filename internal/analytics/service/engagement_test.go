package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
)

func TestEngagementMetricsRanksUsersByVolume(t *testing.T) {
	svc, dbConn, node := setupService(t)

	alice := createUser(t, dbConn, node, "Alice", "alice@x.test")
	bob := createUser(t, dbConn, node, "Bob", "bob@x.test")
	carol := createUser(t, dbConn, node, "Carol", "carol@x.test")

	inRange := testNow.AddDate(0, 0, -2)
	createMessages(t, dbConn, node, alice.ID, inRange, 5)
	createMessages(t, dbConn, node, bob.ID, inRange, 9)
	createMessages(t, dbConn, node, carol.ID, inRange, 1)

	// outside the window, must not count
	createMessages(t, dbConn, node, alice.ID, testNow.AddDate(0, 0, -40), 20)

	got, err := svc.GetEngagementMetrics(context.Background(), req(analytics.Period30d))
	require.NoError(t, err)

	require.Len(t, got.MessagesPerUser, 3)
	assert.Equal(t, "Bob", got.MessagesPerUser[0].Name)
	assert.Equal(t, int64(9), got.MessagesPerUser[0].Count)
	assert.Equal(t, "Alice", got.MessagesPerUser[1].Name)
	assert.Equal(t, "Carol", got.MessagesPerUser[2].Name)

	assert.Equal(t, int64(3), got.TotalActiveUsers)
	// 15 messages over 3 active users
	assert.Equal(t, "5.00", got.AvgMessagesPerUser)

	require.Len(t, got.DailyActiveUsers, 1)
	assert.Equal(t, inRange.Format("2006-01-02"), got.DailyActiveUsers[0].Date)
	assert.Equal(t, int64(3), got.DailyActiveUsers[0].Count)
}

func TestEngagementMetricsDailyActiveCountsDistinctUsers(t *testing.T) {
	svc, dbConn, node := setupService(t)
	alice := createUser(t, dbConn, node, "Alice", "alice@x.test")

	day1 := time.Date(2025, 8, 13, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 8, 14, 9, 0, 0, 0, time.UTC)
	createMessages(t, dbConn, node, alice.ID, day1, 4)
	createMessages(t, dbConn, node, alice.ID, day2, 2)

	got, err := svc.GetEngagementMetrics(context.Background(), req(analytics.Period7d))
	require.NoError(t, err)

	require.Len(t, got.DailyActiveUsers, 2)
	assert.Equal(t, int64(1), got.DailyActiveUsers[0].Count)
	assert.Equal(t, int64(1), got.DailyActiveUsers[1].Count)
	assert.Equal(t, day1.Format("2006-01-02"), got.DailyActiveUsers[0].Date)
}

func TestEngagementMetricsEmptyStore(t *testing.T) {
	svc, _, _ := setupService(t)

	got, err := svc.GetEngagementMetrics(context.Background(), req(analytics.Period7d))
	require.NoError(t, err)

	assert.Empty(t, got.MessagesPerUser)
	assert.Empty(t, got.DailyActiveUsers)
	assert.Equal(t, int64(0), got.TotalActiveUsers)
	assert.Equal(t, "0", got.AvgMessagesPerUser)
}
