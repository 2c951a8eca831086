package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analytics "github.com/kitewave/pulse/internal/analytics/domain"
)

func TestRateLimitImpactCountsLimitHitDays(t *testing.T) {
	svc, dbConn, node := setupService(t)

	capped := createUser(t, dbConn, node, "Capped", "capped@x.test")
	light := createUser(t, dbConn, node, "Light", "light@x.test")

	day1 := testNow.AddDate(0, 0, -2)
	day2 := testNow.AddDate(0, 0, -1)

	// exactly five messages in a day is a limit hit
	createMessages(t, dbConn, node, capped.ID, day1, 5)
	createMessages(t, dbConn, node, capped.ID, day2, 7)
	// four is not
	createMessages(t, dbConn, node, light.ID, day1, 4)

	got, err := svc.GetRateLimitImpactMetrics(context.Background(), req(analytics.Period7d))
	require.NoError(t, err)

	assert.Equal(t, int64(2), got.TotalDaysWithLimitHits)
	assert.Equal(t, int64(1), got.UniqueUsersAffected)
	// (5+7)/2 messages across the two capped days
	assert.Equal(t, "6.00", got.AverageMessagesOnLimitDays)

	require.Len(t, got.DailyLimitHits, 2)
	assert.Equal(t, capped.ID.String(), got.DailyLimitHits[0].UserID)
	assert.Equal(t, day1.Format("2006-01-02"), got.DailyLimitHits[0].Date)
	assert.Equal(t, int64(5), got.DailyLimitHits[0].MessageCount)
	assert.Equal(t, int64(7), got.DailyLimitHits[1].MessageCount)
}

func TestRateLimitImpactEmptyStore(t *testing.T) {
	svc, _, _ := setupService(t)

	got, err := svc.GetRateLimitImpactMetrics(context.Background(), req(analytics.Period30d))
	require.NoError(t, err)

	assert.Equal(t, int64(0), got.TotalDaysWithLimitHits)
	assert.Equal(t, int64(0), got.UniqueUsersAffected)
	assert.Equal(t, "0", got.AverageMessagesOnLimitDays)
	assert.Empty(t, got.DailyLimitHits)
}
