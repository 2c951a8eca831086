package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	analyticsdomain "github.com/kitewave/pulse/internal/analytics/domain"
	analyticsservice "github.com/kitewave/pulse/internal/analytics/service"
	chatdomain "github.com/kitewave/pulse/internal/chat/domain"
	"github.com/kitewave/pulse/internal/clock"
	"github.com/kitewave/pulse/internal/config"
	identitydomain "github.com/kitewave/pulse/internal/identity/domain"
	"github.com/kitewave/pulse/pkg/db"
)

type staticJitter struct{}

func (staticJitter) Float64() float64 { return 0.5 }

func setupTestServer(t *testing.T) (*Server, *snowflake.Node) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbConn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, dbConn.AutoMigrate(
		&identitydomain.User{},
		&identitydomain.Account{},
		&chatdomain.MessageLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := analyticsservice.NewService(analyticsservice.Params{
		DB:     dbConn,
		Log:    zap.NewNop(),
		Clock:  clock.NewFakeClock(time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)),
		Jitter: staticJitter{},
	})

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := NewServer(ServerParams{
		Gin:          engine,
		Cfg:          config.Config{},
		DB:           dbConn,
		AnalyticsSvc: svc,
	})
	return srv, node
}

func doRequest(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func TestAnalyticsRoutesReturnBundles(t *testing.T) {
	srv, node := setupTestServer(t)

	user := identitydomain.User{ID: node.Generate(), Name: "Alice", Email: "alice@x.test"}
	require.NoError(t, srv.db.Create(&user).Error)

	rec := doRequest(t, srv, "/api/analytics/retention?period=30d")
	require.Equal(t, http.StatusOK, rec.Code)

	var body analyticsdomain.RetentionMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Retention, 3)
	assert.Equal(t, 1, body.Retention[0].Day)
	assert.Equal(t, int64(1), body.Retention[0].TotalNewUsers)
}

func TestAnalyticsRoutesDefaultPeriod(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doRequest(t, srv, "/api/analytics/growth")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAnalyticsRoutesRejectMalformedPeriod(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doRequest(t, srv, "/api/analytics/growth?period=fortnight")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Type   string `json:"type"`
			Errors []struct {
				Field string `json:"field"`
				Code  string `json:"code"`
			} `json:"errors"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Type)
	require.Len(t, body.Error.Errors, 1)
	assert.Equal(t, "period", body.Error.Errors[0].Field)
	assert.Equal(t, "invalid_period", body.Error.Errors[0].Code)
}

func TestAnalyticsRoutesRejectPeriodOutsideBundleSet(t *testing.T) {
	srv, _ := setupTestServer(t)

	// message volume caps out at 90d
	rec := doRequest(t, srv, "/api/analytics/message-volume?period=1y")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// revenue has no 7d grain
	rec = doRequest(t, srv, "/api/analytics/revenue?period=7d")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
