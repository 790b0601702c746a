package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsight-ai/shopsight-backend/internal/catalog"
	"github.com/shopsight-ai/shopsight-backend/internal/orders"
	"github.com/shopsight-ai/shopsight-backend/internal/predictions"
	"github.com/shopsight-ai/shopsight-backend/internal/scoring"
	"github.com/shopsight-ai/shopsight-backend/internal/snapshot"
	"github.com/shopsight-ai/shopsight-backend/internal/store"
	"github.com/shopsight-ai/shopsight-backend/pkg/config"
	"github.com/shopsight-ai/shopsight-backend/pkg/db/models"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
	"github.com/shopsight-ai/shopsight-backend/pkg/metrics"
	"github.com/shopsight-ai/shopsight-backend/pkg/storage/local"
)

func newTestRouter(t *testing.T, scoringCfg config.ScoringConfig) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	storageCfg := config.StorageConfig{Backend: config.StorageBackendLocal, LocalDir: t.TempDir()}
	objects, err := local.NewStore(storageCfg, logg)
	require.NoError(t, err)

	snapCfg := config.SnapshotConfig{WorkDir: t.TempDir(), ObjectKey: "shop.db"}
	codec, err := snapshot.NewCodec(snapCfg, logg)
	require.NoError(t, err)

	gateway := store.NewGateway(store.GatewayParams{
		Objects: objects,
		Codec:   codec,
		Config:  snapCfg,
		Logger:  logg,
		Metrics: metrics.NewStoreMetrics(nil),
	})

	// Seed a snapshot with one customer and one product.
	ctx := context.Background()
	handle, err := codec.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, handle.DB().Create(&models.Customer{Name: "Ada Lovelace", Active: true}).Error)
	require.NoError(t, handle.DB().Create(&models.Product{Name: "Widget", UnitPrice: decimal.NewFromFloat(30), Active: true}).Error)
	require.NoError(t, gateway.Release(ctx, handle, true))

	cfg := &config.Config{
		App:     config.AppConfig{Env: "test"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"*"}},
		Metrics: config.MetricsConfig{Enabled: true},
	}

	return NewRouter(RouterParams{
		Config:  cfg,
		Logger:  logg,
		Gateway: gateway,
		Catalog: catalog.NewRepository(),
		Orders: orders.NewService(orders.ServiceParams{
			Repo:    orders.NewRepository(),
			Logger:  logg,
			Metrics: metrics.NewOrderMetrics(nil),
		}),
		Predictions: predictions.NewRepository(),
		Scoring: scoring.NewService(scoring.ServiceParams{
			Runner:  scoring.NewLocalRunner(scoringCfg),
			Logger:  logg,
			Metrics: metrics.NewScoringMetrics(nil),
		}),
		Objects:  objects,
		Registry: prometheus.NewRegistry(),
	})
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload.Error.Code
}

func TestListCustomers(t *testing.T) {
	router := newTestRouter(t, config.ScoringConfig{})

	rec := doRequest(t, router, http.MethodGet, "/customers", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var customers []models.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customers))
	require.Len(t, customers, 1)
	assert.Equal(t, "Ada Lovelace", customers[0].Name)
}

func TestListOrdersRequiresCustomerID(t *testing.T) {
	router := newTestRouter(t, config.ScoringConfig{})

	rec := doRequest(t, router, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))

	rec = doRequest(t, router, http.MethodGet, "/orders?customerId=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestPreflightReturnsEmpty204(t *testing.T) {
	router := newTestRouter(t, config.ScoringConfig{})

	req := httptest.NewRequest(http.MethodOptions, "/orders", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPlaceOrderAndListIt(t *testing.T) {
	router := newTestRouter(t, config.ScoringConfig{})

	rec := doRequest(t, router, http.MethodPost, "/orders", map[string]any{
		"customerId": 1,
		"items": []map[string]any{
			{"productId": 1, "quantity": 2, "unitPrice": "30.00"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		OrderID int64 `json:"orderId"`
		Success bool  `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	require.NotZero(t, created.OrderID)

	// The order survived the persist cycle and is visible to a fresh handle.
	rec = doRequest(t, router, http.MethodGet, fmt.Sprintf("/orders?customerId=%d", 1), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.OrderID, listed[0].OrderID)
	assert.Equal(t, "74.79", listed[0].Total.StringFixed(2))
}

func TestPlaceOrderInvalidBody(t *testing.T) {
	router := newTestRouter(t, config.ScoringConfig{})

	rec := doRequest(t, router, http.MethodPost, "/orders", map[string]any{
		"customerId": 1,
		"items":      []map[string]any{},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestPlaceOrderDanglingProduct(t *testing.T) {
	router := newTestRouter(t, config.ScoringConfig{})

	rec := doRequest(t, router, http.MethodPost, "/orders", map[string]any{
		"customerId": 1,
		"items": []map[string]any{
			{"productId": 999, "quantity": 1, "unitPrice": "10.00"},
		},
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "TRANSACTION_FAILED", errorCode(t, rec))

	rec = doRequest(t, router, http.MethodGet, "/orders?customerId=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed)
}

func TestRunScoringUnconfiguredLeavesQueueUnchanged(t *testing.T) {
	router := newTestRouter(t, config.ScoringConfig{})

	rec := doRequest(t, router, http.MethodPost, "/run-scoring", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "JOB_UNAVAILABLE", errorCode(t, rec))

	rec = doRequest(t, router, http.MethodGet, "/priority-queue", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []predictions.QueueRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Empty(t, rows)
}

func TestRunScoringSuccess(t *testing.T) {
	router := newTestRouter(t, config.ScoringConfig{
		Command: "sh",
		Args:    []string{"-c", "echo scored 5 orders"},
	})

	rec := doRequest(t, router, http.MethodPost, "/run-scoring", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var payload struct {
		Success bool   `json:"success"`
		Stdout  string `json:"stdout"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.Contains(t, payload.Stdout, "scored 5 orders")
}

func TestPriorityQueueLimitParam(t *testing.T) {
	router := newTestRouter(t, config.ScoringConfig{})

	rec := doRequest(t, router, http.MethodGet, "/priority-queue?limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []predictions.QueueRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Empty(t, rows)

	rec = doRequest(t, router, http.MethodGet, "/priority-queue?limit=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))

	rec = doRequest(t, router, http.MethodGet, "/priority-queue?limit=500", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, config.ScoringConfig{})

	rec := doRequest(t, router, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, config.ScoringConfig{})

	rec := doRequest(t, router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
