package predictions

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsight-ai/shopsight-backend/internal/snapshot"
	"github.com/shopsight-ai/shopsight-backend/pkg/config"
	"github.com/shopsight-ai/shopsight-backend/pkg/db/models"
	"github.com/shopsight-ai/shopsight-backend/pkg/logger"
)

func newTestHandle(t *testing.T) *snapshot.Handle {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	codec, err := snapshot.NewCodec(config.SnapshotConfig{WorkDir: t.TempDir()}, logg)
	require.NoError(t, err)

	handle, err := codec.Create(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = handle.Close() })

	require.NoError(t, handle.DB().Create(&models.Customer{Name: "Ada Lovelace", Active: true}).Error)
	return handle
}

func seedScoredOrders(t *testing.T, h *snapshot.Handle, probabilities []float64) {
	t.Helper()
	money := decimal.NewFromFloat(20.79)
	for i, prob := range probabilities {
		order := models.Order{
			CustomerID:    1,
			OrderDatetime: fmt.Sprintf("2026-01-%02dT08:00:00", i%27+1),
			Subtotal:      money, ShippingFee: money, Tax: money, Total: money,
		}
		require.NoError(t, h.DB().Create(&order).Error)
		require.NoError(t, h.DB().Create(&models.Prediction{
			OrderID:                 order.OrderID,
			LateDeliveryProbability: prob,
			PredictedLateDelivery:   prob >= 0.5,
			PredictionTimestamp:     "2026-02-01T00:00:00",
		}).Error)
	}
}

func TestPriorityQueueOrderedByProbability(t *testing.T) {
	h := newTestHandle(t)
	repo := NewRepository()

	seedScoredOrders(t, h, []float64{0.2, 0.9, 0.5})

	rows, err := repo.PriorityQueue(context.Background(), h, QueueLimit)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 0.9, rows[0].LateDeliveryProbability)
	assert.Equal(t, 0.5, rows[1].LateDeliveryProbability)
	assert.Equal(t, 0.2, rows[2].LateDeliveryProbability)
	assert.Equal(t, "Ada Lovelace", rows[0].CustomerName)
	for _, row := range rows {
		assert.GreaterOrEqual(t, row.LateDeliveryProbability, 0.0)
		assert.LessOrEqual(t, row.LateDeliveryProbability, 1.0)
	}
}

func TestPriorityQueueCapped(t *testing.T) {
	h := newTestHandle(t)
	repo := NewRepository()

	probs := make([]float64, QueueLimit+10)
	for i := range probs {
		probs[i] = float64(i) / float64(len(probs))
	}
	seedScoredOrders(t, h, probs)

	rows, err := repo.PriorityQueue(context.Background(), h, QueueLimit)
	require.NoError(t, err)
	assert.Len(t, rows, QueueLimit)
}

func TestPriorityQueueTieBreaksByOrderID(t *testing.T) {
	h := newTestHandle(t)
	repo := NewRepository()

	seedScoredOrders(t, h, []float64{0.7, 0.7, 0.7})

	rows, err := repo.PriorityQueue(context.Background(), h, QueueLimit)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Less(t, rows[0].OrderID, rows[1].OrderID)
	assert.Less(t, rows[1].OrderID, rows[2].OrderID)
}

func TestPriorityQueueNarrowerLimit(t *testing.T) {
	h := newTestHandle(t)
	repo := NewRepository()

	seedScoredOrders(t, h, []float64{0.2, 0.9, 0.5})

	rows, err := repo.PriorityQueue(context.Background(), h, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 0.9, rows[0].LateDeliveryProbability)
	assert.Equal(t, 0.5, rows[1].LateDeliveryProbability)
}

func TestPriorityQueueLimitClamped(t *testing.T) {
	h := newTestHandle(t)
	repo := NewRepository()

	probs := make([]float64, QueueLimit+10)
	for i := range probs {
		probs[i] = float64(i) / float64(len(probs))
	}
	seedScoredOrders(t, h, probs)

	rows, err := repo.PriorityQueue(context.Background(), h, QueueLimit*10)
	require.NoError(t, err)
	assert.Len(t, rows, QueueLimit)

	rows, err = repo.PriorityQueue(context.Background(), h, 0)
	require.NoError(t, err)
	assert.Len(t, rows, QueueLimit)
}

func TestPriorityQueueSkipsUnscoredOrders(t *testing.T) {
	h := newTestHandle(t)
	repo := NewRepository()

	seedScoredOrders(t, h, []float64{0.4})

	money := decimal.NewFromFloat(20.79)
	unscored := models.Order{
		CustomerID:    1,
		OrderDatetime: "2026-01-15T08:00:00",
		Subtotal:      money, ShippingFee: money, Tax: money, Total: money,
	}
	require.NoError(t, h.DB().Create(&unscored).Error)

	rows, err := repo.PriorityQueue(context.Background(), h, QueueLimit)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NotEqual(t, unscored.OrderID, rows[0].OrderID)
}
