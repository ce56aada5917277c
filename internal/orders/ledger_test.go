package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
)

func newTestLedger(t *testing.T) (*Ledger, *repo.InMemoryProductRepository, *repo.InMemoryMovementRepository) {
	t.Helper()
	products := repo.NewInMemoryProductRepository()
	movements := repo.NewInMemoryMovementRepository()
	return NewLedger(products, movements), products, movements
}

func seedProduct(t *testing.T, products *repo.InMemoryProductRepository, name string, stock int) models.Product {
	t.Helper()
	p, err := products.Create(models.Product{
		Name:        name,
		RetailPrice: 100,
		DealerPrice: 80,
		StockQty:    stock,
	})
	require.NoError(t, err)
	return p
}

func TestLedgerReserveAndRelease(t *testing.T) {
	ledger, products, _ := newTestLedger(t)
	p := seedProduct(t, products, "Widget", 10)

	items := []models.OrderItem{{ProductID: p.ID, Qty: 4}}
	require.NoError(t, ledger.Reserve(items, "order create"))

	got, err := products.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, got.StockQty)

	require.NoError(t, ledger.Release(items, "order delete"))

	got, err = products.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.StockQty)
	assert.Equal(t, models.AlertLow, got.AlertLevel)
}

func TestLedgerReserveInsufficientStock(t *testing.T) {
	ledger, products, _ := newTestLedger(t)
	p := seedProduct(t, products, "Widget", 3)

	err := ledger.Reserve([]models.OrderItem{{ProductID: p.ID, Qty: 5}}, "order create")
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, p.ID, stockErr.ProductID)
	assert.Equal(t, 5, stockErr.Requested)
	assert.Equal(t, 3, stockErr.Available)

	got, err := products.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.StockQty)
}

func TestLedgerReserveAllOrNothing(t *testing.T) {
	ledger, products, movements := newTestLedger(t)
	first := seedProduct(t, products, "First", 10)
	second := seedProduct(t, products, "Second", 1)

	err := ledger.Reserve([]models.OrderItem{
		{ProductID: first.ID, Qty: 5},
		{ProductID: second.ID, Qty: 2},
	}, "order create")

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, second.ID, stockErr.ProductID)

	// The first line must have been rolled back.
	got, err := products.GetByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.StockQty)

	// Failed reservations leave no movements behind.
	logged, _, err := movements.GetByProductID(first.ID, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, logged)
}

func TestLedgerReleaseSkipsRemovedProducts(t *testing.T) {
	ledger, products, _ := newTestLedger(t)
	kept := seedProduct(t, products, "Kept", 5)
	gone := seedProduct(t, products, "Gone", 5)
	require.NoError(t, products.Delete(gone.ID))

	err := ledger.Release([]models.OrderItem{
		{ProductID: gone.ID, Qty: 2},
		{ProductID: kept.ID, Qty: 2},
	}, "order delete")
	require.NoError(t, err)

	got, err := products.GetByID(kept.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.StockQty)
}

func TestLedgerAlertLevelTracksStock(t *testing.T) {
	ledger, products, _ := newTestLedger(t)
	p := seedProduct(t, products, "Widget", 60)

	steps := []struct {
		delta int
		want  models.AlertLevel
	}{
		{-11, models.AlertWarning},  // 49
		{-30, models.AlertLow},      // 19
		{-15, models.AlertCritical}, // 4
		{+50, models.AlertNone},     // 54
	}
	for _, step := range steps {
		got, err := ledger.Adjust(p.ID, step.delta, "manual adjustment")
		require.NoError(t, err)
		assert.Equal(t, step.want, got.AlertLevel, "stock %d", got.StockQty)
		assert.Equal(t, models.AlertLevelFor(got.StockQty), got.AlertLevel)
	}
}

func TestLedgerMovementsAreLogged(t *testing.T) {
	ledger, products, movements := newTestLedger(t)
	p := seedProduct(t, products, "Widget", 10)

	require.NoError(t, ledger.Reserve([]models.OrderItem{{ProductID: p.ID, Qty: 3}}, "order create"))
	require.NoError(t, ledger.Release([]models.OrderItem{{ProductID: p.ID, Qty: 3}}, "order delete"))

	logged, total, err := movements.GetByProductID(p.ID, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, logged, 2)
	assert.Equal(t, -3, logged[0].Delta)
	assert.Equal(t, 3, logged[1].Delta)
}
