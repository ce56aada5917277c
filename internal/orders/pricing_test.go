package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

func TestStrategyFor(t *testing.T) {
	widget := models.Product{RetailPrice: 100, DealerPrice: 80}

	assert.Equal(t, 80.0, StrategyFor(models.RoleDealer).UnitPrice(widget))
	assert.Equal(t, 100.0, StrategyFor(models.RoleCustomer).UnitPrice(widget))
	assert.Equal(t, 100.0, StrategyFor(models.RoleAdmin).UnitPrice(widget))
	assert.Equal(t, 100.0, StrategyFor(models.RoleManager).UnitPrice(widget))
}

func TestComputeTotals(t *testing.T) {
	products := map[int]models.Product{
		1: {ID: 1, RetailPrice: 100, DealerPrice: 80},
		2: {ID: 2, RetailPrice: 50, DealerPrice: 40},
	}
	items := []models.OrderItem{
		{ProductID: 1, Qty: 2},
		{ProductID: 2, Qty: 1},
	}

	t.Run("customer pays retail", func(t *testing.T) {
		total, final := ComputeTotals(items, products, models.RoleCustomer)
		assert.Equal(t, 250.0, total)
		assert.Equal(t, 250.0, final)
	})

	t.Run("dealer pays dealer price, total stays retail", func(t *testing.T) {
		total, final := ComputeTotals(items, products, models.RoleDealer)
		assert.Equal(t, 250.0, total)
		assert.Equal(t, 200.0, final)
	})

	t.Run("unknown products contribute nothing", func(t *testing.T) {
		total, final := ComputeTotals([]models.OrderItem{{ProductID: 99, Qty: 3}}, products, models.RoleCustomer)
		assert.Zero(t, total)
		assert.Zero(t, final)
	})
}
