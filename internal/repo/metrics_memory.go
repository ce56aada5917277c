package repo

import "github.com/rogerio-castellano/order-tracker/internal/models"

type InMemoryMetricsRepository struct {
	productRepo ProductRepository
	orderRepo   OrderRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (i *InMemoryMetricsRepository) SetRepositories(productRepo ProductRepository, orderRepo OrderRepository) {
	i.productRepo = productRepo
	i.orderRepo = orderRepo
}

// GetDashboardMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	m := Metrics{}

	products, err := i.productRepo.GetAll()
	if err != nil {
		return m, err
	}
	m.TotalProducts = len(products)

	names := map[int]string{}
	for _, p := range products {
		names[p.ID] = p.Name
		switch p.AlertLevel {
		case models.AlertCritical:
			m.CriticalStockCount++
			m.LowStockCount++
		case models.AlertLow:
			m.LowStockCount++
		}
	}

	orders, err := i.orderRepo.GetAll()
	if err != nil {
		return m, err
	}
	m.TotalOrders = len(orders)

	orderedQty := map[int]int{}
	for _, o := range orders {
		if o.OrderStatus == models.OrderPending {
			m.PendingOrders++
		}
		if o.OrderStatus != models.OrderCancelled {
			m.Revenue += o.FinalAmount
			for _, item := range o.Items {
				orderedQty[item.ProductID] += item.Qty
			}
		}
	}

	for productID, qty := range orderedQty {
		if qty > m.TopProduct.OrderedQty {
			m.TopProduct.OrderedQty = qty
			m.TopProduct.Name = names[productID]
		}
	}

	return m, nil
}
