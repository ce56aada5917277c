package repo

import (
	"sync"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

// InMemoryOrderRepository is an in-memory implementation of OrderRepository.
type InMemoryOrderRepository struct {
	mu     sync.Mutex
	orders []models.Order
	nextID int
}

func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: []models.Order{},
		nextID: 1,
	}
}

func (r *InMemoryOrderRepository) Create(order models.Order) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range r.orders {
		if o.OrderNumber == order.OrderNumber {
			return models.Order{}, ErrDuplicatedValueUnique
		}
	}

	order.ID = r.nextID
	r.nextID++
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	order.UpdatedAt = order.CreatedAt
	r.orders = append(r.orders, cloneOrder(order))
	return order, nil
}

func (r *InMemoryOrderRepository) GetByID(id int) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

func (r *InMemoryOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (r *InMemoryOrderRepository) GetByUserID(userID int) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	return out, nil
}

func (r *InMemoryOrderRepository) Update(order models.Order) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.InvoiceNumber != "" {
		for _, o := range r.orders {
			if o.ID != order.ID && o.InvoiceNumber == order.InvoiceNumber {
				return models.Order{}, ErrDuplicatedValueUnique
			}
		}
	}

	for i, o := range r.orders {
		if o.ID == order.ID {
			order.CreatedAt = o.CreatedAt
			order.UpdatedAt = time.Now().UTC()
			r.orders[i] = cloneOrder(order)
			return order, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

func (r *InMemoryOrderRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return ErrOrderNotFound
}

func (r *InMemoryOrderRepository) InvoiceNumberInUse(invoiceNumber string, excludeOrderID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if invoiceNumber == "" {
		return false, nil
	}
	for _, o := range r.orders {
		if o.ID != excludeOrderID && o.InvoiceNumber == invoiceNumber {
			return true, nil
		}
	}
	return false, nil
}

// Clear removes every order. Used by tests.
func (r *InMemoryOrderRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = []models.Order{}
	r.nextID = 1
}

func cloneOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
