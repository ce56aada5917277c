package repo

import (
	"sync"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

// InMemoryBillRepository is an in-memory implementation of BillRepository.
type InMemoryBillRepository struct {
	mu     sync.Mutex
	bills  map[int]models.Bill // keyed by order id
	nextID int
}

func NewInMemoryBillRepository() *InMemoryBillRepository {
	return &InMemoryBillRepository{
		bills:  map[int]models.Bill{},
		nextID: 1,
	}
}

func (r *InMemoryBillRepository) GetByOrderID(orderID int) (models.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bills[orderID]
	if !ok {
		return models.Bill{}, ErrBillNotFound
	}
	return b, nil
}

func (r *InMemoryBillRepository) Save(bill models.Bill) (models.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.bills[bill.OrderID]
	if ok {
		bill.ID = existing.ID
		bill.CreatedAt = existing.CreatedAt
	} else {
		bill.ID = r.nextID
		r.nextID++
		bill.CreatedAt = time.Now().UTC()
	}
	bill.UpdatedAt = time.Now().UTC()
	r.bills[bill.OrderID] = bill
	return bill, nil
}

func (r *InMemoryBillRepository) DeleteByOrderID(orderID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bills[orderID]; !ok {
		return ErrBillNotFound
	}
	delete(r.bills, orderID)
	return nil
}

// Clear removes every bill. Used by tests.
func (r *InMemoryBillRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bills = map[int]models.Bill{}
	r.nextID = 1
}
