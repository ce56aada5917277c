package repo

import (
	"sync"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

// InMemoryCartRepository is an in-memory implementation of CartRepository.
// The mutex also serializes concurrent mutations of a single user's cart.
type InMemoryCartRepository struct {
	mu     sync.Mutex
	carts  map[int]models.Cart
	nextID int
}

func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{
		carts:  map[int]models.Cart{},
		nextID: 1,
	}
}

func (r *InMemoryCartRepository) GetByUserID(userID int) (models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[userID]
	if !ok {
		return models.Cart{}, ErrCartNotFound
	}
	return cloneCart(c), nil
}

func (r *InMemoryCartRepository) Save(cart models.Cart) (models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.carts[cart.UserID]
	if ok {
		cart.ID = existing.ID
	} else {
		cart.ID = r.nextID
		r.nextID++
	}
	r.carts[cart.UserID] = cloneCart(cart)
	return cart, nil
}

// Clear empties the cart's items; the cart record itself stays.
func (r *InMemoryCartRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[userID]
	if !ok {
		return ErrCartNotFound
	}
	c.Items = []models.CartItem{}
	r.carts[userID] = c
	return nil
}

// ClearAll removes every cart. Used by tests.
func (r *InMemoryCartRepository) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts = map[int]models.Cart{}
	r.nextID = 1
}

func cloneCart(c models.Cart) models.Cart {
	items := make([]models.CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
