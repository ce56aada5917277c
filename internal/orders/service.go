package orders

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
)

// Service drives the order lifecycle: cart conversion, the status state
// machine, invoice numbering, and stock consistency through the ledger.
//
// A single mutex serializes order mutations. Stock decrements are already
// atomic per product at the repository level; the mutex additionally keeps
// two concurrent edits of the same order from interleaving their
// release/reserve sequences.
type Service struct {
	mu        sync.Mutex
	orders    repo.OrderRepository
	products  repo.ProductRepository
	carts     repo.CartRepository
	users     repo.UserRepository
	sequences repo.SequenceRepository
	ledger    *Ledger
}

func NewService(
	orders repo.OrderRepository,
	products repo.ProductRepository,
	carts repo.CartRepository,
	users repo.UserRepository,
	sequences repo.SequenceRepository,
	ledger *Ledger,
) *Service {
	return &Service{
		orders:    orders,
		products:  products,
		carts:     carts,
		users:     users,
		sequences: sequences,
		ledger:    ledger,
	}
}

// CreateFromCart snapshots the user's cart into a new PENDING order, reserves
// stock for every line, and clears the cart. Cart items whose product no
// longer exists are dropped; if nothing remains the conversion fails with
// ErrEmptyCart. The cart is cleared only after the order has been created and
// stock reserved.
func (s *Service) CreateFromCart(userID int) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.GetByID(userID)
	if err != nil {
		return models.Order{}, err
	}

	cart, err := s.carts.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrCartNotFound) {
			return models.Order{}, ErrEmptyCart
		}
		return models.Order{}, err
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		items = append(items, models.OrderItem{ProductID: ci.ProductID, Qty: ci.Qty})
	}

	order, err := s.place(user, items)
	if err != nil {
		return models.Order{}, err
	}

	if err := s.carts.Clear(userID); err != nil {
		// The order exists and stock is reserved; a stale cart is the lesser
		// evil, so log-and-continue is handled by the caller's response.
		return order, err
	}
	return order, nil
}

// CreateDirect places an order straight from a product/qty list (dealer bulk
// orders), bypassing the cart.
func (s *Service) CreateDirect(userID int, items []models.OrderItem) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.GetByID(userID)
	if err != nil {
		return models.Order{}, err
	}
	return s.place(user, items)
}

// place validates the line items, prices them, reserves stock, and persists
// the order. Callers hold s.mu.
func (s *Service) place(user models.User, items []models.OrderItem) (models.Order, error) {
	kept := make([]models.OrderItem, 0, len(items))
	products := map[int]models.Product{}
	for _, item := range items {
		if item.Qty < 1 {
			return models.Order{}, ErrInvalidQuantity
		}
		p, err := s.products.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repo.ErrProductNotFound) {
				continue // stale reference, drop the line
			}
			return models.Order{}, err
		}
		products[p.ID] = p
		kept = append(kept, item)
	}
	if len(kept) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	totalAmount, finalAmount := ComputeTotals(kept, products, user.Role)

	if err := s.ledger.Reserve(kept, "order create"); err != nil {
		return models.Order{}, err
	}

	orderNumber, err := s.nextOrderNumber(user.Role)
	if err != nil {
		_ = s.ledger.Release(kept, "order create rollback")
		return models.Order{}, err
	}

	order := models.Order{
		OrderNumber:     orderNumber,
		UserID:          user.ID,
		Items:           kept,
		TotalAmount:     totalAmount,
		FinalAmount:     finalAmount,
		DealerPriceUsed: user.Role == models.RoleDealer,
		OrderStatus:     models.OrderPending,
		PaymentStatus:   models.PaymentPending,
	}

	created, err := s.orders.Create(order)
	if err != nil {
		_ = s.ledger.Release(kept, "order create rollback")
		return models.Order{}, err
	}
	return created, nil
}

// nextOrderNumber allocates a human-sequential identifier: CO{n} for
// customer-side roles, DO{n} for dealers.
func (s *Service) nextOrderNumber(role models.Role) (string, error) {
	prefix := "CO"
	if role == models.RoleDealer {
		prefix = "DO"
	}
	n, err := s.sequences.Next(prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", prefix, n), nil
}

// Accept moves a PENDING order to PROCESSING.
func (s *Service) Accept(orderID int) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.OrderStatus != models.OrderPending {
		return models.Order{}, ErrInvalidTransition
	}
	order.OrderStatus = models.OrderProcessing
	return s.orders.Update(order)
}

// Reject cancels any non-terminal order. Completed (and already cancelled)
// orders cannot be rejected.
func (s *Service) Reject(orderID int) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.OrderStatus.Terminal() {
		return models.Order{}, ErrInvalidTransition
	}
	order.OrderStatus = models.OrderCancelled
	return s.orders.Update(order)
}

// EditItems replaces the order's item snapshot. Only allowed while the order
// is PENDING or PROCESSING and no invoice number has been assigned.
//
// The swap is applied as per-product deltas: additional stock is reserved
// first (all or nothing), and only then is surplus stock released. A failed
// reservation therefore leaves both the order and every stock counter
// exactly as they were.
func (s *Service) EditItems(orderID int, newItems []models.OrderItem) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.OrderStatus.Terminal() || order.InvoiceNumber != "" {
		return models.Order{}, ErrInvalidTransition
	}

	products := map[int]models.Product{}
	newQty := map[int]int{}
	for _, item := range newItems {
		if item.Qty < 1 {
			return models.Order{}, ErrInvalidQuantity
		}
		p, err := s.products.GetByID(item.ProductID)
		if err != nil {
			return models.Order{}, err
		}
		products[p.ID] = p
		newQty[item.ProductID] += item.Qty
	}
	if len(newItems) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	oldQty := map[int]int{}
	for _, item := range order.Items {
		oldQty[item.ProductID] += item.Qty
	}

	var increases, decreases []models.OrderItem
	for productID, qty := range newQty {
		if d := qty - oldQty[productID]; d > 0 {
			increases = append(increases, models.OrderItem{ProductID: productID, Qty: d})
		}
	}
	for productID, qty := range oldQty {
		if d := qty - newQty[productID]; d > 0 {
			decreases = append(decreases, models.OrderItem{ProductID: productID, Qty: d})
		}
	}

	if err := s.ledger.Reserve(increases, "order edit"); err != nil {
		return models.Order{}, err
	}
	if err := s.ledger.Release(decreases, "order edit"); err != nil {
		return models.Order{}, err
	}

	user, err := s.users.GetByID(order.UserID)
	if err != nil {
		return models.Order{}, err
	}
	order.TotalAmount, order.FinalAmount = ComputeTotals(newItems, products, user.Role)
	order.Items = newItems
	return s.orders.Update(order)
}

// AssignInvoice validates and attaches an operator-supplied invoice number,
// completing the order. This is the only transition into COMPLETED.
func (s *Service) AssignInvoice(orderID int, candidate string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return models.Order{}, ErrInvoiceNumberRequired
	}

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.OrderStatus != models.OrderPending && order.OrderStatus != models.OrderProcessing {
		return models.Order{}, ErrInvalidTransition
	}

	inUse, err := s.orders.InvoiceNumberInUse(candidate, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if inUse {
		return models.Order{}, ErrDuplicateInvoiceNumber
	}

	order.InvoiceNumber = candidate
	order.OrderStatus = models.OrderCompleted
	updated, err := s.orders.Update(order)
	if errors.Is(err, repo.ErrDuplicatedValueUnique) {
		// Lost a race against another assignment; same answer either way.
		return models.Order{}, ErrDuplicateInvoiceNumber
	}
	return updated, err
}

// MarkPaid flips the payment status. Cancelled orders stay unpaid.
func (s *Service) MarkPaid(orderID int) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return models.Order{}, err
	}
	if order.OrderStatus == models.OrderCancelled {
		return models.Order{}, ErrInvalidTransition
	}
	order.PaymentStatus = models.PaymentPaid
	return s.orders.Update(order)
}

// Delete removes an order. Customers and dealers may delete only their own
// PENDING orders; admins and managers may delete in any state. Stock is
// always released before the record goes away.
func (s *Service) Delete(orderID int, actor models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return err
	}

	switch actor.Role {
	case models.RoleAdmin, models.RoleManager:
	default:
		if order.UserID != actor.ID || order.OrderStatus != models.OrderPending {
			return ErrForbidden
		}
	}

	if err := s.ledger.Release(order.Items, "order delete"); err != nil {
		return err
	}
	return s.orders.Delete(orderID)
}

// BillBasis builds the starting point for an order's bill: the item snapshot
// priced under the owner's strategy. Admins edit and save the result through
// the bill repository without touching the order itself.
func (s *Service) BillBasis(orderID int) (models.Bill, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		return models.Bill{}, err
	}
	user, err := s.users.GetByID(order.UserID)
	if err != nil {
		return models.Bill{}, err
	}

	strategy := StrategyFor(user.Role)
	bill := models.Bill{
		OrderID:         order.ID,
		CustomerName:    user.Name,
		CustomerPhone:   user.Phone,
		CustomerAddress: user.Address,
	}
	for _, item := range order.Items {
		p, err := s.products.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, repo.ErrProductNotFound) {
				continue
			}
			return models.Bill{}, err
		}
		price := strategy.UnitPrice(p)
		amount := price * float64(item.Qty)
		bill.Items = append(bill.Items, models.BillItem{
			ProductID: item.ProductID,
			Qty:       item.Qty,
			Price:     price,
			Amount:    amount,
		})
		bill.Subtotal += amount
	}
	bill.TotalAmount = bill.Subtotal
	return bill, nil
}
