package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
)

type serviceFixture struct {
	service   *Service
	products  *repo.InMemoryProductRepository
	orders    *repo.InMemoryOrderRepository
	carts     *repo.InMemoryCartRepository
	users     *repo.InMemoryUserRepository
	movements *repo.InMemoryMovementRepository
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		products:  repo.NewInMemoryProductRepository(),
		orders:    repo.NewInMemoryOrderRepository(),
		carts:     repo.NewInMemoryCartRepository(),
		users:     repo.NewInMemoryUserRepository(),
		movements: repo.NewInMemoryMovementRepository(),
	}
	ledger := NewLedger(f.products, f.movements)
	f.service = NewService(f.orders, f.products, f.carts, f.users, repo.NewInMemorySequenceRepository(), ledger)
	return f
}

func (f *serviceFixture) addUser(t *testing.T, name string, role models.Role) models.User {
	t.Helper()
	u, err := f.users.CreateUser(models.User{
		Name:     name,
		Email:    name + "@example.com",
		Role:     role,
		IsActive: true,
	})
	require.NoError(t, err)
	return u
}

func (f *serviceFixture) addProduct(t *testing.T, name string, retail, dealer float64, stock int) models.Product {
	t.Helper()
	p, err := f.products.Create(models.Product{
		Name:        name,
		RetailPrice: retail,
		DealerPrice: dealer,
		StockQty:    stock,
	})
	require.NoError(t, err)
	return p
}

func (f *serviceFixture) fillCart(t *testing.T, userID int, items ...models.CartItem) {
	t.Helper()
	_, err := f.carts.Save(models.Cart{UserID: userID, Items: items})
	require.NoError(t, err)
}

func (f *serviceFixture) stockOf(t *testing.T, productID int) models.Product {
	t.Helper()
	p, err := f.products.GetByID(productID)
	require.NoError(t, err)
	return p
}

func TestCreateFromCart(t *testing.T) {
	f := newServiceFixture(t)
	customer := f.addUser(t, "alice", models.RoleCustomer)
	p := f.addProduct(t, "Widget", 100, 80, 3)
	f.fillCart(t, customer.ID, models.CartItem{ProductID: p.ID, Qty: 2})

	order, err := f.service.CreateFromCart(customer.ID)
	require.NoError(t, err)

	assert.Equal(t, models.OrderPending, order.OrderStatus)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, "CO1", order.OrderNumber)
	assert.False(t, order.DealerPriceUsed)
	assert.Equal(t, 200.0, order.TotalAmount)
	assert.Equal(t, 200.0, order.FinalAmount)

	got := f.stockOf(t, p.ID)
	assert.Equal(t, 1, got.StockQty)
	assert.Equal(t, models.AlertCritical, got.AlertLevel)

	cart, err := f.carts.GetByUserID(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCreateFromCartDealerPricing(t *testing.T) {
	f := newServiceFixture(t)
	dealer := f.addUser(t, "bob", models.RoleDealer)
	p := f.addProduct(t, "Widget", 100, 80, 50)
	f.fillCart(t, dealer.ID, models.CartItem{ProductID: p.ID, Qty: 3})

	order, err := f.service.CreateFromCart(dealer.ID)
	require.NoError(t, err)

	assert.Equal(t, "DO1", order.OrderNumber)
	assert.True(t, order.DealerPriceUsed)
	assert.Equal(t, 300.0, order.TotalAmount)
	assert.Equal(t, 240.0, order.FinalAmount)
}

func TestCreateFromCartEmpty(t *testing.T) {
	f := newServiceFixture(t)
	customer := f.addUser(t, "alice", models.RoleCustomer)

	t.Run("no cart", func(t *testing.T) {
		_, err := f.service.CreateFromCart(customer.ID)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("only stale product references", func(t *testing.T) {
		f.fillCart(t, customer.ID, models.CartItem{ProductID: 999, Qty: 1})
		_, err := f.service.CreateFromCart(customer.ID)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})
}

func TestCreateFromCartDropsStaleReferences(t *testing.T) {
	f := newServiceFixture(t)
	customer := f.addUser(t, "alice", models.RoleCustomer)
	p := f.addProduct(t, "Widget", 100, 80, 10)
	f.fillCart(t, customer.ID,
		models.CartItem{ProductID: 999, Qty: 1},
		models.CartItem{ProductID: p.ID, Qty: 2},
	)

	order, err := f.service.CreateFromCart(customer.ID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, p.ID, order.Items[0].ProductID)
}

func TestCreateFromCartInsufficientStock(t *testing.T) {
	f := newServiceFixture(t)
	customer := f.addUser(t, "alice", models.RoleCustomer)
	p := f.addProduct(t, "Widget", 100, 80, 1)
	f.fillCart(t, customer.ID, models.CartItem{ProductID: p.ID, Qty: 2})

	_, err := f.service.CreateFromCart(customer.ID)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	// Nothing was created and stock is untouched.
	assert.Equal(t, 1, f.stockOf(t, p.ID).StockQty)
	all, err := f.orders.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	// The cart survives a failed conversion.
	cart, err := f.carts.GetByUserID(customer.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCreateDirectRejectsInvalidQuantity(t *testing.T) {
	f := newServiceFixture(t)
	dealer := f.addUser(t, "bob", models.RoleDealer)
	p := f.addProduct(t, "Widget", 100, 80, 10)

	_, err := f.service.CreateDirect(dealer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 0}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestOrderNumbersAreSequentialPerPrefix(t *testing.T) {
	f := newServiceFixture(t)
	customer := f.addUser(t, "alice", models.RoleCustomer)
	dealer := f.addUser(t, "bob", models.RoleDealer)
	p := f.addProduct(t, "Widget", 100, 80, 100)

	items := []models.OrderItem{{ProductID: p.ID, Qty: 1}}

	first, err := f.service.CreateDirect(customer.ID, items)
	require.NoError(t, err)
	second, err := f.service.CreateDirect(dealer.ID, items)
	require.NoError(t, err)
	third, err := f.service.CreateDirect(customer.ID, items)
	require.NoError(t, err)

	assert.Equal(t, "CO1", first.OrderNumber)
	assert.Equal(t, "DO1", second.OrderNumber)
	assert.Equal(t, "CO2", third.OrderNumber)
}

func TestAcceptOnlyFromPending(t *testing.T) {
	f := newServiceFixture(t)
	customer := f.addUser(t, "alice", models.RoleCustomer)
	p := f.addProduct(t, "Widget", 100, 80, 10)
	order, err := f.service.CreateDirect(customer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 1}})
	require.NoError(t, err)

	accepted, err := f.service.Accept(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, accepted.OrderStatus)

	_, err = f.service.Accept(order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRejectBlockedOnTerminalStates(t *testing.T) {
	f := newServiceFixture(t)
	customer := f.addUser(t, "alice", models.RoleCustomer)
	p := f.addProduct(t, "Widget", 100, 80, 10)

	t.Run("pending and processing can be rejected", func(t *testing.T) {
		order, err := f.service.CreateDirect(customer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 1}})
		require.NoError(t, err)
		rejected, err := f.service.Reject(order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderCancelled, rejected.OrderStatus)

		// Rejecting again is not allowed.
		_, err = f.service.Reject(order.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("completed cannot be rejected", func(t *testing.T) {
		order, err := f.service.CreateDirect(customer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 1}})
		require.NoError(t, err)
		_, err = f.service.AssignInvoice(order.ID, "INV-100")
		require.NoError(t, err)

		_, err = f.service.Reject(order.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestAssignInvoiceCompletesOrder(t *testing.T) {
	f := newServiceFixture(t)
	customer := f.addUser(t, "alice", models.RoleCustomer)
	p := f.addProduct(t, "Widget", 100, 80, 10)
	order, err := f.service.CreateDirect(customer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 1}})
	require.NoError(t, err)

	completed, err := f.service.AssignInvoice(order.ID, "  INV-001  ")
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, completed.OrderStatus)
	assert.Equal(t, "INV-001", completed.InvoiceNumber)
}

func TestAssignInvoiceValidation(t *testing.T) {
	f := newServiceFixture(t)
	customer := f.addUser(t, "alice", models.RoleCustomer)
	p := f.addProduct(t, "Widget", 100, 80, 10)

	first, err := f.service.CreateDirect(customer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 1}})
	require.NoError(t, err)
	second, err := f.service.CreateDirect(customer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 1}})
	require.NoError(t, err)

	t.Run("blank rejected", func(t *testing.T) {
		_, err := f.service.AssignInvoice(first.ID, "   ")
		assert.ErrorIs(t, err, ErrInvoiceNumberRequired)
	})

	t.Run("duplicate rejected", func(t *testing.T) {
		_, err := f.service.AssignInvoice(first.ID, "INV-001")
		require.NoError(t, err)
		_, err = f.service.AssignInvoice(second.ID, "INV-001")
		assert.ErrorIs(t, err, ErrDuplicateInvoiceNumber)
	})

	t.Run("completed order cannot be invoiced again", func(t *testing.T) {
		_, err := f.service.AssignInvoice(first.ID, "INV-002")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancelled order cannot be invoiced", func(t *testing.T) {
		_, err := f.service.Reject(second.ID)
		require.NoError(t, err)
		_, err = f.service.AssignInvoice(second.ID, "INV-003")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestEditItemsRecomputesTotals(t *testing.T) {
	f := newServiceFixture(t)
	customer := f.addUser(t, "alice", models.RoleCustomer)
	widget := f.addProduct(t, "Widget", 100, 80, 10)
	gadget := f.addProduct(t, "Gadget", 50, 40, 10)

	order, err := f.service.CreateDirect(customer.ID, []models.OrderItem{{ProductID: widget.ID, Qty: 2}})
	require.NoError(t, err)
	assert.Equal(t, 8, f.stockOf(t, widget.ID).StockQty)

	edited, err := f.service.EditItems(order.ID, []models.OrderItem{
		{ProductID: widget.ID, Qty: 1},
		{ProductID: gadget.ID, Qty: 4},
	})
	require.NoError(t, err)

	assert.Equal(t, 300.0, edited.TotalAmount)
	assert.Equal(t, 300.0, edited.FinalAmount)
	assert.Equal(t, 9, f.stockOf(t, widget.ID).StockQty)
	assert.Equal(t, 6, f.stockOf(t, gadget.ID).StockQty)
}

func TestEditItemsFailureLeavesEverythingUntouched(t *testing.T) {
	f := newServiceFixture(t)
	customer := f.addUser(t, "alice", models.RoleCustomer)
	p := f.addProduct(t, "Widget", 100, 80, 3)

	order, err := f.service.CreateDirect(customer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 2}})
	require.NoError(t, err)
	require.Equal(t, 1, f.stockOf(t, p.ID).StockQty)

	_, err = f.service.EditItems(order.ID, []models.OrderItem{{ProductID: p.ID, Qty: 10}})
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	assert.Equal(t, 1, f.stockOf(t, p.ID).StockQty)
	unchanged, err := f.orders.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Items, unchanged.Items)
	assert.Equal(t, order.TotalAmount, unchanged.TotalAmount)
}

func TestEditItemsGuards(t *testing.T) {
	f := newServiceFixture(t)
	customer := f.addUser(t, "alice", models.RoleCustomer)
	p := f.addProduct(t, "Widget", 100, 80, 20)
	newItems := []models.OrderItem{{ProductID: p.ID, Qty: 1}}

	t.Run("invoiced order", func(t *testing.T) {
		order, err := f.service.CreateDirect(customer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 1}})
		require.NoError(t, err)
		_, err = f.service.AssignInvoice(order.ID, "INV-500")
		require.NoError(t, err)

		_, err = f.service.EditItems(order.ID, newItems)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancelled order", func(t *testing.T) {
		order, err := f.service.CreateDirect(customer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 1}})
		require.NoError(t, err)
		_, err = f.service.Reject(order.ID)
		require.NoError(t, err)

		_, err = f.service.EditItems(order.ID, newItems)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("empty item list", func(t *testing.T) {
		order, err := f.service.CreateDirect(customer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 1}})
		require.NoError(t, err)

		_, err = f.service.EditItems(order.ID, nil)
		assert.ErrorIs(t, err, ErrEmptyCart)
	})
}

func TestMarkPaid(t *testing.T) {
	f := newServiceFixture(t)
	customer := f.addUser(t, "alice", models.RoleCustomer)
	p := f.addProduct(t, "Widget", 100, 80, 10)

	order, err := f.service.CreateDirect(customer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 1}})
	require.NoError(t, err)

	paid, err := f.service.MarkPaid(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, paid.PaymentStatus)

	cancelled, err := f.service.CreateDirect(customer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 1}})
	require.NoError(t, err)
	_, err = f.service.Reject(cancelled.ID)
	require.NoError(t, err)

	_, err = f.service.MarkPaid(cancelled.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDeleteRestoresStock(t *testing.T) {
	f := newServiceFixture(t)
	customer := f.addUser(t, "alice", models.RoleCustomer)
	p := f.addProduct(t, "Widget", 100, 80, 5)

	order, err := f.service.CreateDirect(customer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 3}})
	require.NoError(t, err)
	require.Equal(t, 2, f.stockOf(t, p.ID).StockQty)

	require.NoError(t, f.service.Delete(order.ID, customer))

	assert.Equal(t, 5, f.stockOf(t, p.ID).StockQty)
	_, err = f.orders.GetByID(order.ID)
	assert.ErrorIs(t, err, repo.ErrOrderNotFound)
}

func TestDeletePermissions(t *testing.T) {
	f := newServiceFixture(t)
	alice := f.addUser(t, "alice", models.RoleCustomer)
	mallory := f.addUser(t, "mallory", models.RoleCustomer)
	manager := f.addUser(t, "carol", models.RoleManager)
	p := f.addProduct(t, "Widget", 100, 80, 50)

	t.Run("customer cannot delete another user's order", func(t *testing.T) {
		order, err := f.service.CreateDirect(alice.ID, []models.OrderItem{{ProductID: p.ID, Qty: 1}})
		require.NoError(t, err)
		assert.ErrorIs(t, f.service.Delete(order.ID, mallory), ErrForbidden)
	})

	t.Run("customer cannot delete own accepted order", func(t *testing.T) {
		order, err := f.service.CreateDirect(alice.ID, []models.OrderItem{{ProductID: p.ID, Qty: 1}})
		require.NoError(t, err)
		_, err = f.service.Accept(order.ID)
		require.NoError(t, err)
		assert.ErrorIs(t, f.service.Delete(order.ID, alice), ErrForbidden)
	})

	t.Run("manager deletes any order and stock comes back", func(t *testing.T) {
		order, err := f.service.CreateDirect(alice.ID, []models.OrderItem{{ProductID: p.ID, Qty: 2}})
		require.NoError(t, err)
		_, err = f.service.AssignInvoice(order.ID, "INV-777")
		require.NoError(t, err)

		before := f.stockOf(t, p.ID).StockQty
		require.NoError(t, f.service.Delete(order.ID, manager))
		assert.Equal(t, before+2, f.stockOf(t, p.ID).StockQty)
	})
}

func TestBillBasis(t *testing.T) {
	f := newServiceFixture(t)
	dealer := f.addUser(t, "bob", models.RoleDealer)
	dealer.Phone = "555-0100"
	dealer.Address = "12 Depot Road"
	_, err := f.users.Update(dealer)
	require.NoError(t, err)

	p := f.addProduct(t, "Widget", 100, 80, 10)
	order, err := f.service.CreateDirect(dealer.ID, []models.OrderItem{{ProductID: p.ID, Qty: 2}})
	require.NoError(t, err)

	bill, err := f.service.BillBasis(order.ID)
	require.NoError(t, err)

	assert.Equal(t, order.ID, bill.OrderID)
	assert.Equal(t, "bob", bill.CustomerName)
	assert.Equal(t, "555-0100", bill.CustomerPhone)
	assert.Equal(t, "12 Depot Road", bill.CustomerAddress)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, 80.0, bill.Items[0].Price)
	assert.Equal(t, 160.0, bill.Items[0].Amount)
	assert.Equal(t, 160.0, bill.Subtotal)
	assert.Equal(t, 160.0, bill.TotalAmount)
}
