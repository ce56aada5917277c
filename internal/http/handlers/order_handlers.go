package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	models "github.com/rogerio-castellano/order-tracker/internal/models"
	repo "github.com/rogerio-castellano/order-tracker/internal/repo"
)

// GetMyOrdersHandler godoc
// @Summary List the authenticated user's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Order
// @Router /orders [get]
func GetMyOrdersHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	orderList, err := orderRepo.GetByUserID(userID)
	if err != nil {
		http.Error(w, "could not fetch orders", http.StatusInternalServerError)
		return
	}
	if orderList == nil {
		orderList = []models.Order{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orderList)
}

// GetAllOrdersHandler godoc
// @Summary List every order (admin/manager)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Order
// @Failure 403 {string} string "Forbidden"
// @Router /orders/all [get]
func GetAllOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orderList, err := orderRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch orders", http.StatusInternalServerError)
		return
	}
	if orderList == nil {
		orderList = []models.Order{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orderList)
}

// GetOrderByIDHandler godoc
// @Summary Get an order by ID
// @Description Owners see their own orders; admins and managers see any
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {string} string "Not found"
// @Router /orders/{id} [get]
func GetOrderByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch order", http.StatusInternalServerError)
		return
	}

	userID, _ := GetUserIDFromContext(r)
	role, _ := GetRoleFromContext(r)
	if order.UserID != userID && role != models.RoleAdmin && role != models.RoleManager {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// CreateOrderHandler godoc
// @Summary Place an order from the cart
// @Description Snapshots the cart, reserves stock, and clears the cart
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 201 {object} models.Order
// @Failure 400 {string} string "Cart is empty"
// @Failure 409 {string} string "Insufficient stock"
// @Router /orders [post]
func CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	order, err := orderService.CreateFromCart(userID)
	if err != nil {
		if order.ID != 0 {
			// Order exists but the cart failed to clear; surface the order.
			log.Printf("order %s created but cart for user %d not cleared: %v", order.OrderNumber, userID, err)
		} else {
			writeOrderError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

// CreateDirectOrderHandler godoc
// @Summary Place an order directly from a product list
// @Description Used by dealers for bulk orders without a cart
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body DirectOrderRequest true "Items to order"
// @Success 201 {object} models.Order
// @Failure 400 {string} string "No products selected"
// @Failure 409 {string} string "Insufficient stock"
// @Router /orders/direct [post]
func CreateDirectOrderHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	var req DirectOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, "no products selected", http.StatusBadRequest)
		return
	}

	order, err := orderService.CreateDirect(userID, req.Items)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

// AcceptOrderHandler godoc
// @Summary Accept a pending order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 409 {string} string "Invalid transition"
// @Router /orders/{id}/accept [post]
func AcceptOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := orderService.Accept(id)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// RejectOrderHandler godoc
// @Summary Reject (cancel) a non-completed order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 409 {string} string "Cannot reject a completed order"
// @Router /orders/{id}/reject [post]
func RejectOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := orderService.Reject(id)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// EditOrderItemsHandler godoc
// @Summary Replace an order's items
// @Description Allowed only while PENDING or PROCESSING with no invoice assigned; fails atomically on insufficient stock
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param items body EditOrderItemsRequest true "New item list"
// @Success 200 {object} models.Order
// @Failure 409 {string} string "Invalid transition or insufficient stock"
// @Router /orders/{id}/items [put]
func EditOrderItemsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	var req EditOrderItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	order, err := orderService.EditItems(id, req.Items)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// AssignInvoiceHandler godoc
// @Summary Assign an invoice number, completing the order
// @Description The number must be unique across all orders; this is the only way an order reaches COMPLETED
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param invoice body InvoiceRequest true "Invoice number"
// @Success 200 {object} models.Order
// @Failure 400 {string} string "Invoice number required"
// @Failure 409 {string} string "Duplicate or invalid transition"
// @Router /orders/{id}/invoice [post]
func AssignInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	var req InvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	order, err := orderService.AssignInvoice(id, req.InvoiceNumber)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// MarkOrderPaidHandler godoc
// @Summary Mark an order as paid
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 409 {string} string "Cancelled orders cannot be paid"
// @Router /orders/{id}/payment [post]
func MarkOrderPaidHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := orderService.MarkPaid(id)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

// DeleteOrderHandler godoc
// @Summary Delete an order
// @Description Customers and dealers may delete their own PENDING orders; admins and managers any. Stock is restored first.
// @Tags orders
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 204 "Deleted successfully"
// @Failure 403 {string} string "Forbidden"
// @Failure 404 {string} string "Not found"
// @Router /orders/{id} [delete]
func DeleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	userID, err := GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	role, err := GetRoleFromContext(r)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	actor := models.User{ID: userID, Role: role}
	if err := orderService.Delete(id, actor); err != nil {
		writeOrderError(w, err)
		return
	}
	if err := billRepo.DeleteByOrderID(id); err != nil && !errors.Is(err, repo.ErrBillNotFound) {
		log.Printf("❌ Failed to delete bill for order %d: %v", id, err)
	}
	w.WriteHeader(http.StatusNoContent)
}
