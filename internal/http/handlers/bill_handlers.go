package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	models "github.com/rogerio-castellano/order-tracker/internal/models"
	repo "github.com/rogerio-castellano/order-tracker/internal/repo"
)

// GetBillHandler godoc
// @Summary Get the bill for an order
// @Description Returns the saved bill if one exists, otherwise a draft computed from the order's items and the owner's pricing
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} models.Bill
// @Failure 404 {string} string "Not found"
// @Router /orders/{id}/bill [get]
func GetBillHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	bill, err := billRepo.GetByOrderID(orderID)
	if err != nil {
		if !errors.Is(err, repo.ErrBillNotFound) {
			http.Error(w, "could not fetch bill", http.StatusInternalServerError)
			return
		}
		// No saved bill yet; build a draft from the order itself.
		bill, err = orderService.BillBasis(orderID)
		if err != nil {
			writeOrderError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bill)
}

// SaveBillHandler godoc
// @Summary Create or overwrite the bill for an order
// @Description Bill figures are free to diverge from the order; saving never touches order totals or stock
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param bill body BillSaveRequest true "Bill contents"
// @Success 200 {object} models.Bill
// @Failure 404 {string} string "Order not found"
// @Router /orders/{id}/bill [post]
func SaveBillHandler(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	var req BillSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if _, err := orderRepo.GetByID(orderID); err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch order", http.StatusInternalServerError)
		return
	}

	bill := models.Bill{
		OrderID:         orderID,
		Items:           req.Items,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Subtotal:        req.Subtotal,
		Discount:        req.Discount,
		ShippingCharge:  req.ShippingCharge,
		TotalAmount:     req.TotalAmount,
	}
	saved, err := billRepo.Save(bill)
	if err != nil {
		http.Error(w, "could not save bill", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saved)
}
