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

// GetCartHandler godoc
// @Summary Get the authenticated user's cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CartResponse
// @Failure 401 {string} string "Unauthorized"
// @Router /cart [get]
func GetCartHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	cart, err := cartRepo.GetByUserID(userID)
	if err != nil && !errors.Is(err, repo.ErrCartNotFound) {
		http.Error(w, "could not fetch cart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CartResponse{
		Items:      emptyIfNil(cart.Items),
		TotalItems: len(cart.Items),
	})
}

// AddCartItemHandler godoc
// @Summary Add a product to the cart
// @Description Rejects products that are out of stock or inactive; merges quantity for products already in the cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body CartItemRequest true "Product and quantity"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Out of stock or invalid quantity"
// @Failure 404 {string} string "Product not found"
// @Router /cart/items [post]
func AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	var req CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.Qty < 1 {
		http.Error(w, "quantity must be at least 1", http.StatusBadRequest)
		return
	}

	product, err := productRepo.GetByID(req.ProductID)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	if product.StockQty <= 0 {
		http.Error(w, "out of stock", http.StatusBadRequest)
		return
	}
	if product.Status == models.ProductInactive {
		http.Error(w, "product is inactive", http.StatusBadRequest)
		return
	}

	cart, err := cartRepo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, repo.ErrCartNotFound) {
			http.Error(w, "could not fetch cart", http.StatusInternalServerError)
			return
		}
		cart = models.Cart{UserID: userID}
	}

	merged := false
	for i, item := range cart.Items {
		if item.ProductID == req.ProductID {
			cart.Items[i].Qty += req.Qty
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{ProductID: req.ProductID, Qty: req.Qty})
	}

	saved, err := cartRepo.Save(cart)
	if err != nil {
		http.Error(w, "could not save cart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CartResponse{Items: saved.Items, TotalItems: len(saved.Items)})
}

// UpdateCartItemHandler godoc
// @Summary Increment or decrement a cart item's quantity
// @Description type "inc" adds one; "dec" subtracts one with a floor of 1
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Param update body CartQtyUpdateRequest true "inc or dec"
// @Success 200 {object} CartResponse
// @Failure 404 {string} string "Product not in cart"
// @Router /cart/items/{productId} [put]
func UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req CartQtyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.Type != "inc" && req.Type != "dec" {
		http.Error(w, `type must be "inc" or "dec"`, http.StatusBadRequest)
		return
	}

	cart, err := cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrCartNotFound) {
			http.Error(w, "product not in cart", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch cart", http.StatusInternalServerError)
		return
	}

	found := false
	for i, item := range cart.Items {
		if item.ProductID != productID {
			continue
		}
		found = true
		if req.Type == "inc" {
			cart.Items[i].Qty++
		} else if item.Qty > 1 {
			cart.Items[i].Qty--
		}
	}
	if !found {
		http.Error(w, "product not in cart", http.StatusNotFound)
		return
	}

	saved, err := cartRepo.Save(cart)
	if err != nil {
		http.Error(w, "could not save cart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CartResponse{Items: saved.Items, TotalItems: len(saved.Items)})
}

// RemoveCartItemHandler godoc
// @Summary Remove a product from the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 200 {object} CartResponse
// @Router /cart/items/{productId} [delete]
func RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	productID, err := strconv.Atoi(chi.URLParam(r, "productId"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	cart, err := cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repo.ErrCartNotFound) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(CartResponse{Items: []models.CartItem{}})
			return
		}
		http.Error(w, "could not fetch cart", http.StatusInternalServerError)
		return
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	saved, err := cartRepo.Save(cart)
	if err != nil {
		http.Error(w, "could not save cart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CartResponse{Items: emptyIfNil(saved.Items), TotalItems: len(saved.Items)})
}

func emptyIfNil(items []models.CartItem) []models.CartItem {
	if items == nil {
		return []models.CartItem{}
	}
	return items
}
