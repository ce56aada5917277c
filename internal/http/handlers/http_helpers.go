package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rogerio-castellano/order-tracker/internal/auth"
	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/orders"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
)

func GetRoleFromContext(r *http.Request) (models.Role, error) {
	authorization := r.Header.Get("Authorization")

	_, claims, err := auth.TokenClaims(authorization)
	if err != nil {
		return "", err
	}

	if role, ok := claims["role"].(string); ok {
		return models.Role(role), nil
	}
	return "", nil
}

func GetUserIDFromContext(r *http.Request) (int, error) {
	authorization := r.Header.Get("Authorization")

	_, claims, err := auth.TokenClaims(authorization)
	if err != nil {
		return 0, err
	}

	if sub, ok := claims["sub"].(float64); ok {
		return int(sub), nil
	}
	return 0, errors.New("missing subject claim")
}

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// writeOrderError maps core order errors onto HTTP statuses.
func writeOrderError(w http.ResponseWriter, err error) {
	var stockErr *orders.InsufficientStockError
	switch {
	case errors.Is(err, repo.ErrOrderNotFound):
		http.Error(w, "order not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, orders.ErrEmptyCart):
		http.Error(w, "cart is empty", http.StatusBadRequest)
	case errors.Is(err, orders.ErrInvalidQuantity):
		http.Error(w, "item quantity must be at least 1", http.StatusBadRequest)
	case errors.Is(err, orders.ErrInvoiceNumberRequired):
		http.Error(w, "invoice number is required", http.StatusBadRequest)
	case errors.Is(err, orders.ErrInvalidTransition):
		http.Error(w, "operation not allowed in the order's current status", http.StatusConflict)
	case errors.Is(err, orders.ErrDuplicateInvoiceNumber):
		http.Error(w, "invoice number already in use", http.StatusConflict)
	case errors.Is(err, orders.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.As(err, &stockErr):
		http.Error(w, stockErr.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
