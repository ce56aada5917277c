package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/order-tracker/internal/http"
	handler "github.com/rogerio-castellano/order-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/order-tracker/internal/models"
)

func TestCreateUserHandler(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/users", adminToken, handler.CreateUserRequest{
		Name:          "depot",
		Email:         "depot@example.com",
		Password:      "secret99",
		Role:          "DEALER",
		MarginPercent: 12.5,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var created models.User
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("error decoding user: %v", err)
	}
	if created.Role != models.RoleDealer {
		t.Errorf("expected DEALER, got %s", created.Role)
	}
	if !created.IsActive {
		t.Error("expected new user to be active")
	}

	t.Run("invalid role rejected", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/users", adminToken, handler.CreateUserRequest{
			Name:     "odd",
			Email:    "odd@example.com",
			Password: "secret99",
			Role:     "SUPERUSER",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})

	t.Run("non-admin cannot create users", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/users", customerToken, handler.CreateUserRequest{
			Name:     "sneak",
			Email:    "sneak@example.com",
			Password: "secret99",
			Role:     "ADMIN",
		})
		if w.Code != http.StatusForbidden {
			t.Errorf("expected 403 Forbidden, got %d", w.Code)
		}
	})
}

func TestToggleUserStatusHandler(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/users", adminToken, handler.CreateUserRequest{
		Name:     "flaky",
		Email:    "flaky@example.com",
		Password: "secret99",
		Role:     "CUSTOMER",
	})
	var user models.User
	if err := json.NewDecoder(w.Body).Decode(&user); err != nil {
		t.Fatalf("error decoding user: %v", err)
	}

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/users/%d/status", user.ID), adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var toggled models.User
	if err := json.NewDecoder(w.Body).Decode(&toggled); err != nil {
		t.Fatalf("error decoding user: %v", err)
	}
	if toggled.IsActive {
		t.Error("expected user to be deactivated")
	}

	t.Run("deactivated user cannot log in", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", "", handler.CredentialsRequest{
			Email:    "flaky@example.com",
			Password: "secret99",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", w.Code)
		}
	})
}

func TestDeleteUserHandler(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/users", adminToken, handler.CreateUserRequest{
		Name:     "shortlived",
		Email:    "shortlived@example.com",
		Password: "secret99",
		Role:     "CUSTOMER",
	})
	var user models.User
	if err := json.NewDecoder(w.Body).Decode(&user); err != nil {
		t.Fatalf("error decoding user: %v", err)
	}

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/users/%d", user.ID), adminToken, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/users/%d", user.ID), adminToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found after delete, got %d", w.Code)
	}
}
