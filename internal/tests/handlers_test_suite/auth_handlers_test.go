package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rogerio-castellano/order-tracker/internal/auth"
	api "github.com/rogerio-castellano/order-tracker/internal/http"
	handler "github.com/rogerio-castellano/order-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/order-tracker/internal/models"
)

func TestRegisterHandler(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/register", "", handler.RegisterRequest{
		Name:     "newbie",
		Email:    "newbie@example.com",
		Password: "hunter22",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.RegisterResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the response")
	}

	created, err := userRepo.GetByEmail("newbie@example.com")
	if err != nil {
		t.Fatalf("registered user not stored: %v", err)
	}
	if created.Role != models.RoleCustomer {
		t.Errorf("self-registration must yield CUSTOMER, got %s", created.Role)
	}

	t.Run("duplicate email rejected", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/register", "", handler.RegisterRequest{
			Name:     "copycat",
			Email:    "newbie@example.com",
			Password: "hunter22",
		})
		if w.Code != http.StatusConflict {
			t.Errorf("expected 409 Conflict, got %d", w.Code)
		}
	})

	t.Run("short password rejected", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/register", "", handler.RegisterRequest{
			Name:     "weak",
			Email:    "weak@example.com",
			Password: "abc",
		})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})
}

func TestLoginHandler(t *testing.T) {
	r := api.NewRouter()

	t.Run("valid credentials", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", "", handler.CredentialsRequest{
			Email:    "customer@example.com",
			Password: "secret",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		var resp handler.LoginResult
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if resp.Token == "" || resp.RefreshToken == "" {
			t.Error("expected both token and refresh token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", "", handler.CredentialsRequest{
			Email:    "customer@example.com",
			Password: "wrong",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", w.Code)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", "", handler.CredentialsRequest{
			Email:    "ghost@example.com",
			Password: "secret",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", w.Code)
		}
	})
}

func TestRefreshHandler(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/login", "", handler.CredentialsRequest{
		Email:    "customer@example.com",
		Password: "secret",
	})
	var login handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&login); err != nil {
		t.Fatalf("error decoding login: %v", err)
	}

	w = doJSON(r, http.MethodPost, "/refresh", "", handler.RefreshRequest{RefreshToken: login.RefreshToken})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var refreshed handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&refreshed); err != nil {
		t.Fatalf("error decoding refresh: %v", err)
	}
	if refreshed.Token == "" || refreshed.RefreshToken == "" {
		t.Error("expected a fresh token pair")
	}

	t.Run("refresh token is single use", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/refresh", "", handler.RefreshRequest{RefreshToken: login.RefreshToken})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized on reuse, got %d", w.Code)
		}
	})
}

func TestForgotPasswordHandler_UniformResponse(t *testing.T) {
	r := api.NewRouter()

	for _, email := range []string{"customer@example.com", "nobody@example.com"} {
		w := doJSON(r, http.MethodPost, "/forgot-password", "", handler.ForgotPasswordRequest{Email: email})
		if w.Code != http.StatusOK {
			t.Errorf("expected 200 OK for %s, got %d", email, w.Code)
		}
	}
}

func TestResetPasswordChangesCredentials(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/register", "", handler.RegisterRequest{
		Name:     "resetter",
		Email:    "resetter@example.com",
		Password: "oldpass1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	user, err := userRepo.GetByEmail("resetter@example.com")
	if err != nil {
		t.Fatalf("error loading registered user: %v", err)
	}

	resetToken := auth.IssueResetToken(user.ID)
	w = doJSON(r, http.MethodPost, "/reset-password", "", handler.ResetPasswordRequest{
		Token:    resetToken,
		Password: "newpass1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	stored, err := userRepo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("error reloading user: %v", err)
	}
	if stored.PasswordHash == user.PasswordHash {
		t.Error("expected a new password hash to be persisted")
	}

	t.Run("old password is rejected", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", "", handler.CredentialsRequest{
			Email:    "resetter@example.com",
			Password: "oldpass1",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", w.Code)
		}
	})

	t.Run("new password logs in", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/login", "", handler.CredentialsRequest{
			Email:    "resetter@example.com",
			Password: "newpass1",
		})
		if w.Code != http.StatusOK {
			t.Errorf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("reset token is single use", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/reset-password", "", handler.ResetPasswordRequest{
			Token:    resetToken,
			Password: "another1",
		})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized on reuse, got %d", w.Code)
		}
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := api.NewRouter()

	w := doJSON(r, http.MethodGet, "/products", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized without token, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/products", "not-a-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized with a bad token, got %d", w.Code)
	}
}
