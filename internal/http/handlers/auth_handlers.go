package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	auth "github.com/rogerio-castellano/order-tracker/internal/auth"
	models "github.com/rogerio-castellano/order-tracker/internal/models"
	repo "github.com/rogerio-castellano/order-tracker/internal/repo"
)

// RegisterHandler godoc
// @Summary Register a new customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Account details"
// @Success 201 {object} RegisterResult
// @Failure 409 {string} string "Email or phone already in use"
// @Router /register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		http.Error(w, "name, email and a password of at least 6 characters are required", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "could not hash password", http.StatusInternalServerError)
		return
	}

	// Self-registration always yields a customer; privileged roles are
	// created by an admin through /users.
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		IsActive:     true,
	}
	created, err := userRepo.CreateUser(user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "email or phone already in use", http.StatusConflict)
			return
		}
		http.Error(w, "could not create user", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateToken(created)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(RegisterResult{Message: "registered successfully", Token: token})
}

// LoginHandler godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "Credentials"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string "Invalid credentials"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := userRepo.GetByEmail(req.Email)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !user.IsActive {
		http.Error(w, "account is deactivated", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}
	refreshToken := auth.IssueRefreshToken(user.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResult{Token: token, RefreshToken: refreshToken})
}

// RefreshHandler godoc
// @Summary Exchange a refresh token for a new token pair
// @Description The presented refresh token is consumed; a new one is issued
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body RefreshRequest true "Refresh token"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string "Token invalid or expired"
// @Router /refresh [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	userID, err := auth.ConsumeRefreshToken(req.RefreshToken)
	if err != nil {
		http.Error(w, "token invalid or expired", http.StatusUnauthorized)
		return
	}

	user, err := userRepo.GetByID(userID)
	if err != nil || !user.IsActive {
		http.Error(w, "token invalid or expired", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}
	refreshToken := auth.IssueRefreshToken(user.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResult{Token: token, RefreshToken: refreshToken})
}

// ForgotPasswordHandler godoc
// @Summary Request a password reset token by email
// @Description Always responds with 200 so callers cannot probe which emails exist
// @Tags auth
// @Accept json
// @Produce json
// @Param email body ForgotPasswordRequest true "Account email"
// @Success 200 {object} map[string]string
// @Router /forgot-password [post]
func ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if user, err := userRepo.GetByEmail(req.Email); err == nil && user.IsActive {
		resetToken := auth.IssueResetToken(user.ID)
		mailer.SendPasswordReset(user.Email, resetToken)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "if the email exists, a reset token has been sent"})
}

// ResetPasswordHandler godoc
// @Summary Reset a password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param reset body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} map[string]string
// @Failure 401 {string} string "Token invalid or expired"
// @Router /reset-password [post]
func ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 6 {
		http.Error(w, "password must be at least 6 characters", http.StatusBadRequest)
		return
	}

	userID, err := auth.ConsumeResetToken(req.Token)
	if err != nil {
		http.Error(w, "token invalid or expired", http.StatusUnauthorized)
		return
	}

	user, err := userRepo.GetByID(userID)
	if err != nil {
		http.Error(w, "token invalid or expired", http.StatusUnauthorized)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "could not hash password", http.StatusInternalServerError)
		return
	}
	user.PasswordHash = string(hash)
	if _, err := userRepo.Update(user); err != nil {
		http.Error(w, "could not update password", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "password updated"})
}
