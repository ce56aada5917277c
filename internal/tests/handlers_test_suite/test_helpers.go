package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"

	api "github.com/rogerio-castellano/order-tracker/internal/http"
	handler "github.com/rogerio-castellano/order-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/orders"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
)

var (
	adminToken    string
	customerToken string
	dealerToken   string

	productRepo  *repo.InMemoryProductRepository
	orderRepo    *repo.InMemoryOrderRepository
	cartRepo     *repo.InMemoryCartRepository
	movementRepo *repo.InMemoryMovementRepository
	userRepo     *repo.InMemoryUserRepository
)

func init() {
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	adminToken, err = generateToken(r, "admin@example.com", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating admin token: %v", err))
	}
	customerToken, err = generateToken(r, "customer@example.com", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating customer token: %v", err))
	}
	dealerToken, err = generateToken(r, "dealer@example.com", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating dealer token: %v", err))
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)

	orderRepo = repo.NewInMemoryOrderRepository()
	handler.SetOrderRepo(orderRepo)

	cartRepo = repo.NewInMemoryCartRepository()
	handler.SetCartRepo(cartRepo)

	billRepo := repo.NewInMemoryBillRepository()
	handler.SetBillRepo(billRepo)

	movementRepo = repo.NewInMemoryMovementRepository()
	handler.SetMovementRepo(movementRepo)

	userRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Name:         "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		IsActive:     true,
	})
	userRepo.CreateUser(models.User{
		Name:         "customer",
		Email:        "customer@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		IsActive:     true,
	})
	userRepo.CreateUser(models.User{
		Name:         "dealer",
		Email:        "dealer@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleDealer,
		IsActive:     true,
	})

	metricsRepo := repo.NewInMemoryMetricsRepository()
	handler.SetMetricsRepo(metricsRepo)
	metricsRepo.SetRepositories(productRepo, orderRepo)

	ledger := orders.NewLedger(productRepo, movementRepo)
	handler.SetLedger(ledger)
	handler.SetOrderService(orders.NewService(orderRepo, productRepo, cartRepo, userRepo, repo.NewInMemorySequenceRepository(), ledger))
}

func clearAllProducts() {
	productRepo.Clear()
}

func clearOrdersAndCarts() {
	orderRepo.Clear()
	cartRepo.ClearAll()
	productRepo.Clear()
	movementRepo.Clear()
}

// Public endpoints are rate limited per client IP; hand every anonymous test
// request its own address so the suite never trips the limiter.
var ipCounter uint64

func nextTestIP() string {
	n := atomic.AddUint64(&ipCounter, 1)
	return fmt.Sprintf("10.1.%d.%d", (n/250)%250, n%250+1)
}

func generateToken(r http.Handler, email, password string) (string, error) {
	payload := handler.CredentialsRequest{Email: email, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("X-Forwarded-For", nextTestIP())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("X-Forwarded-For", nextTestIP())
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products", adminToken, p)
}

func mustCreateProduct(r http.Handler, p handler.ProductRequest) handler.ProductResponse {
	w := createProduct(r, p)
	if w.Code != http.StatusCreated {
		panic(fmt.Sprintf("could not create product: %d %s", w.Code, w.Body.String()))
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("error decoding product: %v", err))
	}
	return resp
}

func addCartItem(r http.Handler, token string, item handler.CartItemRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/cart/items", token, item)
}

func placeOrder(r http.Handler, token string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/orders", token, nil)
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
