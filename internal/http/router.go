package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/rogerio-castellano/order-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/order-tracker/internal/models"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	// Public, rate-limited auth endpoints.
	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware)
		r.Post("/register", handlers.RegisterHandler)
		r.Post("/login", handlers.LoginHandler)
		r.Post("/refresh", handlers.RefreshHandler)
		r.Post("/forgot-password", handlers.ForgotPasswordHandler)
		r.Post("/reset-password", handlers.ResetPasswordHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Everything below requires a valid token.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Get("/products", handlers.GetProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)
		r.Get("/products/{id}/movements", handlers.GetMovementsHandler)

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(models.RoleAdmin, models.RoleManager))
			r.Post("/products", handlers.CreateProductHandler)
			r.Put("/products/{id}", handlers.UpdateProductHandler)
			r.Delete("/products/{id}", handlers.DeleteProductHandler)
			r.Post("/products/{id}/adjust", handlers.AdjustStockHandler)
			r.Post("/products/import", handlers.ImportProductsHandler)
		})

		r.Get("/cart", handlers.GetCartHandler)
		r.Post("/cart/items", handlers.AddCartItemHandler)
		r.Put("/cart/items/{productId}", handlers.UpdateCartItemHandler)
		r.Delete("/cart/items/{productId}", handlers.RemoveCartItemHandler)

		r.Get("/orders", handlers.GetMyOrdersHandler)
		r.Post("/orders", handlers.CreateOrderHandler)
		r.Post("/orders/direct", handlers.CreateDirectOrderHandler)
		r.Get("/orders/{id}", handlers.GetOrderByIDHandler)
		r.Delete("/orders/{id}", handlers.DeleteOrderHandler)

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(models.RoleAdmin, models.RoleManager))
			r.Get("/orders/all", handlers.GetAllOrdersHandler)
			r.Post("/orders/{id}/accept", handlers.AcceptOrderHandler)
			r.Post("/orders/{id}/reject", handlers.RejectOrderHandler)
			r.Put("/orders/{id}/items", handlers.EditOrderItemsHandler)
			r.Post("/orders/{id}/invoice", handlers.AssignInvoiceHandler)
			r.Post("/orders/{id}/payment", handlers.MarkOrderPaidHandler)

			r.Get("/orders/{id}/bill", handlers.GetBillHandler)
			r.Post("/orders/{id}/bill", handlers.SaveBillHandler)

			r.Get("/users", handlers.GetUsersHandler)
			r.Get("/users/{id}", handlers.GetUserByIDHandler)
			r.Put("/users/{id}/status", handlers.ToggleUserStatusHandler)

			r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(models.RoleAdmin))
			r.Post("/users", handlers.CreateUserHandler)
			r.Put("/users/{id}", handlers.UpdateUserHandler)
			r.Delete("/users/{id}", handlers.DeleteUserHandler)
		})
	})

	return r
}
