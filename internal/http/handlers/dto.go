package handlers

import "github.com/rogerio-castellano/order-tracker/internal/models"

type ProductRequest struct {
	Id          int     `json:"id,omitempty"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku,omitempty"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	RetailPrice float64 `json:"retail_price"`
	DealerPrice float64 `json:"dealer_price"`
	StockQty    int     `json:"stock_qty"`
	Status      string  `json:"status,omitempty"`
}

type ProductResponse struct {
	Id          int     `json:"id"`
	Name        string  `json:"name"`
	SKU         string  `json:"sku,omitempty"`
	Category    string  `json:"category,omitempty"`
	RetailPrice float64 `json:"retail_price"`
	DealerPrice float64 `json:"dealer_price"`
	StockQty    int     `json:"stock_qty"`
	AlertLevel  string  `json:"alert_level"`
	Status      string  `json:"status"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type StockAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type MovementResponse struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"created_at"`
}

type MovementsSearchResult struct {
	Data []MovementResponse `json:"data"`
	Meta Meta               `json:"meta,omitempty"`
}

type CartItemRequest struct {
	ProductID int `json:"product_id"`
	Qty       int `json:"qty"`
}

type CartQtyUpdateRequest struct {
	Type string `json:"type"` // "inc" or "dec"
}

type CartResponse struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
}

type DirectOrderRequest struct {
	Items []models.OrderItem `json:"items"`
}

type EditOrderItemsRequest struct {
	Items []models.OrderItem `json:"items"`
}

type InvoiceRequest struct {
	InvoiceNumber string `json:"invoice_number"`
}

type BillSaveRequest struct {
	Items           []models.BillItem `json:"items"`
	CustomerName    string            `json:"customer_name,omitempty"`
	CustomerPhone   string            `json:"customer_phone,omitempty"`
	CustomerAddress string            `json:"customer_address,omitempty"`
	Subtotal        float64           `json:"subtotal"`
	Discount        float64           `json:"discount"`
	ShippingCharge  float64           `json:"shipping_charge"`
	TotalAmount     float64           `json:"total_amount"`
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type CreateUserRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone,omitempty"`
	Password      string  `json:"password"`
	Role          string  `json:"role"`
	MarginPercent float64 `json:"margin_percent,omitempty"`
	Address       string  `json:"address,omitempty"`
	GSTNumber     string  `json:"gst_number,omitempty"`
	ProfileImage  string  `json:"profile_image,omitempty"`
}

type UpdateUserRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone,omitempty"`
	Password      string  `json:"password,omitempty"`
	Role          string  `json:"role"`
	MarginPercent float64 `json:"margin_percent,omitempty"`
	Address       string  `json:"address,omitempty"`
	GSTNumber     string  `json:"gst_number,omitempty"`
	ProfileImage  string  `json:"profile_image,omitempty"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
