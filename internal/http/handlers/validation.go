package handlers

import (
	"strings"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}
	if p.RetailPrice <= 0 {
		errs = append(errs, ProductValidationError{Field: "RetailPrice", Description: "Retail price must be greater than zero"})
	}
	if p.DealerPrice <= 0 {
		errs = append(errs, ProductValidationError{Field: "DealerPrice", Description: "Dealer price must be greater than zero"})
	}
	if p.StockQty < 0 {
		errs = append(errs, ProductValidationError{Field: "StockQty", Description: "Stock quantity cannot be negative"})
	}
	if p.Status != "" && p.Status != string(models.ProductActive) && p.Status != string(models.ProductInactive) {
		errs = append(errs, ProductValidationError{Field: "Status", Description: "Status must be ACTIVE or INACTIVE"})
	}
	return errs
}

func productResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		RetailPrice: p.RetailPrice,
		DealerPrice: p.DealerPrice,
		StockQty:    p.StockQty,
		AlertLevel:  string(p.AlertLevel),
		Status:      string(p.Status),
	}
}
