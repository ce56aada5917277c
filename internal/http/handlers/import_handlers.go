package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	models "github.com/rogerio-castellano/order-tracker/internal/models"
	repo "github.com/rogerio-castellano/order-tracker/internal/repo"
)

type csvRow struct {
	Name        string
	SKU         string
	Category    string
	RetailPrice float64
	DealerPrice float64
	StockQty    int
}

func parseCSV(file multipart.File) ([]csvRow, error) {
	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(h)] = i
	}
	for _, required := range []string{"name", "retail_price", "dealer_price", "stock_qty"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		row := csvRow{
			Name:        field(record, "name"),
			SKU:         field(record, "sku"),
			Category:    field(record, "category"),
			RetailPrice: parseFloat(field(record, "retail_price")),
			DealerPrice: parseFloat(field(record, "dealer_price")),
			StockQty:    parseInt(field(record, "stock_qty")),
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func validateRow(r csvRow) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("missing name")
	}
	if r.RetailPrice <= 0 {
		return errors.New("invalid retail price")
	}
	if r.DealerPrice <= 0 || r.DealerPrice > r.RetailPrice {
		return errors.New("invalid dealer price")
	}
	if r.StockQty < 0 {
		return errors.New("invalid stock quantity")
	}
	return nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func nowRFC3339() string {
	return time.Now().Format(time.RFC3339)
}

func findByExactName(name string) (models.Product, bool) {
	matches, _, err := productRepo.Filter(repo.ProductFilter{Name: name})
	if err != nil {
		return models.Product{}, false
	}
	for _, p := range matches {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return models.Product{}, false
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Expects columns name, retail_price, dealer_price, stock_qty (sku and category optional)
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var imported int
	var errorsList []ProductValidationError

	for i, rec := range records {
		rowNum := i + 2 // header is row 1

		if err := validateRow(rec); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}

		if existing, ok := findByExactName(rec.Name); ok {
			if mode == "skip" {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: product '%s' already exists", rowNum, rec.Name)})
				continue
			}
			existing.SKU = rec.SKU
			existing.Category = rec.Category
			existing.RetailPrice = rec.RetailPrice
			existing.DealerPrice = rec.DealerPrice
			existing.UpdatedAt = nowRFC3339()
			if _, err := productRepo.Update(existing); err != nil {
				errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: failed to update '%s'", rowNum, rec.Name)})
				continue
			}
			// Stock changes go through the ledger so movements are logged.
			if delta := rec.StockQty - existing.StockQty; delta != 0 {
				if _, err := ledger.Adjust(existing.ID, delta, "csv import"); err != nil {
					errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: failed to adjust stock for '%s'", rowNum, rec.Name)})
					continue
				}
			}
			imported++
			continue
		}

		newProduct := models.Product{
			Name:        rec.Name,
			SKU:         rec.SKU,
			Category:    rec.Category,
			RetailPrice: rec.RetailPrice,
			DealerPrice: rec.DealerPrice,
			StockQty:    rec.StockQty,
			AlertLevel:  models.AlertLevelFor(rec.StockQty),
			Status:      models.ProductActive,
			CreatedAt:   nowRFC3339(),
			UpdatedAt:   nowRFC3339(),
		}
		if _, err := productRepo.Create(newProduct); err != nil {
			errorsList = append(errorsList, ProductValidationError{Description: fmt.Sprintf("row %d: %v", rowNum, err)})
			continue
		}
		imported++
	}

	err = writeJSON(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})

	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}
