package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/rogerio-castellano/order-tracker/internal/http"
	handler "github.com/rogerio-castellano/order-tracker/internal/http/handlers"
)

func importCSV(r http.Handler, csvContent, query string) *httptest.ResponseRecorder {
	buf, contentType := multipartCSV(csvContent, "products.csv")
	req := httptest.NewRequest(http.MethodPost, "/products/import"+query, buf)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportProductsHandler(t *testing.T) {
	t.Cleanup(clearOrdersAndCarts)
	r := api.NewRouter()

	csvContent := "name,retail_price,dealer_price,stock_qty\n" +
		"Laptop,1500,1200,10\n" +
		"Mouse,25,20,100\n"

	w := importCSV(r, csvContent, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.ImportedProductsCount != 2 {
		t.Errorf("expected 2 imported, got %d", resp.ImportedProductsCount)
	}
	if len(resp.Errors) != 0 {
		t.Errorf("expected no errors, got %+v", resp.Errors)
	}
}

func TestImportProductsHandler_SkipAndUpdateModes(t *testing.T) {
	t.Cleanup(clearOrdersAndCarts)
	r := api.NewRouter()

	importCSV(r, "name,retail_price,dealer_price,stock_qty\nLaptop,1500,1200,10\n", "")

	t.Run("skip keeps the existing product", func(t *testing.T) {
		w := importCSV(r, "name,retail_price,dealer_price,stock_qty\nLaptop,1600,1300,20\n", "")
		var resp handler.ImportProductsResult
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if resp.ImportedProductsCount != 0 || len(resp.Errors) != 1 {
			t.Errorf("expected 0 imported and 1 error, got %d/%d", resp.ImportedProductsCount, len(resp.Errors))
		}
	})

	t.Run("update overwrites prices and adjusts stock", func(t *testing.T) {
		w := importCSV(r, "name,retail_price,dealer_price,stock_qty\nLaptop,1600,1300,25\n", "?mode=update")
		var resp handler.ImportProductsResult
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if resp.ImportedProductsCount != 1 {
			t.Fatalf("expected 1 imported, got %d", resp.ImportedProductsCount)
		}

		products, _ := productRepo.GetAll()
		if len(products) != 1 {
			t.Fatalf("expected one product, got %d", len(products))
		}
		if products[0].RetailPrice != 1600 || products[0].DealerPrice != 1300 {
			t.Errorf("expected updated prices, got %v/%v", products[0].RetailPrice, products[0].DealerPrice)
		}
		if products[0].StockQty != 25 {
			t.Errorf("expected stock 25, got %d", products[0].StockQty)
		}
	})
}

func TestImportProductsHandler_InvalidRows(t *testing.T) {
	t.Cleanup(clearOrdersAndCarts)
	r := api.NewRouter()

	csvContent := "name,retail_price,dealer_price,stock_qty\n" +
		",100,80,5\n" +
		"Widget,0,0,5\n" +
		"Gadget,100,150,5\n" +
		"Keeper,100,80,5\n"

	w := importCSV(r, csvContent, "")
	var resp handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.ImportedProductsCount != 1 {
		t.Errorf("expected only Keeper imported, got %d", resp.ImportedProductsCount)
	}
	if len(resp.Errors) != 3 {
		t.Errorf("expected 3 row errors, got %d: %+v", len(resp.Errors), resp.Errors)
	}
}

func TestImportProductsHandler_MissingColumn(t *testing.T) {
	t.Cleanup(clearOrdersAndCarts)
	r := api.NewRouter()

	w := importCSV(r, "name,retail_price\nLaptop,1500\n", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}
