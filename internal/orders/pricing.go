package orders

import "github.com/rogerio-castellano/order-tracker/internal/models"

// PricingStrategy resolves the unit price a role pays for a product.
type PricingStrategy interface {
	UnitPrice(p models.Product) float64
}

type retailPricing struct{}

func (retailPricing) UnitPrice(p models.Product) float64 { return p.RetailPrice }

type dealerPricing struct{}

func (dealerPricing) UnitPrice(p models.Product) float64 { return p.DealerPrice }

// StrategyFor selects the pricing strategy for a role. Only dealers get the
// dealer price; every other role pays retail.
func StrategyFor(role models.Role) PricingStrategy {
	if role == models.RoleDealer {
		return dealerPricing{}
	}
	return retailPricing{}
}

// ComputeTotals returns the retail-basis total (reporting baseline) and the
// amount actually payable under the role's strategy. Pure function over
// already-loaded products.
func ComputeTotals(items []models.OrderItem, products map[int]models.Product, role models.Role) (totalAmount, finalAmount float64) {
	strategy := StrategyFor(role)
	for _, item := range items {
		p, ok := products[item.ProductID]
		if !ok {
			continue
		}
		totalAmount += p.RetailPrice * float64(item.Qty)
		finalAmount += strategy.UnitPrice(p) * float64(item.Qty)
	}
	return totalAmount, finalAmount
}
