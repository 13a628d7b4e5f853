package foursquare

import "github.com/tablevote/tablevote-backend/internal/domain/entities"

// MapPriceToBudget maps the provider's 1-4 price tier onto the application
// budget bands. Total and pure: any tier outside 1..4 (missing prices come
// through as 0) maps to the empty string, meaning unknown.
func MapPriceToBudget(tier int) string {
	switch tier {
	case 1:
		return entities.BudgetUnder15
	case 2:
		return entities.Budget15To30
	case 3:
		return entities.Budget30To50
	case 4:
		return entities.BudgetOver50
	default:
		return ""
	}
}
