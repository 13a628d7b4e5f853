package entities

// Budget bands used across the whole application. A place whose price level
// is unknown carries an empty budget string.
const (
	BudgetUnder15 = "< $15"
	Budget15To30  = "$15-30"
	Budget30To50  = "$30-50"
	BudgetOver50  = "> $50"
)

// BudgetBands lists the four ordered price bands.
var BudgetBands = []string{BudgetUnder15, Budget15To30, Budget30To50, BudgetOver50}

// IsValidBudget reports whether s is one of the four bands or empty
// (empty means "no preference" / unknown).
func IsValidBudget(s string) bool {
	if s == "" {
		return true
	}
	for _, b := range BudgetBands {
		if s == b {
			return true
		}
	}
	return false
}

// RestrictionHalal is the only dietary restriction treated as a hard filter:
// when any group member carries it, candidates tagged with other diets but
// not Halal are excluded from recommendations.
const RestrictionHalal = "Halal"

// SoftDietaryTags are the recognized dietary labels that influence
// ranking and the inclusion floor without excluding candidates.
var SoftDietaryTags = []string{
	"Vegetarian",
	"Vegan",
	"Kosher",
	"Gluten-free",
	"Lactose-free",
	"Pescetarian",
	"Nut-free",
	"Egg-free",
	"Soy-free",
}

// Place is a restaurant candidate flowing through the recommendation
// pipeline. It is transient: built fresh on every pipeline run from the
// search provider and the meeting's manual suggestions, never persisted
// by the pipeline itself.
type Place struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Category     string   `json:"category"`
	Cuisines     []string `json:"cuisines"`
	Budget       string   `json:"budget"`
	DietaryFlags []string `json:"dietary_flags"`
	CategoryIcon string   `json:"category_icon,omitempty"`
	PhotoURL     string   `json:"photo_url,omitempty"`
}

// HasFlag reports whether the place carries the given dietary flag.
func (p *Place) HasFlag(flag string) bool {
	for _, f := range p.DietaryFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// Untagged reports whether no dietary information is known for the place.
// Absence of data is never treated as a violation by the hard filter.
func (p *Place) Untagged() bool {
	return len(p.DietaryFlags) == 0
}
