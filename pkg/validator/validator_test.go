package validator

import "testing"

type budgetPayload struct {
	Budget string `validate:"budgetband"`
}

func TestBudgetBandRule(t *testing.T) {
	v := New()

	valid := []string{"", "< $15", "$15-30", "$30-50", "> $50"}
	for _, b := range valid {
		if err := v.Validate(budgetPayload{Budget: b}); err != nil {
			t.Fatalf("expected %q to pass, got %v", b, err)
		}
	}

	invalid := []string{"$$$$", "cheap", "<$15", "15-30"}
	for _, b := range invalid {
		if err := v.Validate(budgetPayload{Budget: b}); err == nil {
			t.Fatalf("expected %q to fail", b)
		}
	}
}
