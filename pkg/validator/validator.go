package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/tablevote/tablevote-backend/internal/domain/entities"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()

	// budgetband accepts the four price bands or empty (unknown price).
	_ = v.RegisterValidation("budgetband", func(fl validator.FieldLevel) bool {
		return entities.IsValidBudget(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
