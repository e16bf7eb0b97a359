// Package validator provides custom validation functions for Gin's binding
// engine and for holdings read from files.
package validator

import (
	"folio/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("asset_type", validateAssetType)
	_ = v.RegisterValidation("decision", validateDecision)
	_ = v.RegisterValidation("holding_sort", validateHoldingSort)
	_ = v.RegisterValidation("decimal", validateDecimal)
}

// New returns a standalone validator with the custom validators registered.
func New() *validator.Validate {
	v := validator.New()
	RegisterOn(v)
	return v
}

func validateAssetType(fl validator.FieldLevel) bool {
	return models.NormalizeAssetType(fl.Field().String()).IsKnown()
}

func validateDecision(fl validator.FieldLevel) bool {
	return models.Decision(fl.Field().String()).IsValid()
}

func validateHoldingSort(fl validator.FieldLevel) bool {
	return models.HoldingSortKey(fl.Field().String()).IsValid()
}

func validateDecimal(fl validator.FieldLevel) bool {
	_, err := decimal.NewFromString(fl.Field().String())
	return err == nil
}
