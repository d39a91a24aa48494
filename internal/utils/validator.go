// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/javajoker/draft-backend/internal/models"
)

var validate *validator.Validate

// Export formats accepted by export_draft.
const (
	ExportFormatForestMarket = "forest_market"
	ExportFormatJSON         = "json"
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("draft_category", enumValidator(models.Categories))
	validate.RegisterValidation("draft_condition", enumValidator(models.Conditions))
	validate.RegisterValidation("country_code", enumValidator(models.CountryCodes))
	validate.RegisterValidation("payment_option", enumValidator(models.PaymentOptions))
	validate.RegisterValidation("discount_type", enumValidator([]models.DiscountType{
		models.DiscountNone,
		models.DiscountPercentage,
		models.DiscountFixedAmount,
	}))
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func enumValidator[T ~string](allowed []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, a := range allowed {
			if string(a) == value {
				return true
			}
		}
		return false
	}
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "draft_category":
		return e.Field() + " must be one of DIGITAL_GOODS, DEPIN, ELECTRONICS, FASHION, COLLECTIBLES, CUSTOM, OTHER"
	case "draft_condition":
		return e.Field() + " must be NEW or USED"
	case "country_code":
		return e.Field() + " must be one of US, SG, HK, KR, JP"
	case "payment_option":
		return e.Field() + " is not a supported payment option"
	case "discount_type":
		return e.Field() + " must be PERCENTAGE or FIXED_AMOUNT"
	default:
		return e.Field() + " is invalid"
	}
}
