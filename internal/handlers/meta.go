// internal/handlers/meta.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/draft-backend/internal/models"
	"github.com/javajoker/draft-backend/internal/utils"
)

// GET /meta/enums
func GetEnums(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"categories":            models.Categories,
		"conditions":            models.Conditions,
		"country_codes":         models.CountryCodes,
		"payment_options":       models.PaymentOptions,
		"discount_types":        []models.DiscountType{models.DiscountPercentage, models.DiscountFixedAmount},
		"export_formats":        []string{utils.ExportFormatForestMarket, utils.ExportFormatJSON},
		"max_ship_to_countries": models.MaxShipToCountries,
	})
}
