// internal/services/export.go
package services

import (
	"fmt"
	"time"

	"github.com/javajoker/draft-backend/internal/models"
	"github.com/javajoker/draft-backend/internal/utils"
)

// Discount bounds accepted by the marketplace.
const (
	minPercentageDiscount = 0.1
	maxPercentageDiscount = 0.5
)

// ListingData is the marketplace-facing projection of a draft, with nested
// records flattened to plain objects.
type ListingData struct {
	Title          string                   `json:"title"`
	Description    string                   `json:"description"`
	Price          float64                  `json:"price"`
	Category       models.Category          `json:"category"`
	Condition      models.Condition         `json:"condition"`
	Variations     []map[string]interface{} `json:"variations"`
	Images         []string                 `json:"images"`
	ContactEmail   string                   `json:"contact_email"`
	ShipFrom       models.CountryCode       `json:"ship_from"`
	ShipTo         []models.CountryCode     `json:"ship_to"`
	ShippingFees   []map[string]interface{} `json:"shipping_fees"`
	Quantity       int                      `json:"quantity"`
	DiscountType   models.DiscountType      `json:"discount_type"`
	DiscountValue  float64                  `json:"discount_value"`
	PaymentOptions []models.PaymentOption   `json:"payout_methods"`
	Tags           []string                 `json:"tags"`
	Specifications map[string]string        `json:"specifications"`
}

type ExportMetadata struct {
	DraftID   string    `json:"draft_id"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExportResult carries one of two shapes: the listing projection
// (forest_market) or the raw dict (json).
type ExportResult struct {
	ProductData         *ListingData           `json:"product_data,omitempty"`
	Metadata            *ExportMetadata        `json:"metadata,omitempty"`
	ExportData          map[string]interface{} `json:"export_data,omitempty"`
	ExportFormat        string                 `json:"export_format"`
	ReadyForListing     *bool                  `json:"ready_for_listing,omitempty"`
	MissingRequirements []string               `json:"missing_requirements,omitempty"`
}

// BuildExport projects a draft without touching stored state.
func BuildExport(d *models.ProductDraft, format string) (*ExportResult, error) {
	switch format {
	case "", utils.ExportFormatForestMarket:
		missing := ListingIssues(d)
		ready := len(missing) == 0
		return &ExportResult{
			ProductData: &ListingData{
				Title:          d.Title,
				Description:    d.Description,
				Price:          d.Price,
				Category:       d.Category,
				Condition:      d.Condition,
				Variations:     d.VariationMaps(),
				Images:         append([]string{}, d.ImageFilePaths...),
				ContactEmail:   d.ContactEmail,
				ShipFrom:       d.ShipFromCountry,
				ShipTo:         append([]models.CountryCode{}, d.ShipToCountries...),
				ShippingFees:   d.ShippingPriceMaps(),
				Quantity:       d.Quantity,
				DiscountType:   d.DiscountType,
				DiscountValue:  d.DiscountValue,
				PaymentOptions: append([]models.PaymentOption{}, d.PaymentOptions...),
				Tags:           append([]string{}, d.Tags...),
				Specifications: d.Clone().Specifications,
			},
			Metadata: &ExportMetadata{
				DraftID:   d.DraftID,
				Version:   d.Version,
				CreatedAt: d.CreatedAt,
				UpdatedAt: d.UpdatedAt,
			},
			ExportFormat:        utils.ExportFormatForestMarket,
			ReadyForListing:     &ready,
			MissingRequirements: missing,
		}, nil

	case utils.ExportFormatJSON:
		return &ExportResult{
			ExportData:   d.ToMap(),
			ExportFormat: utils.ExportFormatJSON,
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// ListingIssues lists what keeps a draft from being publishable. An empty
// result means the draft is ready.
func ListingIssues(d *models.ProductDraft) []string {
	var issues []string

	if d.Title == "" {
		issues = append(issues, "title is required")
	}
	if len(d.ImageFilePaths) == 0 {
		issues = append(issues, "at least one image is required")
	}
	if d.Category.RequiresCondition() && d.Condition == "" {
		issues = append(issues, fmt.Sprintf("condition is required for category %s", d.Category))
	}
	if len(d.ShipToCountries) > models.MaxShipToCountries {
		issues = append(issues, fmt.Sprintf("at most %d ship-to countries are allowed", models.MaxShipToCountries))
	}

	switch d.DiscountType {
	case models.DiscountPercentage:
		if d.DiscountValue < minPercentageDiscount || d.DiscountValue > maxPercentageDiscount {
			issues = append(issues, fmt.Sprintf("percentage discount must be between %.1f and %.1f", minPercentageDiscount, maxPercentageDiscount))
		}
	case models.DiscountFixedAmount:
		if d.DiscountValue <= 0 {
			issues = append(issues, "fixed amount discount must be greater than 0")
		}
	}

	return issues
}
