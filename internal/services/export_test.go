// internal/services/export_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/draft-backend/internal/models"
	"github.com/javajoker/draft-backend/internal/utils"
)

func listingReadyDraft() *models.ProductDraft {
	d := &models.ProductDraft{
		DraftID:         "d-1",
		UserID:          "u1",
		Title:           "Denim jacket",
		Description:     "Raw denim",
		Price:           80,
		Quantity:        2,
		Category:        models.CategoryFashion,
		Condition:       models.ConditionNew,
		Variations:      []models.Variation{{Name: "Size", Values: []string{"M", "L"}}},
		ShippingPrices:  []models.ShippingPrice{{CountryCode: models.CountryUS, Price: 12}},
		ShipFromCountry: models.CountryJP,
		ShipToCountries: []models.CountryCode{models.CountryUS},
		PaymentOptions:  []models.PaymentOption{models.PaymentUSDCBase},
		Tags:            []string{"denim"},
		Specifications:  map[string]string{"Material": "Cotton"},
		ImageFilePaths:  []string{"front.jpg"},
		CreatedAt:       time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:       time.Date(2024, 1, 3, 3, 4, 5, 0, time.UTC),
		Version:         4,
	}
	d.Normalize()
	return d
}

func TestBuildExportListing(t *testing.T) {
	d := listingReadyDraft()

	result, err := BuildExport(d, utils.ExportFormatForestMarket)
	require.NoError(t, err)

	assert.Equal(t, utils.ExportFormatForestMarket, result.ExportFormat)
	require.NotNil(t, result.ReadyForListing)
	assert.True(t, *result.ReadyForListing)
	assert.Empty(t, result.MissingRequirements)
	assert.Nil(t, result.ExportData)

	listing := result.ProductData
	require.NotNil(t, listing)
	assert.Equal(t, "Denim jacket", listing.Title)
	assert.Equal(t, []string{"front.jpg"}, listing.Images)
	assert.Equal(t, models.CountryJP, listing.ShipFrom)
	assert.Equal(t, []models.CountryCode{models.CountryUS}, listing.ShipTo)
	assert.Equal(t, []map[string]interface{}{{"name": "Size", "values": []string{"M", "L"}}}, listing.Variations)
	assert.Equal(t, []map[string]interface{}{{"country_code": "US", "price": 12.0, "currency_code": "USDT"}}, listing.ShippingFees)
	assert.Equal(t, []models.PaymentOption{models.PaymentUSDCBase}, listing.PaymentOptions)

	assert.Equal(t, &ExportMetadata{DraftID: "d-1", Version: 4, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}, result.Metadata)
}

func TestBuildExportDefaultsToListing(t *testing.T) {
	result, err := BuildExport(listingReadyDraft(), "")
	require.NoError(t, err)
	assert.Equal(t, utils.ExportFormatForestMarket, result.ExportFormat)
}

func TestBuildExportDoesNotAliasDraft(t *testing.T) {
	d := listingReadyDraft()

	result, err := BuildExport(d, utils.ExportFormatForestMarket)
	require.NoError(t, err)
	result.ProductData.Tags[0] = "changed"
	result.ProductData.Specifications["Material"] = "Silk"

	assert.Equal(t, "denim", d.Tags[0])
	assert.Equal(t, "Cotton", d.Specifications["Material"])
}

func TestBuildExportJSONRoundTrip(t *testing.T) {
	d := listingReadyDraft()

	first, err := BuildExport(d, utils.ExportFormatJSON)
	require.NoError(t, err)
	assert.Equal(t, utils.ExportFormatJSON, first.ExportFormat)
	assert.Nil(t, first.ProductData)
	assert.Nil(t, first.ReadyForListing)

	rebuilt, err := models.DraftFromMap(first.ExportData)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(d, rebuilt))

	second, err := BuildExport(rebuilt, utils.ExportFormatJSON)
	require.NoError(t, err)
	assert.Equal(t, first.ExportData, second.ExportData)
}

func TestBuildExportUnsupportedFormat(t *testing.T) {
	_, err := BuildExport(listingReadyDraft(), "csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestListingIssues(t *testing.T) {
	tests := []struct {
		name   string
		modify func(d *models.ProductDraft)
		want   []string
	}{
		{
			name:   "ready",
			modify: func(d *models.ProductDraft) {},
		},
		{
			name: "missing title and images",
			modify: func(d *models.ProductDraft) {
				d.Title = ""
				d.ImageFilePaths = nil
			},
			want: []string{"title is required", "at least one image is required"},
		},
		{
			name:   "condition required for physical goods",
			modify: func(d *models.ProductDraft) { d.Condition = "" },
			want:   []string{"condition is required for category FASHION"},
		},
		{
			name: "condition optional for digital goods",
			modify: func(d *models.ProductDraft) {
				d.Category = models.CategoryDigitalGoods
				d.Condition = ""
			},
		},
		{
			name: "too many destinations",
			modify: func(d *models.ProductDraft) {
				d.ShipToCountries = append(models.CountryCodes[:len(models.CountryCodes):len(models.CountryCodes)], models.CountryUS)
			},
			want: []string{"at most 5 ship-to countries are allowed"},
		},
		{
			name: "percentage discount out of range",
			modify: func(d *models.ProductDraft) {
				d.DiscountType = models.DiscountPercentage
				d.DiscountValue = 0.6
			},
			want: []string{"percentage discount must be between 0.1 and 0.5"},
		},
		{
			name: "percentage discount in range",
			modify: func(d *models.ProductDraft) {
				d.DiscountType = models.DiscountPercentage
				d.DiscountValue = 0.25
			},
		},
		{
			name: "fixed discount must be positive",
			modify: func(d *models.ProductDraft) {
				d.DiscountType = models.DiscountFixedAmount
				d.DiscountValue = 0
			},
			want: []string{"fixed amount discount must be greater than 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := listingReadyDraft()
			tt.modify(d)
			assert.Equal(t, tt.want, ListingIssues(d))
		})
	}
}
