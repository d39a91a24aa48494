// internal/models/draft.go
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Variation is one named axis of product options, e.g. Size: S/M/L.
type Variation struct {
	Name   string   `json:"name" validate:"required"`
	Values []string `json:"values" validate:"dive,required"`
}

type ShippingPrice struct {
	CountryCode  CountryCode `json:"country_code" validate:"country_code"`
	Price        float64     `json:"price" validate:"min=0"`
	CurrencyCode string      `json:"currency_code"`
}

// ProductDraft is an in-progress listing. The store owns the authoritative
// copy; everything handed out of it is a Clone.
type ProductDraft struct {
	DraftID      string `json:"draft_id"`
	UserID       string `json:"user_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email"`

	Price          float64         `json:"price"`
	Quantity       int             `json:"quantity"`
	Category       Category        `json:"category"`
	Condition      Condition       `json:"condition"`
	DiscountType   DiscountType    `json:"discount_type"`
	DiscountValue  float64         `json:"discount_value"`
	PaymentOptions []PaymentOption `json:"payment_options"`

	Variations      []Variation       `json:"variations"`
	ShippingPrices  []ShippingPrice   `json:"shipping_prices"`
	ShipFromCountry CountryCode       `json:"ship_from_country"`
	ShipToCountries []CountryCode     `json:"ship_to_countries"`
	Tags            []string          `json:"tags"`
	Specifications  map[string]string `json:"specifications"`
	ImageFilePaths  []string          `json:"image_file_paths"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

func NewDraftID() string {
	return uuid.NewString()
}

// Normalize applies the category rules and fills empty collections. It is
// the only place the DIGITAL_GOODS shipping rule lives.
func (d *ProductDraft) Normalize() {
	if d.Category == CategoryDigitalGoods {
		d.ShipFromCountry = ""
		d.ShipToCountries = nil
		d.ShippingPrices = nil
	}

	for i := range d.ShippingPrices {
		if d.ShippingPrices[i].CurrencyCode == "" {
			d.ShippingPrices[i].CurrencyCode = DefaultCurrencyCode
		}
	}
	for i := range d.Variations {
		if d.Variations[i].Values == nil {
			d.Variations[i].Values = []string{}
		}
	}

	if d.Variations == nil {
		d.Variations = []Variation{}
	}
	if d.ShippingPrices == nil {
		d.ShippingPrices = []ShippingPrice{}
	}
	if d.ShipToCountries == nil {
		d.ShipToCountries = []CountryCode{}
	}
	if d.PaymentOptions == nil {
		d.PaymentOptions = []PaymentOption{}
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	if d.Specifications == nil {
		d.Specifications = map[string]string{}
	}
	if d.ImageFilePaths == nil {
		d.ImageFilePaths = []string{}
	}
}

// AccessibleBy implements the ownership rule: unowned drafts and anonymous
// callers pass, otherwise the ids must match.
func (d *ProductDraft) AccessibleBy(userID string) bool {
	return d.UserID == "" || userID == "" || d.UserID == userID
}

func (d *ProductDraft) Clone() *ProductDraft {
	if d == nil {
		return nil
	}

	c := *d
	c.Variations = CloneVariations(d.Variations)
	c.ShippingPrices = append([]ShippingPrice(nil), d.ShippingPrices...)
	c.ShipToCountries = append([]CountryCode(nil), d.ShipToCountries...)
	c.PaymentOptions = append([]PaymentOption(nil), d.PaymentOptions...)
	c.Tags = append([]string(nil), d.Tags...)
	c.ImageFilePaths = append([]string(nil), d.ImageFilePaths...)
	if d.Specifications != nil {
		c.Specifications = make(map[string]string, len(d.Specifications))
		for k, v := range d.Specifications {
			c.Specifications[k] = v
		}
	}
	c.Normalize()
	return &c
}

func CloneVariations(in []Variation) []Variation {
	if in == nil {
		return nil
	}
	out := make([]Variation, len(in))
	for i, v := range in {
		out[i] = Variation{Name: v.Name, Values: append([]string{}, v.Values...)}
	}
	return out
}

// ToMap returns the full dict view, the shape written to the snapshot file.
func (d *ProductDraft) ToMap() map[string]interface{} {
	data, err := json.Marshal(d)
	if err != nil {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func (d *ProductDraft) VariationMaps() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(d.Variations))
	for _, v := range d.Variations {
		out = append(out, map[string]interface{}{
			"name":   v.Name,
			"values": append([]string{}, v.Values...),
		})
	}
	return out
}

func (d *ProductDraft) ShippingPriceMaps() []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(d.ShippingPrices))
	for _, sp := range d.ShippingPrices {
		out = append(out, map[string]interface{}{
			"country_code":  string(sp.CountryCode),
			"price":         sp.Price,
			"currency_code": sp.CurrencyCode,
		})
	}
	return out
}

// DraftFromMap rebuilds a draft from its dict view.
func DraftFromMap(data map[string]interface{}) (*ProductDraft, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var d ProductDraft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	d.Normalize()
	return &d, nil
}
