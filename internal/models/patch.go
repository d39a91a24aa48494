// internal/models/patch.go
package models

import "reflect"

// DraftPatch is a set of whole-field replacements. A nil field is left
// untouched; a non-nil field replaces the draft's value verbatim, so a
// pointer to an empty slice clears the collection.
type DraftPatch struct {
	Title           *string
	Description     *string
	ContactEmail    *string
	Price           *float64
	Quantity        *int
	Category        *Category
	Condition       *Condition
	DiscountType    *DiscountType
	DiscountValue   *float64
	PaymentOptions  *[]PaymentOption
	Variations      *[]Variation
	ShippingPrices  *[]ShippingPrice
	ShipFromCountry *CountryCode
	ShipToCountries *[]CountryCode
	Tags            *[]string
	Specifications  *map[string]string
	ImageFilePaths  *[]string
}

// Apply assigns every set field and returns their names in declaration
// order.
func (p DraftPatch) Apply(d *ProductDraft) []string {
	var applied []string
	if p.Title != nil {
		d.Title = *p.Title
		applied = append(applied, "title")
	}
	if p.Description != nil {
		d.Description = *p.Description
		applied = append(applied, "description")
	}
	if p.ContactEmail != nil {
		d.ContactEmail = *p.ContactEmail
		applied = append(applied, "contact_email")
	}
	if p.Price != nil {
		d.Price = *p.Price
		applied = append(applied, "price")
	}
	if p.Quantity != nil {
		d.Quantity = *p.Quantity
		applied = append(applied, "quantity")
	}
	if p.Category != nil {
		d.Category = *p.Category
		applied = append(applied, "category")
	}
	if p.Condition != nil {
		d.Condition = *p.Condition
		applied = append(applied, "condition")
	}
	if p.DiscountType != nil {
		d.DiscountType = *p.DiscountType
		applied = append(applied, "discount_type")
	}
	if p.DiscountValue != nil {
		d.DiscountValue = *p.DiscountValue
		applied = append(applied, "discount_value")
	}
	if p.PaymentOptions != nil {
		d.PaymentOptions = append([]PaymentOption{}, (*p.PaymentOptions)...)
		applied = append(applied, "payment_options")
	}
	if p.Variations != nil {
		d.Variations = CloneVariations(*p.Variations)
		applied = append(applied, "variations")
	}
	if p.ShippingPrices != nil {
		d.ShippingPrices = append([]ShippingPrice{}, (*p.ShippingPrices)...)
		applied = append(applied, "shipping_prices")
	}
	if p.ShipFromCountry != nil {
		d.ShipFromCountry = *p.ShipFromCountry
		applied = append(applied, "ship_from_country")
	}
	if p.ShipToCountries != nil {
		d.ShipToCountries = append([]CountryCode{}, (*p.ShipToCountries)...)
		applied = append(applied, "ship_to_countries")
	}
	if p.Tags != nil {
		d.Tags = append([]string{}, (*p.Tags)...)
		applied = append(applied, "tags")
	}
	if p.Specifications != nil {
		specs := make(map[string]string, len(*p.Specifications))
		for k, v := range *p.Specifications {
			specs[k] = v
		}
		d.Specifications = specs
		applied = append(applied, "specifications")
	}
	if p.ImageFilePaths != nil {
		d.ImageFilePaths = append([]string{}, (*p.ImageFilePaths)...)
		applied = append(applied, "image_file_paths")
	}
	return applied
}

func (p DraftPatch) IsEmpty() bool {
	return len(p.Apply(&ProductDraft{})) == 0
}

type draftField struct {
	name string
	get  func(*ProductDraft) interface{}
}

var mutableFields = []draftField{
	{"title", func(d *ProductDraft) interface{} { return d.Title }},
	{"description", func(d *ProductDraft) interface{} { return d.Description }},
	{"contact_email", func(d *ProductDraft) interface{} { return d.ContactEmail }},
	{"price", func(d *ProductDraft) interface{} { return d.Price }},
	{"quantity", func(d *ProductDraft) interface{} { return d.Quantity }},
	{"category", func(d *ProductDraft) interface{} { return d.Category }},
	{"condition", func(d *ProductDraft) interface{} { return d.Condition }},
	{"discount_type", func(d *ProductDraft) interface{} { return d.DiscountType }},
	{"discount_value", func(d *ProductDraft) interface{} { return d.DiscountValue }},
	{"payment_options", func(d *ProductDraft) interface{} { return d.PaymentOptions }},
	{"variations", func(d *ProductDraft) interface{} { return d.Variations }},
	{"shipping_prices", func(d *ProductDraft) interface{} { return d.ShippingPrices }},
	{"ship_from_country", func(d *ProductDraft) interface{} { return d.ShipFromCountry }},
	{"ship_to_countries", func(d *ProductDraft) interface{} { return d.ShipToCountries }},
	{"tags", func(d *ProductDraft) interface{} { return d.Tags }},
	{"specifications", func(d *ProductDraft) interface{} { return d.Specifications }},
	{"image_file_paths", func(d *ProductDraft) interface{} { return d.ImageFilePaths }},
}

// ChangedFields lists the mutable fields whose values differ between two
// normalized drafts.
func ChangedFields(before, after *ProductDraft) []string {
	var changed []string
	for _, f := range mutableFields {
		if !reflect.DeepEqual(f.get(before), f.get(after)) {
			changed = append(changed, f.name)
		}
	}
	return changed
}
