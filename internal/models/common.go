// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSONB stores a JSON object column. Postgres gets a native jsonb column,
// other dialects fall back to text.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", value)
	}

	return json.Unmarshal(bytes, j)
}

func (JSONB) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}

// Enums
type Category string

const (
	CategoryDigitalGoods Category = "DIGITAL_GOODS"
	CategoryDepin        Category = "DEPIN"
	CategoryElectronics  Category = "ELECTRONICS"
	CategoryFashion      Category = "FASHION"
	CategoryCollectibles Category = "COLLECTIBLES"
	CategoryCustom       Category = "CUSTOM"
	CategoryOther        Category = "OTHER"
)

var Categories = []Category{
	CategoryDigitalGoods,
	CategoryDepin,
	CategoryElectronics,
	CategoryFashion,
	CategoryCollectibles,
	CategoryCustom,
	CategoryOther,
}

// RequiresCondition reports whether listings in this category must state a
// condition.
func (c Category) RequiresCondition() bool {
	return c != CategoryDigitalGoods && c != CategoryCustom
}

type Condition string

const (
	ConditionNew  Condition = "NEW"
	ConditionUsed Condition = "USED"
)

var Conditions = []Condition{ConditionNew, ConditionUsed}

type CountryCode string

const (
	CountryUS CountryCode = "US"
	CountrySG CountryCode = "SG"
	CountryHK CountryCode = "HK"
	CountryKR CountryCode = "KR"
	CountryJP CountryCode = "JP"
)

var CountryCodes = []CountryCode{CountryUS, CountrySG, CountryHK, CountryKR, CountryJP}

// MaxShipToCountries is the marketplace limit on destinations per listing.
const MaxShipToCountries = 5

type PaymentOption string

const (
	PaymentETHEthereum  PaymentOption = "ETH_ETHEREUM"
	PaymentETHBase      PaymentOption = "ETH_BASE"
	PaymentSOLSolana    PaymentOption = "SOL_SOLANA"
	PaymentUSDCEthereum PaymentOption = "USDC_ETHEREUM"
	PaymentUSDCBase     PaymentOption = "USDC_BASE"
	PaymentUSDCSolana   PaymentOption = "USDC_SOLANA"
	PaymentUSDTEthereum PaymentOption = "USDT_ETHEREUM"
)

var PaymentOptions = []PaymentOption{
	PaymentETHEthereum,
	PaymentETHBase,
	PaymentSOLSolana,
	PaymentUSDCEthereum,
	PaymentUSDCBase,
	PaymentUSDCSolana,
	PaymentUSDTEthereum,
}

type DiscountType string

const (
	DiscountNone        DiscountType = ""
	DiscountPercentage  DiscountType = "PERCENTAGE"
	DiscountFixedAmount DiscountType = "FIXED_AMOUNT"
)

const DefaultCurrencyCode = "USDT"
