// internal/services/draft_service_test.go
package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/draft-backend/internal/models"
	"github.com/javajoker/draft-backend/internal/store"
	"github.com/javajoker/draft-backend/internal/utils"
)

type DraftServiceTestSuite struct {
	suite.Suite
	path    string
	clock   time.Time
	log     *logrus.Logger
	store   *store.DraftStore
	service *DraftService
}

func (s *DraftServiceTestSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "drafts.json")
	s.clock = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	s.log, _ = logtest.NewNullLogger()
	s.reopen()
}

func (s *DraftServiceTestSuite) reopen() {
	var err error
	s.store, err = store.New(store.NewFileBackend(s.path), store.WithLogger(s.log), store.WithClock(func() time.Time {
		s.clock = s.clock.Add(time.Second)
		return s.clock
	}))
	s.Require().NoError(err)
	s.service = NewDraftService(s.store, s.log)
}

func (s *DraftServiceTestSuite) create(req CreateDraftRequest) string {
	result, err := s.service.CreateDraft(&req)
	s.Require().NoError(err)
	return result.DraftID
}

func (s *DraftServiceTestSuite) get(id string) *models.ProductDraft {
	d, err := s.service.GetDraft(id, "")
	s.Require().NoError(err)
	return d
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func (s *DraftServiceTestSuite) TestCreateAndGetWidget() {
	result, err := s.service.CreateDraft(&CreateDraftRequest{
		UserID:    "u1",
		Title:     "Widget",
		Category:  models.CategoryElectronics,
		Condition: models.ConditionNew,
		Price:     10.0,
		Quantity:  intPtr(2),
	})
	s.Require().NoError(err)
	s.NotEmpty(result.DraftID)
	s.Equal(StatusCreated, result.Status)
	s.Equal("Widget", result.Title)

	d := s.get(result.DraftID)
	s.Equal("Widget", d.Title)
	s.Equal(1, d.Version)
	s.Equal(2, d.Quantity)
	s.Equal("u1", d.UserID)
}

func (s *DraftServiceTestSuite) TestCreateDefaults() {
	d := s.get(s.create(CreateDraftRequest{Title: "Plain"}))

	s.Equal(1, d.Quantity)
	s.Equal(models.CategoryOther, d.Category)
	s.Empty(d.Tags)
}

func (s *DraftServiceTestSuite) TestCreateDedupesSetLikeFields() {
	d := s.get(s.create(CreateDraftRequest{
		Title:           "Dupes",
		Tags:            []string{"a", "b", "a"},
		ShipToCountries: []models.CountryCode{models.CountryUS, models.CountryUS},
		Variations: []models.Variation{
			{Name: "Size", Values: []string{"S", "S"}},
			{Name: "Size", Values: []string{"M"}},
		},
	}))

	s.Equal([]string{"a", "b"}, d.Tags)
	s.Equal([]models.CountryCode{models.CountryUS}, d.ShipToCountries)
	s.Equal([]models.Variation{{Name: "Size", Values: []string{"S", "M"}}}, d.Variations)
}

func (s *DraftServiceTestSuite) TestCreateValidation() {
	cases := map[string]CreateDraftRequest{
		"negative price":    {Title: "x", Price: -1},
		"zero quantity":     {Title: "x", Quantity: intPtr(0)},
		"unknown category":  {Title: "x", Category: "FOOD"},
		"unknown country":   {Title: "x", ShipFromCountry: "FR"},
		"bad payment":       {Title: "x", PaymentOptions: []models.PaymentOption{"BTC"}},
		"bad email":         {Title: "x", ContactEmail: "nope"},
		"unnamed variation": {Title: "x", Variations: []models.Variation{{Values: []string{"S"}}}},
		"negative shipping": {Title: "x", ShippingPrices: []models.ShippingPrice{{CountryCode: models.CountryUS, Price: -1}}},
	}

	for name, req := range cases {
		req := req
		_, err := s.service.CreateDraft(&req)
		var verrs validator.ValidationErrors
		s.ErrorAs(err, &verrs, name)
	}
	s.Empty(s.store.ListAll())
}

func (s *DraftServiceTestSuite) TestCreateDigitalGoodsClearsShipping() {
	d := s.get(s.create(CreateDraftRequest{
		Title:           "E-book",
		Category:        models.CategoryDigitalGoods,
		ShipFromCountry: models.CountryUS,
		ShipToCountries: []models.CountryCode{models.CountryJP},
		ShippingPrices:  []models.ShippingPrice{{CountryCode: models.CountryJP, Price: 3}},
	}))

	s.Equal(models.CountryCode(""), d.ShipFromCountry)
	s.Empty(d.ShipToCountries)
	s.Empty(d.ShippingPrices)
}

func (s *DraftServiceTestSuite) TestGetMissingDraftID() {
	_, err := s.service.GetDraft("", "u1")
	s.ErrorIs(err, ErrMissingDraftID)
}

func (s *DraftServiceTestSuite) TestGetNotFound() {
	_, err := s.service.GetDraft("missing", "")
	s.ErrorIs(err, ErrDraftNotFound)
}

func (s *DraftServiceTestSuite) TestSummary() {
	id := s.create(CreateDraftRequest{
		UserID:         "u1",
		Title:          "Widget",
		Description:    "desc",
		Tags:           []string{"a", "b"},
		ImageFilePaths: []string{"1.png"},
		DiscountType:   models.DiscountPercentage,
		DiscountValue:  0.2,
	})

	summary, err := s.service.GetDraftSummary(id, "u1")
	s.Require().NoError(err)
	s.Equal(2, summary.TagsCount)
	s.Equal(1, summary.ImagesCount)
	s.True(summary.HasDescription)
	s.True(summary.HasDiscount)
	s.False(summary.HasContactEmail)
	s.False(summary.HasSpecifications)
	s.Equal(1, summary.Version)
}

func (s *DraftServiceTestSuite) TestBatchGet() {
	mine := s.create(CreateDraftRequest{UserID: "u1", Title: "Mine"})
	theirs := s.create(CreateDraftRequest{UserID: "u2", Title: "Theirs"})
	public := s.create(CreateDraftRequest{Title: "Public"})

	result := s.service.GetDrafts([]string{mine, theirs, "missing", public}, "u1", true)
	s.Equal(4, result.TotalProcessed)
	s.Equal(2, result.Successful)
	s.Require().Len(result.Results, 4)

	s.Equal(mine, result.Results[0].(*DraftSummary).DraftID)
	s.Equal(BatchError{DraftID: theirs, Error: "Access denied"}, result.Results[1])
	s.Equal(BatchError{DraftID: "missing", Error: "Not found"}, result.Results[2])
	s.Equal(public, result.Results[3].(*DraftSummary).DraftID)

	full := s.service.GetDrafts([]string{mine}, "", false)
	s.Equal("Mine", full.Results[0].(*models.ProductDraft).Title)
}

func (s *DraftServiceTestSuite) TestUpdateReplacesFields() {
	id := s.create(CreateDraftRequest{
		Title:      "Shirt",
		Category:   models.CategoryFashion,
		Tags:       []string{"a", "b"},
		Variations: []models.Variation{{Name: "Size", Values: []string{"S"}}},
	})

	tags := []string{"c"}
	result, err := s.service.UpdateDraft(&UpdateDraftRequest{
		DraftID: id,
		Title:   strPtr("Better shirt"),
		Tags:    &tags,
	})
	s.Require().NoError(err)
	s.Equal(StatusUpdated, result.Status)
	s.Equal(2, result.Version)
	s.Equal([]string{"title", "tags"}, result.UpdatedFields)

	d := s.get(id)
	s.Equal("Better shirt", d.Title)
	s.Equal([]string{"c"}, d.Tags)
	s.Len(d.Variations, 1)
	s.Equal(d.UpdatedAt, result.UpdatedAt)
}

func (s *DraftServiceTestSuite) TestUpdateWithNoFieldsIsNoOp() {
	id := s.create(CreateDraftRequest{Title: "x"})

	_, err := s.service.UpdateDraft(&UpdateDraftRequest{DraftID: id})
	s.ErrorIs(err, ErrNoChanges)
	s.Equal(1, s.get(id).Version)
}

func (s *DraftServiceTestSuite) TestUpdateToDigitalGoodsClearsShipping() {
	id := s.create(CreateDraftRequest{
		Title:           "Print",
		Category:        models.CategoryCollectibles,
		ShipFromCountry: models.CountryHK,
		ShipToCountries: []models.CountryCode{models.CountryUS},
		ShippingPrices:  []models.ShippingPrice{{CountryCode: models.CountryUS, Price: 9}},
	})

	category := models.CategoryDigitalGoods
	shipFrom := models.CountryKR
	_, err := s.service.UpdateDraft(&UpdateDraftRequest{DraftID: id, Category: &category, ShipFromCountry: &shipFrom})
	s.Require().NoError(err)

	d := s.get(id)
	s.Equal(models.CountryCode(""), d.ShipFromCountry)
	s.Empty(d.ShipToCountries)
	s.Empty(d.ShippingPrices)
}

func (s *DraftServiceTestSuite) TestOwnershipIsolation() {
	id := s.create(CreateDraftRequest{UserID: "alice", Title: "Alice's", Tags: []string{"a"}})
	before := s.get(id)

	_, err := s.service.GetDraft(id, "bob")
	s.ErrorIs(err, ErrAccessDenied)

	_, err = s.service.UpdateDraft(&UpdateDraftRequest{DraftID: id, UserID: "bob", Title: strPtr("Bob's")})
	s.ErrorIs(err, ErrAccessDenied)

	_, err = s.service.AddToDraft(&AddToDraftRequest{DraftID: id, UserID: "bob", Tags: []string{"b"}})
	s.ErrorIs(err, ErrAccessDenied)

	_, err = s.service.RemoveFromDraft(&RemoveFromDraftRequest{DraftID: id, UserID: "bob", Tags: []string{"a"}})
	s.ErrorIs(err, ErrAccessDenied)

	_, err = s.service.DeleteDraft(id, "bob")
	s.ErrorIs(err, ErrAccessDenied)

	_, err = s.service.ExportDraft(id, "bob", utils.ExportFormatJSON)
	s.ErrorIs(err, ErrAccessDenied)

	s.Empty(cmp.Diff(before, s.get(id)))

	// The owner and anonymous callers still get through.
	_, err = s.service.GetDraft(id, "alice")
	s.NoError(err)
	_, err = s.service.GetDraft(id, "")
	s.NoError(err)
}

func (s *DraftServiceTestSuite) TestUnownedDraftIsOpen() {
	id := s.create(CreateDraftRequest{Title: "Shared"})

	_, err := s.service.UpdateDraft(&UpdateDraftRequest{DraftID: id, UserID: "anyone", Title: strPtr("Edited")})
	s.NoError(err)
}

func (s *DraftServiceTestSuite) TestDeleteNotPermittedKeepsDraft() {
	id := s.create(CreateDraftRequest{UserID: "u1", Title: "Keep me"})

	_, err := s.service.DeleteDraft(id, "u2")
	s.ErrorIs(err, ErrAccessDenied)

	d, err := s.service.GetDraft(id, "")
	s.Require().NoError(err)
	s.Equal("Keep me", d.Title)
}

func (s *DraftServiceTestSuite) TestDelete() {
	id := s.create(CreateDraftRequest{UserID: "u1", Title: "Bye"})

	result, err := s.service.DeleteDraft(id, "u1")
	s.Require().NoError(err)
	s.Equal(&DeleteResult{Status: StatusDeleted, DraftID: id}, result)

	_, err = s.service.DeleteDraft(id, "u1")
	s.ErrorIs(err, ErrDraftNotFound)
}

func (s *DraftServiceTestSuite) TestAddMergesVariationValues() {
	id := s.create(CreateDraftRequest{
		Title:      "Tee",
		Category:   models.CategoryFashion,
		Variations: []models.Variation{{Name: "Size", Values: []string{"S", "M"}}},
	})

	result, err := s.service.AddToDraft(&AddToDraftRequest{
		DraftID:    id,
		Variations: []models.Variation{{Name: "Size", Values: []string{"L"}}},
	})
	s.Require().NoError(err)
	s.Equal(StatusAdded, result.Status)
	s.Equal([]string{"variations"}, result.AddedFields)

	d := s.get(id)
	s.Require().Len(d.Variations, 1)
	s.Equal("Size", d.Variations[0].Name)
	s.ElementsMatch([]string{"S", "M", "L"}, d.Variations[0].Values)
}

func (s *DraftServiceTestSuite) TestAddSameTagTwice() {
	id := s.create(CreateDraftRequest{Title: "Tee"})

	first, err := s.service.AddToDraft(&AddToDraftRequest{DraftID: id, Tags: []string{"red"}})
	s.Require().NoError(err)
	s.Equal(2, first.Version)

	_, err = s.service.AddToDraft(&AddToDraftRequest{DraftID: id, Tags: []string{"red"}})
	s.ErrorIs(err, ErrNoChanges)

	d := s.get(id)
	s.Equal([]string{"red"}, d.Tags)
	s.Equal(2, d.Version)
}

func (s *DraftServiceTestSuite) TestAddWithNothingIsNoOp() {
	id := s.create(CreateDraftRequest{Title: "Tee"})

	_, err := s.service.AddToDraft(&AddToDraftRequest{DraftID: id})
	s.ErrorIs(err, ErrNoChanges)
	s.Equal(1, s.get(id).Version)
}

func (s *DraftServiceTestSuite) TestAddShippingToDigitalGoodsIsNoOp() {
	id := s.create(CreateDraftRequest{Title: "E-book", Category: models.CategoryDigitalGoods})

	_, err := s.service.AddToDraft(&AddToDraftRequest{
		DraftID:         id,
		ShipToCountries: []models.CountryCode{models.CountryUS},
		ShippingPrices:  []models.ShippingPrice{{CountryCode: models.CountryUS, Price: 2}},
	})
	s.ErrorIs(err, ErrNoChanges)

	d := s.get(id)
	s.Empty(d.ShipToCountries)
	s.Empty(d.ShippingPrices)
	s.Equal(1, d.Version)
}

func (s *DraftServiceTestSuite) TestAddAcrossFields() {
	id := s.create(CreateDraftRequest{
		Title:          "Laptop",
		Category:       models.CategoryElectronics,
		ImageFilePaths: []string{"1.png"},
		Specifications: map[string]string{"RAM": "16GB", "CPU": "M1"},
		ShippingPrices: []models.ShippingPrice{{CountryCode: models.CountryUS, Price: 10}},
		PaymentOptions: []models.PaymentOption{models.PaymentUSDCBase},
	})

	result, err := s.service.AddToDraft(&AddToDraftRequest{
		DraftID:         id,
		ImageFilePaths:  []string{"2.png", "1.png"},
		Specifications:  map[string]string{"RAM": "32GB", "SSD": "1TB"},
		ShippingPrices:  []models.ShippingPrice{{CountryCode: models.CountryUS, Price: 12, CurrencyCode: "USDC"}, {CountryCode: models.CountrySG, Price: 20}},
		ShipToCountries: []models.CountryCode{models.CountrySG},
		PaymentOptions:  []models.PaymentOption{models.PaymentUSDCBase, models.PaymentETHBase},
	})
	s.Require().NoError(err)
	s.ElementsMatch([]string{"image_file_paths", "specifications", "shipping_prices", "ship_to_countries", "payment_options"}, result.AddedFields)

	d := s.get(id)
	s.Equal([]string{"1.png", "2.png"}, d.ImageFilePaths)
	s.Equal(map[string]string{"RAM": "32GB", "CPU": "M1", "SSD": "1TB"}, d.Specifications)
	s.Equal([]models.ShippingPrice{
		{CountryCode: models.CountryUS, Price: 12, CurrencyCode: "USDC"},
		{CountryCode: models.CountrySG, Price: 20, CurrencyCode: models.DefaultCurrencyCode},
	}, d.ShippingPrices)
	s.Equal([]models.PaymentOption{models.PaymentUSDCBase, models.PaymentETHBase}, d.PaymentOptions)
	s.Equal(2, d.Version)
}

func (s *DraftServiceTestSuite) TestRemoveCollapsesEmptiedVariation() {
	id := s.create(CreateDraftRequest{
		Title:      "Tee",
		Variations: []models.Variation{{Name: "Size", Values: []string{"S", "M"}}},
	})

	result, err := s.service.RemoveFromDraft(&RemoveFromDraftRequest{
		DraftID:          id,
		VariationOptions: []models.Variation{{Name: "Size", Values: []string{"S", "M"}}},
	})
	s.Require().NoError(err)
	s.Equal(StatusRemoved, result.Status)
	s.Equal([]string{"variations"}, result.ModifiedFields)
	s.Empty(s.get(id).Variations)
}

func (s *DraftServiceTestSuite) TestRemoveOptionsThenTypes() {
	id := s.create(CreateDraftRequest{
		Title: "Tee",
		Variations: []models.Variation{
			{Name: "Size", Values: []string{"S", "M", "L"}},
			{Name: "Color", Values: []string{"Red", "Blue"}},
			{Name: "Fit", Values: []string{"Slim"}},
		},
	})

	_, err := s.service.RemoveFromDraft(&RemoveFromDraftRequest{
		DraftID:          id,
		VariationOptions: []models.Variation{{Name: "Size", Values: []string{"M"}}, {Name: "Color", Values: []string{"Red"}}},
		VariationTypes:   []string{"Color"},
	})
	s.Require().NoError(err)

	s.Equal([]models.Variation{
		{Name: "Size", Values: []string{"S", "L"}},
		{Name: "Fit", Values: []string{"Slim"}},
	}, s.get(id).Variations)
}

func (s *DraftServiceTestSuite) TestRemoveAcrossFields() {
	id := s.create(CreateDraftRequest{
		Title:           "Laptop",
		Category:        models.CategoryElectronics,
		Tags:            []string{"a", "b", "c"},
		ImageFilePaths:  []string{"1.png", "2.png"},
		Specifications:  map[string]string{"RAM": "16GB", "CPU": "M1"},
		ShipToCountries: []models.CountryCode{models.CountryUS, models.CountryJP},
		ShippingPrices:  []models.ShippingPrice{{CountryCode: models.CountryUS, Price: 10}, {CountryCode: models.CountryJP, Price: 15}},
		PaymentOptions:  []models.PaymentOption{models.PaymentETHBase, models.PaymentSOLSolana},
	})

	result, err := s.service.RemoveFromDraft(&RemoveFromDraftRequest{
		DraftID:         id,
		Tags:            []string{"b", "zzz"},
		ImageFilePaths:  []string{"1.png"},
		Specifications:  []string{"CPU"},
		ShipToCountries: []models.CountryCode{models.CountryJP},
		ShippingPrices:  []models.CountryCode{models.CountryUS},
		PaymentOptions:  []models.PaymentOption{models.PaymentSOLSolana},
	})
	s.Require().NoError(err)
	s.Len(result.ModifiedFields, 6)

	d := s.get(id)
	s.Equal([]string{"a", "c"}, d.Tags)
	s.Equal([]string{"2.png"}, d.ImageFilePaths)
	s.Equal(map[string]string{"RAM": "16GB"}, d.Specifications)
	s.Equal([]models.CountryCode{models.CountryUS}, d.ShipToCountries)
	s.Equal([]models.ShippingPrice{{CountryCode: models.CountryJP, Price: 15, CurrencyCode: models.DefaultCurrencyCode}}, d.ShippingPrices)
	s.Equal([]models.PaymentOption{models.PaymentETHBase}, d.PaymentOptions)
	s.Equal(2, d.Version)
}

func (s *DraftServiceTestSuite) TestRemoveAbsentItemsIsNoOp() {
	id := s.create(CreateDraftRequest{Title: "Tee", Tags: []string{"a"}})

	_, err := s.service.RemoveFromDraft(&RemoveFromDraftRequest{
		DraftID:        id,
		Tags:           []string{"zzz"},
		VariationTypes: []string{"Size"},
	})
	s.ErrorIs(err, ErrNoChanges)
	s.Equal(1, s.get(id).Version)
}

func (s *DraftServiceTestSuite) TestMergeChecksPreconditionsFirst() {
	_, err := s.service.AddToDraft(&AddToDraftRequest{DraftID: "missing"})
	s.ErrorIs(err, ErrDraftNotFound)

	_, err = s.service.RemoveFromDraft(&RemoveFromDraftRequest{DraftID: "missing"})
	s.ErrorIs(err, ErrDraftNotFound)
}

func (s *DraftServiceTestSuite) TestVersionCountsOnlyEffectiveMutations() {
	id := s.create(CreateDraftRequest{Title: "Counter"})

	mutations := 0
	for i, tag := range []string{"a", "b", "a", "c", "b"} {
		_, err := s.service.AddToDraft(&AddToDraftRequest{DraftID: id, Tags: []string{tag}})
		if err == nil {
			mutations++
		} else {
			s.ErrorIs(err, ErrNoChanges, "call %d", i)
		}
	}
	_, err := s.service.RemoveFromDraft(&RemoveFromDraftRequest{DraftID: id, Tags: []string{"a"}})
	s.Require().NoError(err)
	mutations++
	_, err = s.service.UpdateDraft(&UpdateDraftRequest{DraftID: id, Price: new(float64)})
	s.Require().NoError(err)
	mutations++

	s.Equal(3+2, mutations)
	s.Equal(1+mutations, s.get(id).Version)
}

func (s *DraftServiceTestSuite) TestPersistenceAcrossRestart() {
	id := s.create(CreateDraftRequest{
		UserID:         "u1",
		Title:          "Durable",
		Category:       models.CategoryFashion,
		Condition:      models.ConditionUsed,
		Price:          42.5,
		Quantity:       intPtr(3),
		Variations:     []models.Variation{{Name: "Size", Values: []string{"M"}}},
		ShippingPrices: []models.ShippingPrice{{CountryCode: models.CountryKR, Price: 7}},
		Specifications: map[string]string{"Material": "Wool"},
		ImageFilePaths: []string{"front.png", "back.png"},
	})
	_, err := s.service.AddToDraft(&AddToDraftRequest{DraftID: id, Tags: []string{"winter"}})
	s.Require().NoError(err)
	want := s.get(id)

	s.reopen()

	s.Empty(cmp.Diff(want, s.get(id)))
}

func TestDraftServiceSuite(t *testing.T) {
	suite.Run(t, new(DraftServiceTestSuite))
}
