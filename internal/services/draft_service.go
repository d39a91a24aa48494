// internal/services/draft_service.go
package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/draft-backend/internal/models"
	"github.com/javajoker/draft-backend/internal/utils"
)

// DraftRepository is the subset of the draft store the service composes.
type DraftRepository interface {
	Create(draft *models.ProductDraft) string
	Get(draftID string) *models.ProductDraft
	Update(draftID string, patch models.DraftPatch) bool
	Delete(draftID string) bool
	ListAll() []*models.ProductDraft
}

// DraftService implements the draft tools on top of the store. Read-modify-
// write calls are serialized so a merge never works from a stale copy.
type DraftService struct {
	store DraftRepository
	mu    sync.Mutex
	log   logrus.FieldLogger
}

type CreateDraftRequest struct {
	UserID          string                 `json:"user_id"`
	Title           string                 `json:"title" validate:"max=255"`
	Description     string                 `json:"description"`
	ContactEmail    string                 `json:"contact_email" validate:"omitempty,email"`
	Price           float64                `json:"price" validate:"min=0"`
	Quantity        *int                   `json:"quantity" validate:"omitempty,min=1"`
	Category        models.Category        `json:"category" validate:"omitempty,draft_category"`
	Condition       models.Condition       `json:"condition" validate:"omitempty,draft_condition"`
	DiscountType    models.DiscountType    `json:"discount_type" validate:"omitempty,discount_type"`
	DiscountValue   float64                `json:"discount_value" validate:"min=0"`
	PaymentOptions  []models.PaymentOption `json:"payment_options" validate:"omitempty,dive,payment_option"`
	Variations      []models.Variation     `json:"variations" validate:"omitempty,dive"`
	ShippingPrices  []models.ShippingPrice `json:"shipping_prices" validate:"omitempty,dive"`
	ShipFromCountry models.CountryCode     `json:"ship_from_country" validate:"omitempty,country_code"`
	ShipToCountries []models.CountryCode   `json:"ship_to_countries" validate:"omitempty,dive,country_code"`
	Tags            []string               `json:"tags" validate:"omitempty,dive,required"`
	Specifications  map[string]string      `json:"specifications" validate:"omitempty,dive,keys,required,endkeys,max=1024"`
	ImageFilePaths  []string               `json:"image_file_paths" validate:"omitempty,dive,required"`
}

// UpdateDraftRequest replaces every field that is present. A present empty
// list clears the field.
type UpdateDraftRequest struct {
	DraftID         string                  `json:"draft_id" validate:"required"`
	UserID          string                  `json:"user_id"`
	Title           *string                 `json:"title" validate:"omitempty,max=255"`
	Description     *string                 `json:"description"`
	ContactEmail    *string                 `json:"contact_email" validate:"omitempty,email|len=0"`
	Price           *float64                `json:"price" validate:"omitempty,min=0"`
	Quantity        *int                    `json:"quantity" validate:"omitempty,min=1"`
	Category        *models.Category        `json:"category" validate:"omitempty,draft_category"`
	Condition       *models.Condition       `json:"condition" validate:"omitempty,draft_condition|len=0"`
	DiscountType    *models.DiscountType    `json:"discount_type" validate:"omitempty,discount_type"`
	DiscountValue   *float64                `json:"discount_value" validate:"omitempty,min=0"`
	PaymentOptions  *[]models.PaymentOption `json:"payment_options" validate:"omitempty,dive,payment_option"`
	Variations      *[]models.Variation     `json:"variations" validate:"omitempty,dive"`
	ShippingPrices  *[]models.ShippingPrice `json:"shipping_prices" validate:"omitempty,dive"`
	ShipFromCountry *models.CountryCode     `json:"ship_from_country" validate:"omitempty,country_code|len=0"`
	ShipToCountries *[]models.CountryCode   `json:"ship_to_countries" validate:"omitempty,dive,country_code"`
	Tags            *[]string               `json:"tags" validate:"omitempty,dive,required"`
	Specifications  *map[string]string      `json:"specifications" validate:"omitempty,dive,keys,required,endkeys,max=1024"`
	ImageFilePaths  *[]string               `json:"image_file_paths" validate:"omitempty,dive,required"`
}

type AddToDraftRequest struct {
	DraftID         string                 `json:"draft_id" validate:"required"`
	UserID          string                 `json:"user_id"`
	Variations      []models.Variation     `json:"variations" validate:"omitempty,dive"`
	ShippingPrices  []models.ShippingPrice `json:"shipping_prices" validate:"omitempty,dive"`
	ImageFilePaths  []string               `json:"image_file_paths" validate:"omitempty,dive,required"`
	Tags            []string               `json:"tags" validate:"omitempty,dive,required"`
	Specifications  map[string]string      `json:"specifications" validate:"omitempty,dive,keys,required,endkeys,max=1024"`
	ShipToCountries []models.CountryCode   `json:"ship_to_countries" validate:"omitempty,dive,country_code"`
	PaymentOptions  []models.PaymentOption `json:"payment_options" validate:"omitempty,dive,payment_option"`
}

// RemoveFromDraftRequest names what to strip. VariationOptions removes
// values from named variations; VariationTypes drops whole variations and
// is applied after VariationOptions.
type RemoveFromDraftRequest struct {
	DraftID          string                 `json:"draft_id" validate:"required"`
	UserID           string                 `json:"user_id"`
	VariationOptions []models.Variation     `json:"variation_options" validate:"omitempty,dive"`
	VariationTypes   []string               `json:"variation_types"`
	ImageFilePaths   []string               `json:"image_file_paths"`
	Tags             []string               `json:"tags"`
	Specifications   []string               `json:"specifications"`
	ShipToCountries  []models.CountryCode   `json:"ship_to_countries"`
	ShippingPrices   []models.CountryCode   `json:"shipping_prices"`
	PaymentOptions   []models.PaymentOption `json:"payment_options"`
}

type ListDraftsParams struct {
	UserID    string           `json:"user_id"`
	Query     string           `json:"query"`
	Category  models.Category  `json:"category" validate:"omitempty,draft_category"`
	Condition models.Condition `json:"condition" validate:"omitempty,draft_condition"`
	MinPrice  *float64         `json:"min_price" validate:"omitempty,min=0"`
	MaxPrice  *float64         `json:"max_price" validate:"omitempty,min=0"`
	WithStats bool             `json:"with_stats"`
	utils.OffsetParams
}

type CreateDraftResult struct {
	DraftID   string    `json:"draft_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

type DraftSummary struct {
	DraftID             string             `json:"draft_id"`
	UserID              string             `json:"user_id"`
	Title               string             `json:"title"`
	Price               float64            `json:"price"`
	Category            models.Category    `json:"category"`
	Condition           models.Condition   `json:"condition"`
	Quantity            int                `json:"quantity"`
	ShipFromCountry     models.CountryCode `json:"ship_from_country"`
	ShipToCount         int                `json:"ship_to_count"`
	HasShippingPrices   bool               `json:"has_shipping_prices"`
	VariationsCount     int                `json:"variations_count"`
	TagsCount           int                `json:"tags_count"`
	ImagesCount         int                `json:"images_count"`
	PaymentOptionsCount int                `json:"payment_options_count"`
	HasDescription      bool               `json:"has_description"`
	HasContactEmail     bool               `json:"has_contact_email"`
	HasDiscount         bool               `json:"has_discount"`
	HasSpecifications   bool               `json:"has_specifications"`
	LastUpdated         time.Time          `json:"last_updated"`
	Version             int                `json:"version"`
}

type BatchError struct {
	DraftID string `json:"draft_id"`
	Error   string `json:"error"`
}

type BatchResult struct {
	TotalProcessed int           `json:"total_processed"`
	Successful     int           `json:"successful"`
	Results        []interface{} `json:"results"`
}

type MutationResult struct {
	Status         string    `json:"status"`
	DraftID        string    `json:"draft_id"`
	Version        int       `json:"version"`
	UpdatedAt      time.Time `json:"updated_at"`
	UpdatedFields  []string  `json:"updated_fields,omitempty"`
	AddedFields    []string  `json:"added_fields,omitempty"`
	ModifiedFields []string  `json:"modified_fields,omitempty"`
}

type DeleteResult struct {
	Status  string `json:"status"`
	DraftID string `json:"draft_id"`
}

type DraftListItem struct {
	DraftID         string             `json:"draft_id"`
	UserID          string             `json:"user_id"`
	Title           string             `json:"title"`
	Category        models.Category    `json:"category"`
	Condition       models.Condition   `json:"condition"`
	Price           float64            `json:"price"`
	Quantity        int                `json:"quantity"`
	ShipFromCountry models.CountryCode `json:"ship_from_country"`
	HasVariations   bool               `json:"has_variations"`
	HasDiscount     bool               `json:"has_discount"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
	Version         int                `json:"version"`
	SearchScore     *int               `json:"search_score,omitempty"`
	SearchMatches   []string           `json:"search_matches,omitempty"`
}

type DraftStatistics struct {
	TotalInventoryValue float64        `json:"total_inventory_value"`
	Categories          map[string]int `json:"categories"`
	Conditions          map[string]int `json:"conditions"`
	AvgPrice            float64        `json:"avg_price"`
}

type ListDraftsResult struct {
	TotalCount    int              `json:"total_count"`
	ReturnedCount int              `json:"returned_count"`
	Drafts        []DraftListItem  `json:"drafts"`
	Statistics    *DraftStatistics `json:"statistics,omitempty"`
}

// Mutation statuses.
const (
	StatusCreated = "created"
	StatusUpdated = "updated"
	StatusAdded   = "added"
	StatusRemoved = "removed"
	StatusDeleted = "deleted"
)

func NewDraftService(store DraftRepository, log logrus.FieldLogger) *DraftService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DraftService{
		store: store,
		log:   log.WithField("component", "draft_service"),
	}
}

func (s *DraftService) CreateDraft(req *CreateDraftRequest) (*CreateDraftResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	category := req.Category
	if category == "" {
		category = models.CategoryOther
	}

	draft := &models.ProductDraft{
		DraftID:         models.NewDraftID(),
		UserID:          req.UserID,
		Title:           req.Title,
		Description:     req.Description,
		ContactEmail:    req.ContactEmail,
		Price:           req.Price,
		Quantity:        quantity,
		Category:        category,
		Condition:       req.Condition,
		DiscountType:    req.DiscountType,
		DiscountValue:   req.DiscountValue,
		PaymentOptions:  appendUnique(nil, req.PaymentOptions),
		Variations:      mergeVariations(nil, req.Variations),
		ShippingPrices:  mergeShippingPrices(nil, req.ShippingPrices),
		ShipFromCountry: req.ShipFromCountry,
		ShipToCountries: appendUnique(nil, req.ShipToCountries),
		Tags:            appendUnique(nil, req.Tags),
		Specifications:  req.Specifications,
		ImageFilePaths:  append([]string{}, req.ImageFilePaths...),
	}

	draftID := s.store.Create(draft)
	created := s.store.Get(draftID)

	s.log.WithFields(logrus.Fields{
		"draft_id": draftID,
		"user_id":  created.UserID,
		"category": created.Category,
	}).Info("Draft created")

	return &CreateDraftResult{
		DraftID:   draftID,
		Title:     created.Title,
		CreatedAt: created.CreatedAt,
		Status:    StatusCreated,
	}, nil
}

func (s *DraftService) GetDraft(draftID, userID string) (*models.ProductDraft, error) {
	if draftID == "" {
		return nil, ErrMissingDraftID
	}
	return s.authorize(draftID, userID)
}

func (s *DraftService) GetDraftSummary(draftID, userID string) (*DraftSummary, error) {
	draft, err := s.GetDraft(draftID, userID)
	if err != nil {
		return nil, err
	}
	return summarize(draft), nil
}

// GetDrafts resolves a batch of ids. Failures are reported per entry and
// never fail the batch.
func (s *DraftService) GetDrafts(draftIDs []string, userID string, summaryOnly bool) *BatchResult {
	result := &BatchResult{
		TotalProcessed: len(draftIDs),
		Results:        make([]interface{}, 0, len(draftIDs)),
	}

	for _, id := range draftIDs {
		draft := s.store.Get(id)
		switch {
		case draft == nil:
			result.Results = append(result.Results, BatchError{DraftID: id, Error: "Not found"})
		case !draft.AccessibleBy(userID):
			result.Results = append(result.Results, BatchError{DraftID: id, Error: "Access denied"})
		case summaryOnly:
			result.Results = append(result.Results, summarize(draft))
			result.Successful++
		default:
			result.Results = append(result.Results, draft)
			result.Successful++
		}
	}

	return result
}

// UpdateDraft replaces the supplied fields. Supplying the current value
// still counts as an update.
func (s *DraftService) UpdateDraft(req *UpdateDraftRequest) (*MutationResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	patch := req.patch()
	if patch.IsEmpty() {
		return nil, noChanges("no fields provided to update")
	}

	updated, fields, err := s.mutate(req.DraftID, req.UserID, false, func(*models.ProductDraft) (models.DraftPatch, error) {
		return patch, nil
	})
	if err != nil {
		return nil, err
	}

	return &MutationResult{
		Status:        StatusUpdated,
		DraftID:       updated.DraftID,
		Version:       updated.Version,
		UpdatedAt:     updated.UpdatedAt,
		UpdatedFields: fields,
	}, nil
}

// AddToDraft merges the supplied items into the draft's collections.
func (s *DraftService) AddToDraft(req *AddToDraftRequest) (*MutationResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	updated, changed, err := s.mutate(req.DraftID, req.UserID, true, func(current *models.ProductDraft) (models.DraftPatch, error) {
		var patch models.DraftPatch
		if len(req.Variations) > 0 {
			merged := mergeVariations(current.Variations, req.Variations)
			patch.Variations = &merged
		}
		if len(req.ShippingPrices) > 0 {
			merged := mergeShippingPrices(current.ShippingPrices, req.ShippingPrices)
			patch.ShippingPrices = &merged
		}
		if len(req.ImageFilePaths) > 0 {
			merged := appendUnique(current.ImageFilePaths, req.ImageFilePaths)
			patch.ImageFilePaths = &merged
		}
		if len(req.Tags) > 0 {
			merged := appendUnique(current.Tags, req.Tags)
			patch.Tags = &merged
		}
		if len(req.Specifications) > 0 {
			merged, err := mergeSpecifications(current.Specifications, req.Specifications)
			if err != nil {
				return patch, fmt.Errorf("failed to merge specifications: %w", err)
			}
			patch.Specifications = &merged
		}
		if len(req.ShipToCountries) > 0 {
			merged := appendUnique(current.ShipToCountries, req.ShipToCountries)
			patch.ShipToCountries = &merged
		}
		if len(req.PaymentOptions) > 0 {
			merged := appendUnique(current.PaymentOptions, req.PaymentOptions)
			patch.PaymentOptions = &merged
		}
		return patch, nil
	})
	if err != nil {
		return nil, err
	}

	return &MutationResult{
		Status:      StatusAdded,
		DraftID:     updated.DraftID,
		Version:     updated.Version,
		UpdatedAt:   updated.UpdatedAt,
		AddedFields: changed,
	}, nil
}

// RemoveFromDraft strips the named items from the draft's collections.
func (s *DraftService) RemoveFromDraft(req *RemoveFromDraftRequest) (*MutationResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	updated, changed, err := s.mutate(req.DraftID, req.UserID, true, func(current *models.ProductDraft) (models.DraftPatch, error) {
		var patch models.DraftPatch
		if len(req.VariationOptions) > 0 || len(req.VariationTypes) > 0 {
			variations := current.Variations
			if len(req.VariationOptions) > 0 {
				variations = removeVariationOptions(variations, req.VariationOptions)
			}
			if len(req.VariationTypes) > 0 {
				variations = removeVariationTypes(variations, req.VariationTypes)
			}
			patch.Variations = &variations
		}
		if len(req.ImageFilePaths) > 0 {
			remaining := removeItems(current.ImageFilePaths, req.ImageFilePaths)
			patch.ImageFilePaths = &remaining
		}
		if len(req.Tags) > 0 {
			remaining := removeItems(current.Tags, req.Tags)
			patch.Tags = &remaining
		}
		if len(req.Specifications) > 0 {
			remaining := removeSpecificationKeys(current.Specifications, req.Specifications)
			patch.Specifications = &remaining
		}
		if len(req.ShipToCountries) > 0 {
			remaining := removeItems(current.ShipToCountries, req.ShipToCountries)
			patch.ShipToCountries = &remaining
		}
		if len(req.ShippingPrices) > 0 {
			remaining := removeShippingPrices(current.ShippingPrices, req.ShippingPrices)
			patch.ShippingPrices = &remaining
		}
		if len(req.PaymentOptions) > 0 {
			remaining := removeItems(current.PaymentOptions, req.PaymentOptions)
			patch.PaymentOptions = &remaining
		}
		return patch, nil
	})
	if err != nil {
		return nil, err
	}

	return &MutationResult{
		Status:         StatusRemoved,
		DraftID:        updated.DraftID,
		Version:        updated.Version,
		UpdatedAt:      updated.UpdatedAt,
		ModifiedFields: changed,
	}, nil
}

func (s *DraftService) DeleteDraft(draftID, userID string) (*DeleteResult, error) {
	if draftID == "" {
		return nil, ErrMissingDraftID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.authorize(draftID, userID); err != nil {
		return nil, err
	}
	if !s.store.Delete(draftID) {
		return nil, draftNotFound(draftID)
	}

	s.log.WithFields(logrus.Fields{
		"draft_id": draftID,
		"user_id":  userID,
	}).Info("Draft deleted")

	return &DeleteResult{Status: StatusDeleted, DraftID: draftID}, nil
}

// ListDrafts filters, searches, and paginates drafts. Statistics cover all
// of the user's drafts regardless of the other filters.
func (s *DraftService) ListDrafts(params *ListDraftsParams) (*ListDraftsResult, error) {
	if err := utils.ValidateStruct(params); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	all := s.store.ListAll()
	drafts := filterDrafts(all, params)

	var items []DraftListItem
	query := strings.TrimSpace(params.Query)
	if query != "" {
		hits := searchDrafts(drafts, query)
		items = make([]DraftListItem, 0, len(hits))
		for _, hit := range hits {
			item := listItem(hit.draft)
			score := hit.score
			item.SearchScore = &score
			item.SearchMatches = hit.matches
			items = append(items, item)
		}
	} else {
		items = make([]DraftListItem, 0, len(drafts))
		for _, d := range drafts {
			items = append(items, listItem(d))
		}
	}

	page := utils.Paginate(items, params.OffsetParams)
	result := &ListDraftsResult{
		TotalCount:    len(items),
		ReturnedCount: len(page),
		Drafts:        page,
	}

	if params.WithStats && params.UserID != "" {
		owned := filterDrafts(all, &ListDraftsParams{UserID: params.UserID})
		result.Statistics = computeStatistics(owned)
	}

	return result, nil
}

func (s *DraftService) ExportDraft(draftID, userID, format string) (*ExportResult, error) {
	draft, err := s.GetDraft(draftID, userID)
	if err != nil {
		return nil, err
	}
	return BuildExport(draft, format)
}

// authorize loads a draft and applies the ownership rule.
func (s *DraftService) authorize(draftID, userID string) (*models.ProductDraft, error) {
	draft := s.store.Get(draftID)
	if draft == nil {
		return nil, draftNotFound(draftID)
	}
	if !draft.AccessibleBy(userID) {
		s.log.WithFields(logrus.Fields{
			"draft_id": draftID,
			"user_id":  userID,
		}).Warn("Draft access denied")
		return nil, ErrAccessDenied
	}
	return draft, nil
}

// mutate runs one read-modify-write cycle. The patch is previewed on a copy
// first; with requireChange set, a patch that changes nothing is rejected
// before it reaches the store.
func (s *DraftService) mutate(draftID, userID string, requireChange bool, build func(*models.ProductDraft) (models.DraftPatch, error)) (*models.ProductDraft, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.authorize(draftID, userID)
	if err != nil {
		return nil, nil, err
	}

	patch, err := build(current)
	if err != nil {
		return nil, nil, err
	}

	preview := current.Clone()
	applied := patch.Apply(preview)
	preview.Normalize()

	fields := applied
	if requireChange {
		fields = models.ChangedFields(current, preview)
		if len(fields) == 0 {
			return nil, nil, noChanges("nothing to apply")
		}
	}

	if !s.store.Update(draftID, patch) {
		return nil, nil, draftNotFound(draftID)
	}
	updated := s.store.Get(draftID)

	s.log.WithFields(logrus.Fields{
		"draft_id": draftID,
		"version":  updated.Version,
		"fields":   fields,
	}).Info("Draft updated")

	return updated, fields, nil
}

func (r *UpdateDraftRequest) patch() models.DraftPatch {
	return models.DraftPatch{
		Title:           r.Title,
		Description:     r.Description,
		ContactEmail:    r.ContactEmail,
		Price:           r.Price,
		Quantity:        r.Quantity,
		Category:        r.Category,
		Condition:       r.Condition,
		DiscountType:    r.DiscountType,
		DiscountValue:   r.DiscountValue,
		PaymentOptions:  r.PaymentOptions,
		Variations:      r.Variations,
		ShippingPrices:  r.ShippingPrices,
		ShipFromCountry: r.ShipFromCountry,
		ShipToCountries: r.ShipToCountries,
		Tags:            r.Tags,
		Specifications:  r.Specifications,
		ImageFilePaths:  r.ImageFilePaths,
	}
}

func summarize(d *models.ProductDraft) *DraftSummary {
	return &DraftSummary{
		DraftID:             d.DraftID,
		UserID:              d.UserID,
		Title:               d.Title,
		Price:               d.Price,
		Category:            d.Category,
		Condition:           d.Condition,
		Quantity:            d.Quantity,
		ShipFromCountry:     d.ShipFromCountry,
		ShipToCount:         len(d.ShipToCountries),
		HasShippingPrices:   len(d.ShippingPrices) > 0,
		VariationsCount:     len(d.Variations),
		TagsCount:           len(d.Tags),
		ImagesCount:         len(d.ImageFilePaths),
		PaymentOptionsCount: len(d.PaymentOptions),
		HasDescription:      d.Description != "",
		HasContactEmail:     d.ContactEmail != "",
		HasDiscount:         d.DiscountType != models.DiscountNone,
		HasSpecifications:   len(d.Specifications) > 0,
		LastUpdated:         d.UpdatedAt,
		Version:             d.Version,
	}
}

func listItem(d *models.ProductDraft) DraftListItem {
	return DraftListItem{
		DraftID:         d.DraftID,
		UserID:          d.UserID,
		Title:           d.Title,
		Category:        d.Category,
		Condition:       d.Condition,
		Price:           d.Price,
		Quantity:        d.Quantity,
		ShipFromCountry: d.ShipFromCountry,
		HasVariations:   len(d.Variations) > 0,
		HasDiscount:     d.DiscountType != models.DiscountNone,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		Version:         d.Version,
	}
}
