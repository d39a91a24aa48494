// internal/handlers/draft.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/javajoker/draft-backend/internal/i18n"
	"github.com/javajoker/draft-backend/internal/models"
	"github.com/javajoker/draft-backend/internal/services"
	"github.com/javajoker/draft-backend/internal/utils"
)

type DraftHandler struct {
	draftService *services.DraftService
}

func NewDraftHandler(draftService *services.DraftService) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
	}
}

type batchGetRequest struct {
	BatchIDs    []string `json:"batch_ids" validate:"required,min=1,dive,required"`
	UserID      string   `json:"user_id"`
	SummaryOnly bool     `json:"summary_only"`
}

// GET /drafts
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	params := services.ListDraftsParams{
		UserID:       callerID(c, c.Query("user_id")),
		Query:        c.Query("query"),
		Category:     models.Category(c.Query("category")),
		Condition:    models.Condition(c.Query("condition")),
		OffsetParams: utils.GetOffsetParams(c),
	}

	if minPriceStr := c.Query("min_price"); minPriceStr != "" {
		if minPrice, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
			params.MinPrice = &minPrice
		}
	}
	if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
		if maxPrice, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
			params.MaxPrice = &maxPrice
		}
	}
	if withStats, err := strconv.ParseBool(c.DefaultQuery("with_stats", "false")); err == nil {
		params.WithStats = withStats
	}

	result, err := h.draftService.ListDrafts(&params)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.SetPaginationHeaders(c, result.TotalCount, result.ReturnedCount, params.OffsetParams)
	utils.SuccessResponseWithMeta(c, result.Drafts, gin.H{
		"total_count":    result.TotalCount,
		"returned_count": result.ReturnedCount,
		"statistics":     result.Statistics,
	})
}

// POST /drafts
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	req.UserID = callerID(c, req.UserID)

	result, err := h.draftService.CreateDraft(&req)
	if err != nil {
		respondError(c, err, "")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDraftCreated),
		"draft":   result,
	})
}

// POST /drafts/batch
func (h *DraftHandler) BatchGetDrafts(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req batchGetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result := h.draftService.GetDrafts(req.BatchIDs, callerID(c, req.UserID), req.SummaryOnly)
	utils.SuccessResponse(c, result)
}

// GET /drafts/:id
func (h *DraftHandler) GetDraft(c *gin.Context) {
	draftID := c.Param("id")
	userID := callerID(c, c.Query("user_id"))

	if summaryOnly, _ := strconv.ParseBool(c.Query("summary_only")); summaryOnly {
		summary, err := h.draftService.GetDraftSummary(draftID, userID)
		if err != nil {
			respondError(c, err, draftID)
			return
		}
		utils.SuccessResponse(c, summary)
		return
	}

	draft, err := h.draftService.GetDraft(draftID, userID)
	if err != nil {
		respondError(c, err, draftID)
		return
	}

	utils.SuccessResponse(c, draft)
}

// PUT /drafts/:id
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	draftID := c.Param("id")

	var req services.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	req.DraftID = draftID
	req.UserID = callerID(c, req.UserID)

	result, err := h.draftService.UpdateDraft(&req)
	if err != nil {
		respondError(c, err, draftID)
		return
	}

	utils.SuccessResponse(c, result)
}

// POST /drafts/:id/add
func (h *DraftHandler) AddToDraft(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	draftID := c.Param("id")

	var req services.AddToDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	req.DraftID = draftID
	req.UserID = callerID(c, req.UserID)

	result, err := h.draftService.AddToDraft(&req)
	if err != nil {
		respondError(c, err, draftID)
		return
	}

	utils.SuccessResponse(c, result)
}

// POST /drafts/:id/remove
func (h *DraftHandler) RemoveFromDraft(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	draftID := c.Param("id")

	var req services.RemoveFromDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	req.DraftID = draftID
	req.UserID = callerID(c, req.UserID)

	result, err := h.draftService.RemoveFromDraft(&req)
	if err != nil {
		respondError(c, err, draftID)
		return
	}

	utils.SuccessResponse(c, result)
}

// DELETE /drafts/:id
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	draftID := c.Param("id")

	result, err := h.draftService.DeleteDraft(draftID, callerID(c, c.Query("user_id")))
	if err != nil {
		respondError(c, err, draftID)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyDraftDeleted),
		"status":   result.Status,
		"draft_id": result.DraftID,
	})
}

// GET /drafts/:id/export
func (h *DraftHandler) ExportDraft(c *gin.Context) {
	draftID := c.Param("id")
	format := c.DefaultQuery("format", utils.ExportFormatForestMarket)

	result, err := h.draftService.ExportDraft(draftID, callerID(c, c.Query("user_id")), format)
	if err != nil {
		respondError(c, err, draftID)
		return
	}

	utils.SuccessResponse(c, result)
}

// callerID prefers the authenticated user over a user id named in the
// request.
func callerID(c *gin.Context, requested string) string {
	if userID, ok := utils.GetUserIDFromContext(c); ok {
		return userID
	}
	return requested
}

func respondError(c *gin.Context, err error, draftID string) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(validationErrs))
	case errors.Is(err, services.ErrDraftNotFound):
		utils.NotFoundResponse(c, i18n.KeyDraftNotFound, draftID)
	case errors.Is(err, services.ErrAccessDenied):
		utils.ForbiddenResponse(c, "")
	case errors.Is(err, services.ErrNoChanges):
		utils.ConflictResponse(c, errorMessage(c, err, draftID))
	case errors.Is(err, services.ErrMissingDraftID), errors.Is(err, services.ErrUnsupportedFormat):
		utils.BadRequestResponse(c, errorMessage(c, err, draftID), nil)
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}

// errorMessage renders a service error for callers that only see a string.
func errorMessage(c *gin.Context, err error, draftID string) string {
	lang := utils.GetLangFromContext(c)

	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		details := utils.GetValidationErrors(validationErrs)
		message := i18n.T(lang, i18n.KeyValidationInvalid, "input")
		for i, d := range details {
			if i == 0 {
				message += ": "
			} else {
				message += "; "
			}
			message += d.Message
		}
		return message
	case errors.Is(err, services.ErrDraftNotFound):
		return i18n.T(lang, i18n.KeyDraftNotFound, draftID)
	case errors.Is(err, services.ErrAccessDenied):
		return i18n.T(lang, i18n.KeyDraftAccessDenied)
	case errors.Is(err, services.ErrNoChanges):
		return i18n.T(lang, i18n.KeyDraftNoChanges)
	case errors.Is(err, services.ErrMissingDraftID):
		return i18n.T(lang, i18n.KeyDraftIDRequired)
	default:
		return err.Error()
	}
}
