// internal/handlers/tools.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/javajoker/draft-backend/internal/i18n"
	"github.com/javajoker/draft-backend/internal/services"
	"github.com/javajoker/draft-backend/internal/utils"
)

// Tool names accepted by POST /tools/:name.
const (
	ToolCreateDraft     = "create_draft"
	ToolGetDraft        = "get_draft"
	ToolUpdateDraft     = "update_draft"
	ToolAddToDraft      = "add_to_draft"
	ToolRemoveFromDraft = "remove_from_draft"
	ToolDeleteDraft     = "delete_draft"
	ToolListDrafts      = "list_drafts"
	ToolExportDraft     = "export_draft"
)

type getDraftArgs struct {
	DraftID     string   `json:"draft_id"`
	UserID      string   `json:"user_id"`
	SummaryOnly bool     `json:"summary_only"`
	BatchIDs    []string `json:"batch_ids"`
}

type draftRefArgs struct {
	DraftID string `json:"draft_id"`
	UserID  string `json:"user_id"`
}

type exportDraftArgs struct {
	DraftID      string `json:"draft_id"`
	UserID       string `json:"user_id"`
	ExportFormat string `json:"export_format"`
}

// toolFunc decodes its arguments from the raw body and runs one tool.
type toolFunc func(c *gin.Context, body []byte) (interface{}, string, error)

// ToolHandler exposes the draft tools as one call surface. Every outcome is
// HTTP 200: either the tool result or {"error": "..."}.
type ToolHandler struct {
	draftService *services.DraftService
	tools        map[string]toolFunc
}

func NewToolHandler(draftService *services.DraftService) *ToolHandler {
	h := &ToolHandler{draftService: draftService}
	h.tools = map[string]toolFunc{
		ToolCreateDraft:     h.createDraft,
		ToolGetDraft:        h.getDraft,
		ToolUpdateDraft:     h.updateDraft,
		ToolAddToDraft:      h.addToDraft,
		ToolRemoveFromDraft: h.removeFromDraft,
		ToolDeleteDraft:     h.deleteDraft,
		ToolListDrafts:      h.listDrafts,
		ToolExportDraft:     h.exportDraft,
	}
	return h
}

// ToolNames lists the registered tools.
func (h *ToolHandler) ToolNames() []string {
	return []string{
		ToolCreateDraft,
		ToolGetDraft,
		ToolUpdateDraft,
		ToolAddToDraft,
		ToolRemoveFromDraft,
		ToolDeleteDraft,
		ToolListDrafts,
		ToolExportDraft,
	}
}

// POST /tools/:name
func (h *ToolHandler) Call(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	name := c.Param("name")

	tool, ok := h.tools[name]
	if !ok {
		utils.ToolErrorResponse(c, i18n.T(lang, i18n.KeyToolUnknown, name))
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		utils.ToolErrorResponse(c, err.Error())
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	result, draftID, err := tool(c, body)
	if err != nil {
		utils.ToolErrorResponse(c, errorMessage(c, err, draftID))
		return
	}

	utils.ToolResponse(c, result)
}

func (h *ToolHandler) createDraft(c *gin.Context, body []byte) (interface{}, string, error) {
	var req services.CreateDraftRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		return nil, "", err
	}
	req.UserID = callerID(c, req.UserID)

	result, err := h.draftService.CreateDraft(&req)
	return result, "", err
}

func (h *ToolHandler) getDraft(c *gin.Context, body []byte) (interface{}, string, error) {
	var args getDraftArgs
	if err := binding.JSON.BindBody(body, &args); err != nil {
		return nil, "", err
	}
	userID := callerID(c, args.UserID)

	if len(args.BatchIDs) > 0 {
		return h.draftService.GetDrafts(args.BatchIDs, userID, args.SummaryOnly), "", nil
	}
	if args.SummaryOnly {
		summary, err := h.draftService.GetDraftSummary(args.DraftID, userID)
		return summary, args.DraftID, err
	}
	draft, err := h.draftService.GetDraft(args.DraftID, userID)
	return draft, args.DraftID, err
}

func (h *ToolHandler) updateDraft(c *gin.Context, body []byte) (interface{}, string, error) {
	var req services.UpdateDraftRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		return nil, "", err
	}
	req.UserID = callerID(c, req.UserID)
	if req.DraftID == "" {
		return nil, "", services.ErrMissingDraftID
	}

	result, err := h.draftService.UpdateDraft(&req)
	return result, req.DraftID, err
}

func (h *ToolHandler) addToDraft(c *gin.Context, body []byte) (interface{}, string, error) {
	var req services.AddToDraftRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		return nil, "", err
	}
	req.UserID = callerID(c, req.UserID)
	if req.DraftID == "" {
		return nil, "", services.ErrMissingDraftID
	}

	result, err := h.draftService.AddToDraft(&req)
	return result, req.DraftID, err
}

func (h *ToolHandler) removeFromDraft(c *gin.Context, body []byte) (interface{}, string, error) {
	var req services.RemoveFromDraftRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		return nil, "", err
	}
	req.UserID = callerID(c, req.UserID)
	if req.DraftID == "" {
		return nil, "", services.ErrMissingDraftID
	}

	result, err := h.draftService.RemoveFromDraft(&req)
	return result, req.DraftID, err
}

func (h *ToolHandler) deleteDraft(c *gin.Context, body []byte) (interface{}, string, error) {
	var args draftRefArgs
	if err := binding.JSON.BindBody(body, &args); err != nil {
		return nil, "", err
	}

	result, err := h.draftService.DeleteDraft(args.DraftID, callerID(c, args.UserID))
	return result, args.DraftID, err
}

func (h *ToolHandler) listDrafts(c *gin.Context, body []byte) (interface{}, string, error) {
	var params services.ListDraftsParams
	if err := binding.JSON.BindBody(body, &params); err != nil {
		return nil, "", err
	}
	params.UserID = callerID(c, params.UserID)

	result, err := h.draftService.ListDrafts(&params)
	return result, "", err
}

func (h *ToolHandler) exportDraft(c *gin.Context, body []byte) (interface{}, string, error) {
	var args exportDraftArgs
	if err := binding.JSON.BindBody(body, &args); err != nil {
		return nil, "", err
	}
	if args.ExportFormat == "" {
		args.ExportFormat = utils.ExportFormatForestMarket
	}

	result, err := h.draftService.ExportDraft(args.DraftID, callerID(c, args.UserID), args.ExportFormat)
	if errors.Is(err, services.ErrUnsupportedFormat) {
		lang := utils.GetLangFromContext(c)
		return nil, args.DraftID, errors.New(i18n.T(lang, i18n.KeyExportUnsupported, args.ExportFormat))
	}
	return result, args.DraftID, err
}
