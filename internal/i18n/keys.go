// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthInvalidToken = "auth.invalid_token"

	// Drafts
	KeyDraftCreated      = "draft.created"
	KeyDraftUpdated      = "draft.updated"
	KeyDraftDeleted      = "draft.deleted"
	KeyDraftNotFound     = "draft.not_found"
	KeyDraftAccessDenied = "draft.access_denied"
	KeyDraftNoChanges    = "draft.no_changes"
	KeyDraftIDRequired   = "draft.id_required"

	// Export
	KeyExportUnsupported = "export.unsupported_format"

	// Tools
	KeyToolUnknown = "tool.unknown"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Rate limiting
	KeyRateLimited = "rate_limit.exceeded"
)
