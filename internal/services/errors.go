// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

var (
	ErrDraftNotFound     = errors.New("draft not found")
	ErrAccessDenied      = errors.New("access denied: draft belongs to different user")
	ErrNoChanges         = errors.New("no changes")
	ErrMissingDraftID    = errors.New("draft_id is required when not using batch_ids")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

func draftNotFound(draftID string) error {
	return fmt.Errorf("%w: %s", ErrDraftNotFound, draftID)
}

func noChanges(reason string) error {
	return fmt.Errorf("%w: %s", ErrNoChanges, reason)
}
