// internal/models/draft_record.go
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// DraftRecord is the row form of a draft for database-backed snapshots. The
// Document column is authoritative; the other columns exist for indexing.
type DraftRecord struct {
	DraftID   string         `json:"draft_id" gorm:"primaryKey;size:64"`
	UserID    string         `json:"user_id" gorm:"size:255;index"`
	Title     string         `json:"title" gorm:"size:255"`
	Category  Category       `json:"category" gorm:"size:32;index"`
	Tags      pq.StringArray `json:"tags" gorm:"type:text"`
	Version   int            `json:"version"`
	Document  JSONB          `json:"document"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	SavedAt   time.Time      `json:"saved_at" gorm:"autoUpdateTime"`
}

func (DraftRecord) TableName() string {
	return "draft_records"
}

func NewDraftRecord(d *ProductDraft) DraftRecord {
	return DraftRecord{
		DraftID:   d.DraftID,
		UserID:    d.UserID,
		Title:     d.Title,
		Category:  d.Category,
		Tags:      pq.StringArray(append([]string{}, d.Tags...)),
		Version:   d.Version,
		Document:  JSONB(d.ToMap()),
		CreatedAt: d.CreatedAt,
	}
}

func (r DraftRecord) Draft() (*ProductDraft, error) {
	raw, err := json.Marshal(r.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft document %s: %w", r.DraftID, err)
	}

	var d ProductDraft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to decode draft document %s: %w", r.DraftID, err)
	}
	if d.DraftID == "" {
		d.DraftID = r.DraftID
	}
	d.Normalize()
	return &d, nil
}
