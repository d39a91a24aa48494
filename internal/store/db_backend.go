// internal/store/db_backend.go
package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/draft-backend/internal/database"
	"github.com/javajoker/draft-backend/internal/models"
)

// DBBackend stores one draft_records row per draft and replaces the whole
// table inside a transaction on every save.
type DBBackend struct {
	db *gorm.DB
}

func NewDBBackend(db *gorm.DB) *DBBackend {
	return &DBBackend{db: db}
}

func (b *DBBackend) Name() string {
	return "db:" + b.db.Dialector.Name()
}

func (b *DBBackend) Load() (map[string]*models.ProductDraft, error) {
	var records []models.DraftRecord
	if err := b.db.Order("created_at ASC, draft_id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch draft records: %w", err)
	}

	drafts := make(map[string]*models.ProductDraft, len(records))
	for _, record := range records {
		d, err := record.Draft()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		drafts[record.DraftID] = d
	}

	// An empty table is indistinguishable from a fresh database; the store
	// then writes an empty snapshot, which is a no-op here.
	if len(drafts) == 0 {
		return nil, ErrNoSnapshot
	}

	return drafts, nil
}

func (b *DBBackend) Save(drafts map[string]*models.ProductDraft) error {
	records := make([]models.DraftRecord, 0, len(drafts))
	for _, d := range drafts {
		records = append(records, models.NewDraftRecord(d))
	}

	return database.WithTransaction(b.db, func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.DraftRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear draft records: %w", err)
		}

		if len(records) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(records, 100).Error; err != nil {
			return fmt.Errorf("failed to write draft records: %w", err)
		}
		return nil
	})
}
