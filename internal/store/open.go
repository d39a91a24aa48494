// internal/store/open.go
package store

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/draft-backend/internal/config"
	"github.com/javajoker/draft-backend/internal/database"
)

// Open builds the backend selected by configuration and loads the store.
// The returned close function releases backend resources.
func Open(cfg *config.Config, log logrus.FieldLogger) (*DraftStore, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.BackendFile:
		s, err := New(NewFileBackend(cfg.Store.DraftFile), WithLogger(log))
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case config.BackendS3:
		backend, err := NewS3Backend(cfg.AWS)
		if err != nil {
			return nil, noop, err
		}
		s, err := New(backend, WithLogger(log))
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case config.BackendPostgres:
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		if err := database.RunMigrations(db); err != nil {
			database.Close(db)
			return nil, noop, err
		}
		s, err := New(NewDBBackend(db), WithLogger(log))
		if err != nil {
			database.Close(db)
			return nil, noop, err
		}
		return s, func() { database.Close(db) }, nil
	}

	return nil, noop, fmt.Errorf("unknown draft store backend %q", cfg.Store.Backend)
}
