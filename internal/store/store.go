// internal/store/store.go
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/draft-backend/internal/models"
)

var (
	// ErrNoSnapshot is returned by a Backend that has never been written.
	ErrNoSnapshot = errors.New("no draft snapshot")
	// ErrCorruptSnapshot is returned by a Backend whose snapshot exists but
	// cannot be decoded.
	ErrCorruptSnapshot = errors.New("corrupt draft snapshot")
)

// Backend persists the whole draft table at once.
type Backend interface {
	Name() string
	Load() (map[string]*models.ProductDraft, error)
	Save(drafts map[string]*models.ProductDraft) error
}

// DraftStore is the authoritative in-memory table of drafts. Every mutation
// rewrites the backend snapshot before returning; write failures are logged
// and the in-memory table stays ahead of the backend.
type DraftStore struct {
	mu      sync.RWMutex
	drafts  map[string]*models.ProductDraft
	order   []string
	backend Backend
	log     logrus.FieldLogger
	now     func() time.Time
}

type Option func(*DraftStore)

func WithClock(now func() time.Time) Option {
	return func(s *DraftStore) {
		s.now = now
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *DraftStore) {
		s.log = log
	}
}

// New loads the backend snapshot. A missing snapshot starts an empty table
// and writes it immediately; a corrupt one starts empty and leaves the
// backend alone until the next mutation. Any other load failure is returned,
// since starting empty would overwrite the snapshot on the next write.
func New(backend Backend, opts ...Option) (*DraftStore, error) {
	s := &DraftStore{
		drafts:  make(map[string]*models.ProductDraft),
		backend: backend,
		log:     logrus.StandardLogger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("backend", backend.Name())

	drafts, err := backend.Load()
	switch {
	case errors.Is(err, ErrNoSnapshot):
		s.log.Info("No draft snapshot found, initializing empty store")
		s.persist()
	case errors.Is(err, ErrCorruptSnapshot):
		s.log.WithError(err).Warn("Draft snapshot is corrupt, starting with an empty store")
	case err != nil:
		return nil, fmt.Errorf("failed to load drafts from %s: %w", backend.Name(), err)
	default:
		s.restore(drafts)
		s.log.WithField("draft_count", len(s.order)).Info("Draft store loaded")
	}

	return s, nil
}

func (s *DraftStore) restore(drafts map[string]*models.ProductDraft) {
	for id, d := range drafts {
		if d == nil {
			continue
		}
		if d.DraftID != id {
			if d.DraftID != "" {
				s.log.WithFields(logrus.Fields{
					"key":      id,
					"draft_id": d.DraftID,
				}).Warn("Draft id does not match its snapshot key, using the key")
			}
			d.DraftID = id
		}
		d.Normalize()
		s.drafts[id] = d
		s.order = append(s.order, id)
	}

	sort.SliceStable(s.order, func(i, j int) bool {
		a, b := s.drafts[s.order[i]], s.drafts[s.order[j]]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.DraftID < b.DraftID
	})
}

// Create inserts a draft and returns its id. Missing id, timestamps, and
// version are filled in; the category rules are applied.
func (s *DraftStore) Create(draft *models.ProductDraft) string {
	d := draft.Clone()
	if d.DraftID == "" {
		d.DraftID = models.NewDraftID()
	}
	now := s.now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = d.CreatedAt
	}
	if d.Version < 1 {
		d.Version = 1
	}
	d.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.drafts[d.DraftID]; !exists {
		s.order = append(s.order, d.DraftID)
	}
	s.drafts[d.DraftID] = d
	s.persist()

	return d.DraftID
}

// Get returns a copy of the draft, or nil when it does not exist.
func (s *DraftStore) Get(draftID string) *models.ProductDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[draftID]
	if !ok {
		return nil
	}
	return d.Clone()
}

// Update replaces every field set in the patch, bumps updated_at and
// version, and persists. It reports false when the draft does not exist.
// Ownership is the caller's responsibility.
func (s *DraftStore) Update(draftID string, patch models.DraftPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[draftID]
	if !ok {
		return false
	}

	patch.Apply(d)
	d.Normalize()
	d.UpdatedAt = s.now()
	d.Version++
	s.persist()

	return true
}

func (s *DraftStore) Delete(draftID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drafts[draftID]; !ok {
		return false
	}

	delete(s.drafts, draftID)
	for i, id := range s.order {
		if id == draftID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.persist()

	return true
}

// ListAll returns copies of every draft in insertion order.
func (s *DraftStore) ListAll() []*models.ProductDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.ProductDraft, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.drafts[id].Clone())
	}
	return out
}

func (s *DraftStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// persist must be called with the write lock held.
func (s *DraftStore) persist() {
	if err := s.backend.Save(s.drafts); err != nil {
		s.log.WithFields(logrus.Fields{
			"draft_count": len(s.drafts),
		}).WithError(err).Warn("Failed to persist drafts, in-memory state is ahead of storage")
	}
}
