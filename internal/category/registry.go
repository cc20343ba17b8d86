package category

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/prodo-app/prodo/internal/storage"
)

const settingsKey = "categories"

// DefaultCategories seeds the registry the first time the app runs.
var DefaultCategories = []string{"Personal", "Work", "Shopping", "Wishlist"}

// Registry holds the ordered category name list. Names are unique
// case-insensitively and keep first-seen order. The list persists as a
// JSON array under one settings key; persistence failures are logged
// and absorbed, the in-memory list stays authoritative.
type Registry struct {
	mu     sync.Mutex
	prefs  storage.Prefs
	names  []string
	logger *slog.Logger
}

// Open loads the saved registry, seeding the defaults only when no
// registry has ever been saved.
func Open(ctx context.Context, prefs storage.Prefs, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Registry{prefs: prefs, logger: logger}

	raw, err := prefs.Text(ctx, settingsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			r.names = append(r.names, DefaultCategories...)
			r.save(ctx)
			return r
		}
		logger.Error("load categories", "err", err)
		r.names = append(r.names, DefaultCategories...)
		return r
	}

	var loaded []string
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		logger.Error("parse categories, reseeding defaults", "err", err)
		r.names = append(r.names, DefaultCategories...)
		return r
	}
	for _, name := range loaded {
		name = strings.TrimSpace(name)
		if name == "" || containsFold(r.names, name) {
			continue
		}
		r.names = append(r.names, name)
	}
	return r
}

// List returns the names in first-seen order. The result is a copy.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Add appends name. Blank names and case-insensitive duplicates are
// rejected.
func (r *Registry) Add(ctx context.Context, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if containsFold(r.names, name) {
		return false
	}
	r.names = append(r.names, name)
	r.save(ctx)
	return true
}

// Rename replaces old with new in place, keeping position. It fails if
// old is absent, new is blank, new already names another entry, or old
// and new are the same name modulo case.
func (r *Registry) Rename(ctx context.Context, oldName, newName string) bool {
	newName = strings.TrimSpace(newName)
	if newName == "" || strings.EqualFold(oldName, newName) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := indexFold(r.names, oldName)
	if idx < 0 {
		return false
	}
	if containsFold(r.names, newName) {
		return false
	}
	r.names[idx] = newName
	r.save(ctx)
	return true
}

// Delete removes the entry matching name case-insensitively. Tasks
// referencing the deleted category keep their label; there is no
// cascade.
func (r *Registry) Delete(ctx context.Context, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := indexFold(r.names, name)
	if idx < 0 {
		return false
	}
	r.names = append(r.names[:idx], r.names[idx+1:]...)
	r.save(ctx)
	return true
}

func (r *Registry) save(ctx context.Context) {
	payload, err := json.Marshal(r.names)
	if err != nil {
		r.logger.Error("encode categories", "err", err)
		return
	}
	if err := r.prefs.PutText(ctx, settingsKey, string(payload)); err != nil {
		r.logger.Error("save categories", "err", err)
	}
}

func containsFold(names []string, target string) bool {
	return indexFold(names, target) >= 0
}

func indexFold(names []string, target string) int {
	for i, name := range names {
		if strings.EqualFold(name, target) {
			return i
		}
	}
	return -1
}
