package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Prefs is a small durable key-value surface: integer counters for the
// session event log and text entries for settings such as the category
// registry. Implementations must make AddCounter atomic.
type Prefs interface {
	Counter(ctx context.Context, key string) (int, error)
	PutCounter(ctx context.Context, key string, value int) error
	AddCounter(ctx context.Context, key string, delta int) (int, error)

	Text(ctx context.Context, key string) (string, error)
	PutText(ctx context.Context, key string, value string) error
	DeleteText(ctx context.Context, key string) error
}
