// Package storage provides the local state kept between runs: which pets were
// already published (one bbolt file, held open by the watcher) and the bearer
// token used to call the Petstore (a second bbolt file, opened per access so
// the CLI and the watcher can share it).
package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoToken is returned when no usable token is stored.
var ErrNoToken = errors.New("no stored token")

// SeenStore tracks published pet snapshots.
type SeenStore interface {
	SeenPet(key string) (bool, error)
	MarkPet(key string) error
}

// TokenStore persists the Petstore bearer token.
type TokenStore interface {
	SaveToken(tok Token) error
	LoadToken() (Token, error)
	ClearToken() error
}

// Store is the long-lived seen-pet backend held open by the watcher.
type Store interface {
	SeenStore
	Close() error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	SeenTTL         time.Duration
	CleanupInterval time.Duration
}

const (
	defaultSeenTTL         = 24 * time.Hour
	defaultCleanupInterval = 6 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.SeenTTL <= 0 {
		opts.SeenTTL = defaultSeenTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                 { return nil }
func (noopStore) SeenPet(string) (bool, error) { return false, nil }
func (noopStore) MarkPet(string) error         { return nil }
