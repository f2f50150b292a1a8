// Package cache provides the artifact cache for sprite processing.
//
// Synthesized rows and recolored sheets are deterministic functions of the
// source image bytes and the transform options, so re-running a batch can
// skip files whose inputs have not changed. Keys are derived from a
// SHA-256 content hash of the source plus the full option set; any change
// to either produces a new key.
//
// Two backends are provided: a file cache for CLI usage (entries under
// ~/.cache/spriteforge/) and a null cache that disables caching.
package cache

import (
	"context"
	"time"
)

// TTLs for cached artifacts. Sprite outputs are pure functions of their
// key, so entries could live forever; the TTL just bounds disk usage.
const (
	// TTLArtifact is how long a synthesized or recolored output stays
	// cached.
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the option fields that distinguish cached outputs.
type ArtifactKeyOpts struct {
	Operation  string  // "diagonal" or "recolor"
	Direction  string  // diagonal direction token
	Simple     bool    // simple vs blended mode
	Squash     float64 // transform parameters
	Shear      float64
	Skew       float64
	BlendRatio float64
	OldColors  []string // recolor inputs
	NewColor   string
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey generates a key for a processed output, from the
	// source image's content hash and the options that shaped it.
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for a processed output.
func (k *DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sourceHash, opts)
}
