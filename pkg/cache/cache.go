// Package cache provides pluggable byte caches and the key scheme for the
// engraving pipeline. Every pipeline stage is cached by content hash, so a
// score that has been engraved once never pays for layout or rendering
// again: the score file's hash keys the parsed score, the parsed score's
// hash plus layout options keys the layout, and the layout's hash plus
// output format keys the final artifact.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per pipeline stage. Layouts and artifacts are pure
// functions of their inputs, so they only expire to bound disk usage.
const (
	TTLScore    = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts are the engraving options that affect layout geometry.
type LayoutKeyOpts struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ArtifactKeyOpts are the rendering options that affect artifact bytes.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Background string `json:"background,omitempty"`
	Ink        string `json:"ink,omitempty"`
	NoTitle    bool   `json:"no_title,omitempty"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// ScoreKey keys a parsed score by the hash of its source bytes.
	ScoreKey(sourceHash string) string
	// LayoutKey keys an engraved layout by score hash and geometry options.
	LayoutKey(scoreHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered artifact by layout hash and format.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces stable, collision-resistant keys of the form
// stage:sha256(inputs).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ScoreKey generates a key for parsed score caching.
func (k *DefaultKeyer) ScoreKey(sourceHash string) string {
	return hashKey("score", sourceHash)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(scoreHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", scoreHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
