// Package cache memoizes chart pipeline outputs.
//
// Chart geometry is a pure function of (data, options, selection), so every
// artifact the pipeline produces can be addressed by a content hash of its
// inputs. A [Keyer] turns those inputs into keys; a [Cache] stores the bytes.
//
// Three backends are provided:
//
//   - [FileCache]: sharded JSON files on local disk, used by the CLI
//   - [RedisCache]: a shared cache for the HTTP service
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Default time-to-live values for cached entries.
const (
	// TTLGeometry is how long computed chart geometry stays cached.
	TTLGeometry = 24 * time.Hour

	// TTLArtifact is how long rendered SVG/PNG/JSON output stays cached.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values by key.
//
// Get reports a miss with (nil, false, nil); an error is reserved for
// backend failures. A zero ttl stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GeometryKeyOpts holds the chart options that influence geometry.
type GeometryKeyOpts struct {
	Type          string  `json:"type"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Zoomed        bool    `json:"zoomed,omitempty"`
	Animated      bool    `json:"animated,omitempty"`
	Interpolation string  `json:"interpolation,omitempty"`
	// Config is a hash of the chart-type specific configuration
	// (pie config or area elements).
	Config string `json:"config,omitempty"`
	// Hover and PointerX describe the simulated interaction state.
	Hover    string  `json:"hover,omitempty"`
	PointerX float64 `json:"pointer_x,omitempty"`
	HasX     bool    `json:"has_x,omitempty"`
}

// ArtifactKeyOpts holds the options that influence a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Style  string `json:"style,omitempty"`
	Scheme string `json:"scheme,omitempty"`
}

// Keyer derives cache keys from pipeline inputs.
type Keyer interface {
	// GeometryKey addresses chart geometry for a data hash.
	GeometryKey(dataHash string, opts GeometryKeyOpts) string
	// ArtifactKey addresses a rendered artifact for a geometry hash.
	ArtifactKey(geometryHash string, opts ArtifactKeyOpts) string
	// DefinitionKey addresses a stored chart definition.
	DefinitionKey(id string) string
}

// DefaultKeyer produces unscoped keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GeometryKey implements Keyer.
func (DefaultKeyer) GeometryKey(dataHash string, opts GeometryKeyOpts) string {
	return hashKey("geometry", dataHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(geometryHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", geometryHash, opts)
}

// DefinitionKey implements Keyer.
func (DefaultKeyer) DefinitionKey(id string) string {
	return "chart:" + id
}

var _ Keyer = DefaultKeyer{}
