// Package blob issues short-lived locators for in-memory binary content so
// renderers can display images without holding the bytes themselves.
package blob

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/kk-code-lab/rgal/internal/metrics"
)

const locatorPrefix = "blob:rgal/"

// Locator is an opaque reference to registered content.
type Locator string

// Blob is the content behind a locator.
type Blob struct {
	Data      []byte
	MediaType string
}

// Store creates and releases locators. Release must be idempotent.
type Store interface {
	Create(data []byte, mediaType string) (Locator, error)
	Release(loc Locator)
}

// Opener resolves a locator for rendering. Released locators resolve to false.
type Opener interface {
	Open(loc Locator) (Blob, bool)
}

// Registry is the in-process Store/Opener.
type Registry struct {
	mu    sync.RWMutex
	blobs map[Locator]Blob
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{blobs: make(map[Locator]Blob)}
}

func (r *Registry) Create(data []byte, mediaType string) (Locator, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("cannot allocate locator: %w", err)
	}
	loc := Locator(locatorPrefix + id.String())

	r.mu.Lock()
	r.blobs[loc] = Blob{Data: data, MediaType: mediaType}
	r.mu.Unlock()

	metrics.RecordLocatorCreated()
	return loc, nil
}

func (r *Registry) Release(loc Locator) {
	r.mu.Lock()
	_, ok := r.blobs[loc]
	delete(r.blobs, loc)
	r.mu.Unlock()

	if ok {
		metrics.RecordLocatorReleased()
	}
}

func (r *Registry) Open(loc Locator) (Blob, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.blobs[loc]
	return b, ok
}

// Live reports how many locators have not been released.
func (r *Registry) Live() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blobs)
}
