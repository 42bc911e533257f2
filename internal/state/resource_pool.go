package state

import (
	"github.com/kk-code-lab/rgal/internal/blob"
	fsutil "github.com/kk-code-lab/rgal/internal/fs"
)

// ResourcePool owns the locators of the currently displayed directory. At most
// one generation is live; every locator it is handed is released exactly once.
// Only the reducer mutates it.
type ResourcePool struct {
	store   blob.Store
	current ResourceMap
}

// NewResourcePool returns an empty pool releasing through store.
func NewResourcePool(store blob.Store) *ResourcePool {
	return &ResourcePool{store: store, current: ResourceMap{}}
}

// Replace installs next and releases the previous generation. The pool takes
// ownership of next.
func (p *ResourcePool) Replace(next ResourceMap) {
	if next == nil {
		next = ResourceMap{}
	}
	prev := p.current
	p.current = next

	for id, loc := range prev {
		if still, ok := next[id]; ok && still == loc {
			continue
		}
		p.store.Release(loc)
	}
}

// ReleaseAll releases the live generation and leaves the pool empty.
func (p *ResourcePool) ReleaseAll() {
	p.Replace(nil)
}

// Discard releases a generation that was never installed, such as the result
// of a superseded load.
func (p *ResourcePool) Discard(stale ResourceMap) {
	for id, loc := range stale {
		if live, ok := p.current[id]; ok && live == loc {
			continue
		}
		p.store.Release(loc)
	}
}

// Locator returns the locator for an image capability of the current directory.
func (p *ResourcePool) Locator(id fsutil.HandleID) (blob.Locator, bool) {
	loc, ok := p.current[id]
	return loc, ok
}

func (p *ResourcePool) Len() int {
	return len(p.current)
}

// Has reports whether loc belongs to the live generation.
func (p *ResourcePool) Has(loc blob.Locator) bool {
	for _, l := range p.current {
		if l == loc {
			return true
		}
	}
	return false
}

// Keys returns the capability IDs of the live generation.
func (p *ResourcePool) Keys() []fsutil.HandleID {
	keys := make([]fsutil.HandleID, 0, len(p.current))
	for id := range p.current {
		keys = append(keys, id)
	}
	return keys
}
