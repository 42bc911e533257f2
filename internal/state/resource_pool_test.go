package state

import (
	"testing"

	"github.com/kk-code-lab/rgal/internal/blob"
	fsutil "github.com/kk-code-lab/rgal/internal/fs"
)

func makeResources(t *testing.T, store blob.Store, ids ...string) ResourceMap {
	t.Helper()
	res := make(ResourceMap)
	for _, id := range ids {
		loc, err := store.Create(nil, "image/png")
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		res[fsutil.HandleID(id)] = loc
	}
	return res
}

func TestResourcePool_ReplaceReleasesPreviousGeneration(t *testing.T) {
	store := newCountingStore()
	pool := NewResourcePool(store)

	first := makeResources(t, store, "a", "b")
	pool.Replace(first)
	if pool.Len() != 2 {
		t.Fatalf("Len = %d, want 2", pool.Len())
	}

	second := makeResources(t, store, "c")
	pool.Replace(second)

	for _, loc := range first {
		if store.releaseCount(loc) != 1 {
			t.Fatalf("%s released %d times, want 1", loc, store.releaseCount(loc))
		}
		if pool.Has(loc) {
			t.Fatalf("%s should no longer be live", loc)
		}
	}
	for id, loc := range second {
		if store.releaseCount(loc) != 0 {
			t.Fatalf("new generation must not be released")
		}
		if got, ok := pool.Locator(id); !ok || got != loc {
			t.Fatalf("Locator(%s) = %q, %v", id, got, ok)
		}
	}
}

func TestResourcePool_ReleaseAllIsIdempotent(t *testing.T) {
	store := newCountingStore()
	pool := NewResourcePool(store)
	res := makeResources(t, store, "a", "b", "c")
	pool.Replace(res)

	pool.ReleaseAll()
	pool.ReleaseAll()

	if pool.Len() != 0 {
		t.Fatalf("pool should be empty")
	}
	if store.liveCount() != 0 {
		t.Fatalf("live locators = %d, want 0", store.liveCount())
	}
	if over := store.overReleased(); len(over) != 0 {
		t.Fatalf("released more than once: %v", over)
	}
}

func TestResourcePool_DiscardSkipsLiveLocators(t *testing.T) {
	store := newCountingStore()
	pool := NewResourcePool(store)
	live := makeResources(t, store, "a")
	pool.Replace(live)

	stale := makeResources(t, store, "b")
	stale["a"] = live["a"]
	pool.Discard(stale)

	if store.releaseCount(stale["b"]) != 1 {
		t.Fatalf("stale locator should be released once")
	}
	if store.releaseCount(live["a"]) != 0 {
		t.Fatalf("live locator must not be released by Discard")
	}
	if len(pool.Keys()) != 1 || pool.Keys()[0] != "a" {
		t.Fatalf("Keys = %v", pool.Keys())
	}
}

func TestResourcePool_ReplaceKeepsSharedLocator(t *testing.T) {
	store := newCountingStore()
	pool := NewResourcePool(store)
	first := makeResources(t, store, "a")
	pool.Replace(first)

	next := ResourceMap{"a": first["a"]}
	pool.Replace(next)

	if store.releaseCount(first["a"]) != 0 {
		t.Fatalf("locator carried into the next generation was released")
	}
}
