package resource

import "context"

// Cache is the read-through cache consulted for public listings.
// Implementations are best effort: a miss or a backend failure simply falls back to the store.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Invalidate(ctx context.Context, prefix string)
}

// NopCache disables caching.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (NopCache) Set(context.Context, string, []byte) {}

func (NopCache) Invalidate(context.Context, string) {}

// MutationRecorder observes successful admin mutations, e.g. for metrics.
type MutationRecorder interface {
	ObserveMutation(resource, op string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveMutation(string, string) {}
