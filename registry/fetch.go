package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/natepiano/bevy-brp-sub002/brp"
)

// FetchParams filter the registry export. Empty params fetch everything.
type FetchParams struct {
	WithCrates    []string `json:"with_crates,omitempty"`
	WithoutCrates []string `json:"without_crates,omitempty"`
	WithTypes     []string `json:"with_types,omitempty"`
	WithoutTypes  []string `json:"without_types,omitempty"`
}

// Fetcher retrieves registry snapshots over BRP, memoizing them in
// process so a batch of requests within one session shares a single
// fetch per distinct filter. Nothing is persisted beyond the process.
type Fetcher struct {
	client brp.Client
	cache  *lru.Cache[string, *Store]
	log    *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetcherLogger sets the logger.
func WithFetcherLogger(log *slog.Logger) FetcherOption {
	return func(f *Fetcher) { f.log = log }
}

// NewFetcher builds a Fetcher over the given client.
func NewFetcher(client brp.Client, opts ...FetcherOption) *Fetcher {
	cache, err := lru.New[string, *Store](8)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	f := &Fetcher{client: client, cache: cache, log: slog.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the registry snapshot matching params, from cache when
// the same filter was fetched earlier in this session.
func (f *Fetcher) Fetch(ctx context.Context, params FetchParams) (*Store, error) {
	key, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fetch params: %w", err)
	}
	if store, ok := f.cache.Get(string(key)); ok {
		return store, nil
	}

	raw, err := f.client.Call(ctx, brp.MethodRegistrySchema, params)
	if err != nil {
		return nil, err
	}
	var types map[string]*Schema
	if err := json.Unmarshal(raw, &types); err != nil {
		return nil, fmt.Errorf("invalid registry schema reply: %w", err)
	}
	store := NewStore(types)
	f.log.DebugContext(ctx, "registry snapshot fetched", slog.Int("types", store.Len()))
	f.cache.Add(string(key), store)
	return store, nil
}
