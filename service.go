package bevybrp

import (
	"context"
	"log/slog"
	"os"

	"github.com/natepiano/bevy-brp-sub002/brp"
	"github.com/natepiano/bevy-brp-sub002/internal/logctx"
	"github.com/natepiano/bevy-brp-sub002/knowledge"
	"github.com/natepiano/bevy-brp-sub002/mutation"
	"github.com/natepiano/bevy-brp-sub002/recovery"
	"github.com/natepiano/bevy-brp-sub002/registry"
	"github.com/natepiano/bevy-brp-sub002/typeguide"
)

// Service is the assembled introspection stack. It is stateless across
// requests: registry snapshots are fetched per session and everything
// else is rebuilt per call.
type Service struct {
	cfg     Config
	client  brp.Client
	fetcher *registry.Fetcher
	know    *knowledge.Table
	log     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceClient substitutes the wire client (tests use fakes).
func WithServiceClient(c brp.Client) ServiceOption {
	return func(s *Service) { s.client = c }
}

// WithServiceKnowledge substitutes the knowledge table.
func WithServiceKnowledge(t *knowledge.Table) ServiceOption {
	return func(s *Service) { s.know = t }
}

// WithServiceLogger sets the logger.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// New assembles a Service from config.
func New(cfg Config, opts ...ServiceOption) *Service {
	cfg.validate()
	s := &Service{
		cfg:  cfg,
		know: knowledge.Default(),
		log:  NewLogger(slog.LevelInfo),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = brp.NewHTTPClient(cfg.TargetURL,
			brp.WithTimeout(cfg.HTTPTimeout),
			brp.WithLogger(s.log),
		)
	}
	s.fetcher = registry.NewFetcher(s.client, registry.WithFetcherLogger(s.log))
	return s
}

// NewLogger builds a slog.Logger whose records carry the call, walk,
// and recovery context groups.
func NewLogger(level slog.Level) *slog.Logger {
	base := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(logctx.Handler{Handler: base})
}

// TypeGuide fetches the registry snapshot and derives the unified
// record for each requested type. Independent types run concurrently.
func (s *Service) TypeGuide(ctx context.Context, types []string) (map[string]*typeguide.Record, error) {
	store, err := s.fetcher.Fetch(ctx, registry.FetchParams{})
	if err != nil {
		return nil, err
	}
	builder := mutation.NewBuilder(store,
		mutation.WithKnowledge(s.know),
		mutation.WithDepthLimit(s.cfg.DepthLimit),
		mutation.WithLogger(s.log),
	)
	guide := typeguide.NewGuide(store,
		typeguide.WithBuilder(builder),
		typeguide.WithGuideLogger(s.log),
	)
	return guide.ForTypes(ctx, types), nil
}

// RecoverFormat diagnoses one rejected wire value. The retry callback
// may be nil, in which case candidates surface as guidance only.
func (s *Service) RecoverFormat(ctx context.Context, req recovery.Request) (*recovery.Result, error) {
	store, err := s.fetcher.Fetch(ctx, registry.FetchParams{})
	if err != nil {
		if !brp.IsUnavailable(err) {
			return nil, err
		}
		// No registry at all: recovery still runs its remaining levels.
		store = nil
	}

	var opts []recovery.EngineOption
	opts = append(opts, recovery.WithClient(s.client), recovery.WithEngineLogger(s.log))
	if store != nil {
		builder := mutation.NewBuilder(store,
			mutation.WithKnowledge(s.know),
			mutation.WithDepthLimit(s.cfg.DepthLimit),
			mutation.WithLogger(s.log),
		)
		opts = append(opts, recovery.WithGuide(typeguide.NewGuide(store, typeguide.WithBuilder(builder))))
	}
	engine := recovery.NewEngine(store, opts...)
	return engine.Recover(ctx, req)
}
