package recovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/natepiano/bevy-brp-sub002/brp"
	"github.com/natepiano/bevy-brp-sub002/internal/logctx"
	"github.com/natepiano/bevy-brp-sub002/registry"
	"github.com/natepiano/bevy-brp-sub002/typeguide"
)

// Outcome is the terminal state of one recovery operation. Exactly one
// outcome is produced per operation.
type Outcome int

const (
	// OutcomeNotRecoverable means no correction could even be attempted.
	OutcomeNotRecoverable Outcome = iota
	// OutcomeCorrectionFailed means corrections were attempted but none
	// was confirmed by a successful retry.
	OutcomeCorrectionFailed
	// OutcomeRecovered means a transformed value was accepted on retry.
	OutcomeRecovered
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRecovered:
		return "recovered"
	case OutcomeCorrectionFailed:
		return "correction_failed"
	default:
		return "not_recoverable"
	}
}

// MarshalJSON emits the snake_case wire form.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// CorrectionInfo describes one correction, attempted or confirmed. A
// non-nil Corrected value means the retry succeeded; unconfirmed
// candidates appear in Guidance only.
type CorrectionInfo struct {
	TypeName  string            `json:"type_name"`
	Original  any               `json:"original_value,omitempty"`
	Corrected any               `json:"corrected_value,omitempty"`
	Guidance  string            `json:"guidance,omitempty"`
	Hint      string            `json:"hint,omitempty"`
	Record    *typeguide.Record `json:"type_record,omitempty"`
	Method    Method            `json:"correction_method,omitempty"`
}

// Result is the outcome of a recovery operation. Corrections always
// carry the accumulated hints, supported operations, mutation-path
// names, and type category via the embedded record; a failure is never
// a bare error code.
type Result struct {
	Outcome        Outcome          `json:"outcome"`
	CorrectedValue any              `json:"corrected_value,omitempty"`
	Hint           string           `json:"error_hint,omitempty"`
	Corrections    []CorrectionInfo `json:"corrections"`
}

// RetryFunc re-issues the original wire call with a candidate value.
// The outer dispatch layer supplies it, since the parameter shape of
// the original call is method-specific.
type RetryFunc func(ctx context.Context, value any) error

// Request is one failed wire call to diagnose.
type Request struct {
	Method   string
	TypeName string
	Value    any
	CallErr  *brp.Error
	// Retry confirms candidate values. When nil, candidates surface as
	// guidance only and the operation can never report Recovered.
	Retry RetryFunc
}

// Engine drives the multi-level recovery protocol. It holds only
// read-only collaborators and is safe for concurrent use.
type Engine struct {
	store       *registry.Store
	guide       *typeguide.Guide
	client      brp.Client
	formatCodes map[brp.ErrorCode]bool
	log         *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClient enables the live-discovery level using the given client.
func WithClient(c brp.Client) EngineOption {
	return func(e *Engine) { e.client = c }
}

// WithGuide substitutes the type guide used for schema-based guidance.
func WithGuide(g *typeguide.Guide) EngineOption {
	return func(e *Engine) { e.guide = g }
}

// WithFormatErrorCodes overrides which error codes are treated as
// format errors worth recovering. This is a tuned heuristic; see
// DefaultFormatErrorCodes.
func WithFormatErrorCodes(codes []brp.ErrorCode) EngineOption {
	return func(e *Engine) {
		e.formatCodes = make(map[brp.ErrorCode]bool, len(codes))
		for _, c := range codes {
			e.formatCodes[c] = true
		}
	}
}

// WithEngineLogger sets the logger.
func WithEngineLogger(log *slog.Logger) EngineOption {
	return func(e *Engine) { e.log = log }
}

// NewEngine builds an Engine over a registry snapshot. A nil store is
// allowed and simply disables the schema-guidance level.
func NewEngine(store *registry.Store, opts ...EngineOption) *Engine {
	e := &Engine{
		store: store,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.formatCodes == nil {
		e.formatCodes = make(map[brp.ErrorCode]bool, len(DefaultFormatErrorCodes))
		for _, c := range DefaultFormatErrorCodes {
			e.formatCodes[c] = true
		}
	}
	if e.guide == nil && store != nil {
		e.guide = typeguide.NewGuide(store)
	}
	return e
}

// Recover runs the recovery levels for one failed call. It returns an
// error only on misuse (no call error to diagnose); every diagnostic
// failure is expressed in the Result.
func (e *Engine) Recover(ctx context.Context, req Request) (*Result, error) {
	if req.CallErr == nil {
		return nil, errors.New("recovery: request carries no call error")
	}

	opID := uuid.NewString()
	ctx = logctx.WithRecoveryData(ctx, &logctx.RecoveryData{OperationID: opID, TypeName: req.TypeName})

	res := &Result{}
	var hints []string

	if !e.formatCodes[req.CallErr.Code] {
		res.Outcome = OutcomeNotRecoverable
		res.Hint = fmt.Sprintf("error code %d is not a known format error; the value shape is likely not the problem", req.CallErr.Code)
		res.Corrections = []CorrectionInfo{{TypeName: req.TypeName, Original: req.Value, Hint: res.Hint}}
		return res, nil
	}

	// Level 1: pattern classification.
	info, classified := classify(req.CallErr.Message)
	if classified {
		hints = append(hints, info.Hint)
		e.log.DebugContext(ctx, "error pattern classified", slog.Int("kind", int(info.Kind)))
	}

	// Level 2: schema-based guidance.
	var rec *typeguide.Record
	var schema *registry.Schema
	if e.store != nil {
		if s, ok := e.store.Get(req.TypeName); ok {
			schema = s
		}
	}
	if e.guide != nil {
		rec = e.guide.ForType(ctx, req.TypeName)
		if rec.InRegistry && rec.SpawnFormat != nil {
			raw, err := json.Marshal(rec.SpawnFormat)
			if err == nil {
				hints = append(hints, fmt.Sprintf("expected format: %s", raw))
			}
		}
	}
	if rec == nil {
		rec = &typeguide.Record{TypeName: req.TypeName, Source: typeguide.SourcePattern}
	}
	rec.OriginalValue = req.Value

	// Level 3: live authoritative discovery. Absence of the capability
	// (or any transport failure) only removes this level.
	if e.client != nil {
		if live := e.discover(ctx, req.TypeName); live != nil {
			rec.Merge(live)
		}
	}

	// Level 4: value transforms, confirmed by a single retry.
	candidate, method, applicable := e.transform(ctx, req, info, schema, rec)
	if applicable {
		if req.Retry == nil {
			raw, _ := json.Marshal(candidate)
			hints = append(hints, fmt.Sprintf("candidate value (unconfirmed): %s", raw))
			res.Corrections = append(res.Corrections, CorrectionInfo{
				TypeName: req.TypeName,
				Original: req.Value,
				Guidance: fmt.Sprintf("retry with %s", raw),
				Method:   method,
			})
			res.Outcome = OutcomeCorrectionFailed
		} else if retryErr := req.Retry(ctx, candidate); retryErr == nil {
			rec.CorrectedValue = candidate
			res.Outcome = OutcomeRecovered
			res.CorrectedValue = candidate
			res.Hint = strings.Join(hints, "; ")
			res.Corrections = append(res.Corrections, CorrectionInfo{
				TypeName:  req.TypeName,
				Original:  req.Value,
				Corrected: candidate,
				Hint:      res.Hint,
				Record:    rec,
				Method:    method,
			})
			return res, nil
		} else {
			hints = append(hints, fmt.Sprintf("transformed value was also rejected: %v", retryErr))
			res.Corrections = append(res.Corrections, CorrectionInfo{
				TypeName: req.TypeName,
				Original: req.Value,
				Guidance: "transform applied but the retry was rejected",
				Method:   method,
			})
			res.Outcome = OutcomeCorrectionFailed
		}
	} else {
		res.Outcome = OutcomeNotRecoverable
	}

	if !rec.InRegistry && rec.Source != typeguide.SourceLiveDiscovery {
		hints = append(hints, fmt.Sprintf("no example available: %s is not in the schema registry and the target offers no format discovery", req.TypeName))
	}

	res.Hint = strings.Join(hints, "; ")
	res.Corrections = append(res.Corrections, CorrectionInfo{
		TypeName: req.TypeName,
		Original: req.Value,
		Hint:     res.Hint,
		Record:   rec,
	})
	return res, nil
}

// discover queries brp_extras/discover_format. Any failure is treated
// as the capability being unavailable and returns nil.
func (e *Engine) discover(ctx context.Context, typeName string) *typeguide.Record {
	raw, err := e.client.Call(ctx, brp.MethodDiscoverFormat, DiscoverParams{Types: []string{typeName}})
	if err != nil {
		if brp.IsUnavailable(err) {
			e.log.DebugContext(ctx, "format discovery unavailable", slog.String("reason", err.Error()))
		} else {
			e.log.DebugContext(ctx, "format discovery failed", slog.String("error", err.Error()))
		}
		return nil
	}
	var resp DiscoverResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		e.log.DebugContext(ctx, "format discovery reply malformed", slog.String("error", err.Error()))
		return nil
	}
	dt, ok := resp.TypeInfo[typeName]
	if !ok {
		return nil
	}
	return dt.record(typeName)
}

// transform picks the first applicable value transform. The expected
// wire shape comes from the unified record's spawn format when known,
// falling back to the classified pattern.
func (e *Engine) transform(ctx context.Context, req Request, info patternInfo, schema *registry.Schema, rec *typeguide.Record) (any, Method, bool) {
	rootExpectsSequence := false
	rootExpectsString := false
	if rec != nil && rec.SpawnFormat != nil {
		switch rec.SpawnFormat.(type) {
		case []any:
			rootExpectsSequence = true
		case string:
			rootExpectsString = true
		}
	}

	if v, ok := unitVariant(req.Value, schema); ok {
		return v, MethodUnitVariant, true
	}
	if rootExpectsString {
		if v, ok := extractString(req.Value); ok {
			return v, MethodStringExtraction, true
		}
	}
	if rootExpectsSequence {
		if v, ok := objectToArray(req.Value, schema); ok {
			return v, MethodObjectToArray, true
		}
	}
	// A structurally correct root can still hide sequence-form fields
	// sent as objects; reshape the value against its schema.
	if schema != nil {
		if v, ok := e.reshape(ctx, req.Value, req.TypeName, 0); ok {
			return v, MethodObjectToArray, true
		}
	}
	// No schema to consult: fall back to what the pattern alone says
	// about the root value.
	if schema == nil && info.Kind == PatternExpectedSequence {
		if v, ok := objectToArray(req.Value, nil); ok {
			return v, MethodObjectToArray, true
		}
	}
	if info.Kind == PatternExpectedType {
		if v, ok := extractString(req.Value); ok {
			return v, MethodStringExtraction, true
		}
	}
	return nil, "", false
}
