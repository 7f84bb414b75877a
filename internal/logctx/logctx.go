// Package logctx enriches slog records with request-scoped data carried
// on the context: the in-flight BRP call, the current schema walk, and
// the active recovery operation.
package logctx

import (
	"context"
	"log/slog"
)

type Handler struct {
	slog.Handler
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if cd, ok := ctx.Value(callDataKey{}).(*CallData); ok {
		r.AddAttrs(slog.Group("call",
			slog.String("method", cd.Method),
			slog.String("id", cd.RequestID),
		))
	}

	if wd, ok := ctx.Value(walkDataKey{}).(*WalkData); ok {
		r.AddAttrs(slog.Group("walk",
			slog.String("type", wd.TypeName),
			slog.String("path", wd.Path),
			slog.Int("depth", wd.Depth),
		))
	}

	if rd, ok := ctx.Value(recoveryDataKey{}).(*RecoveryData); ok {
		r.AddAttrs(slog.Group("recovery",
			slog.String("id", rd.OperationID),
			slog.String("type", rd.TypeName),
			slog.Int("level", rd.Level),
		))
	}

	return h.Handler.Handle(ctx, r)
}

type callDataKey struct{}

type CallData struct {
	Method    string
	RequestID string
}

func WithCallData(ctx context.Context, data *CallData) context.Context {
	return context.WithValue(ctx, callDataKey{}, data)
}

type walkDataKey struct{}

type WalkData struct {
	TypeName string
	Path     string
	Depth    int
}

func WithWalkData(ctx context.Context, data *WalkData) context.Context {
	return context.WithValue(ctx, walkDataKey{}, data)
}

type recoveryDataKey struct{}

type RecoveryData struct {
	OperationID string
	TypeName    string
	Level       int
}

func WithRecoveryData(ctx context.Context, data *RecoveryData) context.Context {
	return context.WithValue(ctx, recoveryDataKey{}, data)
}
