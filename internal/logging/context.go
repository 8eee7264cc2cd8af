package logging

import (
	"context"
	"log/slog"
	"strings"
)

const (
	// FieldComponent names the package emitting a line.
	FieldComponent = "component"
	// FieldRunID correlates every line of one import run.
	FieldRunID = "run_id"
	// FieldPath is the source file being processed.
	FieldPath = "path"
	// FieldClass is the media class (raw, raster, video).
	FieldClass = "class"
	// FieldAction is the per-file outcome (copied, skipped, would_copy, failed).
	FieldAction = "action"
	// FieldDestination is the target path of a copy.
	FieldDestination = "destination"
	// FieldEventType tags warnings and errors with a stable machine-readable kind.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
)

type contextKey string

const (
	runIDKey contextKey = "filmroll.run_id"
	classKey contextKey = "filmroll.class"
)

// WithRunID stores the import run identifier on ctx.
func WithRunID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, runIDKey, strings.TrimSpace(id))
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// WithClass stores the media class currently being processed on ctx.
func WithClass(ctx context.Context, class string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, classKey, class)
}

// ClassFromContext returns the class stored by WithClass.
func ClassFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	class, ok := ctx.Value(classKey).(string)
	return class, ok && class != ""
}

// ContextFields extracts the standard attributes carried by ctx.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if class, ok := ClassFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldClass, class))
	}
	return fields
}

// WithContext returns logger augmented with the fields carried by ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
