package manifest

import (
	"context"
	"fmt"
	"log/slog"
)

// # Warning Taxonomy

// WarningKind identifies the class of a non-fatal decoding issue.
type WarningKind string

const (
	// WarnMissingField means a required field could not be resolved from
	// the input, so the enclosing value was dropped.
	WarnMissingField WarningKind = "missing_required_field"

	// WarnMalformedValue means a present value could not be interpreted
	// and was treated as absent.
	WarnMalformedValue WarningKind = "malformed_value"
)

// Warning describes a single non-fatal issue found while decoding.
//
// Decoding never fails on malformed input; warnings are the only trace a
// caller gets of what was dropped or degraded.
type Warning struct {
	// Kind classifies the issue.
	Kind WarningKind

	// Path is the JSON path of the offending value (e.g. "subject[2].links").
	Path string

	// Message is a human-readable description.
	Message string
}

// String renders the warning for logs.
func (w Warning) String() string {
	return fmt.Sprintf("%s at %s: %s", w.Kind, w.Path, w.Message)
}

// # Warning Sinks

// WarningSink receives decoding warnings. Implementations must not panic
// and must tolerate being shared across goroutines if the caller decodes
// concurrently.
type WarningSink interface {
	Log(warning Warning)
}

// WarningFunc adapts a closure to the [WarningSink] interface.
type WarningFunc func(warning Warning)

// Log implements [WarningSink].
func (f WarningFunc) Log(warning Warning) { f(warning) }

// WarningList collects warnings in order, for callers that need to inspect
// them after decoding (e.g. to reject a manifest upload with details).
//
// # Concurrency
//
// WarningList is not safe for concurrent use. Create one per decode.
type WarningList struct {
	Warnings []Warning
}

// Log implements [WarningSink].
func (l *WarningList) Log(warning Warning) {
	l.Warnings = append(l.Warnings, warning)
}

// SlogSink forwards warnings to a structured logger at WARN level.
type SlogSink struct {
	Logger *slog.Logger
}

// Log implements [WarningSink].
func (s SlogSink) Log(warning Warning) {
	s.Logger.LogAttrs(context.Background(), slog.LevelWarn, "manifest_decode_warning",
		slog.String("kind", string(warning.Kind)),
		slog.String("path", warning.Path),
		slog.String("message", warning.Message),
	)
}

// warn sends a warning to sink, tolerating a nil sink.
func warn(sink WarningSink, kind WarningKind, path, message string) {
	if sink == nil {
		return
	}
	sink.Log(Warning{Kind: kind, Path: path, Message: message})
}
