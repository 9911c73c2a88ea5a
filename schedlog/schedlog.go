// Package schedlog adapts a github.com/joeycumines/logiface logger,
// backed by the github.com/joeycumines/logiface-slog stdlib adapter,
// to the scheduler.Logger interface.
//
// This exists as its own package rather than folding straight into
// package scheduler so that scheduler never pays the generic-Event
// type parameter logiface.Logger[E] carries -- the same separation of
// concerns the teacher applies between eventloop's own minimal Logger
// interface and any particular structured-logging backend.
package schedlog

import (
	"log/slog"

	"github.com/driftwood-systems/schedcore/scheduler"
	"github.com/joeycumines/logiface"
	islog "github.com/joeycumines/logiface-slog"
)

// adapter wraps a *logiface.Logger[*islog.Event] to satisfy
// scheduler.Logger.
type adapter struct {
	log *logiface.Logger[*islog.Event]
}

// New builds a scheduler.Logger that writes through slogHandler via
// logiface-slog. Passing a nil handler panics, matching
// islog.WithSlogHandler's own contract.
//
// islog.WithSlogHandler defaults its own logiface level threshold to
// Informational, which would silently drop every Debug call the
// scheduler makes (task scheduled/removed/firing, idle invoked); New
// lowers that threshold to Trace so level filtering is left entirely
// to slogHandler, matching what a caller configuring slog directly
// would expect. Options passed after that point, including any in
// opts, still take precedence.
func New(slogHandler slog.Handler, opts ...logiface.Option[*islog.Event]) scheduler.Logger {
	options := append([]logiface.Option[*islog.Event]{
		islog.WithSlogHandler(slogHandler),
		logiface.WithLevel[*islog.Event](logiface.LevelTrace),
	}, opts...)
	return &adapter{log: islog.L.New(options...)}
}

func (a *adapter) Debug(msg string, kv ...any) { apply(a.log.Debug(), kv).Log(msg) }

func (a *adapter) Info(msg string, kv ...any) { apply(a.log.Info(), kv).Log(msg) }

func (a *adapter) Warn(msg string, kv ...any) { apply(a.log.Warning(), kv).Log(msg) }

// apply folds kv (alternating key, value pairs) onto b, picking the
// most specific logiface.Builder method the value's dynamic type
// supports and falling back to Any otherwise.
func apply(b *logiface.Builder[*islog.Event], kv []any) *logiface.Builder[*islog.Event] {
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		switch val := kv[i+1].(type) {
		case string:
			b = b.Str(key, val)
		case error:
			b = b.Err(val)
		case int:
			b = b.Int(key, val)
		default:
			b = b.Any(key, val)
		}
	}
	return b
}
