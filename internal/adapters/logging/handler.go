// Package logging bridges slog output into the persistent error log.
package logging

import (
	"context"
	"log/slog"
	"time"

	"invy/internal/domain"
)

const insertTimeout = 2 * time.Second

// ErrorLogHandler forwards every record to the wrapped handler and appends
// error-level records to error_logs, where the superadmin logs surface can
// see them. Insert failures are swallowed: a log write never propagates to
// the operation being logged.
type ErrorLogHandler struct {
	next    slog.Handler
	logRepo domain.LogRepository
}

func NewErrorLogHandler(next slog.Handler, logRepo domain.LogRepository) *ErrorLogHandler {
	return &ErrorLogHandler{next: next, logRepo: logRepo}
}

func (h *ErrorLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ErrorLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		entry := &domain.ErrorLog{
			Level:   domain.LogLevelError,
			Message: r.Message,
			Context: make(map[string]string, r.NumAttrs()),
		}
		r.Attrs(func(a slog.Attr) bool {
			entry.Context[a.Key] = a.Value.String()
			return true
		})
		// Detached from the request context: the row should land even when
		// the request that triggered the error is already cancelled.
		insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), insertTimeout)
		defer cancel()
		_ = h.logRepo.InsertErrorLog(insertCtx, entry)
	}
	return h.next.Handle(ctx, r)
}

func (h *ErrorLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrorLogHandler{next: h.next.WithAttrs(attrs), logRepo: h.logRepo}
}

func (h *ErrorLogHandler) WithGroup(name string) slog.Handler {
	return &ErrorLogHandler{next: h.next.WithGroup(name), logRepo: h.logRepo}
}
