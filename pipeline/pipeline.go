// Package pipeline implements the question answering pipeline: link
// retrieval, content fetching, answer generation, and the service that
// sequences them.
package pipeline

import "log/slog"

// discard is used when no logger is configured.
var discard = slog.New(slog.DiscardHandler)

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return discard
	}
	return l
}
