package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rulesbot"
)

// Ensure LoggingInventoryLoader implements rulesbot.InventoryLoader.
var _ rulesbot.InventoryLoader = (*LoggingInventoryLoader)(nil)

// LoggingInventoryLoader wraps an InventoryLoader with logging.
type LoggingInventoryLoader struct {
	next   rulesbot.InventoryLoader
	logger *slog.Logger
}

// NewLoggingInventoryLoader creates a new LoggingInventoryLoader.
func NewLoggingInventoryLoader(next rulesbot.InventoryLoader, logger *slog.Logger) *LoggingInventoryLoader {
	return &LoggingInventoryLoader{next: next, logger: logger}
}

// Load delegates to the wrapped loader and logs the number of entries.
func (l *LoggingInventoryLoader) Load(ctx context.Context, baseURL string) (inv *rulesbot.Inventory, err error) {
	defer func(begin time.Time) {
		count := 0
		if inv != nil {
			count = inv.Len()
		}
		l.logger.Info("inventory load",
			"url", baseURL,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Load(ctx, baseURL)
}
