package mock

import (
	"context"

	"github.com/fwojciec/rulesbot"
)

var _ rulesbot.InventoryLoader = (*InventoryLoader)(nil)

// InventoryLoader is a mock implementation of rulesbot.InventoryLoader.
type InventoryLoader struct {
	LoadFn func(ctx context.Context, baseURL string) (*rulesbot.Inventory, error)
}

func (l *InventoryLoader) Load(ctx context.Context, baseURL string) (*rulesbot.Inventory, error) {
	return l.LoadFn(ctx, baseURL)
}
