package ports

import (
	"context"

	"github.com/rbroggi/tinkoko/internal/core/model"
)

// RecordEventHandler handles incoming RecordEvents.
type RecordEventHandler interface {
	// Handle will receive an incoming record event and handle it.
	Handle(ctx context.Context, event model.RecordEvent) error
}
