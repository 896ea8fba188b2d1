package ports

import (
	"context"

	"github.com/rbroggi/tinkoko/internal/core/model"
)

// Sender is the port for publishing/informing/sending outbound record-events.
type Sender interface {
	// Send sends record-event data.
	Send(ctx context.Context, event model.RecordEvent) error
}
