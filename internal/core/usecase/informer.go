package usecase

import (
	"context"
	"fmt"
	"reflect"

	"github.com/rbroggi/tinkoko/internal/core/model"
	"github.com/rbroggi/tinkoko/internal/core/ports"
)

// NewInformer builds a new informer.
func NewInformer(sender ports.Sender) *Informer {
	return &Informer{sender: sender}
}

// Informer adapts CDC events to a public-facing event. It publicly 'informs' about record changes.
type Informer struct {
	sender ports.Sender
}

// Handle forwards the event to the sender once sanitized. Events carrying no public change are dropped.
func (i *Informer) Handle(ctx context.Context, event model.RecordEvent) error {

	// identity document numbers never leave the service
	event.Before = redact(event.Before)
	event.After = redact(event.After)

	// this happens if there were only changes in the id number
	if recordsAreEqual(event.Before, event.After) {
		return nil
	}

	if err := i.sender.Send(ctx, event); err != nil {
		return fmt.Errorf("error sending record event ID [%s]: %w", event.ID, err)
	}

	return nil
}

// redact returns a copy of the record without its sensitive fields.
func redact(record model.Record) model.Record {
	switch r := record.(type) {
	case *model.User:
		if r == nil {
			return nil
		}
		cp := *r
		cp.IDNumber = nil
		return &cp
	case *model.Product:
		if r == nil {
			return nil
		}
		return r
	default:
		return record
	}
}

func recordsAreEqual(before, after model.Record) bool {
	if before == nil && after == nil {
		return true
	}
	if before == nil || after == nil {
		return false
	}
	return reflect.DeepEqual(before, after)
}
