// Package events holds the public wire format of record events.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/rbroggi/tinkoko/internal/core/model"
)

// Message attribute names.
const (
	AttrKind = "kind"
	AttrOp   = "op"
	AttrID   = "recordId"
)

// Change operations.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Message is an encoded record event ready to publish.
type Message struct {
	Data       []byte
	Attributes map[string]string
}

type wireEvent struct {
	ID     string           `json:"id"`
	Kind   model.RecordKind `json:"kind"`
	Op     string           `json:"op"`
	Before model.Record     `json:"before"`
	After  model.Record     `json:"after"`
}

// Op tells which change the event describes.
func Op(event model.RecordEvent) string {
	switch {
	case event.Before == nil:
		return OpCreate
	case event.After == nil:
		return OpDelete
	default:
		return OpUpdate
	}
}

// Encode renders the event as JSON with its kind, op and record id as attributes.
func Encode(event model.RecordEvent) (Message, error) {
	op := Op(event)
	data, err := json.Marshal(wireEvent{
		ID:     event.ID,
		Kind:   event.Kind,
		Op:     op,
		Before: event.Before,
		After:  event.After,
	})
	if err != nil {
		return Message{}, fmt.Errorf("error marshaling record-event [%s]: %w", event.ID, err)
	}

	attrs := map[string]string{AttrKind: string(event.Kind), AttrOp: op}
	if r := event.After; r != nil {
		attrs[AttrID] = r.RecordID()
	} else if r := event.Before; r != nil {
		attrs[AttrID] = r.RecordID()
	}
	return Message{Data: data, Attributes: attrs}, nil
}
