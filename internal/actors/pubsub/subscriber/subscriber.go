package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/rbroggi/tinkoko/internal/core/model"
	"github.com/rbroggi/tinkoko/internal/core/ports"

	log "github.com/sirupsen/logrus"
)

const cdcSchema = "tinkoko"

// SubscriberArgs contain the mandatory arguments to build a subscriber.
type SubscriberArgs struct {
	// Subscription is a pubsub subscription carrying debezium change events.
	Subscription *pubsub.Subscription

	// RecordEventHandler is a event handler
	RecordEventHandler ports.RecordEventHandler
}

// Subscriber is a pubsub async subscriber
type Subscriber struct {
	subscription       *pubsub.Subscription
	recordEventHandler ports.RecordEventHandler
}

// NewSubscriber creates a subscriber
func NewSubscriber(args SubscriberArgs) *Subscriber {
	return &Subscriber{
		subscription:       args.Subscription,
		recordEventHandler: args.RecordEventHandler,
	}
}

// Consume starts the subscriber. This is a blocking method and should be started in it's own go-routine.
// The way to terminate the method is to cancel the context in input.
func (s *Subscriber) Consume(ctx context.Context) error {
	if err := s.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if s.process(ctx, msg) {
			msg.Ack()
		} else {
			msg.Nack()
		}
	}); err != nil {
		return fmt.Errorf("error receiving messages from subscription: %w", err)
	}
	return nil
}

// process reports whether the message is done with and can be acked.
func (s *Subscriber) process(ctx context.Context, msg *pubsub.Message) bool {
	logger := log.WithField("msg_id", msg.ID)

	recordEvent, err := decodeMsgIntoRecordEvent(msg)
	if errors.Is(err, ErrIgnoreEvent) {
		logger.Debug("ignoring change event")
		return true
	}
	if err != nil {
		logger.WithError(err).Error("error decoding message into record-event")
		return false
	}

	if err := s.recordEventHandler.Handle(ctx, *recordEvent); err != nil {
		logger.WithError(err).Error("error in record event handler")
		return false
	}
	return true
}

var (
	ErrIgnoreEvent = errors.New("event should be ignored")
)

func decodeMsgIntoRecordEvent(msg *pubsub.Message) (*model.RecordEvent, error) {
	if msg == nil {
		return nil, errors.New("cannot decode nil pubsub msg")
	}
	debeziumMsg := new(debeziumMessage)
	if err := json.Unmarshal(msg.Data, debeziumMsg); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w", err)
	}

	src := debeziumMsg.Payload.Source
	if src.Schema != cdcSchema {
		return nil, ErrIgnoreEvent
	}

	recordEvent := &model.RecordEvent{ID: msg.ID}
	switch src.Table {
	case "users":
		recordEvent.Kind = model.KindUser
		before, err := decodeUser(debeziumMsg.Payload.Before)
		if err != nil {
			return nil, fmt.Errorf("error decoding user before image: %w", err)
		}
		after, err := decodeUser(debeziumMsg.Payload.After)
		if err != nil {
			return nil, fmt.Errorf("error decoding user after image: %w", err)
		}
		recordEvent.Before, recordEvent.After = before, after
	case "products":
		recordEvent.Kind = model.KindProduct
		before, err := decodeProduct(debeziumMsg.Payload.Before)
		if err != nil {
			return nil, fmt.Errorf("error decoding product before image: %w", err)
		}
		after, err := decodeProduct(debeziumMsg.Payload.After)
		if err != nil {
			return nil, fmt.Errorf("error decoding product after image: %w", err)
		}
		recordEvent.Before, recordEvent.After = before, after
	default:
		return nil, ErrIgnoreEvent
	}

	return recordEvent, nil
}

// decodeUser returns a nil Record for an absent row image.
func decodeUser(raw json.RawMessage) (model.Record, error) {
	if isNull(raw) {
		return nil, nil
	}
	row := new(debeziumUser)
	if err := json.Unmarshal(raw, row); err != nil {
		return nil, err
	}
	if row.ID == "" {
		return nil, errors.New("row without id")
	}
	return &model.User{
		ID:                row.ID,
		ActivateUser:      row.ActivateUser,
		Currency:          row.Currency,
		LastName:          row.LastName,
		Email:             row.Email,
		FirstName:         row.FirstName,
		Phone:             row.Phone,
		Role:              row.Role,
		UserName:          row.UserName,
		Photo:             row.Photo,
		VerificationMeans: row.VerificationMeans,
		IDNumber:          row.IDNumber,
		CreatedAt:         row.CreatedAt,
	}, nil
}

func decodeProduct(raw json.RawMessage) (model.Record, error) {
	if isNull(raw) {
		return nil, nil
	}
	row := new(debeziumProduct)
	if err := json.Unmarshal(raw, row); err != nil {
		return nil, err
	}
	if row.ID == "" {
		return nil, errors.New("row without id")
	}
	return &model.Product{
		ID:          row.ID,
		Category:    row.Category,
		City:        row.City,
		Count:       row.Count,
		Country:     row.Country,
		Description: row.Description,
		Images:      row.Images,
		Price:       row.Price,
		ProductName: row.ProductName,
		Quantity:    row.Quantity,
		SubCategory: row.SubCategory,
		SellerID:    row.SellerID,
		Weight:      row.Weight,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

type debeziumMessage struct {
	// Payload is the debezium segment containing the change.
	Payload payload `json:"payload"`
}

type payload struct {
	Op     string          `json:"op"`
	Source source          `json:"source"`
	Before json.RawMessage `json:"before"`
	After  json.RawMessage `json:"after"`
}

type source struct {
	Schema string `json:"schema"`
	Table  string `json:"table"`
}

type debeziumUser struct {
	ID                string   `json:"id"`
	ActivateUser      bool     `json:"activate_user"`
	Currency          string   `json:"currency"`
	LastName          string   `json:"last_name"`
	Email             string   `json:"email"`
	FirstName         string   `json:"first_name"`
	Phone             string   `json:"phone"`
	Role              string   `json:"role"`
	UserName          string   `json:"user_name"`
	Photo             []string `json:"photo"`
	VerificationMeans *string  `json:"verification_means"`
	IDNumber          *string  `json:"id_number"`
	CreatedAt         int64    `json:"created_at"`
}

type debeziumProduct struct {
	ID          string   `json:"id"`
	Category    *string  `json:"category"`
	City        *string  `json:"city"`
	Count       *float64 `json:"count"`
	Country     *string  `json:"country"`
	Description *string  `json:"description"`
	Images      []string `json:"images"`
	Price       *float64 `json:"price"`
	ProductName *string  `json:"product_name"`
	Quantity    *float64 `json:"quantity"`
	SubCategory *string  `json:"sub_category"`
	SellerID    *string  `json:"seller_id"`
	Weight      *float64 `json:"weight"`
	CreatedAt   int64    `json:"created_at"`
}
