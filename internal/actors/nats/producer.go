// Package nats publishes record events on a NATS subject.
package nats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rbroggi/tinkoko/internal/core/model"
	"github.com/rbroggi/tinkoko/internal/events"
	log "github.com/sirupsen/logrus"
)

type publisher interface {
	PublishMsg(m *nats.Msg) error
	FlushWithContext(ctx context.Context) error
}

// Producer is the nats producer of record events.
type Producer struct {
	conn    publisher
	subject string
}

// ProducerArgs are the mandatory arguments to build a Producer.
type ProducerArgs struct {
	Conn    publisher
	Subject string
}

// NewProducer creates a new producer.
func NewProducer(args ProducerArgs) (*Producer, error) {
	if args.Conn == nil {
		return nil, errors.New("nil nats connection")
	}
	if args.Subject == "" {
		return nil, errors.New("empty nats subject")
	}
	return &Producer{conn: args.Conn, subject: args.Subject}, nil
}

// Connect opens a nats connection logging its lifecycle.
func Connect(url string) (*nats.Conn, error) {
	logger := log.WithField("nats_url", url)
	conn, err := nats.Connect(url,
		nats.Name("tinkoko worker"),
		nats.Timeout(10*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.WithError(err).Warn("nats disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.WithField("connected_url", nc.ConnectedUrl()).Info("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info("nats connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	return conn, nil
}

// Send publishes the event and flushes so that the server has it before returning.
func (p *Producer) Send(ctx context.Context, event model.RecordEvent) error {
	msg, err := events.Encode(event)
	if err != nil {
		return err
	}

	natsMsg := nats.NewMsg(p.subject)
	natsMsg.Data = msg.Data
	for k, v := range msg.Attributes {
		natsMsg.Header.Set(k, v)
	}
	if err := p.conn.PublishMsg(natsMsg); err != nil {
		return fmt.Errorf("failed to publish record-event [%s] to subject %s: %w", event.ID, p.subject, err)
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush record-event [%s]: %w", event.ID, err)
	}
	return nil
}
