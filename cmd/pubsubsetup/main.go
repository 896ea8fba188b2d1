package main

import (
	"context"
	"os"

	"cloud.google.com/go/pubsub"
	"github.com/rbroggi/tinkoko/internal/config"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Creates the change-data-capture topic with the worker subscription and the public record-event topic.
// Additional subscriptions on the public topic can be listed as arguments.
func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("could not load configuration")
	}

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, cfg.Events.PubSubProjectID)
	if err != nil {
		log.WithError(err).WithField("project", cfg.Events.PubSubProjectID).Fatal("unable to create pubsub client")
	}
	defer client.Close()

	cdcTopic := ensureTopic(ctx, client, cfg.Events.CDCTopicID)
	ensureSubscription(ctx, client, cdcTopic, cfg.Events.CDCSubscriptionID)

	publicTopic := ensureTopic(ctx, client, cfg.Events.PublicRecordEventTopic)
	for _, subscriptionID := range os.Args[1:] {
		ensureSubscription(ctx, client, publicTopic, subscriptionID)
	}
}

func ensureTopic(ctx context.Context, client *pubsub.Client, topicID string) *pubsub.Topic {
	logger := log.WithField("topic", topicID)
	topic, err := client.CreateTopic(ctx, topicID)
	if status.Code(err) == codes.AlreadyExists {
		logger.Info("topic already exists")
		return client.Topic(topicID)
	}
	if err != nil {
		logger.WithError(err).Fatal("unable to create topic")
	}
	logger.Info("topic created")
	return topic
}

func ensureSubscription(ctx context.Context, client *pubsub.Client, topic *pubsub.Topic, subscriptionID string) {
	logger := log.WithField("topic", topic.ID()).WithField("subscription", subscriptionID)
	_, err := client.CreateSubscription(ctx, subscriptionID, pubsub.SubscriptionConfig{Topic: topic})
	if status.Code(err) == codes.AlreadyExists {
		logger.Info("subscription already exists")
		return
	}
	if err != nil {
		logger.WithError(err).Fatal("unable to create subscription")
	}
	logger.Info("subscription created")
}
