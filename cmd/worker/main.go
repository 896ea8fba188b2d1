package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/pubsub"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	natsactor "github.com/rbroggi/tinkoko/internal/actors/nats"
	produceractor "github.com/rbroggi/tinkoko/internal/actors/pubsub/producer"
	subscriberactor "github.com/rbroggi/tinkoko/internal/actors/pubsub/subscriber"
	"github.com/rbroggi/tinkoko/internal/bootstrap"
	"github.com/rbroggi/tinkoko/internal/config"
	"github.com/rbroggi/tinkoko/internal/core/ports"
	"github.com/rbroggi/tinkoko/internal/core/usecase"
	log "github.com/sirupsen/logrus"
)

func init() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)
}

var (
	grpcServerEndpoint = flag.String("grpc-server-endpoint", "localhost:50052", "gRPC server endpoint")
)

func run() error {
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := bootstrap.SetupLogging(cfg); err != nil {
		return err
	}

	client, err := pubsub.NewClient(ctx, cfg.Events.PubSubProjectID)
	if err != nil {
		return err
	}
	defer client.Close()

	var sender ports.Sender
	switch cfg.Events.Sink {
	case config.SinkNATS:
		conn, err := natsactor.Connect(cfg.Events.NATSURL)
		if err != nil {
			return err
		}
		defer conn.Close()
		sender, err = natsactor.NewProducer(natsactor.ProducerArgs{Conn: conn, Subject: cfg.Events.NATSSubject})
		if err != nil {
			return err
		}
	default:
		topic := client.Topic(cfg.Events.PublicRecordEventTopic)
		defer topic.Stop()
		sender, err = produceractor.NewProducer(topic)
		if err != nil {
			return err
		}
	}

	informer := usecase.NewInformer(sender)

	subscription := client.Subscription(cfg.Events.CDCSubscriptionID)
	subscriber := subscriberactor.NewSubscriber(subscriberactor.SubscriberArgs{
		RecordEventHandler: informer,
		Subscription:       subscription,
	})

	healthServer := health.NewServer()

	// start subscriber
	go func(ctx context.Context) {
		if err := subscriber.Consume(ctx); err != nil {
			log.WithError(err).Error("subscriber stopped")
			healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		}
	}(ctx)

	lis, err := net.Listen("tcp", *grpcServerEndpoint)
	if err != nil {
		return err
	}

	s := grpc.NewServer()
	healthpb.RegisterHealthServer(s, healthServer)

	// Register reflection service on gRPC server.
	reflection.Register(s)

	// Start gRPC server
	go func() {
		if err := s.Serve(lis); err != nil {
			panic(err)
		}
	}()

	log.
		WithField("grpc-server-addr", *grpcServerEndpoint).
		WithField("events-sink", cfg.Events.Sink).
		WithField("cdc-subscription", cfg.Events.CDCSubscriptionID).
		Info("worker up. listening to SIGTERM, SIGINT, SIGQUIT for stoping the worker")

	// Wait for signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-ch

	// Stop server
	cancel()
	healthServer.Shutdown()
	s.GracefulStop()

	return nil
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		panic(err)
	}
}
