package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rbroggi/tinkoko/internal/bootstrap"
	"github.com/rbroggi/tinkoko/internal/config"
	log "github.com/sirupsen/logrus"
)

// Blocks until the configured record store answers a ping, exiting non-zero when attempts run out.
func main() {
	attempts := flag.Int("attempts", 20, "number of pings before giving up")
	delay := flag.Duration("delay", 2*time.Second, "pause between pings")
	timeout := flag.Duration("timeout", 10*time.Second, "timeout of a single ping")
	flag.Parse()

	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("could not load configuration")
	}

	repo, closeRepo, err := bootstrap.OpenRepository(context.Background(), cfg.Store)
	if err != nil {
		log.WithError(err).Fatal("could not initialize the record store")
	}
	defer closeRepo()

	logger := log.WithField("backend", cfg.Store.Backend)
	for i := 1; i <= *attempts; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		err := repo.Ping(ctx)
		cancel()
		if err == nil {
			logger.WithField("attempt", i).Info("record store is reachable")
			return
		}

		logger.WithError(err).WithField("attempt", i).Warn("record store not reachable yet")
		time.Sleep(*delay)
	}

	closeRepo()
	logger.Fatal("record store did not become reachable")
}
