package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	lambdaactor "github.com/rbroggi/tinkoko/internal/actors/lambda"
	"github.com/rbroggi/tinkoko/internal/actors/router"
	"github.com/rbroggi/tinkoko/internal/bootstrap"
	"github.com/rbroggi/tinkoko/internal/config"
	"github.com/rbroggi/tinkoko/internal/core/usecase"
	log "github.com/sirupsen/logrus"
)

func init() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("could not load configuration")
	}
	if err := bootstrap.SetupLogging(cfg); err != nil {
		log.WithError(err).Fatal("could not set up logging")
	}

	// the store handle outlives every invocation of the warm container
	repo, _, err := bootstrap.OpenRepository(context.Background(), cfg.Store)
	if err != nil {
		log.WithError(err).Fatal("could not initialize the record store")
	}

	handler := lambdaactor.NewHandler(lambdaactor.HandlerArgs{
		Dispatcher: router.NewRouter(router.RouterArgs{
			Users:    usecase.NewUserService(usecase.UserServiceArgs{Repository: repo}),
			Products: usecase.NewProductService(usecase.ProductServiceArgs{Repository: repo}),
		}),
	})

	lambda.Start(handler.Handle)
}
