package main

import (
	"database/sql"
	"errors"
	"flag"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rbroggi/tinkoko/internal/config"
	log "github.com/sirupsen/logrus"
)

var (
	down          = flag.Bool("down", false, "run migration down")
	migrationsDir = flag.String("migrations-dir", "db/migrations", "directory holding the sql migrations, relative to the working directory")
)

func main() {
	flag.Parse()
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("could not load configuration")
	}

	db, err := sql.Open("postgres", cfg.Store.Postgres.URL)
	if err != nil {
		log.WithError(err).Fatal("error opening db connection")
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.WithError(err).Fatal("error invoking WithInstance")
	}
	wd, err := os.Getwd()
	if err != nil {
		log.WithError(err).Fatal("error getting working-directory")
	}
	source := "file:///" + wd + "/" + *migrationsDir
	log.WithField("source", source).Info("using migrations")

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		log.WithError(err).Fatal("NewWithDatabaseInstance error")
	}
	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.WithError(err).WithField("down", *down).Fatal("error migrating")
	}
	log.WithField("down", *down).Info("migrations applied")
}
