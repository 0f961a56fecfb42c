// Package main creates a bookstore superuser together with its client account.
//
// Usage:
//
//	createsuperuser --username admin --password secret --email admin@example.com
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	flag "github.com/spf13/pflag"

	"github.com/go-petr/bookstore/internal/middleware"
	"github.com/go-petr/bookstore/internal/userrepo"
	"github.com/go-petr/bookstore/internal/userservice"
	"github.com/go-petr/bookstore/pkg/configpkg"
	"github.com/go-petr/bookstore/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	var (
		configPath = flag.String("config", "./configs", "directory holding app.env")
		username   = flag.String("username", "", "superuser username (alphanumeric)")
		password   = flag.String("password", "", "superuser password, at least 6 characters")
		email      = flag.String("email", "", "superuser email")
		fullname   = flag.String("fullname", "", "superuser full name, defaults to the username")
	)

	flag.Parse()

	if *username == "" || *email == "" || len(*password) < 6 {
		flag.Usage()
		os.Exit(2)
	}

	if *fullname == "" {
		*fullname = *username
	}

	config, err := configpkg.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}
	defer db.Close()

	ctx := logger.WithContext(context.Background())

	service := userservice.New(userrepo.NewRepoPGS(db))

	user, err := service.CreateSuperuser(ctx, *username, *password, *fullname, *email)
	if err != nil {
		logger.Fatal().Err(err).Str("username", *username).Msg("cannot create superuser")
	}

	logger.Info().Str("username", user.Username).Msg("superuser created")
}
