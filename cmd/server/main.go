package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/repobook/repobook/internal/credentials"
	"github.com/repobook/repobook/internal/github"
	"github.com/repobook/repobook/internal/handler"
	"github.com/repobook/repobook/internal/session"
	"github.com/repobook/repobook/internal/token"
	"github.com/repobook/repobook/pkg/config"
	"github.com/repobook/repobook/pkg/cookie"
	"github.com/repobook/repobook/pkg/httpserver"
	"github.com/repobook/repobook/pkg/logger"
	"github.com/repobook/repobook/pkg/validator"
)

type appConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	AppName     string `env:"APP_NAME" envDefault:"repobook"`

	Server  httpserver.Config
	Token   token.Config
	Session session.Config
	GitHub  github.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(logger.WithEnvironment(cfg.Environment, cfg.AppName))
	logger.SetAsDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(cfg appConfig, log *slog.Logger) error {
	issuer, err := token.NewIssuer(cfg.Token)
	if err != nil {
		return err
	}

	store := session.NewStore(cfg.Session, log)
	defer func() { _ = store.Close() }()

	searcher := github.NewClient(cfg.GitHub, log)

	api := handler.NewAPI(credentials.NewDefaultValidator(), issuer, searcher, validator.New(), log)
	router := handler.NewRouter(api, store, cookie.New(), cfg.Session, log)

	srv := httpserver.NewFromConfig(cfg.Server, httpserver.WithLogger(log))

	log.Info("starting server",
		slog.String("addr", cfg.Server.Addr),
		slog.String("environment", cfg.Environment))

	return srv.Run(context.Background(), router)
}
