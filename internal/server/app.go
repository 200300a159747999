// Package server wires the application together: storage, redis, mail
// transport, the domain services and the HTTP server, plus graceful
// shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"accountd/internal/logging"
	"accountd/internal/server/accounts"
	"accountd/internal/server/avatars"
	"accountd/internal/server/config"
	"accountd/internal/server/httpapi"
	"accountd/internal/server/mail"
	"accountd/internal/server/profiles"
	"accountd/internal/server/store"
	"accountd/internal/server/tokens"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := store.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := store.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis init error: %w", err)
	}

	mailer := mail.NewFallbackMailer(newMailer(cfg, logger), logger)

	accountSvc := accounts.NewService(db, repos, mailer, cfg, logger)
	tokenSvc := tokens.NewService(repos.Users(db), tokens.NewRedisBlacklist(redisClient), cfg, logger)
	profileSvc := profiles.NewService(repos.Profiles(db), repos.Users(db), avatars.NewS3Store(cfg), logger)

	srv := httpapi.NewServer(accountSvc, tokenSvc, profileSvc, cfg, logger)

	return &App{config: cfg, logger: logger, server: srv}, nil
}

func newMailer(cfg *config.Config, logger logging.Logger) mail.Mailer {
	if cfg.MailBackend == config.MailBackendSMTP {
		return mail.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom)
	}
	return mail.NewConsoleMailer(logger)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
