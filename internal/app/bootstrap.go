package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ferdiebergado/goexpress"
	"github.com/ferdiebergado/gopherkit/env"

	"github.com/avencillado/blognest/internal/config"
	"github.com/avencillado/blognest/internal/middleware"
	"github.com/avencillado/blognest/internal/pkg/message"
	"github.com/avencillado/blognest/internal/platform/db"
)

const cfgFile = "config.json"

func Run(baseCtx context.Context) error {
	slog.Info("Initializing...")

	signalCtx, stop := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if os.Getenv("ENV") != "production" {
		if err := env.Load(".env"); err != nil {
			return fmt.Errorf("load env: %w", err)
		}
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	dsn, err := getEnv("DATABASE_URL")
	if err != nil {
		return err
	}

	dbConn, err := db.NewConnection(signalCtx, cfg.DB, dsn)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if err := db.RunMigrations(signalCtx, dbConn); err != nil {
		return err
	}

	secrets, err := loadSecrets()
	if err != nil {
		return err
	}

	provider, err := newProvider(cfg, secrets, dbConn)
	if err != nil {
		return err
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.InjectWriter,
		goexpress.RecoverFromPanic,
		middleware.LogRequest,
		middleware.CheckContentType,
	}

	application := New(cfg, provider, middlewares)
	if err := application.Start(signalCtx); err != nil {
		return err
	}

	return application.Shutdown()
}

func loadSecrets() (*Secrets, error) {
	tokenKey, err := getEnv("TOKEN_KEY")
	if err != nil {
		return nil, err
	}

	codeKey, err := getEnv("CODE_KEY")
	if err != nil {
		return nil, err
	}

	return &Secrets{TokenKey: tokenKey, CodeKey: codeKey}, nil
}

func getEnv(key string) (string, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return "", fmt.Errorf(message.EnvErrFmt, key)
	}
	return val, nil
}
