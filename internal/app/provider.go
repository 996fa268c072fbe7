package app

import (
	"database/sql"
	"fmt"

	"github.com/avencillado/blognest/internal/config"
	"github.com/avencillado/blognest/internal/platform/email"
	"github.com/avencillado/blognest/internal/platform/hash"
	"github.com/avencillado/blognest/internal/platform/jwt"
	"github.com/avencillado/blognest/internal/platform/router"
	"github.com/avencillado/blognest/internal/platform/validation"
)

// Secrets holds the key material read once at bootstrap. Never logged.
type Secrets struct {
	TokenKey string
	CodeKey  string
}

type Provider struct {
	DB         *sql.DB
	Signer     jwt.Signer
	CodeSigner hash.Signer
	Mailer     email.Mailer
	Validator  validation.Validator
	Hasher     hash.Hasher
	Router     router.Router
}

func newProvider(cfg *config.Config, secrets *Secrets, dbConn *sql.DB) (*Provider, error) {
	signer := jwt.NewGolangJWTSigner(cfg.JWT, secrets.TokenKey)
	mailer, err := email.NewSMTPMailer(cfg.SMTP, cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("new smtp mailer: %w", err)
	}
	hasher := hash.NewArgon2Hasher(cfg.Argon2, secrets.TokenKey)
	codeSigner := hash.NewHMACSigner(secrets.CodeKey)
	router := router.NewGoexpressRouter()
	validator := validation.NewPlaygroundValidator()

	provider := &Provider{
		DB:         dbConn,
		Signer:     signer,
		CodeSigner: codeSigner,
		Hasher:     hasher,
		Mailer:     mailer,
		Router:     router,
		Validator:  validator,
	}

	return provider, nil
}
