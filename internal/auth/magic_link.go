package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wishlane/wishlane-backend/pkg/config"
	"github.com/wishlane/wishlane-backend/pkg/db/models"
	pkgerrors "github.com/wishlane/wishlane-backend/pkg/errors"
	"github.com/wishlane/wishlane-backend/pkg/mailer"
)

const (
	invalidLinkMessage  = "invalid or expired sign-in link"
	magicLinkTokenBytes = 32
)

type loginTokenRepository interface {
	Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*models.LoginToken, error)
	FindByHash(ctx context.Context, tokenHash string) (*models.LoginToken, error)
	Consume(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

type linkMailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// magicLinkFlow issues and redeems emailed single-use sign-in tokens.
type magicLinkFlow struct {
	tokens loginTokenRepository
	mailer linkMailer
	cfg    config.MagicLinkConfig
}

// issue creates a token for the user and mails the sign-in link. The raw
// token is never persisted, only its SHA-256.
func (f *magicLinkFlow) issue(ctx context.Context, user *models.User) error {
	raw, err := generateLinkToken()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate link token")
	}

	expiresAt := time.Now().UTC().Add(f.cfg.TokenTTL)
	if _, err := f.tokens.Create(ctx, user.ID, hashLinkToken(raw), expiresAt); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store link token")
	}

	msg := mailer.Message{
		To:      user.Email,
		From:    f.cfg.FromEmail,
		Subject: "Sign in to Wishlane",
		Body:    fmt.Sprintf("Follow this link to sign in: %s", f.callbackURL(raw)),
	}
	if err := f.mailer.Send(ctx, msg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "send link mail")
	}
	return nil
}

// redeem validates and consumes a raw token, returning the owning user id.
func (f *magicLinkFlow) redeem(ctx context.Context, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidLinkMessage)
	}

	token, err := f.tokens.FindByHash(ctx, hashLinkToken(raw))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidLinkMessage)
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load link token")
	}

	now := time.Now().UTC()
	if now.After(token.ExpiresAt) || token.ConsumedAt != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidLinkMessage)
	}

	consumed, err := f.tokens.Consume(ctx, token.ID, now)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "consume link token")
	}
	if !consumed {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidLinkMessage)
	}

	return token.UserID, nil
}

func (f *magicLinkFlow) callbackURL(raw string) string {
	return fmt.Sprintf("%s?token=%s", f.cfg.CallbackURL, url.QueryEscape(raw))
}

func generateLinkToken() (string, error) {
	buf := make([]byte, magicLinkTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashLinkToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
