package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ericfisherdev/crmclient/internal/domain/model"
	"github.com/ericfisherdev/crmclient/internal/domain/port/driven"
)

// SessionService owns the credential lifecycle: it is the only component
// that writes to the TokenStore.
type SessionService struct {
	client driven.CRMClient
	tokens driven.TokenStore
	logger *slog.Logger
	now    func() time.Time
}

// NewSessionService creates a SessionService with the required dependencies.
func NewSessionService(client driven.CRMClient, tokens driven.TokenStore) *SessionService {
	return &SessionService{
		client: client,
		tokens: tokens,
		logger: slog.Default(),
		now:    time.Now,
	}
}

// Login authenticates and stores the returned token. The token is stored
// only when the response is Accepted: a non-empty token and an Oid that is
// not null.
func (s *SessionService) Login(ctx context.Context, username, password string) (model.LoginResponse, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return model.LoginResponse{}, ErrMissingCredentials
	}

	resp, err := s.client.Authenticate(ctx, model.LoginRequest{Username: username, Password: password})
	if err != nil {
		s.logger.Warn("login failed", "username", username, "kind", model.KindOf(err), "error", err)
		if errors.Is(err, model.ErrAuthFailure) {
			return model.LoginResponse{}, fmt.Errorf("%w: %w", ErrLoginRejected, err)
		}
		return model.LoginResponse{}, err
	}

	if !resp.Accepted() {
		s.logger.Warn("login returned no session", "username", username)
		return model.LoginResponse{}, ErrLoginRejected
	}

	s.tokens.Set(resp.Token)
	s.logger.Info("login succeeded", "username", resp.UserName, "oid", resp.Oid, "token_prefix", tokenPrefix(resp.Token))
	return resp, nil
}

// Logout drops the credential.
func (s *SessionService) Logout() {
	s.tokens.Clear()
	s.logger.Info("logged out")
}

// Authenticated reports whether a usable credential is held. An expired
// token is cleared as a side effect.
func (s *SessionService) Authenticated() bool {
	if !s.tokens.Has() {
		return false
	}
	if s.tokens.Expired(s.now()) {
		s.logger.Info("token expired, clearing session")
		s.tokens.Clear()
		return false
	}
	return true
}

// Require returns ErrReauthRequired unless Authenticated.
func (s *SessionService) Require() error {
	if !s.Authenticated() {
		return ErrReauthRequired
	}
	return nil
}

// Check inspects an error from a CRM call. An auth failure clears the
// credential and is rewrapped as ErrReauthRequired; other errors are
// returned unchanged.
func (s *SessionService) Check(err error) error {
	if err == nil || !errors.Is(err, model.ErrAuthFailure) {
		return err
	}
	s.tokens.Clear()
	s.logger.Warn("server rejected credential, session cleared", "error", err)
	return fmt.Errorf("%w: %w", ErrReauthRequired, err)
}

// tokenPrefix returns enough of a token to correlate log lines without
// leaking a usable credential.
func tokenPrefix(token string) string {
	const n = 8
	if len(token) <= n {
		return "***"
	}
	return token[:n] + "..."
}
