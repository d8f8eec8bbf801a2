package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/spotcheck/spotcheck/internal/core/domain"
	"github.com/spotcheck/spotcheck/internal/core/ports"
)

// Session holds the current authenticated user, if any. It is an explicit
// instance handed to the components that need it rather than package-level
// state. Lifecycle: restored from the persisted token at construction,
// populated by SignIn/SignUp, cleared by SignOut. Absence of a user is a
// valid state (anonymous browsing).
//
// Like the view-states, a Session is driven from a single goroutine.
type Session struct {
	auth   ports.AuthGateway
	creds  ports.CredentialStore
	logger zerolog.Logger
	user   *domain.User
}

// NewSession builds a session and restores the user from a previously
// persisted token when one is present and still valid. An expired or
// undecodable token is discarded so the app starts signed out.
func NewSession(auth ports.AuthGateway, creds ports.CredentialStore, logger zerolog.Logger) *Session {
	s := &Session{auth: auth, creds: creds, logger: logger}
	s.restore()
	return s
}

func (s *Session) restore() {
	token, err := s.creds.Token()
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read stored token")
		return
	}
	if token == "" {
		return
	}

	user, err := userFromToken(token)
	if err != nil {
		s.logger.Info().Err(err).Msg("discarding stored token")
		if cerr := s.creds.ClearToken(); cerr != nil {
			s.logger.Warn().Err(cerr).Msg("failed to clear stored token")
		}
		return
	}
	s.user = user
}

// CurrentUser returns the signed-in user, or nil.
func (s *Session) CurrentUser() *domain.User { return s.user }

// IsAuthenticated reports whether a user is signed in. Gates the
// authenticated-only affordances (favoriting, the protected full list).
func (s *Session) IsAuthenticated() bool { return s.user != nil }

// IsAdmin reports whether the signed-in user holds the admin role. Gates
// every admin affordance.
func (s *Session) IsAdmin() bool { return s.user != nil && s.user.IsAdmin() }

// SignIn authenticates against the remote auth service, persists the
// returned token and holds the user decoded from its payload. The error
// message, if any, is meant for inline display on the form.
func (s *Session) SignIn(ctx context.Context, input ports.SignInInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.auth.SignIn(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.adopt(token)
}

// SignUp registers a new account and signs the user in. Field presence and
// the password confirmation are checked client-side before any call.
func (s *Session) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Role == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if input.Role != domain.RoleAdmin && input.Role != domain.RoleStudent {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidCredentials, input.Role)
	}
	if input.Password != input.PasswordConf {
		return nil, fmt.Errorf("%w: passwords do not match", domain.ErrInvalidCredentials)
	}

	token, err := s.auth.SignUp(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.adopt(token)
}

// SignOut clears the stored credential and the in-memory user.
func (s *Session) SignOut() {
	if err := s.creds.ClearToken(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear stored token")
	}
	s.user = nil
}

// adopt persists the token and sets the user decoded from it.
func (s *Session) adopt(token string) (*domain.User, error) {
	user, err := userFromToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.creds.SetToken(token); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist token")
	}
	s.user = user
	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("signed in")
	return user, nil
}

// userFromToken decodes the user embedded in the token's "payload" claim.
// The signature is not verified: the client never holds the signing secret,
// and the backend re-verifies the token on every authenticated call. An
// expired token is rejected so restore() drops it.
func userFromToken(token string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(time.Now()) {
		return nil, fmt.Errorf("token expired at %s", exp.Format(time.RFC3339))
	}

	payload, _ := claims["payload"].(map[string]any)
	if payload == nil {
		// Some backend variants put the fields at the top level.
		payload = claims
	}

	username, _ := payload["username"].(string)
	role, _ := payload["role"].(string)
	if username == "" || role == "" {
		return nil, fmt.Errorf("token payload missing user fields")
	}
	return &domain.User{Username: username, Role: role}, nil
}
