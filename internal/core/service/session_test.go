package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spotcheck/spotcheck/internal/core/domain"
	"github.com/spotcheck/spotcheck/internal/core/ports"
)

// stubAuth implements ports.AuthGateway.
type stubAuth struct {
	signInFn func(ctx context.Context, input ports.SignInInput) (string, error)
	signUpFn func(ctx context.Context, input ports.SignUpInput) (string, error)
}

var _ ports.AuthGateway = (*stubAuth)(nil)

func (s *stubAuth) SignIn(ctx context.Context, input ports.SignInInput) (string, error) {
	if s.signInFn == nil {
		return "", errors.New("unexpected SignIn call")
	}
	return s.signInFn(ctx, input)
}

func (s *stubAuth) SignUp(ctx context.Context, input ports.SignUpInput) (string, error) {
	if s.signUpFn == nil {
		return "", errors.New("unexpected SignUp call")
	}
	return s.signUpFn(ctx, input)
}

// signToken builds a token shaped like the backend's: the user rides in the
// "payload" claim.
func signToken(t *testing.T, username, role string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"payload": map[string]any{"username": username, "role": role},
		"exp":     exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestSessionRestoresValidToken(t *testing.T) {
	store := &memStore{token: signToken(t, "maria", domain.RoleAdmin, time.Now().Add(time.Hour))}

	s := NewSession(&stubAuth{}, store, discardLogger)

	user := s.CurrentUser()
	if user == nil {
		t.Fatal("expected a restored user")
	}
	if user.Username != "maria" || user.Role != domain.RoleAdmin {
		t.Fatalf("restored user = %+v, want maria/admin", user)
	}
	if !s.IsAdmin() {
		t.Fatal("IsAdmin should be true for the admin role")
	}
}

func TestSessionDiscardsExpiredToken(t *testing.T) {
	store := &memStore{token: signToken(t, "maria", domain.RoleStudent, time.Now().Add(-time.Hour))}

	s := NewSession(&stubAuth{}, store, discardLogger)

	if s.IsAuthenticated() {
		t.Fatal("an expired token must not restore a user")
	}
	if store.token != "" {
		t.Fatal("the expired token should be cleared from the store")
	}
}

func TestSessionDiscardsUndecodableToken(t *testing.T) {
	store := &memStore{token: "not-a-jwt"}

	s := NewSession(&stubAuth{}, store, discardLogger)

	if s.IsAuthenticated() {
		t.Fatal("garbage in the store must not restore a user")
	}
	if store.token != "" {
		t.Fatal("the undecodable token should be cleared from the store")
	}
}

func TestSessionSignInPersistsTokenAndUser(t *testing.T) {
	token := signToken(t, "sam", domain.RoleStudent, time.Now().Add(time.Hour))
	auth := &stubAuth{
		signInFn: func(_ context.Context, input ports.SignInInput) (string, error) {
			if input.Username != "sam" || input.Password != "hunter2" {
				t.Fatalf("credentials forwarded as %+v", input)
			}
			return token, nil
		},
	}
	store := &memStore{}

	s := NewSession(auth, store, discardLogger)
	user, err := s.SignIn(context.Background(), ports.SignInInput{Username: "sam", Password: "hunter2"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if user.Username != "sam" || user.Role != domain.RoleStudent {
		t.Fatalf("user = %+v, want sam/student", user)
	}
	if store.token != token {
		t.Fatal("token was not persisted")
	}
	if s.IsAdmin() {
		t.Fatal("a student must not pass IsAdmin")
	}
}

func TestSessionSignInRejectsBlankFields(t *testing.T) {
	s := NewSession(&stubAuth{}, &memStore{}, discardLogger)

	_, err := s.SignIn(context.Background(), ports.SignInInput{Username: "sam"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSessionSignUpValidation(t *testing.T) {
	s := NewSession(&stubAuth{}, &memStore{}, discardLogger)
	ctx := context.Background()

	base := ports.SignUpInput{
		Username: "sam", Email: "sam@campus.edu", Role: domain.RoleStudent,
		Password: "hunter2", PasswordConf: "hunter2",
	}

	bad := base
	bad.PasswordConf = "different"
	if _, err := s.SignUp(ctx, bad); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("mismatched confirmation: err = %v, want ErrInvalidCredentials", err)
	}

	bad = base
	bad.Role = "barista"
	if _, err := s.SignUp(ctx, bad); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown role: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestSessionSignUpSignsIn(t *testing.T) {
	token := signToken(t, "sam", domain.RoleStudent, time.Now().Add(time.Hour))
	auth := &stubAuth{
		signUpFn: func(_ context.Context, input ports.SignUpInput) (string, error) {
			return token, nil
		},
	}
	store := &memStore{}

	s := NewSession(auth, store, discardLogger)
	user, err := s.SignUp(context.Background(), ports.SignUpInput{
		Username: "sam", Email: "sam@campus.edu", Role: domain.RoleStudent,
		Password: "hunter2", PasswordConf: "hunter2",
	})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user == nil || !s.IsAuthenticated() {
		t.Fatal("registration should leave the session signed in")
	}
	if store.token != token {
		t.Fatal("token was not persisted")
	}
}

func TestSessionSignOut(t *testing.T) {
	store := &memStore{token: signToken(t, "maria", domain.RoleAdmin, time.Now().Add(time.Hour))}
	s := NewSession(&stubAuth{}, store, discardLogger)

	s.SignOut()

	if s.IsAuthenticated() {
		t.Fatal("SignOut should clear the in-memory user")
	}
	if store.token != "" {
		t.Fatal("SignOut should clear the stored token")
	}
}

func TestSessionTopLevelClaimsFallback(t *testing.T) {
	claims := jwt.MapClaims{
		"username": "maria",
		"role":     domain.RoleAdmin,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	s := NewSession(&stubAuth{}, &memStore{token: token}, discardLogger)
	if user := s.CurrentUser(); user == nil || user.Username != "maria" {
		t.Fatalf("user = %+v, want maria decoded from top-level claims", s.CurrentUser())
	}
}
