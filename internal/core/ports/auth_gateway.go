package ports

import "context"

// SignInInput holds the sign-in form fields.
type SignInInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignUpInput holds the registration form fields. PasswordConf is checked
// client-side and never sent.
type SignUpInput struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Password     string `json:"password"`
	PasswordConf string `json:"-"`
}

// AuthGateway is the client for the external auth service. Both calls
// return a signed token whose payload carries the user; failures carry the
// backend's message (surfaced inline on the auth forms).
type AuthGateway interface {
	SignIn(ctx context.Context, input SignInInput) (token string, err error)
	SignUp(ctx context.Context, input SignUpInput) (token string, err error)
}
