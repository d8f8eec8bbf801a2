package rest

import (
	"context"
	"net/http"

	"github.com/spotcheck/spotcheck/internal/core/ports"
)

// AuthGateway implements ports.AuthGateway against the backend's auth
// endpoints. Unlike the café fetches, failures here keep their message:
// the forms surface it inline.
type AuthGateway struct {
	client *Client
}

func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

var _ ports.AuthGateway = (*AuthGateway)(nil)

type tokenResponse struct {
	Token string `json:"token"`
}

func (g *AuthGateway) SignIn(ctx context.Context, input ports.SignInInput) (string, error) {
	var resp tokenResponse
	if err := g.client.do(ctx, "sign_in", http.MethodPost, "/auth/sign-in", input, &resp, false); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (g *AuthGateway) SignUp(ctx context.Context, input ports.SignUpInput) (string, error) {
	var resp tokenResponse
	if err := g.client.do(ctx, "sign_up", http.MethodPost, "/auth/sign-up", input, &resp, false); err != nil {
		return "", err
	}
	return resp.Token, nil
}
