package ports

import (
	"context"

	"github.com/spotcheck/spotcheck/internal/core/domain"
)

// CredentialStore persists the session token across restarts, device-scoped
// (the localStorage "token" key of the original frontend).
type CredentialStore interface {
	// Token returns the stored token, or "" when none is stored.
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error
}

// FavoriteStore persists the favorite café-id set, device-scoped and shared
// by anyone using the device (the localStorage "favoriteCafes" key). Reads
// happen at view mount, writes on toggle; last write wins.
type FavoriteStore interface {
	Favorites() ([]string, error)
	SetFavorites(ids []string) error
}

// CafeCache is a keyed café cache (id → record) shared by all views, with
// explicit invalidation on mutation. All operations are best-effort:
// implementations log failures instead of returning them, and a cold or
// broken cache only costs an extra fetch.
type CafeCache interface {
	Get(ctx context.Context, id string) (*domain.Cafe, bool)
	Put(ctx context.Context, cafe domain.Cafe)
	PutAll(ctx context.Context, cafes []domain.Cafe)
	Invalidate(ctx context.Context, id string)
	InvalidateAll(ctx context.Context)
}
