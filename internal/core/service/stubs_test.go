package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/spotcheck/spotcheck/internal/core/domain"
	"github.com/spotcheck/spotcheck/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// stub gateway
// ---------------------------------------------------------------------------

// stubGateway implements ports.CafeGateway with per-operation callbacks so a
// test only wires the calls it cares about. Unset callbacks return empty
// results.
type stubGateway struct {
	listAllFn      func(ctx context.Context) ([]domain.Cafe, error)
	getByIDFn      func(ctx context.Context, id string) (*domain.Cafe, error)
	listByStatusFn func(ctx context.Context, status domain.CafeStatus) ([]domain.Cafe, error)
	createFn       func(ctx context.Context, draft ports.CafeDraft) (*domain.Cafe, error)
	updateFn       func(ctx context.Context, id string, draft ports.CafeDraft) (*domain.Cafe, error)
	patchSeatsFn   func(ctx context.Context, id string, availableSeats int, notes string) (*domain.Cafe, error)
	deleteFn       func(ctx context.Context, id string) error
	statsFn        func(ctx context.Context) (*domain.StatsOverview, error)
}

var _ ports.CafeGateway = (*stubGateway)(nil)

func (s *stubGateway) ListAll(ctx context.Context) ([]domain.Cafe, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx)
}

func (s *stubGateway) GetByID(ctx context.Context, id string) (*domain.Cafe, error) {
	if s.getByIDFn == nil {
		return nil, domain.ErrCafeNotFound
	}
	return s.getByIDFn(ctx, id)
}

func (s *stubGateway) ListByStatus(ctx context.Context, status domain.CafeStatus) ([]domain.Cafe, error) {
	if s.listByStatusFn == nil {
		return nil, nil
	}
	return s.listByStatusFn(ctx, status)
}

func (s *stubGateway) Create(ctx context.Context, draft ports.CafeDraft) (*domain.Cafe, error) {
	if s.createFn == nil {
		return &domain.Cafe{}, nil
	}
	return s.createFn(ctx, draft)
}

func (s *stubGateway) Update(ctx context.Context, id string, draft ports.CafeDraft) (*domain.Cafe, error) {
	if s.updateFn == nil {
		return &domain.Cafe{}, nil
	}
	return s.updateFn(ctx, id, draft)
}

func (s *stubGateway) PatchSeats(ctx context.Context, id string, availableSeats int, notes string) (*domain.Cafe, error) {
	if s.patchSeatsFn == nil {
		return &domain.Cafe{}, nil
	}
	return s.patchSeatsFn(ctx, id, availableSeats, notes)
}

func (s *stubGateway) Delete(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

func (s *stubGateway) StatsOverview(ctx context.Context) (*domain.StatsOverview, error) {
	if s.statsFn == nil {
		return &domain.StatsOverview{}, nil
	}
	return s.statsFn(ctx)
}

// ---------------------------------------------------------------------------
// in-memory stores
// ---------------------------------------------------------------------------

// memStore implements ports.CredentialStore and ports.FavoriteStore in
// memory, counting writes so tests can assert on persistence.
type memStore struct {
	token      string
	favorites  []string
	tokenSets  int
	tokenClear int
	favSets    int
}

var (
	_ ports.CredentialStore = (*memStore)(nil)
	_ ports.FavoriteStore   = (*memStore)(nil)
)

func (m *memStore) Token() (string, error) { return m.token, nil }

func (m *memStore) SetToken(token string) error {
	m.token = token
	m.tokenSets++
	return nil
}

func (m *memStore) ClearToken() error {
	m.token = ""
	m.tokenClear++
	return nil
}

func (m *memStore) Favorites() ([]string, error) { return m.favorites, nil }

func (m *memStore) SetFavorites(ids []string) error {
	m.favorites = ids
	m.favSets++
	return nil
}

// ---------------------------------------------------------------------------
// fixtures
// ---------------------------------------------------------------------------

func fixtureCafes() []domain.Cafe {
	return []domain.Cafe{
		{ID: "c1", Name: "Library Brew", Location: "Main Library", TotalSeats: 100, AvailableSeats: 30, Status: domain.StatusAvailable},
		{ID: "c2", Name: "Engineering Grind", Location: "Eng Building", TotalSeats: 60, AvailableSeats: 5, Status: domain.StatusFilling},
		{ID: "c3", Name: "Quad Espresso", Location: "The Quad", TotalSeats: 40, AvailableSeats: 0, Status: domain.StatusFull},
	}
}
