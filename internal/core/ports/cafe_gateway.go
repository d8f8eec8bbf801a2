package ports

import (
	"context"

	"github.com/spotcheck/spotcheck/internal/core/domain"
)

// CafeDraft carries a café record without server-owned fields (id,
// updatedAt). It is what the admin form edits and what create/update send
// on the wire. Validation tags enforce the 0 <= availableSeats <= totalSeats
// invariant before anything is submitted.
type CafeDraft struct {
	Name           string              `json:"name"           validate:"required"`
	Location       string              `json:"location"       validate:"required"`
	Description    string              `json:"description,omitempty"`
	Emoji          string              `json:"emoji,omitempty"`
	Photo          string              `json:"photo,omitempty"`
	TotalSeats     int                 `json:"totalSeats"     validate:"gte=0"`
	AvailableSeats int                 `json:"availableSeats" validate:"gte=0,ltefield=TotalSeats"`
	Status         domain.CafeStatus   `json:"status"         validate:"oneof=Available Filling Full"`
	Hours          domain.OpeningHours `json:"hours"`
	Amenities      domain.Amenities    `json:"amenities"`
	NoiseLevel     domain.NoiseLevel   `json:"noiseLevel"     validate:"omitempty,oneof=Quiet Moderate Loud"`
}

// CafeGateway is the stateless client for the backend's /cafes resource.
// One operation per remote capability; implementations own no café state.
//
// Failures are reported as typed errors (domain.ErrCafeNotFound,
// *domain.RemoteError, *domain.TransportError). The view-state layer is
// responsible for degrading them to empty/absent results where the UI
// contract requires it.
type CafeGateway interface {
	// ListAll returns every café in server order. Requires a bearer token.
	ListAll(ctx context.Context) ([]domain.Cafe, error)

	// GetByID returns a single café, or domain.ErrCafeNotFound. Public.
	GetByID(ctx context.Context, id string) (*domain.Cafe, error)

	// ListByStatus returns the cafés matching one status, filtered
	// server-side. Public.
	ListByStatus(ctx context.Context, status domain.CafeStatus) ([]domain.Cafe, error)

	// Create submits a new café and returns the created record with its
	// assigned id. Admin only. The returned record is the backend payload
	// as-is: callers must not assume a nil error implies persistence and
	// should re-fetch the list to confirm (observed backend contract).
	Create(ctx context.Context, draft CafeDraft) (*domain.Cafe, error)

	// Update replaces a café with the full draft. Admin only.
	Update(ctx context.Context, id string, draft CafeDraft) (*domain.Cafe, error)

	// PatchSeats updates only the available-seat count, with optional notes.
	// Admin only.
	PatchSeats(ctx context.Context, id string, availableSeats int, notes string) (*domain.Cafe, error)

	// Delete removes a café. Admin only.
	Delete(ctx context.Context, id string) error

	// StatsOverview returns the aggregate counts. Admin only.
	StatsOverview(ctx context.Context) (*domain.StatsOverview, error)
}
