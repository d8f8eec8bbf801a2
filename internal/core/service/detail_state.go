package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/spotcheck/spotcheck/internal/core/domain"
	"github.com/spotcheck/spotcheck/internal/core/ports"
)

// DetailState drives the single-café view. Machine states: loading, found,
// not-found. Any fetch failure lands in not-found: the view renders a
// "Café not found" message, never an error state, with the structured
// error kept in LastError.
type DetailState struct {
	gateway ports.CafeGateway
	logger  zerolog.Logger

	phase   Phase
	cafe    *domain.Cafe
	lastErr error
}

func NewDetailState(gateway ports.CafeGateway, logger zerolog.Logger) *DetailState {
	return &DetailState{gateway: gateway, logger: logger, phase: PhaseLoading}
}

// Load fetches the café with the given id. The stored record has display
// defaults applied (emoji, photo, hours, amenities, noise level).
func (d *DetailState) Load(ctx context.Context, id string) {
	d.phase = PhaseLoading
	d.cafe = nil
	d.lastErr = nil

	cafe, err := d.gateway.GetByID(ctx, id)
	if err != nil || cafe == nil {
		if err != nil && !errors.Is(err, domain.ErrCafeNotFound) {
			d.logger.Warn().Err(err).Str("cafe_id", id).Msg("detail fetch failed")
			d.lastErr = err
		}
		d.phase = PhaseNotFound
		return
	}

	withDefaults := cafe.ApplyDefaults()
	d.cafe = &withDefaults
	d.phase = PhaseFound
}

// Phase returns the current machine state.
func (d *DetailState) Phase() Phase { return d.phase }

// Cafe returns the loaded record, or nil outside the found state.
func (d *DetailState) Cafe() *domain.Cafe { return d.cafe }

// LastError returns the failure behind a not-found view, if the cause was
// not genuine absence.
func (d *DetailState) LastError() error { return d.lastErr }

// Occupancy returns the derived occupancy percentage of the loaded café,
// or 0 when nothing is loaded.
func (d *DetailState) Occupancy() int {
	if d.cafe == nil {
		return 0
	}
	return d.cafe.OccupancyPercent()
}
