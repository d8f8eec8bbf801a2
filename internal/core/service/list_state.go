package service

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/spotcheck/spotcheck/internal/core/domain"
	"github.com/spotcheck/spotcheck/internal/core/ports"
)

// Phase is a view-state machine state.
type Phase string

const (
	PhaseLoading  Phase = "loading"
	PhaseEmpty    Phase = "loaded-empty"
	PhaseNonEmpty Phase = "loaded-nonempty"
	PhaseFound    Phase = "found"
	PhaseNotFound Phase = "not-found"
)

// StatusAll is the list filter value that selects the unfiltered full list.
const StatusAll domain.CafeStatus = ""

// DashboardSummary holds the aggregate figures derived from a loaded café
// collection.
type DashboardSummary struct {
	TotalCafes     int
	AvailableCafes int
	TotalSeats     int
	AvailableSeats int
}

// ListState drives the café list view: it owns its copy of the fetched
// collection, a server-side status filter and a client-side name search,
// plus the device-local favorite set read at mount.
//
// The status filter picks the gateway operation (ListAll for StatusAll,
// ListByStatus otherwise); the search term only re-filters the collection
// already in memory. A fetch failure degrades to an empty collection,
// indistinguishable from truly empty in the rendered view; the structured
// error stays readable through LastError.
type ListState struct {
	gateway ports.CafeGateway
	favs    ports.FavoriteStore
	logger  zerolog.Logger

	phase        Phase
	cafes        []domain.Cafe
	statusFilter domain.CafeStatus
	search       string
	favorites    []string
	lastErr      error

	// seq increments on every issued fetch; a response only lands if no
	// newer fetch was issued meanwhile, so a stale status-filter response
	// cannot clobber the active filter's data.
	seq uint64
}

// NewListState builds the list view-state and reads the favorite set from
// the store (the view-mount read). It does not fetch; call Refresh.
func NewListState(gateway ports.CafeGateway, favs ports.FavoriteStore, logger zerolog.Logger) *ListState {
	l := &ListState{gateway: gateway, favs: favs, logger: logger, phase: PhaseLoading}
	stored, err := favs.Favorites()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read favorites")
	}
	l.favorites = stored
	return l
}

// Refresh issues a fetch for the current status filter.
func (l *ListState) Refresh(ctx context.Context) {
	l.seq++
	seq := l.seq
	l.phase = PhaseLoading

	var (
		cafes []domain.Cafe
		err   error
	)
	if l.statusFilter == StatusAll {
		cafes, err = l.gateway.ListAll(ctx)
	} else {
		cafes, err = l.gateway.ListByStatus(ctx, l.statusFilter)
	}

	if seq != l.seq {
		// A newer fetch was issued while this one was pending; its result
		// already landed (or will). Discard this one.
		l.logger.Debug().Uint64("seq", seq).Msg("discarding stale list response")
		return
	}

	l.lastErr = err
	if err != nil {
		l.logger.Warn().Err(err).Str("status", string(l.statusFilter)).Msg("list fetch failed")
		cafes = nil
	}
	l.cafes = cafes
	l.phase = phaseFor(len(l.Visible()))
}

// SetStatusFilter changes the server-side filter and re-fetches.
func (l *ListState) SetStatusFilter(ctx context.Context, status domain.CafeStatus) {
	l.statusFilter = status
	l.Refresh(ctx)
}

// StatusFilter returns the active server-side filter (StatusAll = none).
func (l *ListState) StatusFilter() domain.CafeStatus { return l.statusFilter }

// SetSearch updates the client-side search term. No fetch is issued; the
// already-loaded collection is re-filtered in place.
func (l *ListState) SetSearch(term string) {
	l.search = term
	if l.phase != PhaseLoading {
		l.phase = phaseFor(len(l.Visible()))
	}
}

// Visible returns the cafés matching the search term: a case-insensitive
// substring match against the café name only.
func (l *ListState) Visible() []domain.Cafe {
	if l.search == "" {
		return l.cafes
	}
	needle := strings.ToLower(l.search)
	var out []domain.Cafe
	for _, c := range l.cafes {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c)
		}
	}
	return out
}

// Phase returns the current machine state.
func (l *ListState) Phase() Phase { return l.phase }

// LastError returns the failure behind the current empty view, if any.
// The default rendering ignores it for parity with the original contract.
func (l *ListState) LastError() error { return l.lastErr }

// Summary derives the dashboard aggregates from the loaded collection.
func (l *ListState) Summary() DashboardSummary {
	var s DashboardSummary
	s.TotalCafes = len(l.cafes)
	for _, c := range l.cafes {
		if c.Status == domain.StatusAvailable {
			s.AvailableCafes++
		}
		s.TotalSeats += c.TotalSeats
		s.AvailableSeats += c.AvailableSeats
	}
	return s
}

// ToggleFavorite adds or removes a café id from the favorite set and
// writes the set through to the store. Toggling twice restores the
// original set. Returns whether the id is a favorite afterwards.
func (l *ListState) ToggleFavorite(id string) bool {
	if i := slices.Index(l.favorites, id); i >= 0 {
		l.favorites = slices.Delete(l.favorites, i, i+1)
	} else {
		l.favorites = append(l.favorites, id)
	}
	if err := l.favs.SetFavorites(l.favorites); err != nil {
		l.logger.Warn().Err(err).Msg("failed to persist favorites")
	}
	return l.IsFavorite(id)
}

// IsFavorite reports whether the café id is in the favorite set.
func (l *ListState) IsFavorite(id string) bool {
	return slices.Contains(l.favorites, id)
}

// Favorites returns the favorite café ids in insertion order.
func (l *ListState) Favorites() []string { return l.favorites }

func phaseFor(visible int) Phase {
	if visible == 0 {
		return PhaseEmpty
	}
	return PhaseNonEmpty
}
