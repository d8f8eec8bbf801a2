package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/spotcheck/spotcheck/internal/core/domain"
	"github.com/spotcheck/spotcheck/internal/core/ports"
	"github.com/spotcheck/spotcheck/internal/metrics"
)

const cafesPath = "/cafes"

// CafeGateway implements ports.CafeGateway against the backend's /cafes
// resource.
type CafeGateway struct {
	client *Client
}

func NewCafeGateway(client *Client) *CafeGateway {
	return &CafeGateway{client: client}
}

var _ ports.CafeGateway = (*CafeGateway)(nil)

func (g *CafeGateway) ListAll(ctx context.Context) ([]domain.Cafe, error) {
	var cafes []domain.Cafe
	if err := g.client.do(ctx, "list_all", http.MethodGet, cafesPath, nil, &cafes, true); err != nil {
		return nil, err
	}
	return cafes, nil
}

func (g *CafeGateway) GetByID(ctx context.Context, id string) (*domain.Cafe, error) {
	var cafe domain.Cafe
	if err := g.client.do(ctx, "get_by_id", http.MethodGet, cafesPath+"/"+url.PathEscape(id), nil, &cafe, false); err != nil {
		return nil, err
	}
	return &cafe, nil
}

func (g *CafeGateway) ListByStatus(ctx context.Context, status domain.CafeStatus) ([]domain.Cafe, error) {
	var cafes []domain.Cafe
	path := cafesPath + "/status/" + url.PathEscape(string(status))
	if err := g.client.do(ctx, "list_by_status", http.MethodGet, path, nil, &cafes, false); err != nil {
		return nil, err
	}
	return cafes, nil
}

// Create posts a new café draft. The backend response body is decoded and
// returned without gating on the response status: a non-success create can
// therefore look like a success with a zero-valued record. This mirrors the
// deployed contract and the admin flow compensates by re-fetching the list
// after every submit; see the ports.CafeGateway doc before changing it.
func (g *CafeGateway) Create(ctx context.Context, draft ports.CafeDraft) (*domain.Cafe, error) {
	status, data, err := g.client.roundTrip(ctx, "create", http.MethodPost, cafesPath, draft, true)
	if err != nil {
		return nil, err
	}

	if status >= http.StatusBadRequest {
		g.client.logger.Warn().Int("status", status).Msg("create returned non-success; payload passed through")
		metrics.APIRequestsTotal.WithLabelValues("create", "remote_error").Inc()
	} else {
		metrics.APIRequestsTotal.WithLabelValues("create", "ok").Inc()
	}

	var cafe domain.Cafe
	if len(data) > 0 {
		_ = json.Unmarshal(data, &cafe)
	}
	return &cafe, nil
}

func (g *CafeGateway) Update(ctx context.Context, id string, draft ports.CafeDraft) (*domain.Cafe, error) {
	var cafe domain.Cafe
	if err := g.client.do(ctx, "update", http.MethodPut, cafesPath+"/"+url.PathEscape(id), draft, &cafe, true); err != nil {
		return nil, err
	}
	return &cafe, nil
}

type patchSeatsRequest struct {
	AvailableSeats int    `json:"availableSeats"`
	Notes          string `json:"notes"`
}

func (g *CafeGateway) PatchSeats(ctx context.Context, id string, availableSeats int, notes string) (*domain.Cafe, error) {
	var cafe domain.Cafe
	path := cafesPath + "/" + url.PathEscape(id) + "/seats"
	body := patchSeatsRequest{AvailableSeats: availableSeats, Notes: notes}
	if err := g.client.do(ctx, "patch_seats", http.MethodPatch, path, body, &cafe, true); err != nil {
		return nil, err
	}
	return &cafe, nil
}

func (g *CafeGateway) Delete(ctx context.Context, id string) error {
	return g.client.do(ctx, "delete", http.MethodDelete, cafesPath+"/"+url.PathEscape(id), nil, nil, true)
}

func (g *CafeGateway) StatsOverview(ctx context.Context) (*domain.StatsOverview, error) {
	var stats domain.StatsOverview
	if err := g.client.do(ctx, "stats_overview", http.MethodGet, cafesPath+"/stats/overview", nil, &stats, true); err != nil {
		return nil, err
	}
	return &stats, nil
}
