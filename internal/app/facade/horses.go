package facade

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/EquiStack/barn_client/internal/app/domain/horse"
	"github.com/EquiStack/barn_client/internal/envelope"
)

const horsesPath = "/api/v1/horses"

// ListHorses returns the horse collection, filtered and sorted per opts.
func (a *API) ListHorses(ctx context.Context, opts horse.ListOptions) envelope.Envelope[[]horse.Horse] {
	q := a.orgQuery()
	if opts.ActiveOnly {
		q.Set("active_only", "true")
	}
	if opts.Search != "" {
		q.Set("search", opts.Search)
	}
	if opts.SortBy != "" {
		q.Set("sort_by", opts.SortBy)
	}
	if opts.SortOrder != "" {
		q.Set("sort_order", opts.SortOrder)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	return envelope.As[[]horse.Horse](a.gw.Do(ctx, http.MethodGet, horsesPath+"/", q, nil))
}

// GetHorse returns a single horse by id.
func (a *API) GetHorse(ctx context.Context, id string) envelope.Envelope[horse.Horse] {
	if id == "" {
		return envelope.Fail[horse.Horse]("horse id is required")
	}
	return envelope.As[horse.Horse](a.gw.Do(ctx, http.MethodGet, horsesPath+"/"+id, a.orgQuery(), nil))
}

// CreateHorse registers a new horse. The organization id travels in the body
// on creates.
func (a *API) CreateHorse(ctx context.Context, req horse.CreateRequest) envelope.Envelope[horse.Horse] {
	payload := struct {
		horse.CreateRequest
		OrganizationID string `json:"organization_id"`
	}{req, a.orgID}

	body, err := json.Marshal(payload)
	if err != nil {
		return envelope.Fail[horse.Horse]("encode request: " + err.Error())
	}
	return envelope.As[horse.Horse](a.gw.Do(ctx, http.MethodPost, horsesPath, nil, body))
}

// UpdateHorse applies a partial update to a horse.
func (a *API) UpdateHorse(ctx context.Context, id string, upd horse.UpdateRequest) envelope.Envelope[horse.Horse] {
	if id == "" {
		return envelope.Fail[horse.Horse]("horse id is required")
	}
	body, err := json.Marshal(upd)
	if err != nil {
		return envelope.Fail[horse.Horse]("encode request: " + err.Error())
	}
	return envelope.As[horse.Horse](a.gw.Do(ctx, http.MethodPut, horsesPath+"/"+id, a.orgQuery(), body))
}

// DeleteHorse removes a horse by id.
func (a *API) DeleteHorse(ctx context.Context, id string) envelope.Raw {
	if id == "" {
		return envelope.Fail[json.RawMessage]("horse id is required")
	}
	return a.gw.Do(ctx, http.MethodDelete, horsesPath+"/"+id, a.orgQuery(), nil)
}
