package facade

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/EquiStack/barn_client/internal/app/domain/calendar"
	"github.com/EquiStack/barn_client/internal/envelope"
)

const eventsPath = "/api/v1/calendar/events"

// ListEvents returns all calendar events; each event with a horse association
// carries the denormalized horse name.
func (a *API) ListEvents(ctx context.Context) envelope.Envelope[[]calendar.Event] {
	return envelope.As[[]calendar.Event](a.gw.Do(ctx, http.MethodGet, eventsPath, a.orgQuery(), nil))
}

// CreateEvent schedules a new event.
func (a *API) CreateEvent(ctx context.Context, req calendar.CreateRequest) envelope.Envelope[calendar.Event] {
	payload := struct {
		calendar.CreateRequest
		OrganizationID string `json:"organization_id"`
	}{req, a.orgID}

	body, err := json.Marshal(payload)
	if err != nil {
		return envelope.Fail[calendar.Event]("encode request: " + err.Error())
	}
	return envelope.As[calendar.Event](a.gw.Do(ctx, http.MethodPost, eventsPath, nil, body))
}

// UpdateEvent applies a partial update to an event.
func (a *API) UpdateEvent(ctx context.Context, id int64, upd calendar.UpdateRequest) envelope.Envelope[calendar.Event] {
	body, err := json.Marshal(upd)
	if err != nil {
		return envelope.Fail[calendar.Event]("encode request: " + err.Error())
	}
	return envelope.As[calendar.Event](a.gw.Do(ctx, http.MethodPut, eventPath(id), a.orgQuery(), body))
}

// DeleteEvent removes an event by id.
func (a *API) DeleteEvent(ctx context.Context, id int64) envelope.Raw {
	return a.gw.Do(ctx, http.MethodDelete, eventPath(id), a.orgQuery(), nil)
}

func eventPath(id int64) string {
	return eventsPath + "/" + strconv.FormatInt(id, 10)
}
