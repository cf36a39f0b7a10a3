package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strconv"

	"github.com/EquiStack/barn_client/internal/app/domain/calendar"
	"github.com/EquiStack/barn_client/internal/app/domain/chat"
	"github.com/EquiStack/barn_client/internal/app/domain/horse"
	"github.com/EquiStack/barn_client/internal/app/domain/supply"
	"github.com/EquiStack/barn_client/internal/app/services/assistant"
	"github.com/EquiStack/barn_client/internal/app/storage"
	"github.com/EquiStack/barn_client/internal/app/storage/memory"
	"github.com/EquiStack/barn_client/internal/envelope"
	"github.com/EquiStack/barn_client/pkg/logger"
)

// Simulator is the in-process stand-in for the remote backend. It owns the
// simulated collections and answers the same routes with the same envelope
// shape the live service produces.
type Simulator struct {
	store  *memory.Store
	assist *assistant.Synthesizer
	routes *routeTable
	log    *logger.Logger
}

// NewSimulator wires the route table over the given store. A nil store gets
// the default seeded fixtures.
func NewSimulator(store *memory.Store, log *logger.Logger) *Simulator {
	if store == nil {
		store = memory.NewSeeded()
	}
	if log == nil {
		log = logger.NewDefault("simulator")
	}
	s := &Simulator{
		store:  store,
		assist: assistant.New(nil, store, log),
		log:    log,
	}
	s.routes = s.buildRoutes()
	return s
}

// Store exposes the backing store for seeding and test assertions.
func (s *Simulator) Store() *memory.Store { return s.store }

func (s *Simulator) buildRoutes() *routeTable {
	t := newRouteTable()

	t.add("GET", "/api/v1/horses", s.listHorses)
	t.add("POST", "/api/v1/horses", s.createHorse)
	t.add("GET", "/api/v1/horses/{id}", s.getHorse)
	t.add("PUT", "/api/v1/horses/{id}", s.updateHorse)
	t.add("DELETE", "/api/v1/horses/{id}", s.deleteHorse)

	t.add("GET", "/api/v1/calendar/events", s.listEvents)
	t.add("POST", "/api/v1/calendar/events", s.createEvent)
	t.add("PUT", "/api/v1/calendar/events/{id}", s.updateEvent)
	t.add("DELETE", "/api/v1/calendar/events/{id}", s.deleteEvent)

	t.add("GET", "/api/v1/supplies", s.listSupplies)
	t.add("GET", "/api/v1/supplies/dashboard", s.supplyDashboard)
	t.add("POST", "/api/v1/supplies", s.createSupply)
	t.add("GET", "/api/v1/supplies/{id}", s.getSupply)
	t.add("PUT", "/api/v1/supplies/{id}", s.updateSupply)
	t.add("DELETE", "/api/v1/supplies/{id}", s.deleteSupply)
	t.add("POST", "/api/v1/supplies/transactions/process-receipt", s.processReceipt)

	t.add("POST", "/ai/chat", s.chat)
	t.add("GET", "/health", s.health)

	return t
}

// Handle matches the request against the route table. The bool reports
// whether a route matched; on no-match the returned envelope is the empty
// success default so unsimulated endpoints degrade gracefully.
func (s *Simulator) Handle(ctx context.Context, req *Request) (envelope.Raw, bool) {
	h, params, ok := s.routes.match(req.Method, req.Path)
	if !ok {
		s.log.Debugf("no simulated route for %s %s", req.Method, req.Path)
		return envelope.Raw{Success: true}, false
	}
	req.Params = params
	return h(ctx, req), true
}

// Horse handlers --------------------------------------------------------------

func (s *Simulator) listHorses(ctx context.Context, req *Request) envelope.Raw {
	opts := horse.ListOptions{
		ActiveOnly: queryBool(req, "active_only"),
		Search:     req.Query.Get("search"),
		SortBy:     req.Query.Get("sort_by"),
		SortOrder:  req.Query.Get("sort_order"),
	}
	if limit, err := strconv.Atoi(req.Query.Get("limit")); err == nil {
		opts.Limit = limit
	}
	horses, err := s.store.ListHorses(ctx, opts)
	if err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	return envelope.MarshalRaw(horses)
}

func (s *Simulator) createHorse(ctx context.Context, req *Request) envelope.Raw {
	var body horse.CreateRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	h := horse.Horse{
		Name:         body.Name,
		Breed:        body.Breed,
		Age:          body.Age,
		Color:        body.Color,
		Gender:       body.Gender,
		HealthStatus: body.HealthStatus,
		OwnerName:    body.OwnerName,
		IsForSale:    body.IsForSale,
		IsActive:     true,
	}
	if h.HealthStatus == "" {
		h.HealthStatus = "healthy"
	}
	created, err := s.store.CreateHorse(ctx, h)
	if err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	return envelope.MarshalRaw(created)
}

func (s *Simulator) getHorse(ctx context.Context, req *Request) envelope.Raw {
	h, err := s.store.GetHorse(ctx, req.Params["id"])
	if err != nil {
		return failStore("Horse", err)
	}
	return envelope.MarshalRaw(h)
}

func (s *Simulator) updateHorse(ctx context.Context, req *Request) envelope.Raw {
	var upd horse.UpdateRequest
	if err := decodeBody(req.Body, &upd); err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	h, err := s.store.UpdateHorse(ctx, req.Params["id"], upd)
	if err != nil {
		return failStore("Horse", err)
	}
	return envelope.MarshalRaw(h)
}

func (s *Simulator) deleteHorse(ctx context.Context, req *Request) envelope.Raw {
	if err := s.store.DeleteHorse(ctx, req.Params["id"]); err != nil {
		return failStore("Horse", err)
	}
	return envelope.Raw{Success: true, Message: "Horse deleted"}
}

// Calendar handlers -----------------------------------------------------------

func (s *Simulator) listEvents(ctx context.Context, _ *Request) envelope.Raw {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	return envelope.MarshalRaw(events)
}

func (s *Simulator) createEvent(ctx context.Context, req *Request) envelope.Raw {
	var body calendar.CreateRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	ev := calendar.Event{
		Type:            body.Type,
		Title:           body.Title,
		Description:     body.Description,
		StartsAt:        body.StartsAt,
		DurationMinutes: body.DurationMinutes,
		HorseID:         body.HorseID,
	}
	if ev.Type == "" {
		ev.Type = calendar.TypeOther
	}
	if ev.DurationMinutes == 0 {
		ev.DurationMinutes = 60
	}
	created, err := s.store.CreateEvent(ctx, ev)
	if err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	return envelope.MarshalRaw(created)
}

func (s *Simulator) updateEvent(ctx context.Context, req *Request) envelope.Raw {
	id, env := paramID(req)
	if env != nil {
		return *env
	}
	var upd calendar.UpdateRequest
	if err := decodeBody(req.Body, &upd); err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	ev, err := s.store.UpdateEvent(ctx, id, upd)
	if err != nil {
		return failStore("Event", err)
	}
	return envelope.MarshalRaw(ev)
}

func (s *Simulator) deleteEvent(ctx context.Context, req *Request) envelope.Raw {
	id, env := paramID(req)
	if env != nil {
		return *env
	}
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return failStore("Event", err)
	}
	return envelope.Raw{Success: true, Message: "Event deleted"}
}

// Supply handlers -------------------------------------------------------------

func (s *Simulator) listSupplies(ctx context.Context, req *Request) envelope.Raw {
	supplies, err := s.store.ListSupplies(ctx, supply.ListOptions{ActiveOnly: queryBool(req, "active_only")})
	if err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	return envelope.MarshalRaw(supplies)
}

func (s *Simulator) supplyDashboard(ctx context.Context, _ *Request) envelope.Raw {
	dash, err := s.store.SupplyDashboard(ctx)
	if err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	return envelope.MarshalRaw(dash)
}

func (s *Simulator) createSupply(ctx context.Context, req *Request) envelope.Raw {
	var body supply.CreateRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	sp := supply.Supply{
		Name:            body.Name,
		Description:     body.Description,
		Category:        body.Category,
		Brand:           body.Brand,
		UnitType:        body.UnitType,
		PackageSize:     body.PackageSize,
		PackageUnit:     body.PackageUnit,
		CurrentStock:    body.CurrentStock,
		MinimumStock:    body.MinimumStock,
		ReorderPoint:    body.ReorderPoint,
		LastCostPerUnit: body.LastCostPerUnit,
		Location:        body.Location,
		IsActive:        true,
	}
	created, err := s.store.CreateSupply(ctx, sp)
	if err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	return envelope.MarshalRaw(created)
}

func (s *Simulator) getSupply(ctx context.Context, req *Request) envelope.Raw {
	id, env := paramID(req)
	if env != nil {
		return *env
	}
	sp, err := s.store.GetSupply(ctx, id)
	if err != nil {
		return failStore("Supply", err)
	}
	return envelope.MarshalRaw(sp)
}

func (s *Simulator) updateSupply(ctx context.Context, req *Request) envelope.Raw {
	id, env := paramID(req)
	if env != nil {
		return *env
	}
	var upd supply.UpdateRequest
	if err := decodeBody(req.Body, &upd); err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	sp, err := s.store.UpdateSupply(ctx, id, upd)
	if err != nil {
		return failStore("Supply", err)
	}
	return envelope.MarshalRaw(sp)
}

func (s *Simulator) deleteSupply(ctx context.Context, req *Request) envelope.Raw {
	id, env := paramID(req)
	if env != nil {
		return *env
	}
	if err := s.store.DeleteSupply(ctx, id); err != nil {
		return failStore("Supply", err)
	}
	return envelope.Raw{Success: true, Message: "Supply deleted"}
}

func (s *Simulator) processReceipt(_ context.Context, req *Request) envelope.Raw {
	mediaType, params, err := mime.ParseMediaType(req.ContentType)
	if err != nil || mediaType != "multipart/form-data" {
		return envelope.Fail[json.RawMessage]("receipt upload requires a multipart/form-data body")
	}
	reader := multipart.NewReader(bytes.NewReader(req.Body), params["boundary"])

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return envelope.Fail[json.RawMessage]("read multipart body: " + err.Error())
		}
		if part.FileName() == "" {
			continue
		}
		size, err := io.Copy(io.Discard, part)
		if err != nil {
			return envelope.Fail[json.RawMessage]("read receipt image: " + err.Error())
		}
		result := supply.ReceiptResult{
			Filename:  part.FileName(),
			SizeBytes: size,
			Status:    "processed",
		}
		if size > 0 {
			result.ItemsParsed = 1
		}
		return envelope.MarshalRaw(result)
	}
	return envelope.Fail[json.RawMessage]("receipt upload contained no file part")
}

// Chat and health -------------------------------------------------------------

func (s *Simulator) chat(ctx context.Context, req *Request) envelope.Raw {
	var body chat.Request
	if err := decodeBody(req.Body, &body); err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	return envelope.MarshalRaw(s.assist.Reply(ctx, body.Messages, body.HorseID))
}

func (s *Simulator) health(_ context.Context, _ *Request) envelope.Raw {
	return envelope.MarshalRaw(map[string]string{"status": "ok"})
}

// Helpers ---------------------------------------------------------------------

func decodeBody(body []byte, dst interface{}) error {
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, dst)
}

func queryBool(req *Request, key string) bool {
	v, err := strconv.ParseBool(req.Query.Get(key))
	return err == nil && v
}

func paramID(req *Request) (int64, *envelope.Raw) {
	id, err := strconv.ParseInt(req.Params["id"], 10, 64)
	if err != nil {
		env := envelope.Fail[json.RawMessage]("invalid id: " + req.Params["id"])
		return 0, &env
	}
	return id, nil
}

func failStore(kind string, err error) envelope.Raw {
	if errors.Is(err, storage.ErrNotFound) {
		return envelope.Fail[json.RawMessage](kind + " not found")
	}
	return envelope.Fail[json.RawMessage](err.Error())
}
