// Package memory implements the storage interfaces in process. It is the
// simulated backend's data tier: development and tests run against it, and
// every gateway read reflects its state at call time.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/EquiStack/barn_client/internal/app/domain/calendar"
	"github.com/EquiStack/barn_client/internal/app/domain/horse"
	"github.com/EquiStack/barn_client/internal/app/domain/supply"
	"github.com/EquiStack/barn_client/internal/app/storage"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use so test suites can share or reset it without leaking
// state between cases.
type Store struct {
	mu       sync.RWMutex
	nextID   int64
	horses   map[string]horse.Horse
	supplies map[int64]supply.Supply
	events   map[int64]calendar.Event
}

var _ storage.HorseStore = (*Store)(nil)
var _ storage.SupplyStore = (*Store)(nil)
var _ storage.EventStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextID:   1,
		horses:   make(map[string]horse.Horse),
		supplies: make(map[int64]supply.Supply),
		events:   make(map[int64]calendar.Event),
	}
}

// NewSeeded creates a store preloaded with the default development fixtures.
func NewSeeded() *Store {
	s := New()
	s.Seed(DefaultSeed())
	return s
}

func (s *Store) nextIDLocked() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// Reset clears all collections and restarts id generation.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = 1
	s.horses = make(map[string]horse.Horse)
	s.supplies = make(map[int64]supply.Supply)
	s.events = make(map[int64]calendar.Event)
}

// Seed loads a fixture set into the store, assigning ids where absent.
func (s *Store) Seed(data SeedData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, h := range data.Horses {
		if h.ID == "" {
			h.ID = fmt.Sprintf("%d", s.nextIDLocked())
		}
		if h.AgeDisplay == "" {
			h.AgeDisplay = horse.FormatAge(h.Age)
		}
		if h.CreatedAt.IsZero() {
			h.CreatedAt = now
		}
		h.UpdatedAt = h.CreatedAt
		s.horses[h.ID] = h
	}
	for _, sp := range data.Supplies {
		if sp.ID == 0 {
			sp.ID = s.nextIDLocked()
		}
		if sp.UUID == "" {
			sp.UUID = uuid.NewString()
		}
		if sp.CreatedAt.IsZero() {
			sp.CreatedAt = now
		}
		sp.UpdatedAt = sp.CreatedAt
		sp.RecomputeFlags()
		s.supplies[sp.ID] = sp
	}
	for _, ev := range data.Events {
		if ev.ID == 0 {
			ev.ID = s.nextIDLocked()
		}
		if ev.UUID == "" {
			ev.UUID = uuid.NewString()
		}
		if ev.CreatedAt.IsZero() {
			ev.CreatedAt = now
		}
		ev.UpdatedAt = ev.CreatedAt
		s.events[ev.ID] = ev
	}
}

// HorseStore implementation ---------------------------------------------------

func (s *Store) CreateHorse(_ context.Context, h horse.Horse) (horse.Horse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.ID == "" {
		h.ID = fmt.Sprintf("%d", s.nextIDLocked())
	} else if _, exists := s.horses[h.ID]; exists {
		return horse.Horse{}, fmt.Errorf("horse %s already exists", h.ID)
	}

	now := time.Now().UTC()
	h.CreatedAt = now
	h.UpdatedAt = now
	h.AgeDisplay = horse.FormatAge(h.Age)

	s.horses[h.ID] = h
	return h, nil
}

func (s *Store) UpdateHorse(_ context.Context, id string, upd horse.UpdateRequest) (horse.Horse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.horses[id]
	if !ok {
		return horse.Horse{}, fmt.Errorf("horse %s: %w", id, storage.ErrNotFound)
	}

	upd.Apply(&h)
	h.UpdatedAt = time.Now().UTC()

	s.horses[id] = h
	return h, nil
}

func (s *Store) GetHorse(_ context.Context, id string) (horse.Horse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.horses[id]
	if !ok {
		return horse.Horse{}, fmt.Errorf("horse %s: %w", id, storage.ErrNotFound)
	}
	return h, nil
}

func (s *Store) ListHorses(_ context.Context, opts horse.ListOptions) ([]horse.Horse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]horse.Horse, 0, len(s.horses))
	search := strings.ToLower(opts.Search)
	for _, h := range s.horses {
		if opts.ActiveOnly && !h.IsActive {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(h.Name), search) &&
			!strings.Contains(strings.ToLower(h.Breed), search) {
			continue
		}
		result = append(result, h)
	}

	sortHorses(result, opts.SortBy, opts.SortOrder)

	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result, nil
}

func (s *Store) DeleteHorse(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.horses[id]; !ok {
		return fmt.Errorf("horse %s: %w", id, storage.ErrNotFound)
	}
	delete(s.horses, id)
	return nil
}

func sortHorses(horses []horse.Horse, sortBy, sortOrder string) {
	desc := strings.EqualFold(sortOrder, "desc")
	less := func(a, b horse.Horse) bool {
		switch sortBy {
		case "age":
			return a.Age < b.Age
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
	sort.SliceStable(horses, func(i, j int) bool {
		if desc {
			return less(horses[j], horses[i])
		}
		return less(horses[i], horses[j])
	})
}

// SupplyStore implementation --------------------------------------------------

func (s *Store) CreateSupply(_ context.Context, sp supply.Supply) (supply.Supply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sp.ID == 0 {
		sp.ID = s.nextIDLocked()
	} else if _, exists := s.supplies[sp.ID]; exists {
		return supply.Supply{}, fmt.Errorf("supply %d already exists", sp.ID)
	}
	if sp.UUID == "" {
		sp.UUID = uuid.NewString()
	}

	now := time.Now().UTC()
	sp.CreatedAt = now
	sp.UpdatedAt = now
	sp.RecomputeFlags()

	s.supplies[sp.ID] = sp
	return sp, nil
}

func (s *Store) UpdateSupply(_ context.Context, id int64, upd supply.UpdateRequest) (supply.Supply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.supplies[id]
	if !ok {
		return supply.Supply{}, fmt.Errorf("supply %d: %w", id, storage.ErrNotFound)
	}

	upd.Apply(&sp)
	sp.UpdatedAt = time.Now().UTC()

	s.supplies[id] = sp
	return sp, nil
}

func (s *Store) GetSupply(_ context.Context, id int64) (supply.Supply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sp, ok := s.supplies[id]
	if !ok {
		return supply.Supply{}, fmt.Errorf("supply %d: %w", id, storage.ErrNotFound)
	}
	return sp, nil
}

func (s *Store) ListSupplies(_ context.Context, opts supply.ListOptions) ([]supply.Supply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]supply.Supply, 0, len(s.supplies))
	for _, sp := range s.supplies {
		if opts.ActiveOnly && !sp.IsActive {
			continue
		}
		result = append(result, sp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) DeleteSupply(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.supplies[id]; !ok {
		return fmt.Errorf("supply %d: %w", id, storage.ErrNotFound)
	}
	delete(s.supplies, id)
	return nil
}

// SupplyDashboard recomputes the aggregate from the live collection on every
// call; nothing about it is cached.
func (s *Store) SupplyDashboard(_ context.Context) (supply.Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dash := supply.Dashboard{LowStockItems: []supply.Supply{}}
	for _, sp := range s.supplies {
		dash.TotalItems++
		dash.TotalInventoryValue += sp.CurrentStock * sp.LastCostPerUnit
		if sp.IsOutOfStock {
			dash.OutOfStockCount++
		}
		if sp.IsLowStock {
			dash.LowStockCount++
			dash.LowStockItems = append(dash.LowStockItems, sp)
		}
	}
	sort.Slice(dash.LowStockItems, func(i, j int) bool {
		return dash.LowStockItems[i].ID < dash.LowStockItems[j].ID
	})
	return dash, nil
}

// EventStore implementation ---------------------------------------------------

func (s *Store) CreateEvent(_ context.Context, ev calendar.Event) (calendar.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.ID == 0 {
		ev.ID = s.nextIDLocked()
	} else if _, exists := s.events[ev.ID]; exists {
		return calendar.Event{}, fmt.Errorf("event %d already exists", ev.ID)
	}
	if ev.UUID == "" {
		ev.UUID = uuid.NewString()
	}

	now := time.Now().UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now

	s.events[ev.ID] = ev
	return s.resolveHorseLocked(ev), nil
}

func (s *Store) UpdateEvent(_ context.Context, id int64, upd calendar.UpdateRequest) (calendar.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[id]
	if !ok {
		return calendar.Event{}, fmt.Errorf("event %d: %w", id, storage.ErrNotFound)
	}

	upd.Apply(&ev)
	ev.UpdatedAt = time.Now().UTC()

	s.events[id] = ev
	return s.resolveHorseLocked(ev), nil
}

func (s *Store) GetEvent(_ context.Context, id int64) (calendar.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	if !ok {
		return calendar.Event{}, fmt.Errorf("event %d: %w", id, storage.ErrNotFound)
	}
	return s.resolveHorseLocked(ev), nil
}

func (s *Store) ListEvents(_ context.Context) ([]calendar.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]calendar.Event, 0, len(s.events))
	for _, ev := range s.events {
		result = append(result, s.resolveHorseLocked(ev))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartsAt.Before(result[j].StartsAt) })
	return result, nil
}

func (s *Store) DeleteEvent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return fmt.Errorf("event %d: %w", id, storage.ErrNotFound)
	}
	delete(s.events, id)
	return nil
}

// resolveHorseLocked fills the denormalized horse name at read time so
// renames propagate. Callers must hold at least a read lock.
func (s *Store) resolveHorseLocked(ev calendar.Event) calendar.Event {
	if ev.HorseID == "" {
		ev.HorseName = ""
		return ev
	}
	if h, ok := s.horses[ev.HorseID]; ok {
		ev.HorseName = h.Name
	}
	return ev
}
