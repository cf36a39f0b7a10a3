// Package storage defines the persistence contracts the gateway's simulated
// backend is built against. The remote service owns the real data; these
// interfaces cover only what the in-process stand-in must provide.
package storage

import (
	"context"
	"errors"

	"github.com/EquiStack/barn_client/internal/app/domain/calendar"
	"github.com/EquiStack/barn_client/internal/app/domain/horse"
	"github.com/EquiStack/barn_client/internal/app/domain/supply"
)

// ErrNotFound is wrapped by store lookups that miss.
var ErrNotFound = errors.New("not found")

// HorseStore persists horse records.
type HorseStore interface {
	CreateHorse(ctx context.Context, h horse.Horse) (horse.Horse, error)
	UpdateHorse(ctx context.Context, id string, upd horse.UpdateRequest) (horse.Horse, error)
	GetHorse(ctx context.Context, id string) (horse.Horse, error)
	ListHorses(ctx context.Context, opts horse.ListOptions) ([]horse.Horse, error)
	DeleteHorse(ctx context.Context, id string) error
}

// SupplyStore persists supply records and serves the dashboard projection.
type SupplyStore interface {
	CreateSupply(ctx context.Context, s supply.Supply) (supply.Supply, error)
	UpdateSupply(ctx context.Context, id int64, upd supply.UpdateRequest) (supply.Supply, error)
	GetSupply(ctx context.Context, id int64) (supply.Supply, error)
	ListSupplies(ctx context.Context, opts supply.ListOptions) ([]supply.Supply, error)
	DeleteSupply(ctx context.Context, id int64) error
	SupplyDashboard(ctx context.Context) (supply.Dashboard, error)
}

// EventStore persists calendar events.
type EventStore interface {
	CreateEvent(ctx context.Context, e calendar.Event) (calendar.Event, error)
	UpdateEvent(ctx context.Context, id int64, upd calendar.UpdateRequest) (calendar.Event, error)
	GetEvent(ctx context.Context, id int64) (calendar.Event, error)
	ListEvents(ctx context.Context) ([]calendar.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}
