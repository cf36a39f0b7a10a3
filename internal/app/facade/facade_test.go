package facade

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EquiStack/barn_client/internal/app/domain/calendar"
	"github.com/EquiStack/barn_client/internal/app/domain/chat"
	"github.com/EquiStack/barn_client/internal/app/domain/horse"
	"github.com/EquiStack/barn_client/internal/app/domain/supply"
	"github.com/EquiStack/barn_client/internal/app/gateway"
	"github.com/EquiStack/barn_client/internal/app/storage/memory"
)

func newTestAPI(t *testing.T, store *memory.Store) *API {
	t.Helper()
	gw := gateway.New(gateway.Config{Mode: gateway.ModeSimulated}, gateway.NewSimulator(store, nil), nil)
	api, err := New(gw, "org-1", nil)
	require.NoError(t, err)
	return api
}

func TestNew_RequiresOrganization(t *testing.T) {
	gw := gateway.New(gateway.Config{Mode: gateway.ModeSimulated}, nil, nil)

	_, err := New(gw, "", nil)
	assert.EqualError(t, err, "organization id is required")

	_, err = New(nil, "org-1", nil)
	assert.EqualError(t, err, "gateway client is required")
}

func TestHorseRoundTrip(t *testing.T) {
	api := newTestAPI(t, memory.New())
	ctx := context.Background()

	created := api.CreateHorse(ctx, horse.CreateRequest{Name: "Ace", Breed: "Paint", Gender: horse.GenderGelding})
	require.True(t, created.Success, "error: %s", created.Error)
	assert.NotEmpty(t, created.Data.ID)
	assert.True(t, created.Data.IsActive)

	got := api.GetHorse(ctx, created.Data.ID)
	require.True(t, got.Success)
	assert.Equal(t, created.Data, got.Data)

	name := "Ace High"
	updated := api.UpdateHorse(ctx, created.Data.ID, horse.UpdateRequest{Name: &name})
	require.True(t, updated.Success)
	assert.Equal(t, "Ace High", updated.Data.Name)

	list := api.ListHorses(ctx, horse.ListOptions{Search: "ace"})
	require.True(t, list.Success)
	require.Len(t, list.Data, 1)

	del := api.DeleteHorse(ctx, created.Data.ID)
	require.True(t, del.Success)

	missing := api.GetHorse(ctx, created.Data.ID)
	assert.False(t, missing.Success)
	assert.Equal(t, "Horse not found", missing.Error)
}

func TestHorseIDRequired(t *testing.T) {
	api := newTestAPI(t, memory.New())

	env := api.GetHorse(context.Background(), "")
	assert.False(t, env.Success)
	assert.Equal(t, "horse id is required", env.Error)
}

func TestSupplyDashboardReflectsStock(t *testing.T) {
	api := newTestAPI(t, memory.New())
	ctx := context.Background()

	created := api.CreateSupply(ctx, supply.CreateRequest{
		Name: "Timothy Hay", CurrentStock: 10, ReorderPoint: 4, LastCostPerUnit: 12.5,
	})
	require.True(t, created.Success, "error: %s", created.Error)
	assert.False(t, created.Data.IsLowStock)

	stock := 2.0
	updated := api.UpdateSupply(ctx, created.Data.ID, supply.UpdateRequest{CurrentStock: &stock})
	require.True(t, updated.Success)
	assert.True(t, updated.Data.IsLowStock)

	dash := api.SupplyDashboard(ctx)
	require.True(t, dash.Success)
	assert.Equal(t, 1, dash.Data.TotalItems)
	assert.Equal(t, 1, dash.Data.LowStockCount)
	assert.InDelta(t, 25.0, dash.Data.TotalInventoryValue, 0.001)
	require.Len(t, dash.Data.LowStockItems, 1)
	assert.Equal(t, "Timothy Hay", dash.Data.LowStockItems[0].Name)
}

func TestDeleteMissingSupply(t *testing.T) {
	api := newTestAPI(t, memory.New())

	env := api.DeleteSupply(context.Background(), 41)
	assert.False(t, env.Success)
	assert.Equal(t, "Supply not found", env.Error)
}

func TestEventRoundTripWithHorseName(t *testing.T) {
	api := newTestAPI(t, memory.New())
	ctx := context.Background()

	h := api.CreateHorse(ctx, horse.CreateRequest{Name: "Luna", Breed: "Arabian"})
	require.True(t, h.Success)

	created := api.CreateEvent(ctx, calendar.CreateRequest{
		Type:     calendar.TypeVeterinary,
		Title:    "Spring vaccinations",
		StartsAt: time.Date(2026, 9, 12, 9, 0, 0, 0, time.UTC),
		HorseID:  h.Data.ID,
	})
	require.True(t, created.Success, "error: %s", created.Error)

	list := api.ListEvents(ctx)
	require.True(t, list.Success)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Luna", list.Data[0].HorseName)

	title := "Fall vaccinations"
	updated := api.UpdateEvent(ctx, created.Data.ID, calendar.UpdateRequest{Title: &title})
	require.True(t, updated.Success)
	assert.Equal(t, "Fall vaccinations", updated.Data.Title)

	del := api.DeleteEvent(ctx, created.Data.ID)
	require.True(t, del.Success)
}

func TestSendChat(t *testing.T) {
	api := newTestAPI(t, memory.NewSeeded())
	ctx := context.Background()

	env := api.SendChat(ctx, []chat.Message{{Role: chat.RoleUser, Content: "how much hay per day?"}}, "")
	require.True(t, env.Success)
	assert.Contains(t, env.Data.Response, "forage per day")

	env = api.SendChat(ctx, nil, "")
	assert.False(t, env.Success)
	assert.Equal(t, "at least one message is required", env.Error)
}

func TestProcessReceipt(t *testing.T) {
	api := newTestAPI(t, memory.New())

	env := api.ProcessReceipt(context.Background(), "receipt.png", strings.NewReader("png bytes"))
	require.True(t, env.Success, "error: %s", env.Error)
	assert.Equal(t, "receipt.png", env.Data.Filename)
	assert.Equal(t, int64(len("png bytes")), env.Data.SizeBytes)
	assert.Equal(t, "processed", env.Data.Status)
}
