package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EquiStack/barn_client/internal/app/domain/calendar"
	"github.com/EquiStack/barn_client/internal/app/domain/horse"
	"github.com/EquiStack/barn_client/internal/app/domain/supply"
	"github.com/EquiStack/barn_client/internal/app/storage/memory"
	"github.com/EquiStack/barn_client/internal/envelope"
)

func newTestSimulator(t *testing.T) *Simulator {
	t.Helper()
	return NewSimulator(memory.New(), nil)
}

func simCall(t *testing.T, sim *Simulator, method, path string, query url.Values, body interface{}) envelope.Raw {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	env, _ := sim.Handle(context.Background(), &Request{Method: method, Path: path, Query: query, Body: raw})
	return env
}

func TestSimulator_CreateHorseDefaults(t *testing.T) {
	sim := newTestSimulator(t)

	env := simCall(t, sim, "POST", "/api/v1/horses", nil, horse.CreateRequest{
		Name: "Ace", Breed: "Paint", Gender: horse.GenderGelding,
	})
	require.True(t, env.Success, "error: %s", env.Error)

	var created horse.Horse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive, "new horses default to active")
	assert.Equal(t, "healthy", created.HealthStatus)

	get := simCall(t, sim, "GET", "/api/v1/horses/"+created.ID, nil, nil)
	require.True(t, get.Success)

	var fetched horse.Horse
	require.NoError(t, json.Unmarshal(get.Data, &fetched))
	assert.Equal(t, created, fetched)
}

func TestSimulator_DeleteThenGetNotFound(t *testing.T) {
	sim := newTestSimulator(t)

	env := simCall(t, sim, "POST", "/api/v1/horses", nil, horse.CreateRequest{Name: "Bo"})
	require.True(t, env.Success)
	var h horse.Horse
	require.NoError(t, json.Unmarshal(env.Data, &h))

	del := simCall(t, sim, "DELETE", "/api/v1/horses/"+h.ID, nil, nil)
	require.True(t, del.Success)
	assert.Equal(t, "Horse deleted", del.Message)

	get := simCall(t, sim, "GET", "/api/v1/horses/"+h.ID, nil, nil)
	assert.False(t, get.Success)
	assert.Equal(t, "Horse not found", get.Error)
}

func TestSimulator_DeleteMissingSupplyLeavesStoreUnchanged(t *testing.T) {
	sim := NewSimulator(memory.NewSeeded(), nil)

	before := simCall(t, sim, "GET", "/api/v1/supplies/", nil, nil)
	require.True(t, before.Success)

	del := simCall(t, sim, "DELETE", "/api/v1/supplies/9999", nil, nil)
	assert.False(t, del.Success)
	assert.Equal(t, "Supply not found", del.Error)

	after := simCall(t, sim, "GET", "/api/v1/supplies/", nil, nil)
	require.True(t, after.Success)
	assert.JSONEq(t, string(before.Data), string(after.Data), "store must be unchanged")
}

func TestSimulator_EventsResolveHorse(t *testing.T) {
	sim := NewSimulator(memory.NewSeeded(), nil)

	env := simCall(t, sim, "GET", "/api/v1/calendar/events", nil, nil)
	require.True(t, env.Success)

	var events []calendar.Event
	require.NoError(t, json.Unmarshal(env.Data, &events))
	require.NotEmpty(t, events)
	for _, ev := range events {
		if ev.HorseID != "" {
			assert.NotEmpty(t, ev.HorseName, "event %d should carry a resolvable horse name", ev.ID)
		}
	}
}

func TestSimulator_SupplyUpdateRecomputesFlags(t *testing.T) {
	sim := newTestSimulator(t)

	env := simCall(t, sim, "POST", "/api/v1/supplies/", nil, supply.CreateRequest{
		Name: "Hay", CurrentStock: 10, ReorderPoint: 4, LastCostPerUnit: 12,
	})
	require.True(t, env.Success)
	var sp supply.Supply
	require.NoError(t, json.Unmarshal(env.Data, &sp))
	assert.False(t, sp.IsLowStock)

	stock := 3.0
	upd := simCall(t, sim, "PUT", "/api/v1/supplies/1", nil, supply.UpdateRequest{CurrentStock: &stock})
	require.True(t, upd.Success)
	require.NoError(t, json.Unmarshal(upd.Data, &sp))
	assert.True(t, sp.IsLowStock)
	assert.False(t, sp.IsOutOfStock)
}

func TestSimulator_ChatQuantityQuestion(t *testing.T) {
	sim := newTestSimulator(t)

	env := simCall(t, sim, "POST", "/ai/chat", nil, map[string]interface{}{
		"messages": []map[string]string{{"role": "user", "content": "how much hay should I feed?"}},
	})
	require.True(t, env.Success)

	reply := string(env.Data)
	assert.Contains(t, reply, "forage per day")
	assert.NotContains(t, reply, "Regarding", "no horse context requested")
}

func TestSimulator_ProcessReceiptMultipart(t *testing.T) {
	sim := newTestSimulator(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "receipt.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	env, matched := sim.Handle(context.Background(), &Request{
		Method:      "POST",
		Path:        "/api/v1/supplies/transactions/process-receipt",
		Body:        buf.Bytes(),
		ContentType: w.FormDataContentType(),
	})
	require.True(t, matched)
	require.True(t, env.Success, "error: %s", env.Error)

	var result supply.ReceiptResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "receipt.jpg", result.Filename)
	assert.Equal(t, int64(len("fake image bytes")), result.SizeBytes)
	assert.Equal(t, "processed", result.Status)
}

func TestSimulator_NoMatchIsEmptySuccess(t *testing.T) {
	sim := newTestSimulator(t)

	env, matched := sim.Handle(context.Background(), &Request{Method: "GET", Path: "/api/v1/unsimulated"})
	assert.False(t, matched)
	assert.True(t, env.Success)
	assert.Empty(t, env.Data)
	assert.Empty(t, env.Error)
}

// The HTTP server drives Handle from multiple goroutines, so a fresh
// simulator must serve its first requests concurrently without coordination.
func TestSimulator_ConcurrentHandle(t *testing.T) {
	sim := NewSimulator(memory.NewSeeded(), nil)

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	envs := make([]envelope.Raw, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			path := "/api/v1/horses"
			if i%2 == 0 {
				path = "/api/v1/supplies/dashboard"
			}
			env, matched := sim.Handle(context.Background(), &Request{Method: "GET", Path: path})
			assert.True(t, matched)
			envs[i] = env
		}(i)
	}
	close(start)
	wg.Wait()

	for i, env := range envs {
		require.True(t, env.Success, "request %d: %s", i, env.Error)
	}
}

func TestSimulator_ListHorsesQueryParams(t *testing.T) {
	sim := NewSimulator(memory.NewSeeded(), nil)

	env := simCall(t, sim, "GET", "/api/v1/horses/", url.Values{"active_only": {"true"}}, nil)
	require.True(t, env.Success)

	var horses []horse.Horse
	require.NoError(t, json.Unmarshal(env.Data, &horses))
	require.NotEmpty(t, horses)
	for _, h := range horses {
		assert.True(t, h.IsActive)
	}

	env = simCall(t, sim, "GET", "/api/v1/horses/", url.Values{"search": {strings.ToUpper(horses[0].Name)}}, nil)
	require.True(t, env.Success)
	var found []horse.Horse
	require.NoError(t, json.Unmarshal(env.Data, &found))
	require.Len(t, found, 1)
	assert.Equal(t, horses[0].Name, found[0].Name)
}
