package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EquiStack/barn_client/internal/envelope"
)

func namedHandler(name string) handlerFunc {
	return func(context.Context, *Request) envelope.Raw {
		return envelope.Raw{Success: true, Message: name}
	}
}

func TestRouteTable_SpecificityBeatsOrder(t *testing.T) {
	table := newRouteTable()
	// Parameterized route registered first must still lose to the literal.
	table.add("GET", "/api/v1/supplies/{id}", namedHandler("by-id"))
	table.add("GET", "/api/v1/supplies/dashboard", namedHandler("dashboard"))

	h, params, ok := table.match("GET", "/api/v1/supplies/dashboard")
	require.True(t, ok)
	assert.Empty(t, params)
	assert.Equal(t, "dashboard", h(context.Background(), nil).Message)

	h, params, ok = table.match("GET", "/api/v1/supplies/42")
	require.True(t, ok)
	assert.Equal(t, "42", params["id"])
	assert.Equal(t, "by-id", h(context.Background(), nil).Message)
}

func TestRouteTable_MethodDiscriminatesSharedPath(t *testing.T) {
	table := newRouteTable()
	table.add("GET", "/api/v1/horses", namedHandler("list"))
	table.add("POST", "/api/v1/horses", namedHandler("create"))
	table.add("DELETE", "/api/v1/horses/{id}", namedHandler("delete"))

	h, _, ok := table.match("POST", "/api/v1/horses")
	require.True(t, ok)
	assert.Equal(t, "create", h(context.Background(), nil).Message)

	h, _, ok = table.match("GET", "/api/v1/horses")
	require.True(t, ok)
	assert.Equal(t, "list", h(context.Background(), nil).Message)

	_, _, ok = table.match("PATCH", "/api/v1/horses")
	assert.False(t, ok)
}

func TestRouteTable_TrailingSlashNormalized(t *testing.T) {
	table := newRouteTable()
	table.add("GET", "/api/v1/horses", namedHandler("list"))

	for _, path := range []string{"/api/v1/horses", "/api/v1/horses/"} {
		_, _, ok := table.match("GET", path)
		assert.True(t, ok, "path %q should match", path)
	}
}

func TestRouteTable_NoMatch(t *testing.T) {
	table := newRouteTable()
	table.add("GET", "/api/v1/horses", namedHandler("list"))

	_, _, ok := table.match("GET", "/api/v1/unknown")
	assert.False(t, ok)

	_, _, ok = table.match("GET", "/api/v1/horses/1/extra")
	assert.False(t, ok)
}
