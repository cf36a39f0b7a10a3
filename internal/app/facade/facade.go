// Package facade is the typed convenience layer callers use. One method per
// resource operation; each builds the canonical path and query string and
// delegates to the gateway. Whether a call executed live or simulated is not
// observable from this layer.
package facade

import (
	"errors"
	"net/url"

	"github.com/EquiStack/barn_client/internal/app/gateway"
	"github.com/EquiStack/barn_client/pkg/logger"
)

// API exposes the domain operations of the data layer.
type API struct {
	gw    *gateway.Client
	orgID string
	log   *logger.Logger
}

// New constructs the facade. The organization id scopes every multi-tenant
// call and is required up front rather than silently defaulted.
func New(gw *gateway.Client, organizationID string, log *logger.Logger) (*API, error) {
	if gw == nil {
		return nil, errors.New("gateway client is required")
	}
	if organizationID == "" {
		return nil, errors.New("organization id is required")
	}
	if log == nil {
		log = logger.NewDefault("facade")
	}
	return &API{gw: gw, orgID: organizationID, log: log}, nil
}

// orgQuery returns a fresh query string carrying the tenant identifier.
func (a *API) orgQuery() url.Values {
	q := url.Values{}
	q.Set("organization_id", a.orgID)
	return q
}
