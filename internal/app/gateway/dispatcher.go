// Package gateway dispatches data-layer calls to either the live remote
// service or the in-process simulated backend, returning the same envelope
// shape from both paths.
package gateway

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/EquiStack/barn_client/internal/app/metrics"
	"github.com/EquiStack/barn_client/internal/envelope"
	"github.com/EquiStack/barn_client/internal/httputil"
	"github.com/EquiStack/barn_client/pkg/logger"
)

// Mode selects the execution path.
type Mode string

const (
	// ModeLive performs real HTTP requests against the configured base URL.
	ModeLive Mode = "live"
	// ModeSimulated answers every call from the in-process backend.
	ModeSimulated Mode = "simulated"
	// ModeAuto re-evaluates the legacy detection signals on every call:
	// dev-token sentinel, local base URL, dev flag, then reachability.
	ModeAuto Mode = "auto"
)

// DevToken is the sentinel bearer token that forces simulation in ModeAuto.
const DevToken = "dev-token"

// Reachability reports whether the remote service answered its last health
// probe. The connectivity monitor implements it.
type Reachability interface {
	Reachable() bool
}

// Config configures a gateway client.
type Config struct {
	BaseURL string
	Token   string
	Mode    Mode
	// DevMode is the build-time development flag signal for ModeAuto.
	DevMode bool
	// Hybrid lets a simulated no-match fall through to the live transport.
	// Without it, no-match degenerates to the empty success default.
	Hybrid  bool
	Timeout time.Duration

	RequestsPerSecond float64
	Burst             int
}

// Client is the single entry point of the data layer. It never returns a Go
// error: every failure mode lands in the envelope.
type Client struct {
	cfg   Config
	live  *httputil.Client
	sim   *Simulator
	reach Reachability
	log   *logger.Logger
}

// New constructs a gateway client. A nil simulator gets the default seeded
// backend so simulation mode always has data to serve.
func New(cfg Config, sim *Simulator, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewDefault("gateway")
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeAuto
	}
	if sim == nil {
		sim = NewSimulator(nil, log)
	}
	return &Client{
		cfg: cfg,
		live: httputil.New(httputil.Config{
			BaseURL:           cfg.BaseURL,
			Token:             cfg.Token,
			Timeout:           cfg.Timeout,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Burst:             cfg.Burst,
		}),
		sim: sim,
		log: log,
	}
}

// WithReachability attaches a connectivity monitor consulted by ModeAuto.
func (c *Client) WithReachability(r Reachability) *Client {
	c.reach = r
	return c
}

// Simulator exposes the simulated backend for seeding and tests.
func (c *Client) Simulator() *Simulator { return c.sim }

// Do dispatches one JSON call.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body []byte) envelope.Raw {
	return c.dispatch(ctx, &Request{Method: method, Path: path, Query: query, Body: body})
}

// DoUpload dispatches a binary upload. contentType carries the multipart
// boundary; it is never rewritten to JSON.
func (c *Client) DoUpload(ctx context.Context, path string, query url.Values, body []byte, contentType string) envelope.Raw {
	return c.dispatch(ctx, &Request{Method: "POST", Path: path, Query: query, Body: body, ContentType: contentType})
}

func (c *Client) dispatch(ctx context.Context, req *Request) envelope.Raw {
	start := time.Now()
	mode := c.modeFor()

	var env envelope.Raw
	if mode == ModeSimulated {
		var matched bool
		env, matched = c.sim.Handle(ctx, req)
		if !matched && c.cfg.Hybrid {
			mode = ModeLive
			env = c.doLive(ctx, req)
		}
	} else {
		env = c.doLive(ctx, req)
	}

	metrics.ObserveDispatch(string(mode), req.Method, env.Success, time.Since(start))
	return env
}

// modeFor resolves the execution mode for one call. The decision is not
// cached, so a single client can be pointed at different backends across
// calls.
func (c *Client) modeFor() Mode {
	switch c.cfg.Mode {
	case ModeLive:
		return ModeLive
	case ModeSimulated:
		return ModeSimulated
	}
	if c.cfg.Token == DevToken || isLocalURL(c.cfg.BaseURL) || c.cfg.DevMode {
		return ModeSimulated
	}
	if c.reach != nil && !c.reach.Reachable() {
		return ModeSimulated
	}
	return ModeLive
}

func (c *Client) doLive(ctx context.Context, req *Request) envelope.Raw {
	if msg := c.tokenProblem(); msg != "" {
		return envelope.Fail[json.RawMessage](msg)
	}

	body, status, err := c.live.Do(ctx, req.Method, req.Path, req.Query, req.Body, req.ContentType)
	if err != nil {
		return envelope.Fail[json.RawMessage](err.Error())
	}
	if status < 200 || status >= 300 {
		return envelope.Fail[json.RawMessage](httputil.StatusMessage(status, body))
	}
	return envelope.DecodeRaw(body)
}

// tokenProblem reports an expired bearer token before any network round
// trip. Claims are read unverified; signature validation belongs to the
// remote service.
func (c *Client) tokenProblem() string {
	token := c.cfg.Token
	if token == "" || token == DevToken || strings.Count(token, ".") != 2 {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return ""
	}
	if exp.Before(time.Now()) {
		return "authorization token expired"
	}
	return ""
}

// isLocalURL recognizes the local and emulator addresses the original client
// treated as development backends.
func isLocalURL(baseURL string) bool {
	u, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1", "10.0.2.2":
		return true
	}
	return false
}
