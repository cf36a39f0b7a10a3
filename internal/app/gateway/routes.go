package gateway

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/EquiStack/barn_client/internal/envelope"
)

// Request carries one simulated call through the route table.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Params      map[string]string
	Body        []byte
	ContentType string
}

type handlerFunc func(ctx context.Context, req *Request) envelope.Raw

type segment struct {
	literal string
	param   string
}

type route struct {
	method   string
	pattern  string
	segments []segment
	literals int
	handler  handlerFunc
}

// routeTable matches (method, path) tuples against compiled path templates.
// Templates use {name} placeholders for id segments. Matching is by
// decreasing specificity: a route with more literal segments beats one that
// relies on parameters, so /supplies/dashboard wins over /supplies/{id}
// regardless of registration order. The table is immutable after the last
// add, so match is safe for concurrent use.
type routeTable struct {
	routes []route
}

func newRouteTable() *routeTable {
	return &routeTable{}
}

func (t *routeTable) add(method, pattern string, h handlerFunc) {
	segs := splitPath(pattern)
	compiled := make([]segment, 0, len(segs))
	literals := 0
	for _, s := range segs {
		if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			compiled = append(compiled, segment{param: strings.Trim(s, "{}")})
			continue
		}
		compiled = append(compiled, segment{literal: s})
		literals++
	}
	t.routes = append(t.routes, route{
		method:   method,
		pattern:  pattern,
		segments: compiled,
		literals: literals,
		handler:  h,
	})
	sort.SliceStable(t.routes, func(i, j int) bool {
		return t.routes[i].literals > t.routes[j].literals
	})
}

func (t *routeTable) match(method, path string) (handlerFunc, map[string]string, bool) {
	segs := splitPath(path)
	for _, r := range t.routes {
		if r.method != method || len(r.segments) != len(segs) {
			continue
		}
		params, ok := bind(r.segments, segs)
		if !ok {
			continue
		}
		return r.handler, params, true
	}
	return nil, nil, false
}

func bind(template []segment, segs []string) (map[string]string, bool) {
	var params map[string]string
	for i, tpl := range template {
		if tpl.param != "" {
			if params == nil {
				params = make(map[string]string, 2)
			}
			params[tpl.param] = segs[i]
			continue
		}
		if tpl.literal != segs[i] {
			return nil, false
		}
	}
	return params, true
}

// splitPath normalizes away leading/trailing slashes so /api/v1/horses/ and
// /api/v1/horses address the same route.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
