package httprpc

import (
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"
)

// Router is the main router for handling HTTP requests.
type Router struct {
	*EndpointGroup

	fallback http.Handler
}

// New creates a new Router.
func New() *Router {
	eg := &EndpointGroup{}
	eg.root = eg
	return &Router{
		EndpointGroup: eg,
	}
}

// MiddlewareOption configures middleware options.
type MiddlewareOption interface {
	apply(*MiddlewareWithPriority)
}

// Use adds a middleware to the router. Priority -> Higher means earlier execution.
func (r *Router) Use(middleware Middleware, middlewareOpts ...MiddlewareOption) {
	r.EndpointGroup.Use(middleware, middlewareOpts...)
}

// SetFallback sets the handler for paths no endpoint matches. Router-level middlewares
// wrap the fallback as well. Without a fallback unmatched paths get 404.
func (r *Router) SetFallback(h http.Handler) {
	r.fallback = h
}

// Handler builds and returns an http.Handler for the registered endpoints.
// It returns an error if routes are invalid (e.g., duplicate method+path).
// Registering endpoints after Handler has been called panics.
func (r *Router) Handler() (http.Handler, error) {
	return r.buildHandler()
}

// HandlerMust returns the handler or panics if building the handler fails.
func (r *Router) HandlerMust() http.Handler {
	h, err := r.buildHandler()
	if err != nil {
		panic(err)
	}
	return h
}

func collectMiddlewares(group *EndpointGroup) []*MiddlewareWithPriority {
	if group == nil {
		return nil
	}

	var chain []*EndpointGroup
	for g := group; g != nil; g = g.parent {
		chain = append(chain, g)
	}
	slices.Reverse(chain)

	var out []*MiddlewareWithPriority
	for _, g := range chain {
		out = append(out, g.Middlewares...)
	}
	return out
}

func applyMiddlewares(h http.Handler, middlewares []*MiddlewareWithPriority) http.Handler {
	if len(middlewares) == 0 {
		return h
	}

	ordered := append([]*MiddlewareWithPriority(nil), middlewares...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	// ordered[0] must end up outermost, so wrap from the innermost outwards.
	for i := len(ordered) - 1; i >= 0; i-- {
		mw := ordered[i]
		if mw == nil || mw.Middleware == nil {
			continue
		}
		h = mw.Middleware(h)
	}
	return h
}

func (r *Router) buildHandler() (http.Handler, error) {
	r.frozen = true

	type methods struct {
		byMethod map[string]http.Handler
		allow    string
	}

	byPath := make(map[string]*methods, len(r.Handlers))
	for _, e := range r.Handlers {
		if e == nil {
			continue
		}

		m := byPath[e.Path]
		if m == nil {
			m = &methods{byMethod: map[string]http.Handler{}}
			byPath[e.Path] = m
		}
		if _, exists := m.byMethod[e.Method]; exists {
			return nil, fmt.Errorf("duplicate route: %s %s", e.Method, e.Path)
		}

		h := e.Handler
		if h == nil {
			h = http.NotFoundHandler()
		}
		m.byMethod[e.Method] = applyMiddlewares(h, collectMiddlewares(e.Group))
	}

	for _, m := range byPath {
		methods := make([]string, 0, len(m.byMethod))
		for method := range m.byMethod {
			methods = append(methods, method)
		}
		sort.Strings(methods)
		m.allow = strings.Join(methods, ", ")
	}

	fallback := r.fallback
	if fallback == nil {
		fallback = http.NotFoundHandler()
	}
	fallback = applyMiddlewares(fallback, r.Middlewares)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		m := byPath[req.URL.Path]
		if m == nil {
			fallback.ServeHTTP(w, req)
			return
		}
		h := m.byMethod[req.Method]
		if h == nil {
			w.Header().Set("Allow", m.allow)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h.ServeHTTP(w, req)
	}), nil
}

// Describe returns endpoint metadata, in registration order.
func (r *Router) Describe() []EndpointDescription {
	out := make([]EndpointDescription, 0, len(r.Metas))
	for _, m := range r.Metas {
		if m == nil {
			continue
		}
		out = append(out, EndpointDescription{
			Method:   m.Method,
			Path:     m.Path,
			Req:      typeRef(m.Req),
			Res:      typeRef(m.Res),
			Consumes: append([]string(nil), m.Consumes...),
			Produces: append([]string(nil), m.Produces...),
		})
	}
	return out
}
