package httprpc

import (
	"net/http"
	"reflect"
)

type Endpoint[Req, Res any] struct {
	Handler Handler[Req, Res]
	Path    string
	Method  string
}

func newEndpoint[Req, Res any](handler Handler[Req, Res], path string, method string) Endpoint[Req, Res] {
	return Endpoint[Req, Res]{
		Handler: handler,
		Path:    path,
		Method:  method,
	}
}

func GET[Req, Res any](handler Handler[Req, Res], path string) Endpoint[Req, Res] {
	return newEndpoint(handler, path, http.MethodGet)
}

func POST[Req, Res any](handler Handler[Req, Res], path string) Endpoint[Req, Res] {
	return newEndpoint(handler, path, http.MethodPost)
}

func PUT[Req, Res any](handler Handler[Req, Res], path string) Endpoint[Req, Res] {
	return newEndpoint(handler, path, http.MethodPut)
}

func DELETE[Req, Res any](handler Handler[Req, Res], path string) Endpoint[Req, Res] {
	return newEndpoint(handler, path, http.MethodDelete)
}

func PATCH[Req, Res any](handler Handler[Req, Res], path string) Endpoint[Req, Res] {
	return newEndpoint(handler, path, http.MethodPatch)
}

type Middleware func(next http.Handler) http.Handler

type MiddlewareWithPriority struct {
	Middleware Middleware
	Priority   int
}

type endpoint struct {
	Path    string
	Method  string
	Handler http.Handler
	Group   *EndpointGroup
}

type EndpointGroup struct {
	Prefix      string
	Handlers    []*endpoint
	Middlewares []*MiddlewareWithPriority

	root   *EndpointGroup
	parent *EndpointGroup
	frozen bool

	Metas []*EndpointMeta
}

func (eg *EndpointGroup) Group(prefix string) *EndpointGroup {
	return &EndpointGroup{
		Prefix:      eg.Prefix + prefix,
		Middlewares: []*MiddlewareWithPriority{},
		root:        eg.rootGroup(),
		parent:      eg,
	}
}

func (eg *EndpointGroup) rootGroup() *EndpointGroup {
	if eg.root == nil {
		return eg
	}
	return eg.root
}

// RegisterOption customizes a single endpoint registration.
type RegisterOption[Req, Res any] func(*registerConfig[Req, Res])

type registerConfig[Req, Res any] struct {
	codec       Codec[Req, Res]
	middlewares []HandlerMiddleware[Req, Res]
}

// WithCodec replaces the default JSONCodec for one endpoint.
func WithCodec[Req, Res any](codec Codec[Req, Res]) RegisterOption[Req, Res] {
	return func(c *registerConfig[Req, Res]) { c.codec = codec }
}

// WithMiddlewares wraps the typed handler; the first middleware is the outermost.
func WithMiddlewares[Req, Res any](mws ...HandlerMiddleware[Req, Res]) RegisterOption[Req, Res] {
	return func(c *registerConfig[Req, Res]) { c.middlewares = append(c.middlewares, mws...) }
}

// RegisterHandler adds an endpoint to the group. Registering after the router's
// handler has been built panics.
func RegisterHandler[Req any, Res any](eg *EndpointGroup, in Endpoint[Req, Res], opts ...RegisterOption[Req, Res]) {
	root := eg.rootGroup()
	if root.frozen {
		panic("httprpc: RegisterHandler called after Handler was built: " + in.Method + " " + eg.Prefix + in.Path)
	}

	cfg := registerConfig[Req, Res]{codec: JSONCodec[Req, Res]{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	path := eg.Prefix + in.Path
	root.Handlers = append(root.Handlers, &endpoint{
		Path:    path,
		Method:  in.Method,
		Handler: adaptHandler(cfg.codec, chainHandler(in.Handler, cfg.middlewares)),
		Group:   eg,
	})

	var consumes, produces []string
	if ct, ok := any(cfg.codec).(interface {
		Consumes() []string
		Produces() []string
	}); ok {
		consumes = ct.Consumes()
		produces = ct.Produces()
	}

	root.Metas = append(root.Metas, &EndpointMeta{
		Method:   in.Method,
		Path:     path,
		Req:      reflect.TypeFor[Req](),
		Res:      reflect.TypeFor[Res](),
		Consumes: consumes,
		Produces: produces,
	})
}
