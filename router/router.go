package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

type Router struct {
	rt *httprouter.Router
}

func New() *Router {
	return &Router{rt: httprouter.New()}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.rt.ServeHTTP(w, req)
}

// Handle registers a handler for GET requests on the given path.
func (r *Router) Handle(path string, handler http.Handler) {
	r.rt.Handler(http.MethodGet, path, handler)
}

// Register adds routes to the router. Route endpoints use the
// "METHOD /path" form; a missing method or path panics, since routes are
// wired once at startup and a typo should not survive it.
func (r *Router) Register(routes ...*Route) {
	for _, route := range routes {
		method, path, ok := strings.Cut(route.Endpoint(), " ")
		if !ok || method == "" || !strings.HasPrefix(path, "/") {
			panic(fmt.Sprintf("invalid route endpoint %q, want \"METHOD /path\"", route.Endpoint()))
		}
		r.rt.Handler(method, path, route.Handler())
	}
}
