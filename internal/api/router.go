// Package api is the thin transport layer over the resolution pipeline:
// link parsing, routing, redirect vs. JSON formatting, and CORS. It makes
// no matching decisions of its own.
package api

import (
	"log/slog"
	"net/http"

	"github.com/sydlexius/crossfade/internal/api/middleware"
)

// RouterDeps bundles the dependencies needed by the HTTP router.
type RouterDeps struct {
	Metadata MetadataFetcher
	Resolver EntryResolver
	Logger   *slog.Logger
	BasePath string
}

// Router sets up all HTTP routes for the service.
type Router struct {
	metadata MetadataFetcher
	resolver EntryResolver
	logger   *slog.Logger
	basePath string
}

// NewRouter creates a Router with all routes configured.
func NewRouter(deps RouterDeps) *Router {
	return &Router{
		metadata: deps.Metadata,
		resolver: deps.Resolver,
		logger:   deps.Logger,
		basePath: deps.BasePath,
	}
}

// Handler returns the fully wired HTTP handler.
func (r *Router) Handler() http.Handler {
	bp := r.basePath
	if bp == "/" {
		bp = ""
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+bp+"/api/v1/health", r.handleHealth)
	mux.HandleFunc("GET "+bp+"/resolve", r.handleResolve)

	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.Logging(r.logger)(handler)
	return handler
}
