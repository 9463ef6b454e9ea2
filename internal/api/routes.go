// Package api wires the HTTP front-end: chi routing plus thin handlers
// that translate HTTP requests into protocol and tool calls.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/xandys/eccbc-mcp/internal/api/handlers"
	"github.com/xandys/eccbc-mcp/internal/domain/resources"
	"github.com/xandys/eccbc-mcp/internal/domain/tools"
	"github.com/xandys/eccbc-mcp/internal/infra/catalog"
	"github.com/xandys/eccbc-mcp/internal/mcp"
)

// NewRouter builds the chi router for the HTTP front-end. The HTTP surface
// exposes the reduced tool profile; the full set is only reachable over
// stdio.
func NewRouter(client *catalog.Client) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	res := resources.NewRegistry(client)
	reg := tools.MustBuiltinRegistry(client, tools.HTTPProfile)
	dispatcher := mcp.NewDispatcher(res, reg)

	mcpHandler := handlers.NewMCPHandler(dispatcher)
	toolHandler := handlers.NewToolHandler(reg)
	summaryHandler := handlers.NewSummaryHandler(res, reg, client.BaseURL())

	r.Get("/health", handlers.Health)
	r.Post("/mcp", mcpHandler.Dispatch)
	r.Post("/tools/{name}", toolHandler.Call)
	r.Get("/resources", summaryHandler.Summary)

	return r
}
