package handlers

import (
	"net/http"

	"github.com/xandys/eccbc-mcp/internal/domain/resources"
	"github.com/xandys/eccbc-mcp/internal/domain/tools"
)

// SummaryHandler describes what this server exposes: resource URIs, tool
// names and the upstream API it talks to.
type SummaryHandler struct {
	resources *resources.Registry
	tools     *tools.Registry
	baseURL   string
}

func NewSummaryHandler(res *resources.Registry, reg *tools.Registry, baseURL string) *SummaryHandler {
	return &SummaryHandler{resources: res, tools: reg, baseURL: baseURL}
}

// Summary handles GET /resources.
func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	descriptors := h.resources.List()
	uris := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		uris = append(uris, d.URI)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"resources":    uris,
		"tools":        h.tools.Names(),
		"api_base_url": h.baseURL,
	})
}
