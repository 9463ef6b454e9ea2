package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xandys/eccbc-mcp/internal/domain/tools"
)

// ToolHandler invokes registered tools directly, bypassing the protocol
// envelope. Useful for curl and upstream integrations that only care about
// the result payload.
type ToolHandler struct {
	registry *tools.Registry
}

func NewToolHandler(reg *tools.Registry) *ToolHandler {
	return &ToolHandler{registry: reg}
}

// Call handles POST /tools/{name}. The body is the raw argument object; an
// empty body means no arguments.
func (h *ToolHandler) Call(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	args := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.registry.Call(r.Context(), name, args)
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, tools.ErrInvalidArguments):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, result)
	}
}
