package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xandys/eccbc-mcp/internal/mcp"
)

// MCPHandler exposes the protocol dispatcher over a single POST endpoint.
type MCPHandler struct {
	dispatcher *mcp.Dispatcher
}

func NewMCPHandler(d *mcp.Dispatcher) *MCPHandler {
	return &MCPHandler{dispatcher: d}
}

// Dispatch handles POST /mcp. The body carries {"method": ..., "params": ...}
// and the response is the protocol envelope. Protocol-level failures (unknown
// method, bad arguments) still answer 200 with an error envelope; only a
// panic escalates to HTTP 500.
func (h *MCPHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req mcp.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, panicMsg := h.safeDispatch(r.Context(), req)
	if panicMsg != "" {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": mcp.Error{
				Code:    mcp.CodeInternalError,
				Message: "Internal error",
				Data:    panicMsg,
			},
		})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *MCPHandler) safeDispatch(ctx context.Context, req mcp.Request) (resp mcp.Response, panicMsg string) {
	defer func() {
		if rec := recover(); rec != nil {
			panicMsg = fmt.Sprint(rec)
		}
	}()
	return h.dispatcher.Dispatch(ctx, req), ""
}
