// Package mcp implements the protocol surface shared by both front-ends:
// method routing to the resource and tool registries, and the response
// envelope returned to a transport.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xandys/eccbc-mcp/internal/domain/resources"
	"github.com/xandys/eccbc-mcp/internal/domain/tools"
)

// JSON-RPC error codes used by the dispatcher.
const (
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInternalError  = -32603
)

// Request is one incoming protocol call.
type Request struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Error is a protocol-level failure. It never carries partial data.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ContentItem is one piece of tool-call output.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Response is the envelope returned to a transport: exactly one of Result
// or Error is set.
type Response struct {
	Result any    `json:"result,omitempty"`
	Error  *Error `json:"error,omitempty"`
}

type handlerFunc func(ctx context.Context, params json.RawMessage) (any, *Error)

// Dispatcher routes protocol methods to the registries. Stateless across
// calls; the method table is built once at construction.
type Dispatcher struct {
	resources *resources.Registry
	tools     *tools.Registry
	methods   map[string]handlerFunc
}

// NewDispatcher wires the four protocol methods onto the given registries.
func NewDispatcher(res *resources.Registry, reg *tools.Registry) *Dispatcher {
	d := &Dispatcher{resources: res, tools: reg}
	d.methods = map[string]handlerFunc{
		"resources/list": d.listResources,
		"resources/read": d.readResource,
		"tools/list":     d.listTools,
		"tools/call":     d.callTool,
	}
	return d
}

// Dispatch routes one request. Every failure comes back inside the Response
// envelope; Dispatch never returns a Go error.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	h, ok := d.methods[req.Method]
	if !ok {
		return Response{Error: &Error{
			Code:    CodeMethodNotFound,
			Message: fmt.Sprintf("unsupported method %q", req.Method),
		}}
	}
	result, errObj := h(ctx, req.Params)
	if errObj != nil {
		return Response{Error: errObj}
	}
	return Response{Result: result}
}

// ─── wire shapes ─────────────────────────────────────────────────────────────

type resourceInfo struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MIMEType    string `json:"mimeType"`
}

type resourceContents struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType"`
	Text     string `json:"text"`
}

type toolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ─── method handlers ─────────────────────────────────────────────────────────

func (d *Dispatcher) listResources(_ context.Context, _ json.RawMessage) (any, *Error) {
	descs := d.resources.List()
	out := make([]resourceInfo, 0, len(descs))
	for _, desc := range descs {
		out = append(out, resourceInfo{
			URI:         desc.URI,
			Name:        desc.Name,
			Description: desc.Description,
			MIMEType:    desc.MIMEType,
		})
	}
	return map[string]any{"resources": out}, nil
}

func (d *Dispatcher) readResource(ctx context.Context, params json.RawMessage) (any, *Error) {
	var p struct {
		URI string `json:"uri"`
	}
	if errObj := unmarshalParams(params, &p); errObj != nil {
		return nil, errObj
	}
	text, err := d.resources.Read(ctx, p.URI)
	if err != nil {
		return nil, &Error{Code: CodeInvalidRequest, Message: err.Error()}
	}
	return map[string]any{
		"contents": []resourceContents{{URI: p.URI, MIMEType: resources.MIMEType, Text: text}},
	}, nil
}

func (d *Dispatcher) listTools(_ context.Context, _ json.RawMessage) (any, *Error) {
	descs := d.tools.List()
	out := make([]toolInfo, 0, len(descs))
	for _, desc := range descs {
		out = append(out, toolInfo{
			Name:        desc.Name,
			Description: desc.Description,
			InputSchema: InputSchema(desc),
		})
	}
	return map[string]any{"tools": out}, nil
}

func (d *Dispatcher) callTool(ctx context.Context, params json.RawMessage) (any, *Error) {
	var p struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if errObj := unmarshalParams(params, &p); errObj != nil {
		return nil, errObj
	}
	if p.Arguments == nil {
		p.Arguments = map[string]any{}
	}

	result, err := d.tools.Call(ctx, p.Name, p.Arguments)
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		return nil, &Error{Code: CodeMethodNotFound, Message: err.Error()}
	case errors.Is(err, tools.ErrInvalidArguments):
		return nil, &Error{Code: CodeInvalidRequest, Message: err.Error()}
	case err != nil:
		return nil, &Error{Code: CodeInternalError, Message: err.Error()}
	}

	text, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, &Error{Code: CodeInternalError, Message: fmt.Sprintf("encode tool result: %v", err)}
	}
	return map[string]any{
		"content": []ContentItem{{Type: "text", Text: string(text)}},
	}, nil
}

func unmarshalParams(raw json.RawMessage, v any) *Error {
	if len(raw) == 0 {
		return &Error{Code: CodeInvalidRequest, Message: "missing params"}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &Error{Code: CodeInvalidRequest, Message: fmt.Sprintf("invalid params: %v", err)}
	}
	return nil
}
