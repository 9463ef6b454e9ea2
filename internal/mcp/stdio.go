package mcp

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/xandys/eccbc-mcp/internal/domain/resources"
	"github.com/xandys/eccbc-mcp/internal/domain/tools"
)

// Identity advertised to MCP peers.
const (
	ServerName    = "eccbc-stock-management"
	ServerVersion = "1.0.0"
)

// NewStdioServer builds the SDK server exposing both registries. Registering
// resources and tools is what advertises the matching capabilities during
// initialize.
func NewStdioServer(res *resources.Registry, reg *tools.Registry) *sdk.Server {
	srv := sdk.NewServer(&sdk.Implementation{Name: ServerName, Version: ServerVersion}, nil)

	for _, desc := range res.List() {
		srv.AddResource(&sdk.Resource{
			URI:         desc.URI,
			Name:        desc.Name,
			Description: desc.Description,
			MIMEType:    desc.MIMEType,
		}, readHandler(res, desc))
	}

	for _, desc := range reg.List() {
		srv.AddTool(&sdk.Tool{
			Name:        desc.Name,
			Description: desc.Description,
			InputSchema: toolSchema(desc),
		}, callHandler(reg, desc.Name))
	}

	return srv
}

// RunStdio serves the registries on stdin/stdout until the peer disconnects.
func RunStdio(ctx context.Context, res *resources.Registry, reg *tools.Registry) error {
	return NewStdioServer(res, reg).Run(ctx, &sdk.StdioTransport{})
}

func readHandler(res *resources.Registry, desc resources.Descriptor) sdk.ResourceHandler {
	return func(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
		text, err := res.Read(ctx, desc.URI)
		if err != nil {
			return nil, err
		}
		return &sdk.ReadResourceResult{
			Contents: []*sdk.ResourceContents{{URI: desc.URI, MIMEType: desc.MIMEType, Text: text}},
		}, nil
	}
}

func callHandler(reg *tools.Registry, name string) sdk.ToolHandler {
	return func(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
		args, err := decodeArguments(req.Params.Arguments)
		if err != nil {
			return errorResult(err), nil
		}
		result, err := reg.Call(ctx, name, args)
		if err != nil {
			return errorResult(err), nil
		}
		text, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return errorResult(err), nil
		}
		return &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: string(text)}},
		}, nil
	}
}

// decodeArguments accepts raw JSON or an already-decoded value from the SDK
// by round-tripping through encoding/json.
func decodeArguments(v any) (map[string]any, error) {
	args := map[string]any{}
	if v == nil {
		return args, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return args, nil
	}
	if err := json.Unmarshal(data, &args); err != nil {
		return nil, err
	}
	return args, nil
}

// errorResult reports a failed call as an error-flagged text item rather
// than a protocol fault.
func errorResult(err error) *sdk.CallToolResult {
	text, merr := json.Marshal(map[string]string{"error": err.Error()})
	if merr != nil {
		text = []byte(`{"error":"internal error"}`)
	}
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: string(text)}},
		IsError: true,
	}
}

func toolSchema(d tools.Descriptor) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(d.Params))
	var required []string
	for _, p := range d.Params {
		properties[p.Name] = paramJSONSchema(p)
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return &jsonschema.Schema{Type: "object", Properties: properties, Required: required}
}

func paramJSONSchema(p tools.Param) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: string(p.Type), Description: p.Description}
	if p.Default != nil {
		if data, err := json.Marshal(p.Default); err == nil {
			s.Default = json.RawMessage(data)
		}
	}
	if p.Type == tools.TypeArray && len(p.Items) > 0 {
		item := &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{}}
		for _, f := range p.Items {
			item.Properties[f.Name] = &jsonschema.Schema{Type: string(f.Type)}
			if f.Required {
				item.Required = append(item.Required, f.Name)
			}
		}
		s.Items = item
	}
	return s
}
