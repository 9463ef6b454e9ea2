package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/xandys/eccbc-mcp/internal/domain/resources"
	"github.com/xandys/eccbc-mcp/internal/domain/tools"
	"github.com/xandys/eccbc-mcp/internal/infra/catalog"
)

func TestNewStdioServer_BuildsFromRegistries(t *testing.T) {
	t.Parallel()

	client := catalog.NewClient("http://unused")
	reg, err := tools.NewBuiltinRegistry(client, tools.FullProfile)
	if err != nil {
		t.Fatalf("NewBuiltinRegistry failed: %v", err)
	}
	srv := NewStdioServer(resources.NewRegistry(client), reg)
	if srv == nil {
		t.Fatal("NewStdioServer returned nil")
	}
}

func TestToolSchema_CreateOrder(t *testing.T) {
	t.Parallel()

	client := catalog.NewClient("http://unused")
	reg, err := tools.NewBuiltinRegistry(client, []string{tools.CreateOrder})
	if err != nil {
		t.Fatalf("NewBuiltinRegistry failed: %v", err)
	}
	desc := reg.List()[0]

	schema := toolSchema(desc)
	if schema.Type != "object" {
		t.Errorf("schema type = %q; want object", schema.Type)
	}
	if len(schema.Required) != 2 {
		t.Errorf("required = %v; want [customer_phone items]", schema.Required)
	}
	items, ok := schema.Properties["items"]
	if !ok {
		t.Fatal("schema missing items property")
	}
	if items.Type != "array" || items.Items == nil {
		t.Fatalf("items schema not an array of objects: %+v", items)
	}
	if _, ok := items.Items.Properties["product_id"]; !ok {
		t.Error("items element schema missing product_id")
	}

	lang := schema.Properties["language"]
	if lang == nil {
		t.Fatal("schema missing language property")
	}
	if string(lang.Default) != `"fr"` {
		t.Errorf("language default = %s; want \"fr\"", lang.Default)
	}
}

func TestCallHandler_InvalidArguments_IsErrorResult(t *testing.T) {
	t.Parallel()

	client := catalog.NewClient("http://unused")
	reg, err := tools.NewBuiltinRegistry(client, []string{tools.CheckStock})
	if err != nil {
		t.Fatalf("NewBuiltinRegistry failed: %v", err)
	}

	handler := callHandler(reg, tools.CheckStock)
	result, err := handler(context.Background(), &sdk.CallToolRequest{
		Params: &sdk.CallToolParamsRaw{Name: tools.CheckStock, Arguments: json.RawMessage(`{}`)},
	})
	// A failed call stays a result, never a protocol fault.
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError result for missing required argument")
	}
	if len(result.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(*sdk.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(text.Text), &body); err != nil {
		t.Fatalf("decoding error content: %v", err)
	}
	if !strings.Contains(body["error"], "product_id") {
		t.Errorf("error = %q, want mention of product_id", body["error"])
	}
}

func TestDecodeArguments(t *testing.T) {
	t.Parallel()

	args, err := decodeArguments(json.RawMessage(`{"search_term":"coca"}`))
	if err != nil {
		t.Fatalf("decodeArguments raw failed: %v", err)
	}
	if args["search_term"] != "coca" {
		t.Errorf("search_term = %v; want coca", args["search_term"])
	}

	args, err = decodeArguments(map[string]any{"limit": 5})
	if err != nil {
		t.Fatalf("decodeArguments map failed: %v", err)
	}
	if args["limit"] != float64(5) {
		t.Errorf("limit = %v; want 5", args["limit"])
	}

	args, err = decodeArguments(nil)
	if err != nil {
		t.Fatalf("decodeArguments nil failed: %v", err)
	}
	if len(args) != 0 {
		t.Errorf("expected empty args, got %v", args)
	}
}
