package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xandys/eccbc-mcp/internal/domain/resources"
	"github.com/xandys/eccbc-mcp/internal/domain/tools"
	"github.com/xandys/eccbc-mcp/internal/infra/catalog"
)

func newTestDispatcher(t *testing.T, upstream string) *Dispatcher {
	t.Helper()
	client := catalog.NewClient(upstream)
	reg, err := tools.NewBuiltinRegistry(client, tools.FullProfile)
	if err != nil {
		t.Fatalf("NewBuiltinRegistry failed: %v", err)
	}
	return NewDispatcher(resources.NewRegistry(client), reg)
}

func dispatch(t *testing.T, d *Dispatcher, method, params string) Response {
	t.Helper()
	req := Request{Method: method}
	if params != "" {
		req.Params = json.RawMessage(params)
	}
	return d.Dispatch(context.Background(), req)
}

func TestDispatch_UnsupportedMethod_NamesMethod(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, "http://unused")
	resp := dispatch(t, d, "foo/bar", "")
	if resp.Error == nil {
		t.Fatal("expected protocol error")
	}
	if resp.Error.Code != CodeMethodNotFound {
		t.Errorf("code = %d; want %d", resp.Error.Code, CodeMethodNotFound)
	}
	if !strings.Contains(resp.Error.Message, "foo/bar") {
		t.Errorf("message = %q; want it to contain the method name", resp.Error.Message)
	}
}

func TestDispatch_ResourcesList(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, "http://unused")
	resp := dispatch(t, d, "resources/list", "")
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	list, ok := result["resources"].([]resourceInfo)
	if !ok {
		t.Fatalf("unexpected resources type %T", result["resources"])
	}
	if len(list) != 3 || list[0].URI != resources.CatalogURI {
		t.Errorf("unexpected resource list: %+v", list)
	}
}

func TestDispatch_ResourcesRead_UnknownURI(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, "http://unused")
	resp := dispatch(t, d, "resources/read", `{"uri":"eccbc://missing"}`)
	if resp.Error == nil {
		t.Fatal("expected protocol error")
	}
	if resp.Error.Code != CodeInvalidRequest {
		t.Errorf("code = %d; want %d", resp.Error.Code, CodeInvalidRequest)
	}
	if !strings.Contains(resp.Error.Message, "eccbc://missing") {
		t.Errorf("message = %q; want it to name the URI", resp.Error.Message)
	}
}

func TestDispatch_ResourcesRead_CatalogDegradesOnUpstreamFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	d := newTestDispatcher(t, srv.URL)
	resp := dispatch(t, d, "resources/read", `{"uri":"eccbc://catalog"}`)
	if resp.Error != nil {
		t.Fatalf("catalog read must not become a protocol error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]any)
	contents := result["contents"].([]resourceContents)
	if len(contents) != 1 {
		t.Fatalf("expected one content item, got %d", len(contents))
	}
	if contents[0].Text != "Erreur: Impossible de récupérer le catalogue" {
		t.Errorf("unexpected degraded text: %q", contents[0].Text)
	}
}

func TestDispatch_ToolsList_CarriesSchemas(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, "http://unused")
	resp := dispatch(t, d, "tools/list", "")
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]any)
	list, ok := result["tools"].([]toolInfo)
	if !ok {
		t.Fatalf("unexpected tools type %T", result["tools"])
	}
	if len(list) != 5 {
		t.Fatalf("expected 5 tools, got %d", len(list))
	}
	search := list[0]
	if search.Name != tools.SearchProducts {
		t.Errorf("first tool = %q; want %q", search.Name, tools.SearchProducts)
	}
	if search.InputSchema["type"] != "object" {
		t.Errorf("schema type = %v; want object", search.InputSchema["type"])
	}
	required, _ := search.InputSchema["required"].([]string)
	if len(required) != 1 || required[0] != "search_term" {
		t.Errorf("required = %v; want [search_term]", search.InputSchema["required"])
	}
}

func TestDispatch_ToolsCall_WrapsPrettyJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"Coca"}]`)) //nolint:errcheck
	}))
	defer srv.Close()

	d := newTestDispatcher(t, srv.URL)
	resp := dispatch(t, d, "tools/call", `{"name":"search_products","arguments":{"search_term":"coca"}}`)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result := resp.Result.(map[string]any)
	content := result["content"].([]ContentItem)
	if len(content) != 1 || content[0].Type != "text" {
		t.Fatalf("unexpected content: %+v", content)
	}
	if !strings.Contains(content[0].Text, "\n  \"count\": 1") {
		t.Errorf("expected 2-space indented JSON, got %q", content[0].Text)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(content[0].Text), &decoded); err != nil {
		t.Fatalf("content is not valid JSON: %v", err)
	}
	if decoded["success"] != true {
		t.Errorf("success = %v; want true", decoded["success"])
	}
}

func TestDispatch_ToolsCall_UnknownTool(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, "http://unused")
	resp := dispatch(t, d, "tools/call", `{"name":"explode","arguments":{}}`)
	if resp.Error == nil {
		t.Fatal("expected protocol error")
	}
	if resp.Error.Code != CodeMethodNotFound {
		t.Errorf("code = %d; want %d", resp.Error.Code, CodeMethodNotFound)
	}
	if !strings.Contains(resp.Error.Message, "explode") {
		t.Errorf("message = %q; want it to name the tool", resp.Error.Message)
	}
}

func TestDispatch_ToolsCall_InvalidArguments(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, "http://unused")
	resp := dispatch(t, d, "tools/call", `{"name":"check_stock","arguments":{}}`)
	if resp.Error == nil {
		t.Fatal("expected protocol error for missing product_id")
	}
	if resp.Error.Code != CodeInvalidRequest {
		t.Errorf("code = %d; want %d", resp.Error.Code, CodeInvalidRequest)
	}
}

func TestDispatch_ToolsCall_MissingParams(t *testing.T) {
	t.Parallel()

	d := newTestDispatcher(t, "http://unused")
	resp := dispatch(t, d, "tools/call", "")
	if resp.Error == nil || resp.Error.Code != CodeInvalidRequest {
		t.Fatalf("expected invalid request error, got %+v", resp.Error)
	}
}
