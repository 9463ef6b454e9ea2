package mcp

import (
	"github.com/xandys/eccbc-mcp/internal/domain/tools"
)

// InputSchema renders a tool descriptor's parameter set as a JSON-schema
// object, the shape tools/list advertises.
func InputSchema(d tools.Descriptor) map[string]any {
	properties := make(map[string]any, len(d.Params))
	var required []string
	for _, p := range d.Params {
		properties[p.Name] = paramSchema(p)
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func paramSchema(p tools.Param) map[string]any {
	s := map[string]any{"type": string(p.Type)}
	if p.Description != "" {
		s["description"] = p.Description
	}
	if p.Default != nil {
		s["default"] = p.Default
	}
	if p.Type == tools.TypeArray && len(p.Items) > 0 {
		itemProps := make(map[string]any, len(p.Items))
		var itemRequired []string
		for _, f := range p.Items {
			itemProps[f.Name] = map[string]any{"type": string(f.Type)}
			if f.Required {
				itemRequired = append(itemRequired, f.Name)
			}
		}
		item := map[string]any{"type": "object", "properties": itemProps}
		if len(itemRequired) > 0 {
			item["required"] = itemRequired
		}
		s["items"] = item
	}
	return s
}
