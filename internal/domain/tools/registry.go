// Package tools holds the callable tool surface: descriptors with typed
// parameter schemas, argument validation, and the built-in executors that
// forward to the upstream catalog API.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrToolAlreadyRegistered = errors.New("tool already registered")
	ErrUnknownTool           = errors.New("unknown tool")
	ErrInvalidArguments      = errors.New("invalid tool arguments")
)

// ParamType is the JSON-schema type tag of a tool parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
)

// Param declares one named tool parameter.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Default     any     // applied when the argument is absent
	Items       []Param // element object fields, array params only
}

// Descriptor describes one callable tool. Immutable after registration.
type Descriptor struct {
	Name        string
	Description string
	Params      []Param
}

// Args is a validated, defaulted argument set.
type Args map[string]any

// String returns the string argument for key, "" when absent.
func (a Args) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// Int returns the integer argument for key, 0 when absent.
func (a Args) Int(key string) int {
	n, _ := a[key].(int)
	return n
}

// Bool returns the boolean argument for key, false when absent.
func (a Args) Bool(key string) bool {
	b, _ := a[key].(bool)
	return b
}

// Handler executes a validated invocation. Upstream failures are returned as
// success:false result maps, never as errors.
type Handler func(ctx context.Context, args Args) map[string]any

// Registry maps tool names to descriptors and handlers. Read-only after
// start-up.
type Registry struct {
	order    []Descriptor
	byName   map[string]Descriptor
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:   make(map[string]Descriptor),
		handlers: make(map[string]Handler),
	}
}

// Register adds a tool. Each name may be registered exactly once.
func (r *Registry) Register(d Descriptor, h Handler) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" || h == nil {
		return fmt.Errorf("tool registration requires a name and a handler")
	}
	if _, exists := r.handlers[d.Name]; exists {
		return fmt.Errorf("%w: %s", ErrToolAlreadyRegistered, d.Name)
	}
	r.order = append(r.order, d)
	r.byName[d.Name] = d
	r.handlers[d.Name] = h
	return nil
}

// List returns all descriptors in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.order))
	copy(out, r.order)
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	for i, d := range r.order {
		out[i] = d.Name
	}
	return out
}

// Call validates rawArgs against the tool's parameter set, applies defaults
// and runs the handler. Unknown names and invalid arguments fail before any
// upstream call is attempted.
func (r *Registry) Call(ctx context.Context, name string, rawArgs map[string]any) (map[string]any, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	args, err := validateArgs(r.byName[name], rawArgs)
	if err != nil {
		return nil, err
	}
	return h(ctx, args), nil
}

// validateArgs checks required keys, coerces values to their declared types
// and fills in declared defaults.
func validateArgs(d Descriptor, raw map[string]any) (Args, error) {
	args := make(Args, len(d.Params))
	for _, p := range d.Params {
		v, present := raw[p.Name]
		if !present || v == nil {
			if p.Required {
				return nil, fmt.Errorf("%w: missing required argument %q for %s", ErrInvalidArguments, p.Name, d.Name)
			}
			if p.Default != nil {
				args[p.Name] = p.Default
			}
			continue
		}
		coerced, err := coerce(p, v)
		if err != nil {
			return nil, err
		}
		args[p.Name] = coerced
	}
	return args, nil
}

func coerce(p Param, v any) (any, error) {
	switch p.Type {
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case TypeInteger:
		switch n := v.(type) {
		case int:
			return n, nil
		case float64:
			if n == math.Trunc(n) {
				return int(n), nil
			}
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return int(i), nil
			}
		}
	case TypeBoolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case TypeArray:
		if arr, ok := v.([]any); ok {
			return coerceArray(p, arr)
		}
	}
	return nil, fmt.Errorf("%w: argument %q must be of type %s", ErrInvalidArguments, p.Name, p.Type)
}

// coerceArray validates each element against the declared item fields, so
// handlers can consume the array without re-checking shapes.
func coerceArray(p Param, arr []any) (any, error) {
	if len(p.Items) == 0 {
		return arr, nil
	}
	out := make([]any, 0, len(arr))
	for i, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: argument %q element %d must be an object", ErrInvalidArguments, p.Name, i)
		}
		normalized := make(map[string]any, len(p.Items))
		for _, f := range p.Items {
			fv, present := obj[f.Name]
			if !present || fv == nil {
				if f.Required {
					return nil, fmt.Errorf("%w: argument %q element %d missing field %q", ErrInvalidArguments, p.Name, i, f.Name)
				}
				continue
			}
			cv, err := coerce(f, fv)
			if err != nil {
				return nil, err
			}
			normalized[f.Name] = cv
		}
		out = append(out, normalized)
	}
	return out, nil
}
