// Package tools holds the functions the assistant can call and the registry
// that advertises and dispatches them.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pravinpardeshi/ai-shopping-via-chatbot/internal/schema"
)

// Registry is an ordered set of tools. Order is preserved in Definitions so
// the model sees a stable capability list.
type Registry struct {
	ordered []schema.Tool
	byName  map[string]schema.Tool
}

func NewRegistry(ts ...schema.Tool) *Registry {
	r := &Registry{byName: make(map[string]schema.Tool, len(ts))}
	for _, t := range ts {
		r.ordered = append(r.ordered, t)
		r.byName[t.Name()] = t
	}
	return r
}

// Definitions renders the registry in the OpenAI function-calling format.
func (r *Registry) Definitions() []map[string]any {
	defs := make([]map[string]any, 0, len(r.ordered))
	for _, t := range r.ordered {
		var params map[string]any
		if err := json.Unmarshal(t.Parameters(), &params); err != nil {
			slog.Error("invalid tool parameter schema", "tool", t.Name(), "err", err)
			continue
		}
		defs = append(defs, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        t.Name(),
				"description": t.Description(),
				"parameters":  params,
			},
		})
	}
	return defs
}

// Dispatch runs the named tool and always returns a result map: tool errors
// and panics come back as {"error": ...} so the model can see what went
// wrong instead of the turn aborting.
func (r *Registry) Dispatch(ctx context.Context, name string, rawArgs any) (result map[string]any) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("tool panicked", "tool", name, "panic", rec)
			result = map[string]any{"error": fmt.Sprintf("tool %s failed: %v", name, rec)}
		}
	}()

	tool, ok := r.byName[name]
	if !ok {
		return map[string]any{"error": fmt.Sprintf("Unknown tool: %s", name)}
	}

	params := normalizeArgs(rawArgs)
	out, err := tool.Execute(ctx, params)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	if out == nil {
		out = map[string]any{}
	}
	return out
}

// normalizeArgs accepts the argument shapes models actually produce: a map,
// a JSON-encoded string, or nothing.
func normalizeArgs(raw any) map[string]any {
	switch v := raw.(type) {
	case map[string]any:
		return v
	case string:
		var m map[string]any
		if err := json.Unmarshal([]byte(v), &m); err == nil {
			return m
		}
		return map[string]any{}
	case nil:
		return map[string]any{}
	default:
		return map[string]any{}
	}
}
