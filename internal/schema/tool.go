// Package schema contains the core contracts shared across shopbot packages.
// Concrete implementations live in their respective packages; this package is
// the single canonical source of truth for every interface definition.
package schema

import (
	"context"
	"encoding/json"
)

// Tool is the interface all model-callable tools must satisfy.
//
// Execute returns a JSON-shaped result map. Tools report domain failures
// (product not found, card declined) inside the result, not as an error;
// the error return is reserved for unexpected execution faults, which the
// registry converts to a structured error result.
type Tool interface {
	Name() string
	Description() string
	// Parameters returns the JSON Schema (as raw JSON bytes) for this tool's parameters.
	Parameters() json.RawMessage
	Execute(ctx context.Context, params map[string]any) (map[string]any, error)
}
