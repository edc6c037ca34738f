// Package agent holds the tool descriptors and registry the planning
// assistant dispatches to.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownTool is returned when executing a tool that was never registered.
var ErrUnknownTool = errors.New("unknown tool")

// Tool represents a function that an agent can call
type Tool struct {
	// Name is the unique identifier for this tool
	Name string `json:"name"`

	// Description explains what the tool does and what input it expects
	Description string `json:"description"`

	// InputSchema defines the expected input format (JSON Schema)
	InputSchema map[string]any `json:"input_schema"`
}

// ToolHandler is a function that executes a tool and returns the result.
// Errors are reserved for malformed input; backend failures are reported in
// the returned text.
type ToolHandler func(ctx context.Context, input map[string]any) (string, error)

// ToolRegistry manages tools and their handlers
type ToolRegistry struct {
	tools    []Tool
	handlers map[string]ToolHandler
	mu       sync.RWMutex
}

// NewToolRegistry creates a new tool registry
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools:    make([]Tool, 0),
		handlers: make(map[string]ToolHandler),
	}
}

// Register adds a tool with its handler to the registry
func (r *ToolRegistry) Register(tool Tool, handler ToolHandler) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if handler == nil {
		return fmt.Errorf("tool %s has no handler", tool.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[tool.Name]; exists {
		return fmt.Errorf("tool already registered: %s", tool.Name)
	}

	r.tools = append(r.tools, tool)
	r.handlers[tool.Name] = handler
	return nil
}

// MustRegister registers a tool and panics on error
func (r *ToolRegistry) MustRegister(tool Tool, handler ToolHandler) {
	if err := r.Register(tool, handler); err != nil {
		panic(err)
	}
}

// Execute runs a tool by name with the given input
func (r *ToolRegistry) Execute(ctx context.Context, name string, input map[string]any) (string, error) {
	r.mu.RLock()
	handler, ok := r.handlers[name]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	if input == nil {
		input = map[string]any{}
	}
	return handler(ctx, input)
}

// ExecuteJSON runs a tool with a raw JSON object as input. Empty input is
// treated as an empty object.
func (r *ToolRegistry) ExecuteJSON(ctx context.Context, name string, raw []byte) (string, error) {
	input := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &input); err != nil {
			return "", fmt.Errorf("invalid input for %s: %w", name, err)
		}
	}
	return r.Execute(ctx, name, input)
}

// Tools returns all registered tools in registration order
func (r *ToolRegistry) Tools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Tool, len(r.tools))
	copy(result, r.tools)
	return result
}

// Names returns the registered tool names, sorted.
func (r *ToolRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasTool checks if a tool is registered
func (r *ToolRegistry) HasTool(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[name]
	return ok
}

// ToolCount returns the number of registered tools
func (r *ToolRegistry) ToolCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// DecodeInput converts a tool's loosely typed input into a request struct
// using its json tags.
func DecodeInput[T any](input map[string]any) (T, error) {
	var req T
	data, err := json.Marshal(input)
	if err != nil {
		return req, fmt.Errorf("failed to encode input: %w", err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("failed to decode input: %w", err)
	}
	return req, nil
}

// BuildJSONSchema is a helper to construct JSON Schema objects
func BuildJSONSchema(schemaType string, properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       schemaType,
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// PropertyString creates a string property definition
func PropertyString(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}

// PropertyInt creates an integer property definition
func PropertyInt(description string) map[string]any {
	return map[string]any{
		"type":        "integer",
		"description": description,
	}
}

// PropertyBool creates a boolean property definition
func PropertyBool(description string) map[string]any {
	return map[string]any{
		"type":        "boolean",
		"description": description,
	}
}

// PropertyArray creates an array property definition
func PropertyArray(description string, itemType map[string]any) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": description,
		"items":       itemType,
	}
}
