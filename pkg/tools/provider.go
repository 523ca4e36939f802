// Copyright 2026 Lakedeck Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package tools exposes Databricks workspace operations as MCP tools.
// Each tool is a thin pass-through: validate arguments against the
// tool's JSON schema, call one workspace API method, reshape the
// response into a result envelope. Workspace failures are reported as
// {success: false, error: ...} payloads rather than protocol errors, so
// the calling LLM can read and react to them.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/lakedeck/lakedeck/pkg/databricks"
	"github.com/lakedeck/lakedeck/pkg/mcp/protocol"
	"go.uber.org/zap"
)

// Handler executes one tool call with schema-validated arguments.
type Handler func(ctx context.Context, args map[string]any) (map[string]any, error)

type tool struct {
	def     protocol.Tool
	handler Handler
}

// Config holds tool-layer configuration.
type Config struct {
	// WarehouseID is the default SQL warehouse for statement execution
	// and dashboard publishing when a call does not name one.
	WarehouseID string
}

// Provider implements server.ToolProvider over a Databricks workspace.
type Provider struct {
	client      *databricks.Client
	warehouseID string
	logger      *zap.Logger

	mu    sync.RWMutex
	tools map[string]tool
}

// NewProvider creates a tool provider with the full tool surface
// registered.
func NewProvider(client *databricks.Client, cfg Config, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Provider{
		client:      client,
		warehouseID: cfg.WarehouseID,
		logger:      logger,
		tools:       make(map[string]tool),
	}

	p.register(protocol.Tool{
		Name:        "health",
		Description: "Check server health and workspace connectivity configuration.",
		InputSchema: objectSchema(nil, nil),
	}, p.handleHealth)

	p.registerSQLTools()
	p.registerCatalogTools()
	p.registerJobTools()
	p.registerDashboardTools()

	return p
}

func (p *Provider) register(def protocol.Tool, handler Handler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tools[def.Name] = tool{def: def, handler: handler}
}

// ListTools returns all registered tool definitions, sorted by name.
func (p *Provider) ListTools(_ context.Context) ([]protocol.Tool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	defs := make([]protocol.Tool, 0, len(p.tools))
	for _, t := range p.tools {
		defs = append(defs, t.def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}

// CallTool validates arguments against the tool's schema and executes it.
func (p *Provider) CallTool(ctx context.Context, name string, args map[string]any) (*protocol.CallToolResult, error) {
	p.mu.RLock()
	t, ok := p.tools[name]
	p.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}

	if err := protocol.ValidateToolArguments(t.def, args); err != nil {
		return nil, protocol.NewError(protocol.InvalidParams, fmt.Sprintf("invalid arguments for %s: %v", name, err), nil)
	}

	p.logger.Debug("calling tool", zap.String("tool", name))

	result, err := t.handler(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return toolResult(result)
}

// toolResult renders a result payload as pretty-printed JSON text plus
// structured content.
func toolResult(payload map[string]any) (*protocol.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool result: %w", err)
	}

	return &protocol.CallToolResult{
		Content:           []protocol.Content{{Type: "text", Text: string(data)}},
		StructuredContent: payload,
	}, nil
}

// ok wraps a payload in a success envelope.
func ok(payload map[string]any) map[string]any {
	out := map[string]any{"success": true}
	for k, v := range payload {
		out[k] = v
	}
	return out
}

// fail wraps a workspace error in a failure envelope. The error text is
// surfaced to the caller instead of failing the tool call, matching how
// the LLM client is expected to recover.
func fail(format string, args ...any) map[string]any {
	return map[string]any{"success": false, "error": fmt.Sprintf(format, args...)}
}

func protocolTool(name, description string, schema map[string]any) protocol.Tool {
	return protocol.Tool{Name: name, Description: description, InputSchema: schema}
}

// Schema construction helpers.

func objectSchema(properties map[string]any, required []string) map[string]any {
	if properties == nil {
		properties = map[string]any{}
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

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func intProp(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

func boolProp(description string) map[string]any {
	return map[string]any{"type": "boolean", "description": description}
}

func arrayProp(description string, items map[string]any) map[string]any {
	return map[string]any{"type": "array", "description": description, "items": items}
}

// Argument extraction helpers. Arguments have already passed schema
// validation; these only normalize JSON number decoding.

func argString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func argInt(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func argInt64(args map[string]any, key string, def int64) int64 {
	switch v := args[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return def
}

func argBool(args map[string]any, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

func argList(args map[string]any, key string) []any {
	l, _ := args[key].([]any)
	return l
}

func (p *Provider) handleHealth(_ context.Context, _ map[string]any) (map[string]any, error) {
	return ok(map[string]any{
		"status":               "healthy",
		"warehouse_configured": p.warehouseID != "",
		"workspace_client":     p.client != nil,
	}), nil
}
