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

package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lakedeck/lakedeck/pkg/databricks"
	"github.com/lakedeck/lakedeck/pkg/mcp/protocol"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := databricks.NewClient(databricks.Config{Host: srv.URL, Token: "test-token"})
	return NewProvider(client, Config{WarehouseID: "wh-default"}, zaptest.NewLogger(t))
}

func TestListToolsSortedAndComplete(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {})

	defs, err := p.ListTools(context.Background())
	require.NoError(t, err)

	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
		assert.NotEmpty(t, d.Description, "tool %s has no description", d.Name)
		assert.NotNil(t, d.InputSchema, "tool %s has no schema", d.Name)
	}
	assert.True(t, sort.StringsAreSorted(names))

	for _, want := range []string{
		"health",
		"execute_dbsql",
		"list_uc_catalogs",
		"list_jobs",
		"create_lakeview_dashboard",
		"add_dashboard_widget",
		"auto_layout_dashboard",
		"create_widget_spec",
		"validate_sql_expression",
	} {
		assert.Contains(t, names, want)
	}
}

func TestCallToolUnknown(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := p.CallTool(context.Background(), "no_such_tool", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestCallToolSchemaValidation(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called for invalid arguments")
	})

	// execute_dbsql requires a statement argument.
	_, err := p.CallTool(context.Background(), "execute_dbsql", map[string]any{})
	require.Error(t, err)

	var rpcErr *protocol.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, protocol.InvalidParams, rpcErr.Code)
}

func TestCallToolFailureEnvelope(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error_code": "PERMISSION_DENIED",
			"message":    "no access to warehouse",
		})
	})

	// Workspace errors come back as a successful tool call carrying a
	// failure payload, not as a protocol error.
	result, err := p.CallTool(context.Background(), "list_warehouses", map[string]any{})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, false, result.StructuredContent["success"])
	assert.Contains(t, result.StructuredContent["error"], "no access to warehouse")
}

func TestCallToolHealth(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {})

	result, err := p.CallTool(context.Background(), "health", map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, true, result.StructuredContent["success"])
	assert.Equal(t, "healthy", result.StructuredContent["status"])
	assert.Equal(t, true, result.StructuredContent["warehouse_configured"])

	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)
	assert.Contains(t, result.Content[0].Text, `"status": "healthy"`)
}

func TestExecuteSQLUsesDefaultWarehouse(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		var req databricks.StatementRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "wh-default", req.WarehouseID)
		assert.Equal(t, "SELECT 1", req.Statement)

		_ = json.NewEncoder(w).Encode(databricks.StatementResponse{
			StatementID: "stmt1",
			Status:      databricks.StatementStatus{State: "SUCCEEDED"},
		})
	})

	result, err := p.CallTool(context.Background(), "execute_dbsql", map[string]any{
		"statement": "SELECT 1",
	})
	require.NoError(t, err)
	assert.Equal(t, true, result.StructuredContent["success"])
	assert.Equal(t, "SUCCEEDED", result.StructuredContent["state"])
}

func TestExecuteSQLNoWarehouseConfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	t.Cleanup(srv.Close)
	client := databricks.NewClient(databricks.Config{Host: srv.URL, Token: "tok"})
	p := NewProvider(client, Config{}, zaptest.NewLogger(t))

	result, err := p.CallTool(context.Background(), "execute_dbsql", map[string]any{
		"statement": "SELECT 1",
	})
	require.NoError(t, err)
	assert.Equal(t, false, result.StructuredContent["success"])
	assert.Contains(t, result.StructuredContent["error"], "warehouse")
}

func TestValidateSQLExpressionTool(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {})

	result, err := p.CallTool(context.Background(), "validate_sql_expression", map[string]any{
		"expression": "SUM(`revenue`)",
	})
	require.NoError(t, err)
	assert.Equal(t, true, result.StructuredContent["valid"])

	result, err = p.CallTool(context.Background(), "validate_sql_expression", map[string]any{
		"expression": "DROP TABLE users",
	})
	require.NoError(t, err)
	assert.Equal(t, false, result.StructuredContent["valid"])
	assert.NotEmpty(t, result.StructuredContent["error"])
}
