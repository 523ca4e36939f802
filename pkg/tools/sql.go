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

	"github.com/lakedeck/lakedeck/pkg/databricks"
)

func (p *Provider) registerSQLTools() {
	p.register(protocolTool(
		"execute_dbsql",
		"Execute a SQL statement on a Databricks SQL warehouse and return rows.",
		objectSchema(map[string]any{
			"statement":    stringProp("SQL statement to execute"),
			"warehouse_id": stringProp("SQL warehouse ID (defaults to the configured warehouse)"),
			"catalog":      stringProp("Default catalog for name resolution"),
			"schema":       stringProp("Default schema for name resolution"),
			"row_limit":    intProp("Maximum number of rows to return"),
		}, []string{"statement"}),
	), p.handleExecuteSQL)

	p.register(protocolTool(
		"get_statement_status",
		"Get the execution status and results of a previously submitted SQL statement.",
		objectSchema(map[string]any{
			"statement_id": stringProp("Statement ID returned by execute_dbsql"),
		}, []string{"statement_id"}),
	), p.handleGetStatement)

	p.register(protocolTool(
		"cancel_statement",
		"Cancel a running SQL statement.",
		objectSchema(map[string]any{
			"statement_id": stringProp("Statement ID to cancel"),
		}, []string{"statement_id"}),
	), p.handleCancelStatement)

	p.register(protocolTool(
		"list_warehouses",
		"List all SQL warehouses in the workspace.",
		objectSchema(nil, nil),
	), p.handleListWarehouses)

	p.register(protocolTool(
		"get_sql_warehouse",
		"Get details of one SQL warehouse.",
		objectSchema(map[string]any{
			"warehouse_id": stringProp("SQL warehouse ID"),
		}, []string{"warehouse_id"}),
	), p.handleGetWarehouse)

	p.register(protocolTool(
		"start_sql_warehouse",
		"Start a stopped SQL warehouse.",
		objectSchema(map[string]any{
			"warehouse_id": stringProp("SQL warehouse ID"),
		}, []string{"warehouse_id"}),
	), p.handleStartWarehouse)

	p.register(protocolTool(
		"stop_sql_warehouse",
		"Stop a running SQL warehouse.",
		objectSchema(map[string]any{
			"warehouse_id": stringProp("SQL warehouse ID"),
		}, []string{"warehouse_id"}),
	), p.handleStopWarehouse)
}

func (p *Provider) handleExecuteSQL(ctx context.Context, args map[string]any) (map[string]any, error) {
	warehouseID := argString(args, "warehouse_id")
	if warehouseID == "" {
		warehouseID = p.warehouseID
	}
	if warehouseID == "" {
		return fail("no warehouse_id provided and no default warehouse configured"), nil
	}

	resp, err := p.client.ExecuteStatement(ctx, &databricks.StatementRequest{
		Statement:   argString(args, "statement"),
		WarehouseID: warehouseID,
		Catalog:     argString(args, "catalog"),
		Schema:      argString(args, "schema"),
		RowLimit:    argInt(args, "row_limit", 0),
		WaitTimeout: "30s",
	})
	if err != nil {
		return fail("failed to execute statement: %v", err), nil
	}

	return ok(statementPayload(resp)), nil
}

func (p *Provider) handleGetStatement(ctx context.Context, args map[string]any) (map[string]any, error) {
	resp, err := p.client.GetStatement(ctx, argString(args, "statement_id"))
	if err != nil {
		return fail("failed to get statement: %v", err), nil
	}
	return ok(statementPayload(resp)), nil
}

func (p *Provider) handleCancelStatement(ctx context.Context, args map[string]any) (map[string]any, error) {
	statementID := argString(args, "statement_id")
	if err := p.client.CancelStatement(ctx, statementID); err != nil {
		return fail("failed to cancel statement: %v", err), nil
	}
	return ok(map[string]any{"statement_id": statementID}), nil
}

// statementPayload flattens a statement response into the tool result
// shape: state, column names, and row arrays.
func statementPayload(resp *databricks.StatementResponse) map[string]any {
	payload := map[string]any{
		"statement_id": resp.StatementID,
		"state":        resp.Status.State,
	}

	if resp.Status.Error != nil {
		payload["statement_error"] = resp.Status.Error.Message
	}

	if resp.Manifest != nil {
		columns := make([]string, 0, len(resp.Manifest.Schema.Columns))
		for _, col := range resp.Manifest.Schema.Columns {
			columns = append(columns, col.Name)
		}
		payload["columns"] = columns
		payload["total_row_count"] = resp.Manifest.TotalRowCount
		payload["truncated"] = resp.Manifest.Truncated
	}

	if resp.Result != nil {
		payload["rows"] = resp.Result.DataArray
		payload["row_count"] = resp.Result.RowCount
	}

	return payload
}

func (p *Provider) handleListWarehouses(ctx context.Context, _ map[string]any) (map[string]any, error) {
	warehouses, err := p.client.ListWarehouses(ctx)
	if err != nil {
		return fail("failed to list warehouses: %v", err), nil
	}

	items := make([]map[string]any, 0, len(warehouses))
	for _, w := range warehouses {
		items = append(items, map[string]any{
			"id":           w.ID,
			"name":         w.Name,
			"state":        w.State,
			"cluster_size": w.ClusterSize,
			"type":         w.WarehouseType,
		})
	}

	return ok(map[string]any{"warehouses": items, "count": len(items)}), nil
}

func (p *Provider) handleGetWarehouse(ctx context.Context, args map[string]any) (map[string]any, error) {
	w, err := p.client.GetWarehouse(ctx, argString(args, "warehouse_id"))
	if err != nil {
		return fail("failed to get warehouse: %v", err), nil
	}

	return ok(map[string]any{
		"id":             w.ID,
		"name":           w.Name,
		"state":          w.State,
		"cluster_size":   w.ClusterSize,
		"num_clusters":   w.NumClusters,
		"auto_stop_mins": w.AutoStopMins,
		"jdbc_url":       w.JDBCURL,
	}), nil
}

func (p *Provider) handleStartWarehouse(ctx context.Context, args map[string]any) (map[string]any, error) {
	warehouseID := argString(args, "warehouse_id")
	if err := p.client.StartWarehouse(ctx, warehouseID); err != nil {
		return fail("failed to start warehouse: %v", err), nil
	}
	return ok(map[string]any{"warehouse_id": warehouseID, "message": "warehouse start requested"}), nil
}

func (p *Provider) handleStopWarehouse(ctx context.Context, args map[string]any) (map[string]any, error) {
	warehouseID := argString(args, "warehouse_id")
	if err := p.client.StopWarehouse(ctx, warehouseID); err != nil {
		return fail("failed to stop warehouse: %v", err), nil
	}
	return ok(map[string]any{"warehouse_id": warehouseID, "message": "warehouse stop requested"}), nil
}
