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

import "context"

func (p *Provider) registerCatalogTools() {
	p.register(protocolTool(
		"list_uc_catalogs",
		"List all Unity Catalog catalogs visible to the caller.",
		objectSchema(nil, nil),
	), p.handleListCatalogs)

	p.register(protocolTool(
		"list_uc_schemas",
		"List schemas in a Unity Catalog catalog.",
		objectSchema(map[string]any{
			"catalog_name": stringProp("Catalog to list schemas from"),
		}, []string{"catalog_name"}),
	), p.handleListSchemas)

	p.register(protocolTool(
		"list_uc_tables",
		"List tables in a Unity Catalog schema.",
		objectSchema(map[string]any{
			"catalog_name": stringProp("Catalog name"),
			"schema_name":  stringProp("Schema name"),
		}, []string{"catalog_name", "schema_name"}),
	), p.handleListTables)

	p.register(protocolTool(
		"describe_uc_table",
		"Describe a Unity Catalog table including its columns.",
		objectSchema(map[string]any{
			"full_name": stringProp("Three-part table name: catalog.schema.table"),
		}, []string{"full_name"}),
	), p.handleDescribeTable)
}

func (p *Provider) handleListCatalogs(ctx context.Context, _ map[string]any) (map[string]any, error) {
	catalogs, err := p.client.ListCatalogs(ctx)
	if err != nil {
		return fail("failed to list catalogs: %v", err), nil
	}

	items := make([]map[string]any, 0, len(catalogs))
	for _, c := range catalogs {
		items = append(items, map[string]any{
			"name":    c.Name,
			"comment": c.Comment,
			"owner":   c.Owner,
			"type":    c.CatalogType,
		})
	}

	return ok(map[string]any{"catalogs": items, "count": len(items)}), nil
}

func (p *Provider) handleListSchemas(ctx context.Context, args map[string]any) (map[string]any, error) {
	schemas, err := p.client.ListSchemas(ctx, argString(args, "catalog_name"))
	if err != nil {
		return fail("failed to list schemas: %v", err), nil
	}

	items := make([]map[string]any, 0, len(schemas))
	for _, s := range schemas {
		items = append(items, map[string]any{
			"name":      s.Name,
			"full_name": s.FullName,
			"comment":   s.Comment,
		})
	}

	return ok(map[string]any{"schemas": items, "count": len(items)}), nil
}

func (p *Provider) handleListTables(ctx context.Context, args map[string]any) (map[string]any, error) {
	tables, err := p.client.ListTables(ctx, argString(args, "catalog_name"), argString(args, "schema_name"))
	if err != nil {
		return fail("failed to list tables: %v", err), nil
	}

	items := make([]map[string]any, 0, len(tables))
	for _, t := range tables {
		items = append(items, map[string]any{
			"name":       t.Name,
			"full_name":  t.FullName,
			"table_type": t.TableType,
			"comment":    t.Comment,
		})
	}

	return ok(map[string]any{"tables": items, "count": len(items)}), nil
}

func (p *Provider) handleDescribeTable(ctx context.Context, args map[string]any) (map[string]any, error) {
	table, err := p.client.GetTable(ctx, argString(args, "full_name"))
	if err != nil {
		return fail("failed to describe table: %v", err), nil
	}

	columns := make([]map[string]any, 0, len(table.Columns))
	for _, col := range table.Columns {
		columns = append(columns, map[string]any{
			"name":     col.Name,
			"type":     col.TypeText,
			"nullable": col.Nullable,
			"comment":  col.Comment,
		})
	}

	return ok(map[string]any{
		"full_name":  table.FullName,
		"table_type": table.TableType,
		"comment":    table.Comment,
		"owner":      table.Owner,
		"columns":    columns,
	}), nil
}
