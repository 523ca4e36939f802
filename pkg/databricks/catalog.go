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

package databricks

import (
	"context"
	"net/http"
	"net/url"
)

// CatalogInfo is a Unity Catalog catalog.
type CatalogInfo struct {
	Name        string `json:"name"`
	Comment     string `json:"comment,omitempty"`
	Owner       string `json:"owner,omitempty"`
	CatalogType string `json:"catalog_type,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

// SchemaInfo is a Unity Catalog schema.
type SchemaInfo struct {
	Name        string `json:"name"`
	CatalogName string `json:"catalog_name"`
	FullName    string `json:"full_name,omitempty"`
	Comment     string `json:"comment,omitempty"`
	Owner       string `json:"owner,omitempty"`
}

// TableColumnInfo describes one column of a Unity Catalog table.
type TableColumnInfo struct {
	Name     string `json:"name"`
	TypeName string `json:"type_name,omitempty"`
	TypeText string `json:"type_text,omitempty"`
	Position int    `json:"position"`
	Nullable bool   `json:"nullable,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// TableInfo is a Unity Catalog table.
type TableInfo struct {
	Name        string            `json:"name"`
	CatalogName string            `json:"catalog_name"`
	SchemaName  string            `json:"schema_name"`
	FullName    string            `json:"full_name,omitempty"`
	TableType   string            `json:"table_type,omitempty"`
	Comment     string            `json:"comment,omitempty"`
	Owner       string            `json:"owner,omitempty"`
	Columns     []TableColumnInfo `json:"columns,omitempty"`
}

// ListCatalogs returns all catalogs visible to the caller.
func (c *Client) ListCatalogs(ctx context.Context) ([]CatalogInfo, error) {
	var resp struct {
		Catalogs []CatalogInfo `json:"catalogs"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/2.1/unity-catalog/catalogs", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Catalogs, nil
}

// ListSchemas returns the schemas of a catalog.
func (c *Client) ListSchemas(ctx context.Context, catalogName string) ([]SchemaInfo, error) {
	query := url.Values{"catalog_name": {catalogName}}

	var resp struct {
		Schemas []SchemaInfo `json:"schemas"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/2.1/unity-catalog/schemas", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Schemas, nil
}

// ListTables returns the tables of a schema.
func (c *Client) ListTables(ctx context.Context, catalogName, schemaName string) ([]TableInfo, error) {
	query := url.Values{
		"catalog_name": {catalogName},
		"schema_name":  {schemaName},
	}

	var resp struct {
		Tables []TableInfo `json:"tables"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/2.1/unity-catalog/tables", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tables, nil
}

// GetTable fetches a table by its three-part name
// (catalog.schema.table), including column metadata.
func (c *Client) GetTable(ctx context.Context, fullName string) (*TableInfo, error) {
	var t TableInfo
	if err := c.do(ctx, http.MethodGet, "/api/2.1/unity-catalog/tables/"+url.PathEscape(fullName), nil, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
