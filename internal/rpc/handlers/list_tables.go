package handlers

import (
	"context"
	"encoding/json"

	"github.com/meridian-data/catalogd/internal/dto"
	"github.com/meridian-data/catalogd/internal/service"
)

// ListTablesParams is the request body for catalog.listTables.
type ListTablesParams struct {
	Limit int    `json:"limit,omitempty"`
	After string `json:"after,omitempty"`
}

// ListTables handles the catalog.listTables RPC method.
func ListTables(ctx context.Context, catalog *service.CatalogService, raw json.RawMessage) (*dto.TableList, error) {
	var params ListTablesParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	return catalog.ListTables(ctx, params.Limit, params.After)
}
