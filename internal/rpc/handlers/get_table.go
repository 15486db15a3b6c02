package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meridian-data/catalogd/internal/dto"
	"github.com/meridian-data/catalogd/internal/service"
)

// GetTableParams is the request body for catalog.getTable.
type GetTableParams struct {
	ID string `json:"id"`
}

// GetTable handles the catalog.getTable RPC method.
func GetTable(ctx context.Context, catalog *service.CatalogService, raw json.RawMessage) (*dto.Table, error) {
	var params GetTableParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	if params.ID == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidParams)
	}
	return catalog.GetTable(ctx, params.ID)
}
