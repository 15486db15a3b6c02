package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meridian-data/catalogd/internal/dto"
	"github.com/meridian-data/catalogd/internal/service"
)

// GetTableByNameParams is the request body for catalog.getTableByName.
type GetTableByNameParams struct {
	FullyQualifiedName string `json:"fullyQualifiedName"`
}

// GetTableByName handles the catalog.getTableByName RPC method.
func GetTableByName(ctx context.Context, catalog *service.CatalogService, raw json.RawMessage) (*dto.Table, error) {
	var params GetTableByNameParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	if params.FullyQualifiedName == "" {
		return nil, fmt.Errorf("%w: fullyQualifiedName is required", ErrInvalidParams)
	}
	return catalog.GetTableByName(ctx, params.FullyQualifiedName)
}
