package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meridian-data/catalogd/internal/service"
)

// RelatedTablesParams is the request body for catalog.relatedTables.
type RelatedTablesParams struct {
	FullyQualifiedName string `json:"fullyQualifiedName"`
}

// RelatedTables handles the catalog.relatedTables RPC method.
func RelatedTables(ctx context.Context, catalog *service.CatalogService, raw json.RawMessage) (*service.RelatedTables, error) {
	var params RelatedTablesParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	if params.FullyQualifiedName == "" {
		return nil, fmt.Errorf("%w: fullyQualifiedName is required", ErrInvalidParams)
	}
	return catalog.RelatedTables(ctx, params.FullyQualifiedName)
}
