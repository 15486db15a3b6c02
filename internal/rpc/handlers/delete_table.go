package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meridian-data/catalogd/internal/service"
)

// DeleteTableParams is the request body for catalog.deleteTable.
type DeleteTableParams struct {
	ID string `json:"id"`
}

// DeleteTableResult acknowledges a deletion.
type DeleteTableResult struct {
	Deleted bool `json:"deleted"`
}

// DeleteTable handles the catalog.deleteTable RPC method.
func DeleteTable(ctx context.Context, catalog *service.CatalogService, raw json.RawMessage) (*DeleteTableResult, error) {
	var params DeleteTableParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	if params.ID == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidParams)
	}
	if err := catalog.DeleteTable(ctx, params.ID); err != nil {
		return nil, err
	}
	return &DeleteTableResult{Deleted: true}, nil
}
