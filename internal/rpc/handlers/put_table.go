package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/meridian-data/catalogd/internal/dto"
	"github.com/meridian-data/catalogd/internal/service"
)

// ErrInvalidParams marks malformed or incomplete request parameters.
var ErrInvalidParams = errors.New("invalid params")

// PutTableParams is the request body for catalog.putTable.
type PutTableParams struct {
	Table *dto.Table `json:"table"`
}

// PutTable handles the catalog.putTable RPC method.
func PutTable(ctx context.Context, catalog *service.CatalogService, raw json.RawMessage) (*dto.Table, error) {
	var params PutTableParams
	if err := decodeParams(raw, &params); err != nil {
		return nil, err
	}
	if params.Table == nil {
		return nil, fmt.Errorf("%w: table is required", ErrInvalidParams)
	}
	return catalog.PutTable(ctx, params.Table)
}

func decodeParams(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}
