package rpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/exp/jsonrpc2"

	"github.com/meridian-data/catalogd/internal/dto"
	"github.com/meridian-data/catalogd/internal/rpc/handlers"
	"github.com/meridian-data/catalogd/internal/service"
	"github.com/meridian-data/catalogd/internal/storage"
)

// Handler dispatches JSON-RPC methods to the catalog service.
type Handler struct {
	catalog *service.CatalogService
}

func NewHandler(catalog *service.CatalogService) *Handler {
	return &Handler{catalog: catalog}
}

// Handle implements the jsonrpc2.Handler interface.
func (h *Handler) Handle(ctx context.Context, req *jsonrpc2.Request) (any, error) {
	slog.Debug("rpc request", slog.String("method", req.Method))

	switch req.Method {
	case "catalog.putTable":
		return handlers.PutTable(ctx, h.catalog, req.Params)
	case "catalog.getTable":
		return handlers.GetTable(ctx, h.catalog, req.Params)
	case "catalog.getTableByName":
		return handlers.GetTableByName(ctx, h.catalog, req.Params)
	case "catalog.listTables":
		return handlers.ListTables(ctx, h.catalog, req.Params)
	case "catalog.deleteTable":
		return handlers.DeleteTable(ctx, h.catalog, req.Params)
	case "catalog.relatedTables":
		return handlers.RelatedTables(ctx, h.catalog, req.Params)
	default:
		slog.Error("rpc method not found", slog.String("method", req.Method))
		return nil, fmt.Errorf("%w: %s", jsonrpc2.ErrMethodNotFound, req.Method)
	}
}

// errorCode maps service errors onto JSON-RPC error codes.
func errorCode(err error) int64 {
	switch {
	case errors.Is(err, jsonrpc2.ErrMethodNotFound):
		return -32601
	case errors.Is(err, handlers.ErrInvalidParams),
		errors.Is(err, dto.ErrMissingName),
		errors.Is(err, dto.ErrMissingColumns),
		errors.Is(err, service.ErrIDMismatch):
		return -32602
	case errors.Is(err, storage.ErrTableNotFound):
		return -32001
	default:
		return -32603
	}
}
