package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-data/catalogd/internal/dto"
	"github.com/meridian-data/catalogd/internal/events"
	"github.com/meridian-data/catalogd/internal/pkg/logctx"
	"github.com/meridian-data/catalogd/internal/storage"
)

const defaultPageSize = 10

var ErrIDMismatch = errors.New("entity id does not match the stored entity")

// CatalogService owns the table-entity lifecycle: validation, identity,
// versioning, persistence, and change events.
type CatalogService struct {
	store *storage.TableStore
	hub   *events.Hub

	summaryRows int
	maxPageSize int

	now   func() time.Time
	newID func() string
}

func NewCatalogService(store *storage.TableStore, hub *events.Hub, display storage.DisplayConfig) *CatalogService {
	return &CatalogService{
		store:       store,
		hub:         hub,
		summaryRows: display.SummaryRows,
		maxPageSize: display.MaxPageSize,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// PutTable creates or updates a table entity keyed by fully qualified
// name. A new entity gets a UUID and version 1; an update keeps the
// stored UUID and bumps the version only when the document changed.
func (cs *CatalogService) PutTable(ctx context.Context, table *dto.Table) (*dto.Table, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}

	entity := table.Clone()
	if entity.FullyQualifiedName == "" {
		entity.FullyQualifiedName = entity.Name
	}
	ctx = logctx.WithField(ctx, "fqn", entity.FullyQualifiedName)

	existing, err := cs.store.GetByName(ctx, entity.FullyQualifiedName)
	switch {
	case err == nil:
		if entity.ID != "" && entity.ID != existing.ID {
			return nil, fmt.Errorf("%w: '%s' is stored as %s", ErrIDMismatch, entity.FullyQualifiedName, existing.ID)
		}
		entity.ID = existing.ID
		entity.Version = existing.Version
		if !documentsEqual(entity, existing) {
			entity.Version++
		}
	case errors.Is(err, storage.ErrTableNotFound):
		if entity.ID == "" {
			entity.ID = cs.newID()
		}
		entity.Version = 1
		existing = nil
	default:
		return nil, err
	}

	entity.UpdatedAt = cs.now().UTC()
	if err := cs.store.Upsert(ctx, entity); err != nil {
		return nil, err
	}

	change := events.ChangeUpdated
	if existing == nil {
		change = events.ChangeCreated
	}
	cs.publish(change, entity)
	slog.InfoContext(ctx, "table stored",
		slog.String("change", change), slog.Int64("version", entity.Version))

	return entity, nil
}

// GetTable fetches a table entity by UUID.
func (cs *CatalogService) GetTable(ctx context.Context, id string) (*dto.Table, error) {
	return cs.store.GetByID(ctx, id)
}

// GetTableByName fetches a table entity by fully qualified name.
func (cs *CatalogService) GetTableByName(ctx context.Context, fqn string) (*dto.Table, error) {
	return cs.store.GetByName(ctx, fqn)
}

// ListTables returns one page of the catalog. A non-positive limit falls
// back to the default page size; limits above the configured maximum are
// clamped.
func (cs *CatalogService) ListTables(ctx context.Context, limit int, after string) (*dto.TableList, error) {
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > cs.maxPageSize {
		limit = cs.maxPageSize
	}
	return cs.store.List(ctx, limit, after)
}

// DeleteTable removes a table entity by UUID.
func (cs *CatalogService) DeleteTable(ctx context.Context, id string) error {
	deleted, err := cs.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	cs.publish(events.ChangeDeleted, deleted)
	slog.InfoContext(ctx, "table deleted",
		slog.String("id", deleted.ID), slog.String("fqn", deleted.FullyQualifiedName))
	return nil
}

func (cs *CatalogService) publish(change string, table *dto.Table) {
	if cs.hub == nil {
		return
	}
	cs.hub.Publish(events.Event{
		Name: events.EntityChangedEvent,
		Payload: events.EntityChangedPayload{
			Change:             change,
			EntityID:           table.ID,
			FullyQualifiedName: table.FullyQualifiedName,
			Version:            table.Version,
		},
	})
}

// documentsEqual compares two entities ignoring the bookkeeping fields the
// service manages itself.
func documentsEqual(a, b *dto.Table) bool {
	return string(normalizedDocument(a)) == string(normalizedDocument(b))
}

func normalizedDocument(table *dto.Table) []byte {
	normalized := table.Clone()
	normalized.ID = ""
	normalized.Version = 0
	normalized.UpdatedAt = time.Time{}
	normalized.UpdatedBy = ""
	doc, err := json.Marshal(normalized)
	if err != nil {
		return nil
	}
	return doc
}
