package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/meridian-data/catalogd/internal/dto"
	"github.com/meridian-data/catalogd/internal/events"
	"github.com/meridian-data/catalogd/internal/storage"
)

func newTestService(t *testing.T) (*CatalogService, *events.Hub) {
	t.Helper()
	store, err := storage.OpenTableStore(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	hub := events.NewHub()
	svc := NewCatalogService(store, hub, storage.DisplayConfig{SummaryRows: 3, MaxPageSize: 100})
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) }
	return svc, hub
}

func inputTable(name string, constraints ...dto.TableConstraint) *dto.Table {
	return &dto.Table{
		Name:               name,
		FullyQualifiedName: "warehouse.sales." + name,
		TableType:          dto.TableRegular,
		Columns: []dto.Column{
			{Name: "id", DataType: dto.DataTypeBigint, OrdinalPosition: 1},
		},
		TableConstraints: constraints,
	}
}

func foreignKey(column string, referred ...string) dto.TableConstraint {
	return dto.TableConstraint{
		ConstraintType:  dto.ConstraintForeignKey,
		Columns:         []string{column},
		ReferredColumns: referred,
	}
}

func TestPutTableCreatesEntity(t *testing.T) {
	svc, hub := newTestService(t)
	ctx := context.Background()

	ch, cancel := hub.Subscribe()
	defer cancel()

	stored, err := svc.PutTable(ctx, inputTable("dim_customer"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if stored.ID == "" {
		t.Fatalf("expected generated UUID")
	}
	if stored.Version != 1 {
		t.Fatalf("expected version 1, got %d", stored.Version)
	}
	if stored.UpdatedAt.IsZero() {
		t.Fatalf("expected updatedAt stamp")
	}

	select {
	case evt := <-ch:
		payload, ok := evt.Payload.(events.EntityChangedPayload)
		if !ok {
			t.Fatalf("unexpected payload type %T", evt.Payload)
		}
		if payload.Change != events.ChangeCreated || payload.EntityID != stored.ID {
			t.Fatalf("unexpected payload: %+v", payload)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected entity.changed event")
	}
}

func TestPutTableBumpsVersionOnlyOnChange(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.PutTable(ctx, inputTable("dim_customer"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}

	// Identical document: same version, same ID.
	same, err := svc.PutTable(ctx, inputTable("dim_customer"))
	if err != nil {
		t.Fatalf("second put failed: %v", err)
	}
	if same.ID != first.ID {
		t.Fatalf("expected stable UUID, got %q vs %q", same.ID, first.ID)
	}
	if same.Version != 1 {
		t.Fatalf("expected unchanged version, got %d", same.Version)
	}

	// Changed document: version bump.
	changed := inputTable("dim_customer")
	desc := "customer dimension"
	changed.Description = &desc
	updated, err := svc.PutTable(ctx, changed)
	if err != nil {
		t.Fatalf("third put failed: %v", err)
	}
	if updated.Version != 2 {
		t.Fatalf("expected version 2 after change, got %d", updated.Version)
	}
	if updated.ID != first.ID {
		t.Fatalf("update must keep the stored UUID")
	}
}

func TestPutTableRejectsForeignID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.PutTable(ctx, inputTable("dim_customer")); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	imposter := inputTable("dim_customer")
	imposter.ID = "let-me-in"
	_, err := svc.PutTable(ctx, imposter)
	if !errors.Is(err, ErrIDMismatch) {
		t.Fatalf("expected ErrIDMismatch, got %v", err)
	}
}

func TestPutTableRejectsInvalidEntity(t *testing.T) {
	svc, _ := newTestService(t)
	invalid := inputTable("dim_customer")
	invalid.Columns = nil
	if _, err := svc.PutTable(context.Background(), invalid); !errors.Is(err, dto.ErrMissingColumns) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteTablePublishesEvent(t *testing.T) {
	svc, hub := newTestService(t)
	ctx := context.Background()

	stored, err := svc.PutTable(ctx, inputTable("dim_customer"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}

	ch, cancel := hub.Subscribe()
	defer cancel()

	if err := svc.DeleteTable(ctx, stored.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetTable(ctx, stored.ID); !errors.Is(err, storage.ErrTableNotFound) {
		t.Fatalf("expected entity gone, got %v", err)
	}

	select {
	case evt := <-ch:
		payload := evt.Payload.(events.EntityChangedPayload)
		if payload.Change != events.ChangeDeleted {
			t.Fatalf("expected delete event, got %+v", payload)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected entity.changed event")
	}
}

func TestListTablesClampsLimit(t *testing.T) {
	svc, _ := newTestService(t)
	svc.maxPageSize = 2
	ctx := context.Background()

	for _, name := range []string{"a_table", "b_table", "c_table"} {
		if _, err := svc.PutTable(ctx, inputTable(name)); err != nil {
			t.Fatalf("put %s failed: %v", name, err)
		}
	}

	page, err := svc.ListTables(ctx, 50, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Tables) != 2 {
		t.Fatalf("expected clamped page of 2, got %d", len(page.Tables))
	}

	page, err = svc.ListTables(ctx, 0, "")
	if err != nil {
		t.Fatalf("list with default limit failed: %v", err)
	}
	if len(page.Tables) != 2 {
		t.Fatalf("expected default limit clamped to 2, got %d", len(page.Tables))
	}
}

func TestRelatedTablesCombinesBothDirections(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// dim_customer points at dim_address; fact_sale points at dim_customer.
	tables := []*dto.Table{
		inputTable("dim_customer", foreignKey("address_id", "warehouse.sales.dim_address.id")),
		inputTable("dim_address"),
		inputTable("dim_product"),
		inputTable("fact_sale",
			foreignKey("customer_id", "warehouse.sales.dim_customer.id"),
			foreignKey("product_id", "warehouse.sales.dim_product.id"),
		),
	}
	for _, table := range tables {
		if _, err := svc.PutTable(ctx, table); err != nil {
			t.Fatalf("put %s failed: %v", table.Name, err)
		}
	}

	related, err := svc.RelatedTables(ctx, "warehouse.sales.dim_customer")
	if err != nil {
		t.Fatalf("related failed: %v", err)
	}

	wantRelated := []string{"warehouse.sales.dim_address", "warehouse.sales.fact_sale"}
	if len(related.Related) != len(wantRelated) {
		t.Fatalf("related = %v, want %v", related.Related, wantRelated)
	}
	for i := range wantRelated {
		if related.Related[i] != wantRelated[i] {
			t.Fatalf("related = %v, want %v", related.Related, wantRelated)
		}
	}

	if related.Panel.Header != RelatedTablesHeader {
		t.Fatalf("panel header = %q", related.Panel.Header)
	}
	wantRows := []string{"dim_address", "fact_sale"}
	for i, row := range wantRows {
		if related.Panel.Rows[i] != row {
			t.Fatalf("panel rows = %v, want %v", related.Panel.Rows, wantRows)
		}
	}
}

func TestRelatedTablesTruncatesPanel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	hub := inputTable("fact_sale",
		foreignKey("customer_id", "warehouse.sales.dim_customer.id"),
		foreignKey("product_id", "warehouse.sales.dim_product.id"),
		foreignKey("address_id", "warehouse.sales.dim_address.id"),
		foreignKey("date_id", "warehouse.sales.dim_date.id"),
	)
	if _, err := svc.PutTable(ctx, hub); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	related, err := svc.RelatedTables(ctx, "warehouse.sales.fact_sale")
	if err != nil {
		t.Fatalf("related failed: %v", err)
	}
	if len(related.Related) != 4 {
		t.Fatalf("expected 4 related tables, got %v", related.Related)
	}

	rows := related.Panel.Rows
	if len(rows) != 3 {
		t.Fatalf("expected 3 panel rows, got %v", rows)
	}
	if rows[0] != "dim_customer" || rows[1] != "dim_product" {
		t.Fatalf("unexpected kept rows: %v", rows)
	}
	if rows[2] != "+ 2 more" {
		t.Fatalf("expected overflow marker, got %q", rows[2])
	}
}

func TestRelatedTablesUnknownTable(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.RelatedTables(context.Background(), "no.such.table"); !errors.Is(err, storage.ErrTableNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
