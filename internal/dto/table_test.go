package dto

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func sampleTable() *Table {
	desc := "customer dimension"
	notNull := ColumnNotNull
	return &Table{
		ID:                 "9a1f0c52-0c07-4d7e-8a0f-3a1f47c2a001",
		Name:               "dim_customer",
		FullyQualifiedName: "warehouse.sales.dim_customer",
		Description:        &desc,
		TableType:          TableRegular,
		Columns: []Column{
			{Name: "id", DataType: DataTypeUUID, Constraint: ptrConstraint(ColumnPrimaryKey), OrdinalPosition: 1},
			{Name: "address_id", DataType: DataTypeBigint, Constraint: &notNull, OrdinalPosition: 2},
		},
		TableConstraints: []TableConstraint{
			{
				ConstraintType:  ConstraintForeignKey,
				Columns:         []string{"address_id"},
				ReferredColumns: []string{"warehouse.sales.dim_address.id"},
			},
		},
		Tags:  []TagLabel{{TagFQN: "PII.Sensitive", LabelType: LabelManual, State: TagConfirmed}},
		Owner: &EntityReference{ID: "team-1", Type: "team", Name: "data-platform"},
	}
}

func ptrConstraint(c ColumnConstraint) *ColumnConstraint { return &c }

func TestValidateAcceptsCompleteTable(t *testing.T) {
	if err := sampleTable().Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Table)
		wantErr string
	}{
		{"no name", func(tb *Table) { tb.Name = "" }, "name is required"},
		{"no columns", func(tb *Table) { tb.Columns = nil }, "at least one column"},
		{"column without name", func(tb *Table) { tb.Columns[0].Name = "" }, "name is required"},
		{"column without type", func(tb *Table) { tb.Columns[0].DataType = "" }, "dataType is required"},
		{"constraint without columns", func(tb *Table) { tb.TableConstraints[0].Columns = nil }, "columns are required"},
		{"fk without referred columns", func(tb *Table) { tb.TableConstraints[0].ReferredColumns = nil }, "referredColumns"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tb := sampleTable()
			tc.mutate(tb)
			err := tb.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateSentinelErrors(t *testing.T) {
	tb := sampleTable()
	tb.Name = ""
	if err := tb.Validate(); !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
	tb = sampleTable()
	tb.Columns = nil
	if err := tb.Validate(); !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	src := sampleTable()
	clone := src.Clone()

	if !reflect.DeepEqual(src, clone) {
		t.Fatalf("clone differs from source")
	}

	clone.Columns[0].Name = "mutated"
	*clone.Description = "mutated"
	clone.TableConstraints[0].ReferredColumns[0] = "mutated"
	clone.Owner.Name = "mutated"

	if src.Columns[0].Name != "id" {
		t.Fatalf("clone shares columns with source")
	}
	if *src.Description != "customer dimension" {
		t.Fatalf("clone shares description pointer")
	}
	if src.TableConstraints[0].ReferredColumns[0] != "warehouse.sales.dim_address.id" {
		t.Fatalf("clone shares constraint slices")
	}
	if src.Owner.Name != "data-platform" {
		t.Fatalf("clone shares owner reference")
	}
}

func TestReferencedTableFQNsDedupesAndSkipsSelf(t *testing.T) {
	tb := sampleTable()
	tb.TableConstraints = append(tb.TableConstraints,
		TableConstraint{
			ConstraintType:  ConstraintForeignKey,
			Columns:         []string{"id"},
			ReferredColumns: []string{"warehouse.sales.dim_address.zip", "warehouse.sales.fact_sale.customer_id"},
		},
		TableConstraint{
			ConstraintType:  ConstraintForeignKey,
			Columns:         []string{"id"},
			ReferredColumns: []string{"warehouse.sales.dim_customer.id"}, // self reference
		},
		TableConstraint{
			ConstraintType: ConstraintPrimaryKey,
			Columns:        []string{"id"},
		},
	)

	got := tb.ReferencedTableFQNs()
	want := []string{"warehouse.sales.dim_address", "warehouse.sales.fact_sale"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("referenced tables = %v, want %v", got, want)
	}
}

func TestReferredTableFQNsIgnoresNonForeignKeys(t *testing.T) {
	tc := TableConstraint{
		ConstraintType:  ConstraintUnique,
		Columns:         []string{"id"},
		ReferredColumns: []string{"warehouse.sales.dim_address.id"},
	}
	if got := tc.ReferredTableFQNs(); got != nil {
		t.Fatalf("expected nil for non-FK constraint, got %v", got)
	}
}
