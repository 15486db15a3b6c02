package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/meridian-data/catalogd/internal/pkg/cloneutil"
)

// TableType distinguishes physical tables from views and external data.
type TableType string

const (
	TableRegular          TableType = "Regular"
	TableExternal         TableType = "External"
	TableView             TableType = "View"
	TableSecureView       TableType = "SecureView"
	TableMaterializedView TableType = "MaterializedView"
)

var (
	ErrMissingName    = errors.New("table name is required")
	ErrMissingColumns = errors.New("table needs at least one column")
)

// Table is the catalog's table entity: identity, shape, and governance
// metadata. The document is self-contained; relations to other tables are
// expressed through constraint column FQNs, not object references.
type Table struct {
	ID                 string            `json:"id,omitempty"`
	Name               string            `json:"name"`
	FullyQualifiedName string            `json:"fullyQualifiedName,omitempty"`
	Description        *string           `json:"description,omitempty"`
	TableType          TableType         `json:"tableType,omitempty"`
	Columns            []Column          `json:"columns"`
	TableConstraints   []TableConstraint `json:"tableConstraints,omitempty"`
	Tags               []TagLabel        `json:"tags,omitempty"`
	Owner              *EntityReference  `json:"owner,omitempty"`
	Version            int64             `json:"version,omitempty"`
	UpdatedAt          time.Time         `json:"updatedAt,omitempty"`
	UpdatedBy          string            `json:"updatedBy,omitempty"`
}

func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	clone := *t
	clone.Description = cloneutil.Ptr(t.Description)
	clone.Columns = cloneutil.DeepSlice(t.Columns)
	clone.TableConstraints = cloneutil.DeepSlice(t.TableConstraints)
	clone.Tags = cloneutil.DeepSlice(t.Tags)
	clone.Owner = t.Owner.Clone()
	return &clone
}

// Validate checks the invariants a stored table entity must satisfy.
func (t *Table) Validate() error {
	if t == nil {
		return errors.New("table is nil")
	}
	if t.Name == "" {
		return ErrMissingName
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("table '%s': %w", t.Name, ErrMissingColumns)
	}
	for i, col := range t.Columns {
		if col.Name == "" {
			return fmt.Errorf("table '%s': column at index %d: name is required", t.Name, i)
		}
		if col.DataType == "" {
			return fmt.Errorf("table '%s': column '%s': dataType is required", t.Name, col.Name)
		}
	}
	for i, tc := range t.TableConstraints {
		if tc.ConstraintType == "" {
			return fmt.Errorf("table '%s': constraint at index %d: constraintType is required", t.Name, i)
		}
		if len(tc.Columns) == 0 {
			return fmt.Errorf("table '%s': constraint at index %d: columns are required", t.Name, i)
		}
		if tc.ConstraintType == ConstraintForeignKey && len(tc.ReferredColumns) == 0 {
			return fmt.Errorf("table '%s': constraint at index %d: foreign key needs referredColumns", t.Name, i)
		}
	}
	return nil
}

// ReferencedTableFQNs collects the distinct table FQNs this table's
// foreign keys point at, in constraint order, excluding the table itself.
func (t *Table) ReferencedTableFQNs() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var tables []string
	for _, tc := range t.TableConstraints {
		for _, fqn := range tc.ReferredTableFQNs() {
			if fqn == t.FullyQualifiedName {
				continue
			}
			if _, ok := seen[fqn]; ok {
				continue
			}
			seen[fqn] = struct{}{}
			tables = append(tables, fqn)
		}
	}
	return tables
}

// TableList is one page of a table listing.
type TableList struct {
	Tables []Table `json:"data"`
	Total  int     `json:"total"`
	After  string  `json:"after,omitempty"`
}
