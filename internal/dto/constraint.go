package dto

import "github.com/meridian-data/catalogd/internal/pkg/stringutil"

// ConstraintType is the table-level constraint kind.
type ConstraintType string

const (
	ConstraintUnique     ConstraintType = "UNIQUE"
	ConstraintPrimaryKey ConstraintType = "PRIMARY_KEY"
	ConstraintForeignKey ConstraintType = "FOREIGN_KEY"
)

// TableConstraint is a multi-column constraint on a table. For foreign
// keys, ReferredColumns holds the fully qualified names of the columns
// the constraint points at.
type TableConstraint struct {
	ConstraintType  ConstraintType `json:"constraintType"`
	Columns         []string       `json:"columns"`
	ReferredColumns []string       `json:"referredColumns,omitempty"`
}

func (tc TableConstraint) Clone() TableConstraint {
	return TableConstraint{
		ConstraintType:  tc.ConstraintType,
		Columns:         stringutil.CopyStrings(tc.Columns),
		ReferredColumns: stringutil.CopyStrings(tc.ReferredColumns),
	}
}

// ReferredTableFQNs returns the distinct table FQNs referenced by a
// foreign-key constraint, in first-seen order.
func (tc TableConstraint) ReferredTableFQNs() []string {
	if tc.ConstraintType != ConstraintForeignKey {
		return nil
	}
	seen := make(map[string]struct{}, len(tc.ReferredColumns))
	var tables []string
	for _, col := range tc.ReferredColumns {
		table := stringutil.ParentFQN(col)
		if table == "" {
			continue
		}
		if _, ok := seen[table]; ok {
			continue
		}
		seen[table] = struct{}{}
		tables = append(tables, table)
	}
	return tables
}
