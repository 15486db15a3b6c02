package service

import (
	"context"
	"sort"

	"github.com/meridian-data/catalogd/internal/dto"
	"github.com/meridian-data/catalogd/internal/pkg/stringutil"
	"github.com/meridian-data/catalogd/internal/render"
)

// RelatedTablesHeader is the display header of the related-tables panel.
const RelatedTablesHeader = "Related Tables"

// RelatedTables describes the tables connected to one table through
// foreign keys, in both directions, plus the rendered summary panel.
type RelatedTables struct {
	Table   string             `json:"table"`
	Related []string           `json:"related"`
	Panel   render.SummaryList `json:"panel"`
}

// RelatedTables resolves the table by fully qualified name and collects
// its neighbors: first the tables its own foreign keys point at, in
// constraint order, then the tables whose foreign keys point back at it,
// in name order. The panel rows carry bare table names.
func (cs *CatalogService) RelatedTables(ctx context.Context, fqn string) (*RelatedTables, error) {
	table, err := cs.store.GetByName(ctx, fqn)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{table.FullyQualifiedName: {}}
	var related []string
	for _, ref := range table.ReferencedTableFQNs() {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		related = append(related, ref)
	}

	inbound, err := cs.referencingTables(ctx, table.FullyQualifiedName)
	if err != nil {
		return nil, err
	}
	sort.Strings(inbound)
	for _, ref := range inbound {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		related = append(related, ref)
	}

	names := make([]string, len(related))
	for i, ref := range related {
		names[i] = stringutil.LastSegment(ref)
	}

	return &RelatedTables{
		Table:   table.FullyQualifiedName,
		Related: related,
		Panel:   render.SummaryN(RelatedTablesHeader, names, cs.summaryRows),
	}, nil
}

// referencingTables scans the catalog for tables whose foreign keys refer
// to the given table.
func (cs *CatalogService) referencingTables(ctx context.Context, fqn string) ([]string, error) {
	var referencing []string
	after := ""
	for {
		page, err := cs.store.List(ctx, cs.maxPageSize, after)
		if err != nil {
			return nil, err
		}
		for i := range page.Tables {
			candidate := &page.Tables[i]
			if candidate.FullyQualifiedName == fqn {
				continue
			}
			if refersTo(candidate, fqn) {
				referencing = append(referencing, candidate.FullyQualifiedName)
			}
		}
		if page.After == "" {
			return referencing, nil
		}
		after = page.After
	}
}

func refersTo(table *dto.Table, fqn string) bool {
	for _, tc := range table.TableConstraints {
		for _, ref := range tc.ReferredTableFQNs() {
			if ref == fqn {
				return true
			}
		}
	}
	return false
}
