package render

import (
	"fmt"

	"github.com/meridian-data/catalogd/internal/pkg/stringutil"
)

// DefaultRowLimit is the number of display slots in a summary panel.
const DefaultRowLimit = 3

// SummaryList is a rendered panel: a header and at most rowLimit rows.
type SummaryList struct {
	Header string   `json:"header"`
	Rows   []string `json:"rows"`
}

// Summary renders a header and the first items of a list into a fixed
// number of display slots. A list that fits is rendered verbatim. When it
// does not fit, the last slot becomes an overflow marker counting every
// item that is not shown by name, including the one the marker displaced:
// four items render as two names plus "+ 2 more".
func Summary(header string, items []string) SummaryList {
	return SummaryN(header, items, DefaultRowLimit)
}

// SummaryN is Summary with a caller-chosen slot count. Limits below one
// fall back to DefaultRowLimit.
func SummaryN(header string, items []string, limit int) SummaryList {
	if limit < 1 {
		limit = DefaultRowLimit
	}
	if len(items) <= limit {
		return SummaryList{
			Header: header,
			Rows:   stringutil.CopyStrings(items),
		}
	}

	kept := limit - 1
	rows := make([]string, 0, limit)
	rows = append(rows, items[:kept]...)
	rows = append(rows, fmt.Sprintf("+ %d more", len(items)-kept))
	return SummaryList{Header: header, Rows: rows}
}
