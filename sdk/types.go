// Package sdk is the client library for the catalogd JSON-RPC API. Its
// types mirror the server's wire format and carry no behavior.
package sdk

import "encoding/json"

// EntityReference points at another catalog entity, such as an owner.
type EntityReference struct {
	ID                 string  `json:"id"`
	Type               string  `json:"type"`
	Name               string  `json:"name,omitempty"`
	FullyQualifiedName *string `json:"fullyQualifiedName,omitempty"`
	Description        *string `json:"description,omitempty"`
}

// TagLabel is a tag applied to a table or column.
type TagLabel struct {
	TagFQN      string  `json:"tagFQN"`
	Description *string `json:"description,omitempty"`
	LabelType   string  `json:"labelType"`
	State       string  `json:"state"`
}

// Column describes one column of a table entity.
type Column struct {
	Name               string     `json:"name"`
	DataType           string     `json:"dataType"`
	DataLength         *int       `json:"dataLength,omitempty"`
	DataTypeDisplay    *string    `json:"dataTypeDisplay,omitempty"`
	Description        *string    `json:"description,omitempty"`
	FullyQualifiedName *string    `json:"fullyQualifiedName,omitempty"`
	Constraint         *string    `json:"constraint,omitempty"`
	OrdinalPosition    int        `json:"ordinalPosition,omitempty"`
	Tags               []TagLabel `json:"tags,omitempty"`
}

// TableConstraint is a multi-column constraint on a table.
type TableConstraint struct {
	ConstraintType  string   `json:"constraintType"`
	Columns         []string `json:"columns"`
	ReferredColumns []string `json:"referredColumns,omitempty"`
}

// Table mirrors the server-side table entity.
type Table struct {
	ID                 string            `json:"id,omitempty"`
	Name               string            `json:"name"`
	FullyQualifiedName string            `json:"fullyQualifiedName,omitempty"`
	Description        *string           `json:"description,omitempty"`
	TableType          string            `json:"tableType,omitempty"`
	Columns            []Column          `json:"columns"`
	TableConstraints   []TableConstraint `json:"tableConstraints,omitempty"`
	Tags               []TagLabel        `json:"tags,omitempty"`
	Owner              *EntityReference  `json:"owner,omitempty"`
	Version            int64             `json:"version,omitempty"`
	UpdatedAt          string            `json:"updatedAt,omitempty"`
	UpdatedBy          string            `json:"updatedBy,omitempty"`
}

// TableList is one page of a table listing.
type TableList struct {
	Tables []Table `json:"data"`
	Total  int     `json:"total"`
	After  string  `json:"after,omitempty"`
}

// SummaryList is a rendered display panel: a header plus at most a fixed
// number of rows, the last of which may be an overflow marker.
type SummaryList struct {
	Header string   `json:"header"`
	Rows   []string `json:"rows"`
}

// RelatedTablesResult describes the tables connected to one table through
// foreign keys and the rendered panel for display surfaces.
type RelatedTablesResult struct {
	Table   string      `json:"table"`
	Related []string    `json:"related"`
	Panel   SummaryList `json:"panel"`
}

// PutTableParams is the catalog.putTable request payload.
type PutTableParams struct {
	Table Table `json:"table"`
}

// GetTableParams is the catalog.getTable request payload.
type GetTableParams struct {
	ID string `json:"id"`
}

// GetTableByNameParams is the catalog.getTableByName request payload.
type GetTableByNameParams struct {
	FullyQualifiedName string `json:"fullyQualifiedName"`
}

// ListTablesParams is the catalog.listTables request payload.
type ListTablesParams struct {
	Limit int    `json:"limit,omitempty"`
	After string `json:"after,omitempty"`
}

// DeleteTableParams is the catalog.deleteTable request payload.
type DeleteTableParams struct {
	ID string `json:"id"`
}

// DeleteTableResult acknowledges a deletion.
type DeleteTableResult struct {
	Deleted bool `json:"deleted"`
}

// RelatedTablesParams is the catalog.relatedTables request payload.
type RelatedTablesParams struct {
	FullyQualifiedName string `json:"fullyQualifiedName"`
}

// EntityChangedEvent is the stream event emitted whenever a table entity
// is created, updated, or deleted.
const EntityChangedEvent = "entity.changed"

// Event is one frame of the server's event stream. Data holds the raw
// JSON payload; for EntityChangedEvent it decodes into
// EntityChangedPayload.
type Event struct {
	Name string
	Data json.RawMessage
}

// EntityChangedPayload identifies the entity an entity.changed event is
// about.
type EntityChangedPayload struct {
	Change             string `json:"change"`
	EntityID           string `json:"entityId"`
	FullyQualifiedName string `json:"fullyQualifiedName"`
	Version            int64  `json:"version,omitempty"`
}
