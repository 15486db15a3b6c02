package dto

import "github.com/meridian-data/catalogd/internal/pkg/cloneutil"

// DataType is the declared type of a column.
type DataType string

const (
	DataTypeNumber    DataType = "NUMBER"
	DataTypeInt       DataType = "INT"
	DataTypeBigint    DataType = "BIGINT"
	DataTypeFloat     DataType = "FLOAT"
	DataTypeDouble    DataType = "DOUBLE"
	DataTypeDecimal   DataType = "DECIMAL"
	DataTypeBoolean   DataType = "BOOLEAN"
	DataTypeVarchar   DataType = "VARCHAR"
	DataTypeChar      DataType = "CHAR"
	DataTypeText      DataType = "TEXT"
	DataTypeDate      DataType = "DATE"
	DataTypeTime      DataType = "TIME"
	DataTypeTimestamp DataType = "TIMESTAMP"
	DataTypeJSON      DataType = "JSON"
	DataTypeUUID      DataType = "UUID"
	DataTypeBinary    DataType = "BINARY"
	DataTypeArray     DataType = "ARRAY"
	DataTypeStruct    DataType = "STRUCT"
	DataTypeMap       DataType = "MAP"
)

// ColumnConstraint is the single-column constraint kind.
type ColumnConstraint string

const (
	ColumnNull       ColumnConstraint = "NULL"
	ColumnNotNull    ColumnConstraint = "NOT_NULL"
	ColumnUnique     ColumnConstraint = "UNIQUE"
	ColumnPrimaryKey ColumnConstraint = "PRIMARY_KEY"
)

// Column describes one column of a table entity.
type Column struct {
	Name               string            `json:"name"`
	DataType           DataType          `json:"dataType"`
	DataLength         *int              `json:"dataLength,omitempty"`
	DataTypeDisplay    *string           `json:"dataTypeDisplay,omitempty"`
	Description        *string           `json:"description,omitempty"`
	FullyQualifiedName *string           `json:"fullyQualifiedName,omitempty"`
	Constraint         *ColumnConstraint `json:"constraint,omitempty"`
	OrdinalPosition    int               `json:"ordinalPosition,omitempty"`
	Tags               []TagLabel        `json:"tags,omitempty"`
}

func (c Column) Clone() Column {
	return Column{
		Name:               c.Name,
		DataType:           c.DataType,
		DataLength:         cloneutil.Ptr(c.DataLength),
		DataTypeDisplay:    cloneutil.Ptr(c.DataTypeDisplay),
		Description:        cloneutil.Ptr(c.Description),
		FullyQualifiedName: cloneutil.Ptr(c.FullyQualifiedName),
		Constraint:         cloneutil.Ptr(c.Constraint),
		OrdinalPosition:    c.OrdinalPosition,
		Tags:               cloneutil.DeepSlice(c.Tags),
	}
}
