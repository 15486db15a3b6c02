package dto

import "github.com/meridian-data/catalogd/internal/pkg/cloneutil"

// EntityReference points at another catalog entity, typically a table's
// owning user or team.
type EntityReference struct {
	ID                 string  `json:"id"`
	Type               string  `json:"type"`
	Name               string  `json:"name,omitempty"`
	FullyQualifiedName *string `json:"fullyQualifiedName,omitempty"`
	Description        *string `json:"description,omitempty"`
}

func (r *EntityReference) Clone() *EntityReference {
	if r == nil {
		return nil
	}
	return &EntityReference{
		ID:                 r.ID,
		Type:               r.Type,
		Name:               r.Name,
		FullyQualifiedName: cloneutil.Ptr(r.FullyQualifiedName),
		Description:        cloneutil.Ptr(r.Description),
	}
}
