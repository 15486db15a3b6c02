package events

const (
	// EntityChangedEvent is emitted whenever a table entity is created,
	// updated, or deleted.
	EntityChangedEvent = "entity.changed"

	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// EntityChangedPayload carries the identity of the affected entity.
type EntityChangedPayload struct {
	Change             string `json:"change"`
	EntityID           string `json:"entityId"`
	FullyQualifiedName string `json:"fullyQualifiedName"`
	Version            int64  `json:"version,omitempty"`
}
