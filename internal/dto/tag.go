package dto

import "github.com/meridian-data/catalogd/internal/pkg/cloneutil"

// LabelType records how a tag label ended up on an entity.
type LabelType string

const (
	LabelManual     LabelType = "Manual"
	LabelPropagated LabelType = "Propagated"
	LabelAutomated  LabelType = "Automated"
	LabelDerived    LabelType = "Derived"
)

// TagState is the review state of an applied tag label.
type TagState string

const (
	TagSuggested TagState = "Suggested"
	TagConfirmed TagState = "Confirmed"
)

// TagLabel is a tag applied to a table or column.
type TagLabel struct {
	TagFQN      string    `json:"tagFQN"`
	Description *string   `json:"description,omitempty"`
	LabelType   LabelType `json:"labelType"`
	State       TagState  `json:"state"`
}

func (t TagLabel) Clone() TagLabel {
	return TagLabel{
		TagFQN:      t.TagFQN,
		Description: cloneutil.Ptr(t.Description),
		LabelType:   t.LabelType,
		State:       t.State,
	}
}
