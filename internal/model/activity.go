package model

import "time"

// ActivityCollection is the document collection holding the audit trail.
const ActivityCollection = "activity"

// Activity is an append-only audit entry for an item. ItemID is a plain text
// reference; activity outlives the item it describes.
type Activity struct {
	ID        string    `json:"id" bson:"_id,omitempty" yaml:"id"`
	ItemID    string    `json:"item_id" bson:"item_id" yaml:"item_id"`
	Action    string    `json:"action" bson:"action" yaml:"action"`
	Detail    string    `json:"detail,omitempty" bson:"detail,omitempty" yaml:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" yaml:"created_at"`
}

// Activity actions.
const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionStatusChanged = "status_changed"
	ActionDeleted       = "deleted"
)

// ValidAction reports whether action is a known activity action.
func ValidAction(action string) bool {
	switch action {
	case ActionCreated, ActionUpdated, ActionStatusChanged, ActionDeleted:
		return true
	}
	return false
}
