package catalog

import "time"

// Action names a catalog change.
type Action string

const (
	ActionCreated  Action = "created"
	ActionCloned   Action = "cloned"
	ActionRemoved  Action = "removed"
	ActionCleared  Action = "cleared"
	ActionRejected Action = "rejected"
)

// Event is published on the catalog bus after every operation.
type Event struct {
	Action    Action
	Tag       string
	Kind      string
	ProductID string
	// Size is the number of entries after the operation.
	Size int
	// Count is the number of entries affected.
	Count int
	Err   error
	Time  time.Time
}
