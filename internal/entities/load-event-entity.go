package entities

import (
	"time"

	"launch-tms/pkg/types"

	"github.com/google/uuid"
)

const (
	LoadEventPickup   = "pickup"
	LoadEventDelivery = "delivery"
	LoadEventDelay    = "delay"
	LoadEventIssue    = "issue"
	LoadEventUpdate   = "update"
)

// LoadEvent is one entry of a load's tracking timeline. Events are scoped
// through their parent load and have no placement keys of their own.
type LoadEvent struct {
	ID     uuid.UUID `json:"id" db:"id"`
	LoadID uuid.UUID `json:"load_id" db:"load_id"`

	EventType   string    `json:"event_type" db:"event_type"`
	Description string    `json:"description" db:"description"`
	Timestamp   time.Time `json:"timestamp" db:"timestamp"`

	LocationCity  string `json:"location_city" db:"location_city"`
	LocationState string `json:"location_state" db:"location_state"`

	ReportedBy string `json:"reported_by" db:"reported_by"`
	Severity   string `json:"severity" db:"severity"`
	Resolved   bool   `json:"resolved" db:"resolved"`

	types.BaseEntity
}
