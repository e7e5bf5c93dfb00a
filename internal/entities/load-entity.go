package entities

import (
	"time"

	"launch-tms/internal/authz"
	"launch-tms/pkg/types"

	"github.com/google/uuid"
)

const (
	LoadStatusPending   = "pending"
	LoadStatusAssigned  = "assigned"
	LoadStatusInTransit = "in_transit"
	LoadStatusDelivered = "delivered"
	LoadStatusCancelled = "cancelled"
)

type Load struct {
	ID         uuid.UUID `json:"id" db:"id"`
	LoadNumber string    `json:"load_number" db:"load_number"`
	BOLNumber  string    `json:"bol_number" db:"bol_number"`

	Shipper  string `json:"shipper" db:"shipper"`
	Receiver string `json:"receiver" db:"receiver"`

	PickupAddress string `json:"pickup_address" db:"pickup_address"`
	PickupCity    string `json:"pickup_city" db:"pickup_city"`
	PickupState   string `json:"pickup_state" db:"pickup_state"`
	PickupZip     string `json:"pickup_zip" db:"pickup_zip"`

	DeliveryAddress string `json:"delivery_address" db:"delivery_address"`
	DeliveryCity    string `json:"delivery_city" db:"delivery_city"`
	DeliveryState   string `json:"delivery_state" db:"delivery_state"`
	DeliveryZip     string `json:"delivery_zip" db:"delivery_zip"`

	AssignedDriverID *uuid.UUID `json:"assigned_driver_id" db:"assigned_driver_id"`
	AssignedTruckID  *uuid.UUID `json:"assigned_truck_id" db:"assigned_truck_id"`

	Status string `json:"status" db:"status"`

	CargoDescription string `json:"cargo_description" db:"cargo_description"`
	WeightLbs        int    `json:"weight_lbs" db:"weight_lbs"`
	DistanceMiles    *int   `json:"distance_miles" db:"distance_miles"`
	Hazmat           bool   `json:"hazmat" db:"hazmat"`

	PickupDate   time.Time `json:"pickup_date" db:"pickup_date"`
	DeliveryDate time.Time `json:"delivery_date" db:"delivery_date"`

	Rate float64 `json:"rate" db:"rate"`

	Notes string `json:"notes" db:"notes"`

	CompanyID             uuid.UUID  `json:"company_id" db:"company_id"`
	DivisionID            *uuid.UUID `json:"division_id" db:"division_id"`
	DepartmentID          *uuid.UUID `json:"department_id" db:"department_id"`
	OriginTerminalID      *uuid.UUID `json:"origin_terminal_id" db:"origin_terminal_id"`
	DestinationTerminalID *uuid.UUID `json:"destination_terminal_id" db:"destination_terminal_id"`

	DispatchedBy string `json:"dispatched_by" db:"dispatched_by"`

	types.BaseEntity
}

// ScopeKeys anchor the load to its origin terminal's chain; the destination
// terminal is routing data and does not confer visibility.
func (l *Load) ScopeKeys() authz.ScopeKeys {
	return authz.ScopeKeys{
		CompanyID:    &l.CompanyID,
		DivisionID:   l.DivisionID,
		DepartmentID: l.DepartmentID,
		TerminalID:   l.OriginTerminalID,
	}
}
