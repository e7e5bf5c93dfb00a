package entities

import (
	"time"

	"launch-tms/pkg/types"

	"github.com/google/uuid"
)

const (
	MaintenanceTypeRoutine    = "routine"
	MaintenanceTypeRepair     = "repair"
	MaintenanceTypeInspection = "inspection"
	MaintenanceTypeEmergency  = "emergency"
)

// MaintenanceRecord is one entry of a truck's service history. Records are
// scoped through their parent truck and have no placement keys of their own.
type MaintenanceRecord struct {
	ID      uuid.UUID `json:"id" db:"id"`
	TruckID uuid.UUID `json:"truck_id" db:"truck_id"`

	MaintenanceType string    `json:"maintenance_type" db:"maintenance_type"`
	Description     string    `json:"description" db:"description"`
	PerformedBy     string    `json:"performed_by" db:"performed_by"`
	PerformedDate   time.Time `json:"performed_date" db:"performed_date"`

	MileageAtService *int `json:"mileage_at_service" db:"mileage_at_service"`

	Cost       float64  `json:"cost" db:"cost"`
	PartsCost  float64  `json:"parts_cost" db:"parts_cost"`
	LaborCost  float64  `json:"labor_cost" db:"labor_cost"`
	LaborHours *float64 `json:"labor_hours" db:"labor_hours"`

	Notes string `json:"notes" db:"notes"`

	types.BaseEntity
}
