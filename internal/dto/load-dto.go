package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type CreateLoadDTO struct {
	LoadNumber string `json:"load_number" validate:"required,max=50"`
	BOLNumber  string `json:"bol_number" validate:"omitempty,max=50"`

	Shipper  string `json:"shipper" validate:"required,max=200"`
	Receiver string `json:"receiver" validate:"required,max=200"`

	PickupAddress string `json:"pickup_address" validate:"required"`
	PickupCity    string `json:"pickup_city" validate:"required,max=100"`
	PickupState   string `json:"pickup_state" validate:"required,us_state"`
	PickupZip     string `json:"pickup_zip" validate:"required,max=10"`

	DeliveryAddress string `json:"delivery_address" validate:"required"`
	DeliveryCity    string `json:"delivery_city" validate:"required,max=100"`
	DeliveryState   string `json:"delivery_state" validate:"required,us_state"`
	DeliveryZip     string `json:"delivery_zip" validate:"required,max=10"`

	Status string `json:"status" validate:"omitempty,oneof=pending assigned in_transit delivered cancelled"`

	CargoDescription string `json:"cargo_description" validate:"required"`
	WeightLbs        int    `json:"weight_lbs" validate:"min=0"`
	DistanceMiles    *int   `json:"distance_miles" validate:"omitempty,min=0"`
	Hazmat           bool   `json:"hazmat"`

	PickupDate   time.Time `json:"pickup_date" validate:"required"`
	DeliveryDate time.Time `json:"delivery_date" validate:"required"`

	Rate  float64 `json:"rate" validate:"min=0"`
	Notes string  `json:"notes"`

	AssignedDriverID *uuid.UUID `json:"assigned_driver_id"`
	AssignedTruckID  *uuid.UUID `json:"assigned_truck_id"`

	CompanyID             uuid.UUID  `json:"company_id" validate:"required"`
	DivisionID            *uuid.UUID `json:"division_id"`
	DepartmentID          *uuid.UUID `json:"department_id"`
	OriginTerminalID      *uuid.UUID `json:"origin_terminal_id"`
	DestinationTerminalID *uuid.UUID `json:"destination_terminal_id"`
}

type UpdateLoadDTO struct {
	BOLNumber *string `json:"bol_number" validate:"omitempty,max=50"`

	Shipper  *string `json:"shipper" validate:"omitempty,max=200"`
	Receiver *string `json:"receiver" validate:"omitempty,max=200"`

	PickupAddress *string `json:"pickup_address"`
	PickupCity    *string `json:"pickup_city" validate:"omitempty,max=100"`
	PickupState   *string `json:"pickup_state" validate:"omitempty,us_state"`
	PickupZip     *string `json:"pickup_zip" validate:"omitempty,max=10"`

	DeliveryAddress *string `json:"delivery_address"`
	DeliveryCity    *string `json:"delivery_city" validate:"omitempty,max=100"`
	DeliveryState   *string `json:"delivery_state" validate:"omitempty,us_state"`
	DeliveryZip     *string `json:"delivery_zip" validate:"omitempty,max=10"`

	Status *string `json:"status" validate:"omitempty,oneof=pending assigned in_transit delivered cancelled"`

	CargoDescription *string `json:"cargo_description"`
	WeightLbs        *int    `json:"weight_lbs" validate:"omitempty,min=0"`
	DistanceMiles    *int    `json:"distance_miles" validate:"omitempty,min=0"`
	Hazmat           *bool   `json:"hazmat"`

	PickupDate   null.Time `json:"pickup_date"`
	DeliveryDate null.Time `json:"delivery_date"`

	Rate  *float64 `json:"rate" validate:"omitempty,min=0"`
	Notes *string  `json:"notes"`

	AssignedDriverID *uuid.UUID `json:"assigned_driver_id"`
	AssignedTruckID  *uuid.UUID `json:"assigned_truck_id"`

	DivisionID            *uuid.UUID `json:"division_id"`
	DepartmentID          *uuid.UUID `json:"department_id"`
	OriginTerminalID      *uuid.UUID `json:"origin_terminal_id"`
	DestinationTerminalID *uuid.UUID `json:"destination_terminal_id"`
}

type CreateLoadEventDTO struct {
	EventType   string `json:"event_type" validate:"required,oneof=pickup delivery delay issue update"`
	Description string `json:"description" validate:"required"`

	LocationCity  string `json:"location_city" validate:"omitempty,max=100"`
	LocationState string `json:"location_state" validate:"omitempty,us_state"`

	Severity string `json:"severity" validate:"omitempty,oneof=info warning critical"`
}
