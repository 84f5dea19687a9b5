package models

import (
	"time"
)

// PlateStatus is the availability state of a vehicle number plate.
type PlateStatus string

const (
	PlateActive   PlateStatus = "active"
	PlateInactive PlateStatus = "inactive"
)

// NumberPlate defines the vehicle registry model based on 'number_plates'.
type NumberPlate struct {
	ID          int64       `json:"id" db:"id"`
	PlateNumber string      `json:"plateNumber" db:"plate_number"`
	Status      PlateStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

// RequestType classifies a fuel/maintenance request.
type RequestType string

const (
	RequestTypeFuel       RequestType = "Fuel"
	RequestTypeService    RequestType = "Service"
	RequestTypeRepair     RequestType = "Repair and Maintenance"
	RequestTypeCompliance RequestType = "Compliance"
)

// RequestTypes lists every accepted request type.
var RequestTypes = []RequestType{
	RequestTypeFuel,
	RequestTypeService,
	RequestTypeRepair,
	RequestTypeCompliance,
}

// IsValid reports whether the value is one of the accepted request types.
func (t RequestType) IsValid() bool {
	for _, known := range RequestTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RequestCategory is the expense category of a fuel/maintenance request.
type RequestCategory string

const (
	CategoryFuelsOils     RequestCategory = "Fuels & Oils"
	CategoryBodyWorks     RequestCategory = "Body Works and Body Parts"
	CategoryMechanical    RequestCategory = "Mechanical"
	CategoryWiring        RequestCategory = "Wiring"
	CategoryPunctureTires RequestCategory = "Puncture & Tires"
	CategoryInsurance     RequestCategory = "Insurance"
	CategoryRSL           RequestCategory = "RSL"
	CategoryInspection    RequestCategory = "Inspection / Speed Governors"
)

// RequestCategories lists every accepted category.
var RequestCategories = []RequestCategory{
	CategoryFuelsOils,
	CategoryBodyWorks,
	CategoryMechanical,
	CategoryWiring,
	CategoryPunctureTires,
	CategoryInsurance,
	CategoryRSL,
	CategoryInspection,
}

// IsValid reports whether the value is one of the accepted categories.
func (c RequestCategory) IsValid() bool {
	for _, known := range RequestCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ConfirmedByOptions are the staff members allowed to confirm a request.
var ConfirmedByOptions = []string{"Erick", "Douglas", "James"}

// IsValidConfirmedBy reports whether the name may confirm requests.
func IsValidConfirmedBy(name string) bool {
	for _, known := range ConfirmedByOptions {
		if name == known {
			return true
		}
	}
	return false
}

// FuelMaintenanceRequest defines the model for 'fuel_maintenance_requests'.
// Requests are append-only: no update or delete path exists.
type FuelMaintenanceRequest struct {
	ID              int64           `json:"id" db:"id"`
	RequestDate     string          `json:"requestDate" db:"request_date"`
	NumberPlate     string          `json:"numberPlate" db:"number_plate"`
	CurrentMileage  int64           `json:"currentMileage" db:"current_mileage"`
	RequestType     RequestType     `json:"requestType" db:"request_type"`
	RequestedBy     string          `json:"requestedBy" db:"requested_by"`
	Category        RequestCategory `json:"category" db:"category"`
	Description     string          `json:"description" db:"description"`
	Amount          *float64        `json:"amount" db:"amount"` // required >0 for Fuel, forced null otherwise
	ConfirmedBy     string          `json:"confirmedBy" db:"confirmed_by"`
	CreatedByUserID int64           `json:"createdByUserId" db:"created_by_user_id"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}
