package dto

import (
	"github.com/dmwangi/schooltransit/internal/app/models"
)

// CreateFuelMaintenanceRequest represents a new fuel/maintenance request.
// Enum membership (requestType, category, confirmedBy) and the Fuel amount
// rule are checked by the service so each failure maps to its own error.
type CreateFuelMaintenanceRequest struct {
	RequestDate    string   `json:"requestDate" binding:"required,datetime=2006-01-02"`
	NumberPlate    string   `json:"numberPlate" binding:"required,min=3,max=20"`
	CurrentMileage int64    `json:"currentMileage" binding:"required,gte=0"`
	RequestType    string   `json:"requestType" binding:"required"`
	RequestedBy    string   `json:"requestedBy" binding:"required,max=255"`
	Category       string   `json:"category" binding:"required"`
	Description    string   `json:"description" binding:"required,max=2000"`
	Amount         *float64 `json:"amount"`
	ConfirmedBy    string   `json:"confirmedBy" binding:"required"`
}

// FuelMaintenanceRequestData wraps a single created request.
type FuelMaintenanceRequestData struct {
	Request *models.FuelMaintenanceRequest `json:"request"`
}

// FuelMaintenanceRequestsData wraps a request listing.
type FuelMaintenanceRequestsData struct {
	Requests []models.FuelMaintenanceRequest `json:"requests"`
}
