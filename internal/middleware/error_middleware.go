package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmwangi/schooltransit/internal/app/models/dto"
	"github.com/dmwangi/schooltransit/internal/pkg/apperrors"
	"github.com/dmwangi/schooltransit/internal/pkg/logger"
)

// errorStatus maps each service error to its HTTP status and public message.
type errorStatus struct {
	status  int
	message string
}

var errorStatuses = map[error]errorStatus{
	apperrors.ErrInvalidCredentials: {http.StatusUnauthorized, "Invalid login credentials."},
	apperrors.ErrTokenInvalid:       {http.StatusUnauthorized, "Invalid refresh token."},
	apperrors.ErrTokenExpired:       {http.StatusUnauthorized, "Invalid or expired refresh token."},

	apperrors.ErrDuplicateUser:       {http.StatusConflict, "A user with that email or phone number already exists."},
	apperrors.ErrInvalidRole:         {http.StatusBadRequest, "Invalid role selected."},
	apperrors.ErrNumberPlateRequired: {http.StatusBadRequest, "numberPlate is required for Driver and Bus Assistant."},
	apperrors.ErrNumberPlateNotFound: {http.StatusBadRequest, "Selected number plate is not available. Choose an existing number plate."},

	apperrors.ErrStudentNotFound:         {http.StatusNotFound, "Student not found."},
	apperrors.ErrAdmissionNumberExists:   {http.StatusConflict, "A student with this admission number already exists."},
	apperrors.ErrStudentAlreadyWithdrawn: {http.StatusConflict, "Student is already withdrawn."},
	apperrors.ErrParentContactUnchanged:  {http.StatusBadRequest, "New parent contact must be different from the current one."},
	apperrors.ErrNoMasterDataFields:      {http.StatusBadRequest, "No master data fields were provided. Submit at least one field to update."},

	apperrors.ErrInvalidRequestType:           {http.StatusBadRequest, "requestType must be one of: Fuel, Service, Repair and Maintenance, Compliance."},
	apperrors.ErrInvalidRequestCategory:       {http.StatusBadRequest, "category must be one of: Fuels & Oils, Body Works and Body Parts, Mechanical, Wiring, Puncture & Tires, Insurance, RSL, Inspection / Speed Governors."},
	apperrors.ErrInvalidConfirmedBy:           {http.StatusBadRequest, "confirmedBy must be one of: Erick, Douglas, James."},
	apperrors.ErrAmountRequiredForFuel:        {http.StatusBadRequest, "amount is required when requestType is Fuel."},
	apperrors.ErrInvalidAmountForFuel:         {http.StatusBadRequest, "amount must be greater than zero for Fuel requests."},
	apperrors.ErrDriverNumberPlateNotAssigned: {http.StatusBadRequest, "No number plate is assigned to this driver account."},
	apperrors.ErrDriverNumberPlateMismatch:    {http.StatusForbidden, "Drivers can only submit requests for their assigned number plate."},
}

// HandleAPIError maps a service error onto the response envelope. Errors
// outside the known set are logged and surfaced as a 500 carrying only the
// caller's fallback message.
func HandleAPIError(c *gin.Context, err error, fallbackMessage string) {
	for known, mapping := range errorStatuses {
		if errors.Is(err, known) {
			c.JSON(mapping.status, dto.NewErrorResponse(mapping.message))
			return
		}
	}

	logger.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Unhandled service error")

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(fallbackMessage))
}
