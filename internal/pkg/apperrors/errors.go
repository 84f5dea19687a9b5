package apperrors

import "errors"

// The services return errors from this closed set; the HTTP layer maps each
// one to a status code in middleware.HandleAPIError. Anything outside the set
// is treated as an internal error.

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserNotFound       = errors.New("user not found")
)

// Registration errors
var (
	ErrDuplicateUser       = errors.New("user already exists")
	ErrInvalidRole         = errors.New("invalid role selected")
	ErrNumberPlateRequired = errors.New("number plate is required")
	ErrNumberPlateNotFound = errors.New("selected number plate is not available")
)

// Student errors
var (
	ErrStudentNotFound         = errors.New("student not found")
	ErrAdmissionNumberExists   = errors.New("admission number already exists")
	ErrStudentAlreadyWithdrawn = errors.New("student is already withdrawn")
	ErrParentContactUnchanged  = errors.New("new parent contact equals the current one")
	ErrNoMasterDataFields      = errors.New("no master data fields were provided")
)

// Fuel/maintenance errors
var (
	ErrInvalidRequestType           = errors.New("invalid request type")
	ErrInvalidRequestCategory       = errors.New("invalid request category")
	ErrInvalidConfirmedBy           = errors.New("invalid confirmedBy value")
	ErrAmountRequiredForFuel        = errors.New("amount is required when requestType is Fuel")
	ErrInvalidAmountForFuel         = errors.New("amount must be greater than zero")
	ErrDriverNumberPlateNotAssigned = errors.New("no number plate is assigned to this driver")
	ErrDriverNumberPlateMismatch    = errors.New("drivers can only submit requests for their assigned number plate")
	ErrRequestCreatorNotFound       = errors.New("request creator was not found")
)
