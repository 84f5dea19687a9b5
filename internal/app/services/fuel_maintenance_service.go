package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmwangi/schooltransit/internal/app/models"
	"github.com/dmwangi/schooltransit/internal/app/models/dto"
	"github.com/dmwangi/schooltransit/internal/app/repositories"
	"github.com/dmwangi/schooltransit/internal/pkg/apperrors"
)

// requestListLimit caps the per-driver request history.
const requestListLimit = 200

// IFuelMaintenanceService defines the interface for fuel and maintenance
// request operations
type IFuelMaintenanceService interface {
	CreateRequest(ctx context.Context, req *dto.CreateFuelMaintenanceRequest, createdByUserID int64) (*models.FuelMaintenanceRequest, error)
	ListRequests(ctx context.Context, createdByUserID int64) ([]*models.FuelMaintenanceRequest, error)
}

// FuelMaintenanceService handles fuel and maintenance requisitions.
type FuelMaintenanceService struct {
	fuelRepo  repositories.IFuelMaintenanceRepository
	userRepo  repositories.IUserRepository
	plateRepo repositories.INumberPlateRepository
}

// NewFuelMaintenanceService creates a new FuelMaintenanceService
func NewFuelMaintenanceService(
	fuelRepo repositories.IFuelMaintenanceRepository,
	userRepo repositories.IUserRepository,
	plateRepo repositories.INumberPlateRepository,
) *FuelMaintenanceService {
	return &FuelMaintenanceService{
		fuelRepo:  fuelRepo,
		userRepo:  userRepo,
		plateRepo: plateRepo,
	}
}

// CreateRequest validates and stores a new requisition. An amount is required
// and must be positive for Fuel requests; for every other type the amount is
// discarded. Drivers may only file against their own assigned plate.
func (s *FuelMaintenanceService) CreateRequest(ctx context.Context, req *dto.CreateFuelMaintenanceRequest, createdByUserID int64) (*models.FuelMaintenanceRequest, error) {
	requestType := models.RequestType(strings.TrimSpace(req.RequestType))
	if !requestType.IsValid() {
		return nil, apperrors.ErrInvalidRequestType
	}

	category := models.RequestCategory(strings.TrimSpace(req.Category))
	if !category.IsValid() {
		return nil, apperrors.ErrInvalidRequestCategory
	}

	confirmedBy := strings.TrimSpace(req.ConfirmedBy)
	if !models.IsValidConfirmedBy(confirmedBy) {
		return nil, apperrors.ErrInvalidConfirmedBy
	}

	amount := req.Amount
	if requestType == models.RequestTypeFuel {
		if amount == nil {
			return nil, apperrors.ErrAmountRequiredForFuel
		}
		if *amount <= 0 {
			return nil, apperrors.ErrInvalidAmountForFuel
		}
	} else {
		amount = nil
	}

	creator, err := s.userRepo.GetByID(ctx, createdByUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrRequestCreatorNotFound
		}
		return nil, err
	}

	numberPlate := NormalizePlate(req.NumberPlate)
	if creator.Role == models.RoleDriver {
		assignedPlate := NormalizePlate(creator.AssignedPlate())
		if assignedPlate == "" {
			return nil, apperrors.ErrDriverNumberPlateNotAssigned
		}
		if numberPlate != assignedPlate {
			return nil, apperrors.ErrDriverNumberPlateMismatch
		}
	}

	active, err := s.plateRepo.ActivePlateExists(ctx, numberPlate)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, apperrors.ErrNumberPlateNotFound
	}

	request := &models.FuelMaintenanceRequest{
		RequestDate:     strings.TrimSpace(req.RequestDate),
		NumberPlate:     numberPlate,
		CurrentMileage:  req.CurrentMileage,
		RequestType:     requestType,
		RequestedBy:     strings.TrimSpace(req.RequestedBy),
		Category:        category,
		Description:     strings.TrimSpace(req.Description),
		Amount:          amount,
		ConfirmedBy:     confirmedBy,
		CreatedByUserID: createdByUserID,
	}

	id, err := s.fuelRepo.Create(ctx, request)
	if err != nil {
		return nil, err
	}

	return s.fuelRepo.GetByID(ctx, id)
}

// ListRequests returns the caller's requisitions, newest first.
func (s *FuelMaintenanceService) ListRequests(ctx context.Context, createdByUserID int64) ([]*models.FuelMaintenanceRequest, error) {
	return s.fuelRepo.ListByCreator(ctx, createdByUserID, requestListLimit)
}
