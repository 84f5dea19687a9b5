package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmwangi/schooltransit/internal/app/models"
	"github.com/dmwangi/schooltransit/internal/app/models/dto"
	"github.com/dmwangi/schooltransit/internal/app/services"
	"github.com/dmwangi/schooltransit/internal/middleware"
	"github.com/dmwangi/schooltransit/internal/pkg/apperrors"
)

// FuelMaintenanceController handles fuel and maintenance requisitions
type FuelMaintenanceController struct {
	fuelService services.IFuelMaintenanceService
	logger      zerolog.Logger
}

// NewFuelMaintenanceController creates a new FuelMaintenanceController
func NewFuelMaintenanceController(fuelService services.IFuelMaintenanceService, logger zerolog.Logger) *FuelMaintenanceController {
	return &FuelMaintenanceController{
		fuelService: fuelService,
		logger:      logger,
	}
}

// CreateRequest files a new fuel/maintenance request
// @Summary Create a fuel or maintenance request
// @Description Validates and stores a requisition. Fuel requests need a positive amount; drivers may only file against their assigned plate.
// @Tags fuel-maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFuelMaintenanceRequest true "Request details"
// @Success 201 {object} dto.APIResponse{data=dto.FuelMaintenanceRequestData} "Fuel and maintenance request created successfully."
// @Failure 400 {object} dto.APIResponse "Validation or business rule failure"
// @Failure 403 {object} dto.APIResponse "Plate does not match the driver's assignment"
// @Router /api/fuel-maintenance/requests [post]
func (c *FuelMaintenanceController) CreateRequest(ctx *gin.Context) {
	var req dto.CreateFuelMaintenanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(dto.HandleValidationError(err)))
		return
	}

	createdByUserID := ctx.GetInt64(middleware.ContextUserID)

	request, err := c.fuelService.CreateRequest(ctx.Request.Context(), &req, createdByUserID)
	if err != nil {
		// This endpoint words the unavailable-plate message differently
		// from registration.
		if errors.Is(err, apperrors.ErrNumberPlateNotFound) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				"Selected number plate is not available. Choose an active number plate."))
			return
		}
		middleware.HandleAPIError(ctx, err, "Failed to create fuel and maintenance request.")
		return
	}

	c.logger.Info().
		Int64("requestId", request.ID).
		Str("requestType", string(request.RequestType)).
		Str("numberPlate", request.NumberPlate).
		Msg("Fuel and maintenance request created")

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse("Fuel and maintenance request created successfully.",
		dto.FuelMaintenanceRequestData{Request: request}))
}

// GetRequests lists the caller's requests
// @Summary List own fuel and maintenance requests
// @Description Returns the authenticated driver's requests, newest first.
// @Tags fuel-maintenance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.FuelMaintenanceRequestsData} "Fuel and maintenance requests retrieved successfully."
// @Router /api/fuel-maintenance/requests [get]
func (c *FuelMaintenanceController) GetRequests(ctx *gin.Context) {
	createdByUserID := ctx.GetInt64(middleware.ContextUserID)

	requests, err := c.fuelService.ListRequests(ctx.Request.Context(), createdByUserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "Failed to fetch fuel and maintenance requests.")
		return
	}

	data := dto.FuelMaintenanceRequestsData{Requests: make([]models.FuelMaintenanceRequest, 0, len(requests))}
	for _, request := range requests {
		data.Requests = append(data.Requests, *request)
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Fuel and maintenance requests retrieved successfully.", data))
}
