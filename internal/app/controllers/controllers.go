package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dmwangi/schooltransit/internal/app/services"
	"github.com/dmwangi/schooltransit/internal/config"
	"github.com/dmwangi/schooltransit/internal/pkg/auth"
	"github.com/dmwangi/schooltransit/internal/pkg/logger"
)

// Controllers holds all controller instances
type Controllers struct {
	Auth            *AuthController
	Student         *StudentController
	FuelMaintenance *FuelMaintenanceController
}

// NewControllers creates and initializes all controllers
func NewControllers(svcs *services.Services, jwtService *auth.JWTService, cfg *config.Config) *Controllers {
	log := logger.GetLogger()

	return &Controllers{
		Auth:            NewAuthController(svcs.Auth, jwtService, cfg.IsProduction(), log),
		Student:         NewStudentController(svcs.Student, log),
		FuelMaintenance: NewFuelMaintenanceController(svcs.FuelMaintenance, log),
	}
}

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// parseIDParam reads a positive integer path parameter. ok is false when the
// value is absent or not a positive integer.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
