package services

import (
	"github.com/dmwangi/schooltransit/internal/app/repositories"
	"github.com/dmwangi/schooltransit/internal/pkg/auth"
)

// Services holds all service instances
type Services struct {
	Auth            *AuthService
	Student         *StudentService
	FuelMaintenance *FuelMaintenanceService
}

// NewServices creates and initializes all services
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService) *Services {
	return &Services{
		Auth:            NewAuthService(repos.User, repos.NumberPlate, jwtService),
		Student:         NewStudentService(repos.Student),
		FuelMaintenance: NewFuelMaintenanceService(repos.FuelMaintenance, repos.User, repos.NumberPlate),
	}
}
