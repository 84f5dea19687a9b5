package repositories

import (
	"github.com/dmwangi/schooltransit/internal/db"
)

// Repositories holds all repository instances
type Repositories struct {
	User            *UserRepository
	NumberPlate     *NumberPlateRepository
	Student         *StudentRepository
	FuelMaintenance *FuelMaintenanceRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		User:            NewUserRepository(database.Pool),
		NumberPlate:     NewNumberPlateRepository(database.Pool),
		Student:         NewStudentRepository(database),
		FuelMaintenance: NewFuelMaintenanceRepository(database.Pool),
	}
}
