package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dmwangi/schooltransit/internal/app/models"
	"github.com/dmwangi/schooltransit/internal/pkg/auth"
)

// defaultPlates are registered as active fleet vehicles on first start.
var defaultPlates = []string{
	"KAA 123A",
	"KBB 456B",
	"KCC 789C",
}

// Default admin credentials; override via SEED_ADMIN_* before first start in
// real deployments.
const (
	defaultAdminEmail    = "admin@schooltransit.app"
	defaultAdminPhone    = "254700000000"
	defaultAdminPassword = "ChangeMe123!"
)

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// CreateDefaultData seeds the fleet plates and the School Admin account.
// Every insert is idempotent, so repeated startups are safe.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	var finalErr error

	lgr.Info().Msg("Checking/Creating default data (number plates, admin account)...")

	for _, plate := range defaultPlates {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO number_plates (plate_number, status)
			VALUES ($1, $2)
			ON CONFLICT (plate_number) DO NOTHING`,
			plate, models.PlateActive)
		if err != nil {
			lgr.Error().Err(err).Str("plate", plate).Msg("Error seeding number plate")
			finalErr = errors.Join(finalErr, err)
		}
	}

	var adminExists bool
	err := dbPool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE role = $1)`,
		models.RoleSchoolAdmin).Scan(&adminExists)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for admin account")
		return errors.Join(finalErr, err)
	}

	if !adminExists {
		adminEmail := envOr("SEED_ADMIN_EMAIL", defaultAdminEmail)
		adminPhone := envOr("SEED_ADMIN_PHONE", defaultAdminPhone)
		adminPassword := envOr("SEED_ADMIN_PASSWORD", defaultAdminPassword)

		hashedPassword, err := auth.HashPassword(adminPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing default admin password")
			return errors.Join(finalErr, err)
		}

		_, err = dbPool.Exec(ctx, `
			INSERT INTO users (first_name, last_name, email, phone_number, role, password)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (email) DO NOTHING`,
			"School", "Admin", adminEmail, adminPhone,
			models.RoleSchoolAdmin, hashedPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error seeding admin account")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Str("email", adminEmail).Msg("Default School Admin account created")
		}
	}

	return finalErr
}
