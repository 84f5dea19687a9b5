package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmwangi/schooltransit/internal/app/models"
)

// INumberPlateRepository defines the interface for fleet plate lookups
type INumberPlateRepository interface {
	ActivePlateExists(ctx context.Context, plateNumber string) (bool, error)
	ListActivePlates(ctx context.Context) ([]string, error)
}

// NumberPlateRepository handles number plate database operations
type NumberPlateRepository struct {
	db *pgxpool.Pool
}

// NewNumberPlateRepository creates a new NumberPlateRepository
func NewNumberPlateRepository(db *pgxpool.Pool) *NumberPlateRepository {
	return &NumberPlateRepository{
		db: db,
	}
}

// ActivePlateExists reports whether the plate is registered and active.
func (r *NumberPlateRepository) ActivePlateExists(ctx context.Context, plateNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM number_plates WHERE plate_number = $1 AND status = $2)`,
		plateNumber, models.PlateActive).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking number plate: %w", err)
	}

	return exists, nil
}

// ListActivePlates returns all active plate numbers in ascending order.
func (r *NumberPlateRepository) ListActivePlates(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT plate_number
		FROM number_plates
		WHERE status = $1
		ORDER BY plate_number ASC`,
		models.PlateActive)
	if err != nil {
		return nil, fmt.Errorf("error listing number plates: %w", err)
	}
	defer rows.Close()

	plates := []string{}
	for rows.Next() {
		var plate string
		if err := rows.Scan(&plate); err != nil {
			return nil, fmt.Errorf("error scanning number plate: %w", err)
		}
		plates = append(plates, plate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating number plates: %w", err)
	}

	return plates, nil
}
