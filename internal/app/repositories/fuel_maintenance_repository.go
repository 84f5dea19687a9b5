package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmwangi/schooltransit/internal/app/models"
)

// IFuelMaintenanceRepository defines the interface for fuel and
// maintenance request database operations
type IFuelMaintenanceRepository interface {
	Create(ctx context.Context, request *models.FuelMaintenanceRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.FuelMaintenanceRequest, error)
	ListByCreator(ctx context.Context, createdByUserID int64, limit int) ([]*models.FuelMaintenanceRequest, error)
}

// FuelMaintenanceRepository handles fuel/maintenance request database operations
type FuelMaintenanceRepository struct {
	db *pgxpool.Pool
}

// NewFuelMaintenanceRepository creates a new FuelMaintenanceRepository
func NewFuelMaintenanceRepository(db *pgxpool.Pool) *FuelMaintenanceRepository {
	return &FuelMaintenanceRepository{
		db: db,
	}
}

const fuelRequestColumns = `id, to_char(request_date, 'YYYY-MM-DD'), number_plate, current_mileage,
		request_type, requested_by, category, description, amount, confirmed_by,
		created_by_user_id, created_at, updated_at`

func scanFuelRequest(row pgx.Row) (*models.FuelMaintenanceRequest, error) {
	request := &models.FuelMaintenanceRequest{}
	err := row.Scan(
		&request.ID, &request.RequestDate, &request.NumberPlate, &request.CurrentMileage,
		&request.RequestType, &request.RequestedBy, &request.Category, &request.Description,
		&request.Amount, &request.ConfirmedBy, &request.CreatedByUserID,
		&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("fuel maintenance request not found")
		}
		return nil, fmt.Errorf("error scanning fuel maintenance request: %w", err)
	}
	return request, nil
}

// Create inserts a new request and returns its id.
func (r *FuelMaintenanceRepository) Create(ctx context.Context, request *models.FuelMaintenanceRequest) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO fuel_maintenance_requests
			(request_date, number_plate, current_mileage, request_type, requested_by,
			 category, description, amount, confirmed_by, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		request.RequestDate, request.NumberPlate, request.CurrentMileage, request.RequestType,
		request.RequestedBy, request.Category, request.Description, request.Amount,
		request.ConfirmedBy, request.CreatedByUserID).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating fuel maintenance request: %w", err)
	}

	return id, nil
}

// GetByID retrieves a request by ID
func (r *FuelMaintenanceRepository) GetByID(ctx context.Context, id int64) (*models.FuelMaintenanceRequest, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+fuelRequestColumns+`
		FROM fuel_maintenance_requests
		WHERE id = $1`,
		id)

	return scanFuelRequest(row)
}

// ListByCreator returns the creator's requests, newest first, capped at limit.
func (r *FuelMaintenanceRepository) ListByCreator(ctx context.Context, createdByUserID int64, limit int) ([]*models.FuelMaintenanceRequest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+fuelRequestColumns+`
		FROM fuel_maintenance_requests
		WHERE created_by_user_id = $1
		ORDER BY request_date DESC, id DESC
		LIMIT $2`,
		createdByUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing fuel maintenance requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.FuelMaintenanceRequest{}
	for rows.Next() {
		request, err := scanFuelRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fuel maintenance requests: %w", err)
	}

	return requests, nil
}
