package repository

import (
	"context"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ServiceOffering, error)
	FindActiveByBranch(ctx context.Context, branchID uuid.UUID) ([]*entity.ServiceOffering, error)
}

type serviceRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewServiceRepository(db database.Queryer, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

func (r *serviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ServiceOffering, error) {
	query := `
		SELECT id, branch_id, name, duration_minutes, price, is_active, created_at, updated_at
		FROM services
		WHERE id = $1
	`

	var service entity.ServiceOffering
	err := r.db.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.BranchID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&service.IsActive,
		&service.CreatedAt,
		&service.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return &service, nil
}

func (r *serviceRepository) FindActiveByBranch(ctx context.Context, branchID uuid.UUID) ([]*entity.ServiceOffering, error) {
	query := `
		SELECT id, branch_id, name, duration_minutes, price, is_active, created_at, updated_at
		FROM services
		WHERE branch_id = $1 AND is_active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, branchID)
	if err != nil {
		r.log.Error("Failed to find services by branch",
			zap.Error(err),
			zap.String("branch_id", branchID.String()),
		)
		return nil, fmt.Errorf("find services for branch %s: %w", branchID.String(), err)
	}
	defer rows.Close()

	var services []*entity.ServiceOffering
	for rows.Next() {
		var service entity.ServiceOffering
		err := rows.Scan(
			&service.ID,
			&service.BranchID,
			&service.Name,
			&service.DurationMinutes,
			&service.Price,
			&service.IsActive,
			&service.CreatedAt,
			&service.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, &service)
	}

	return services, nil
}
