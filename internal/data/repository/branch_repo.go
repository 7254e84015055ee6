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

type BranchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error)
}

type branchRepository struct {
	db  database.Queryer
	log *zap.Logger
}

func NewBranchRepository(db database.Queryer, log *zap.Logger) BranchRepository {
	return &branchRepository{
		db:  db,
		log: log.With(zap.String("repository", "branch")),
	}
}

func (r *branchRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	query := `
		SELECT id, name, address, phone, is_active, created_at, updated_at
		FROM branches
		WHERE id = $1
	`

	var branch entity.Branch
	err := r.db.QueryRow(ctx, query, id).Scan(
		&branch.ID,
		&branch.Name,
		&branch.Address,
		&branch.Phone,
		&branch.IsActive,
		&branch.CreatedAt,
		&branch.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find branch by ID",
			zap.Error(err),
			zap.String("branch_id", id.String()),
		)
		return nil, fmt.Errorf("find branch by ID %s: %w", id.String(), err)
	}

	return &branch, nil
}
