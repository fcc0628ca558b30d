package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planboard/planboard/internal/app/models"
	"github.com/planboard/planboard/internal/pkg/apperrors"
	"github.com/planboard/planboard/internal/pkg/dberrors"
)

// PlanRepository handles saved plan database operations
type PlanRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPlanRepository creates a new PlanRepository
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreatePlan stores a new saved plan for a user
func (r *PlanRepository) CreatePlan(ctx context.Context, plan *models.SavedPlan) error {
	now := time.Now()
	plan.ID = uuid.New()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	sql, args, err := r.sb.Insert("plans").
		Columns("id", "user_id", "name", "content", "created_at", "updated_at").
		Values(plan.ID, plan.UserID, plan.Name, plan.Content, plan.CreatedAt, plan.UpdatedAt).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build create plan query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "plans_user_id_name_key") {
			return apperrors.ErrPlanNameTaken
		}
		return fmt.Errorf("error creating plan: %w", err)
	}

	return nil
}

// GetPlanByID retrieves a saved plan by its ID
func (r *PlanRepository) GetPlanByID(ctx context.Context, id uuid.UUID) (*models.SavedPlan, error) {
	sql, args, err := r.sb.Select("id", "user_id", "name", "content", "created_at", "updated_at").
		From("plans").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get plan query: %w", err)
	}

	plan := &models.SavedPlan{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&plan.ID, &plan.UserID, &plan.Name, &plan.Content, &plan.CreatedAt, &plan.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, fmt.Errorf("error retrieving plan: %w", err)
	}

	return plan, nil
}

// ListPlansByUser retrieves all saved plans of a user, most recently updated first
func (r *PlanRepository) ListPlansByUser(ctx context.Context, userID int64) ([]*models.SavedPlan, error) {
	sql, args, err := r.sb.Select("id", "user_id", "name", "content", "created_at", "updated_at").
		From("plans").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("updated_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list plans query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing plans: %w", err)
	}
	defer rows.Close()

	plans := []*models.SavedPlan{}
	for rows.Next() {
		plan := &models.SavedPlan{}
		if err := rows.Scan(&plan.ID, &plan.UserID, &plan.Name, &plan.Content, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning plan row: %w", err)
		}
		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan rows: %w", err)
	}

	return plans, nil
}

// UpdatePlan updates the name and content of a saved plan
func (r *PlanRepository) UpdatePlan(ctx context.Context, plan *models.SavedPlan) error {
	plan.UpdatedAt = time.Now()

	sql, args, err := r.sb.Update("plans").
		Set("name", plan.Name).
		Set("content", plan.Content).
		Set("updated_at", plan.UpdatedAt).
		Where(squirrel.Eq{"id": plan.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update plan query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "plans_user_id_name_key") {
			return apperrors.ErrPlanNameTaken
		}
		return fmt.Errorf("error updating plan: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPlanNotFound
	}

	return nil
}

// DeletePlan removes a saved plan
func (r *PlanRepository) DeletePlan(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("plans").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete plan query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting plan: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrPlanNotFound
	}

	return nil
}
