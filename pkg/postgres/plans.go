package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pflegeteam/shiftplan/pkg/db"
)

// SavePlan inserts the plan or replaces the stored plan with the same id.
// An empty plan.ID is derived from year and month.
func (d *DB) SavePlan(ctx context.Context, plan *db.ShiftPlan) (string, error) {
	id := plan.ID
	if id == "" {
		id = db.PlanID(plan.Year, plan.Month)
	}

	var savedID string
	err := d.pool.QueryRow(ctx, `
		INSERT INTO shift_plans (id, year, month, plan_data, employee_availability, statistics, is_finalized)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			plan_data = EXCLUDED.plan_data,
			employee_availability = EXCLUDED.employee_availability,
			statistics = EXCLUDED.statistics,
			is_finalized = EXCLUDED.is_finalized,
			updated_at = NOW()
		RETURNING id::text
	`, id, plan.Year, plan.Month, plan.PlanData, plan.EmployeeAvailability, plan.Statistics, plan.IsFinalized).Scan(&savedID)
	if err != nil {
		return "", fmt.Errorf("failed to save shift plan %04d-%02d: %w", plan.Year, plan.Month, err)
	}

	return savedID, nil
}

// SaveViolations replaces all violations stored for the plan in one transaction
func (d *DB) SaveViolations(ctx context.Context, planID string, violations []db.ConstraintViolation) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM constraint_violations WHERE shift_plan_id = $1`, planID); err != nil {
		return fmt.Errorf("failed to delete previous violations: %w", err)
	}

	if len(violations) > 0 {
		batch := &pgx.Batch{}
		for _, v := range violations {
			id := v.ID
			if id == "" {
				id = uuid.New().String()
			}
			batch.Queue(`
				INSERT INTO constraint_violations (id, shift_plan_id, type, rule, message, employee_id, date, severity, is_resolved)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			`, id, planID, v.Type, v.Rule, v.Message, v.EmployeeID, v.Date, v.Severity, v.IsResolved)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert violations: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit violations: %w", err)
	}

	return nil
}

// GetPlan returns the stored plan for the month or db.ErrNotFound
func (d *DB) GetPlan(ctx context.Context, year, month int) (*db.ShiftPlan, error) {
	var plan db.ShiftPlan
	err := d.pool.QueryRow(ctx, `
		SELECT id::text, year, month, plan_data, employee_availability, statistics, is_finalized, created_at, updated_at
		FROM shift_plans
		WHERE year = $1 AND month = $2
	`, year, month).Scan(
		&plan.ID,
		&plan.Year,
		&plan.Month,
		&plan.PlanData,
		&plan.EmployeeAvailability,
		&plan.Statistics,
		&plan.IsFinalized,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shift plan %04d-%02d: %w", year, month, err)
	}

	return &plan, nil
}

// GetViolations returns the violations of a plan, hard ones first
func (d *DB) GetViolations(ctx context.Context, planID string) ([]db.ConstraintViolation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id::text, shift_plan_id::text, type, rule, message, employee_id, date, severity, is_resolved, created_at
		FROM constraint_violations
		WHERE shift_plan_id = $1
		ORDER BY severity DESC, created_at, id
	`, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}
	defer rows.Close()

	var violations []db.ConstraintViolation
	for rows.Next() {
		var v db.ConstraintViolation
		if err := rows.Scan(&v.ID, &v.ShiftPlanID, &v.Type, &v.Rule, &v.Message, &v.EmployeeID, &v.Date, &v.Severity, &v.IsResolved, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		violations = append(violations, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating violations: %w", err)
	}

	return violations, nil
}

// SetPlanFinalized marks a plan as finalized or reopens it
func (d *DB) SetPlanFinalized(ctx context.Context, planID string, finalized bool) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE shift_plans SET is_finalized = $2, updated_at = NOW() WHERE id = $1
	`, planID, finalized)
	if err != nil {
		return fmt.Errorf("failed to update shift plan %s: %w", planID, err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
