package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pflegeteam/shiftplan/pkg/db"
)

// ListActiveEmployees returns active employees ordered by role and name.
// A non-empty ids restricts the result to those employees.
func (d *DB) ListActiveEmployees(ctx context.Context, ids []string) ([]db.Employee, error) {
	var filter []string
	if len(ids) > 0 {
		filter = ids
	}

	rows, err := d.pool.Query(ctx, `
		SELECT id, name, role, hours_per_month::float8, hours_per_week::float8, location_id, is_active
		FROM employees
		WHERE is_active AND ($1::text[] IS NULL OR id = ANY($1))
		ORDER BY role, name
	`, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []db.Employee
	for rows.Next() {
		var emp db.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Role, &emp.HoursPerMonth, &emp.HoursPerWeek, &emp.LocationID, &emp.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// GetActiveShiftRules returns the most recently created active rule set
func (d *DB) GetActiveShiftRules(ctx context.Context) (*db.ShiftRules, error) {
	var rules db.ShiftRules
	err := d.pool.QueryRow(ctx, `
		SELECT id, min_nurses_per_shift, min_nurse_managers_per_shift, min_helpers,
		       max_saturdays_per_month, max_consecutive_same_shifts,
		       weekly_hours_overflow_tolerance::float8, is_active, created_at
		FROM shift_rules
		WHERE is_active
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(
		&rules.ID,
		&rules.MinNursesPerShift,
		&rules.MinNurseManagersPerShift,
		&rules.MinHelpers,
		&rules.MaxSaturdaysPerMonth,
		&rules.MaxConsecutiveSameShifts,
		&rules.WeeklyHoursOverflowTolerance,
		&rules.IsActive,
		&rules.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shift rules: %w", err)
	}

	return &rules, nil
}
