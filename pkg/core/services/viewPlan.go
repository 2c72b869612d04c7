package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pflegeteam/shiftplan/pkg/core/planner"
	"github.com/pflegeteam/shiftplan/pkg/db"
)

// planMonth identifies the month of a stored plan
type planMonth struct {
	Year  int `validate:"required,min=2000,max=2100"`
	Month int `validate:"required,min=1,max=12"`
}

func validateMonth(year, month int) error {
	if err := validate.Struct(planMonth{Year: year, Month: month}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// StoredPlan is a persisted plan decoded back into planner types
type StoredPlan struct {
	ID                   string                     `json:"id"`
	Year                 int                        `json:"year"`
	Month                int                        `json:"month"`
	IsFinalized          bool                       `json:"isFinalized"`
	CreatedAt            time.Time                  `json:"createdAt"`
	UpdatedAt            time.Time                  `json:"updatedAt"`
	ShiftPlan            *planner.MonthlyShiftPlan  `json:"shiftPlan"`
	EmployeeAvailability planner.AvailabilityTable  `json:"employeeAvailability"`
	Statistics           planner.PlanningStatistics `json:"statistics"`
	Violations           planner.Violations         `json:"violations"`
}

// ViewPlanStore defines the database operations needed for viewing a plan
type ViewPlanStore interface {
	GetPlan(ctx context.Context, year, month int) (*db.ShiftPlan, error)
	GetViolations(ctx context.Context, planID string) ([]db.ConstraintViolation, error)
}

// ViewPlan loads the stored plan of a month together with its violations
func ViewPlan(ctx context.Context, database ViewPlanStore, logger *zap.Logger, year, month int) (*StoredPlan, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}

	logger.Debug("Fetching plan", zap.Int("year", year), zap.Int("month", month))
	record, err := getPlan(ctx, database, year, month)
	if err != nil {
		return nil, err
	}

	stored, err := decodePlan(record)
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetching violations", zap.String("plan_id", record.ID))
	violations, err := database.GetViolations(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch violations: %w", err)
	}
	stored.Violations = fromDBViolations(violations)

	return stored, nil
}

type planGetter interface {
	GetPlan(ctx context.Context, year, month int) (*db.ShiftPlan, error)
}

// getPlan maps a missing plan to ErrPlanNotFound
func getPlan(ctx context.Context, database planGetter, year, month int) (*db.ShiftPlan, error) {
	record, err := database.GetPlan(ctx, year, month)
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("%w: %04d-%02d", ErrPlanNotFound, year, month)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plan: %w", err)
	}
	return record, nil
}

func decodePlan(record *db.ShiftPlan) (*StoredPlan, error) {
	stored := &StoredPlan{
		ID:          record.ID,
		Year:        record.Year,
		Month:       record.Month,
		IsFinalized: record.IsFinalized,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
		ShiftPlan:   &planner.MonthlyShiftPlan{},
	}

	if err := json.Unmarshal(record.PlanData, stored.ShiftPlan); err != nil {
		return nil, fmt.Errorf("failed to decode plan data: %w", err)
	}
	stored.ShiftPlan.Year = record.Year
	stored.ShiftPlan.Month = time.Month(record.Month)

	if len(record.EmployeeAvailability) > 0 {
		if err := json.Unmarshal(record.EmployeeAvailability, &stored.EmployeeAvailability); err != nil {
			return nil, fmt.Errorf("failed to decode employee availability: %w", err)
		}
	}
	if len(record.Statistics) > 0 {
		if err := json.Unmarshal(record.Statistics, &stored.Statistics); err != nil {
			return nil, fmt.Errorf("failed to decode statistics: %w", err)
		}
	}

	return stored, nil
}
