package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pflegeteam/shiftplan/pkg/db"
)

// FinalizePlanStore defines the database operations needed for finalizing a plan
type FinalizePlanStore interface {
	GetPlan(ctx context.Context, year, month int) (*db.ShiftPlan, error)
	SetPlanFinalized(ctx context.Context, planID string, finalized bool) error
}

// FinalizePlan marks the stored plan of a month as final and returns its id.
// Finalizing an already finalized plan is a no-op.
func FinalizePlan(ctx context.Context, database FinalizePlanStore, logger *zap.Logger, year, month int) (string, error) {
	if err := validateMonth(year, month); err != nil {
		return "", err
	}

	record, err := getPlan(ctx, database, year, month)
	if err != nil {
		return "", err
	}

	if record.IsFinalized {
		logger.Info("Shift plan already finalized", zap.String("id", record.ID))
		return record.ID, nil
	}

	if err := database.SetPlanFinalized(ctx, record.ID, true); err != nil {
		return "", fmt.Errorf("failed to finalize plan: %w", err)
	}

	logger.Info("Shift plan finalized", zap.String("id", record.ID), zap.Int("year", year), zap.Int("month", month))
	return record.ID, nil
}
