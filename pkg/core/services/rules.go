package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pflegeteam/shiftplan/pkg/core/model"
	"github.com/pflegeteam/shiftplan/pkg/db"
)

// LoadActiveRules returns the latest active rule set, or the defaults when none is stored
func LoadActiveRules(ctx context.Context, store db.ShiftRulesStore, logger *zap.Logger) (model.ShiftRules, error) {
	record, err := store.GetActiveShiftRules(ctx)
	if errors.Is(err, db.ErrNotFound) {
		logger.Debug("No active shift rules stored, using defaults")
		return model.DefaultShiftRules(), nil
	}
	if err != nil {
		return model.ShiftRules{}, fmt.Errorf("failed to fetch shift rules: %w", err)
	}

	logger.Debug("Loaded shift rules", zap.String("id", record.ID))
	return model.ShiftRules{
		MinNursesPerShift:            record.MinNursesPerShift,
		MinNurseManagersPerShift:     record.MinNurseManagersPerShift,
		MinHelpers:                   record.MinHelpers,
		MaxSaturdaysPerMonth:         record.MaxSaturdaysPerMonth,
		MaxConsecutiveSameShifts:     record.MaxConsecutiveSameShifts,
		WeeklyHoursOverflowTolerance: record.WeeklyHoursOverflowTolerance,
	}, nil
}
