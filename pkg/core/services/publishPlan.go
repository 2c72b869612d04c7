package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pflegeteam/shiftplan/internal/config"
	"github.com/pflegeteam/shiftplan/pkg/clients/sheetsclient"
	"github.com/pflegeteam/shiftplan/pkg/core/planner"
	"github.com/pflegeteam/shiftplan/pkg/db"
)

// PlanPublisher writes a laid out plan to a spreadsheet
type PlanPublisher interface {
	PublishPlan(spreadsheetID string, plan *sheetsclient.PublishedPlan) error
}

// PublishPlanStore defines the database operations needed for publishing a plan
type PublishPlanStore interface {
	GetPlan(ctx context.Context, year, month int) (*db.ShiftPlan, error)
	db.EmployeeStore
}

// PublishPlan writes the stored plan of a month to the tab "Shift plan YYYY-MM" of the plan spreadsheet.
// Employees no longer on the active roster are shown by id.
func PublishPlan(
	ctx context.Context,
	database PublishPlanStore,
	publisher PlanPublisher,
	cfg *config.Config,
	logger *zap.Logger,
	year, month int,
) (*sheetsclient.PublishedPlan, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}
	if cfg.PlanSheetID == "" {
		return nil, fmt.Errorf("planSheetID is not configured")
	}

	logger.Debug("Starting publishPlan", zap.Int("year", year), zap.Int("month", month))

	record, err := getPlan(ctx, database, year, month)
	if err != nil {
		return nil, err
	}
	stored, err := decodePlan(record)
	if err != nil {
		return nil, err
	}

	logger.Debug("Fetching employees for names")
	employees, err := database.ListActiveEmployees(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	names := make(map[string]string, len(employees))
	for _, emp := range employees {
		names[emp.ID] = emp.Name
	}

	published := buildPublishedPlan(stored.ShiftPlan, names)

	logger.Debug("Writing plan to sheet", zap.String("tab", published.Title), zap.Int("rows", len(published.Rows)))
	if err := publisher.PublishPlan(cfg.PlanSheetID, published); err != nil {
		return nil, fmt.Errorf("failed to publish plan: %w", err)
	}

	logger.Info("Shift plan published", zap.String("tab", published.Title), zap.String("spreadsheet_id", cfg.PlanSheetID))
	return published, nil
}

func buildPublishedPlan(plan *planner.MonthlyShiftPlan, names map[string]string) *sheetsclient.PublishedPlan {
	shiftTypes := planner.AllShiftTypes()
	published := &sheetsclient.PublishedPlan{
		Title:      fmt.Sprintf("Shift plan %04d-%02d", plan.Year, int(plan.Month)),
		ShiftTypes: make([]string, 0, len(shiftTypes)),
		Rows:       make([]sheetsclient.PublishedPlanRow, 0, len(plan.Days)),
	}
	for _, shiftType := range shiftTypes {
		published.ShiftTypes = append(published.ShiftTypes, string(shiftType))
	}

	for _, day := range plan.Days {
		row := sheetsclient.PublishedPlanRow{
			Date:    day.DateKey,
			Weekday: day.Date.Weekday().String(),
			Closed:  day.Shifts == nil,
			Shifts:  make(map[string][]string, len(day.Shifts)),
		}

		for shiftType, ids := range day.Shifts {
			staff := make([]string, 0, len(ids))
			for _, id := range ids {
				if name, ok := names[id]; ok {
					staff = append(staff, name)
				} else {
					staff = append(staff, id)
				}
			}
			row.Shifts[string(shiftType)] = staff
		}

		published.Rows = append(published.Rows, row)
	}

	return published
}
