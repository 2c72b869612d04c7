package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pflegeteam/shiftplan/internal/config"
	"github.com/pflegeteam/shiftplan/pkg/core/model"
	"github.com/pflegeteam/shiftplan/pkg/core/planner"
	"github.com/pflegeteam/shiftplan/pkg/db"
)

var validate = validator.New()

// GeneratePlanRequest selects the month and roster of a generation run
type GeneratePlanRequest struct {
	Year            int      `json:"year" validate:"required,min=2000,max=2100"`
	Month           int      `json:"month" validate:"required,min=1,max=12"`
	EmployeeIDs     []string `json:"employeeIds,omitempty" validate:"omitempty,dive,required"`
	UseRelaxedRules bool     `json:"useRelaxedRules,omitempty"`
}

// GeneratePlanResult is the outcome of a generation run.
// PlanID is empty for dry runs.
type GeneratePlanResult struct {
	PlanID               string                     `json:"planId,omitempty"`
	ShiftPlan            *planner.MonthlyShiftPlan  `json:"shiftPlan"`
	EmployeeAvailability planner.AvailabilityTable  `json:"employeeAvailability"`
	Violations           planner.Violations         `json:"violations"`
	Statistics           planner.PlanningStatistics `json:"statistics"`
}

// GeneratePlanStore defines the database operations needed for generating a plan
type GeneratePlanStore interface {
	db.EmployeeStore
	db.ShiftRulesStore
	GetPlan(ctx context.Context, year, month int) (*db.ShiftPlan, error)
	SavePlan(ctx context.Context, plan *db.ShiftPlan) (string, error)
	SaveViolations(ctx context.Context, planID string, violations []db.ConstraintViolation) error
}

// GeneratePlan builds the monthly plan, validates it and computes its statistics.
// Unless dryRun is set the plan and its violations replace any stored plan for the month.
// cfg may be nil, in which case no closed days apply.
func GeneratePlan(
	ctx context.Context,
	database GeneratePlanStore,
	cfg *config.Config,
	logger *zap.Logger,
	req GeneratePlanRequest,
	dryRun bool,
) (*GeneratePlanResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	month := time.Month(req.Month)
	logger.Debug("Starting generatePlan",
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Int("employee_filter", len(req.EmployeeIDs)),
		zap.Bool("use_relaxed_rules", req.UseRelaxedRules),
		zap.Bool("dry_run", dryRun))

	// Step 1: Refuse to overwrite a finalized plan
	if !dryRun {
		existing, err := database.GetPlan(ctx, req.Year, req.Month)
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("failed to fetch existing plan: %w", err)
		}
		if existing != nil && existing.IsFinalized {
			return nil, fmt.Errorf("%w: %04d-%02d", ErrPlanFinalized, req.Year, req.Month)
		}
	}

	// Step 2: Load roster and rules
	var employees []model.Employee
	var rules model.ShiftRules

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = LoadRoster(gctx, database, logger, req.EmployeeIDs)
		return err
	})
	g.Go(func() error {
		var err error
		rules, err = LoadActiveRules(gctx, database, logger)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(employees) == 0 {
		return nil, ErrNoEmployees
	}

	// Step 3: Generate
	opts := planner.Options{UseRelaxedRules: req.UseRelaxedRules}
	if cfg != nil {
		first := time.Date(req.Year, month, 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		isClosed, err := cfg.ClosedDayMatcher(first, last)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve closed days: %w", err)
		}
		opts.IsClosed = isClosed
	}

	logger.Debug("Generating plan", zap.Int("employees", len(employees)))
	outcome := planner.Generate(req.Year, month, employees, opts)

	// Step 4: Validate and summarise
	violations := planner.ValidatePlan(&planner.ValidationState{
		Plan:         outcome.Plan,
		Availability: outcome.Availability,
		Employees:    employees,
		Rules:        rules,
	}, planner.DefaultValidationRules())
	stats := planner.CalculateStatistics(outcome.Plan, outcome.Availability, employees)

	logger.Info("Shift plan generated",
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Int("complete_days", stats.CompleteDays),
		zap.Int("incomplete_days", stats.IncompleteDays),
		zap.Float64("completion_rate", stats.CompletionRate))
	if len(violations.Hard) > 0 || len(violations.Soft) > 0 {
		logger.Warn("Shift plan has constraint violations",
			zap.Int("hard", len(violations.Hard)),
			zap.Int("soft", len(violations.Soft)))
	}

	result := &GeneratePlanResult{
		ShiftPlan:            outcome.Plan,
		EmployeeAvailability: outcome.Availability,
		Violations:           violations,
		Statistics:           stats,
	}

	if dryRun {
		logger.Info("Dry run, plan not saved")
		return result, nil
	}

	// Step 5: Persist plan, then violations
	record, err := toDBPlan(req.Year, req.Month, result)
	if err != nil {
		return nil, err
	}

	logger.Debug("Saving plan", zap.String("id", record.ID))
	planID, err := database.SavePlan(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}

	if err := database.SaveViolations(ctx, planID, toDBViolations(planID, violations)); err != nil {
		return nil, fmt.Errorf("failed to save violations: %w", err)
	}

	result.PlanID = planID
	logger.Info("Shift plan saved", zap.String("id", planID))
	return result, nil
}

func toDBPlan(year, month int, result *GeneratePlanResult) (*db.ShiftPlan, error) {
	planData, err := json.Marshal(result.ShiftPlan)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}
	availability, err := json.Marshal(result.EmployeeAvailability)
	if err != nil {
		return nil, fmt.Errorf("failed to encode employee availability: %w", err)
	}
	stats, err := json.Marshal(result.Statistics)
	if err != nil {
		return nil, fmt.Errorf("failed to encode statistics: %w", err)
	}

	return &db.ShiftPlan{
		ID:                   db.PlanID(year, month),
		Year:                 year,
		Month:                month,
		PlanData:             planData,
		EmployeeAvailability: availability,
		Statistics:           stats,
	}, nil
}

func toDBViolations(planID string, violations planner.Violations) []db.ConstraintViolation {
	all := violations.All()
	records := make([]db.ConstraintViolation, 0, len(all))

	for _, v := range all {
		record := db.ConstraintViolation{
			ShiftPlanID: planID,
			Type:        string(v.Kind),
			Rule:        v.Rule,
			Message:     v.Message,
			Severity:    db.SeveritySoft,
		}
		if v.Kind == planner.ViolationHard {
			record.Severity = db.SeverityHard
		}
		if v.EmployeeID != "" {
			employeeID := v.EmployeeID
			record.EmployeeID = &employeeID
		}
		if v.DateKey != "" {
			date := v.DateKey
			record.Date = &date
		}
		records = append(records, record)
	}

	return records
}

func fromDBViolations(records []db.ConstraintViolation) planner.Violations {
	violations := planner.Violations{
		Hard: []planner.ConstraintViolation{},
		Soft: []planner.ConstraintViolation{},
	}

	for _, record := range records {
		v := planner.ConstraintViolation{
			Kind:    planner.ViolationKind(record.Type),
			Rule:    record.Rule,
			Message: record.Message,
		}
		if record.EmployeeID != nil {
			v.EmployeeID = *record.EmployeeID
		}
		if record.Date != nil {
			v.DateKey = *record.Date
		}

		if v.Kind == planner.ViolationHard {
			violations.Hard = append(violations.Hard, v)
		} else {
			violations.Soft = append(violations.Soft, v)
		}
	}

	return violations
}
