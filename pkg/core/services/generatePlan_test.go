package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pflegeteam/shiftplan/internal/config"
	"github.com/pflegeteam/shiftplan/pkg/core/planner"
	"github.com/pflegeteam/shiftplan/pkg/db"
)

func TestGeneratePlan_SavesPlanAndViolations(t *testing.T) {
	store := newMockStore(smallTeam()...)

	result, err := GeneratePlan(context.Background(), store, nil, zap.NewNop(), GeneratePlanRequest{Year: 2025, Month: 2}, false)
	require.NoError(t, err)

	assert.Equal(t, db.PlanID(2025, 2), result.PlanID)
	require.Len(t, result.ShiftPlan.Days, 28)
	assert.Len(t, result.EmployeeAvailability, 5)

	// The late shifts cannot be staffed once the early shift took everyone
	assert.NotEmpty(t, result.Violations.Hard)
	for _, v := range result.Violations.Hard {
		assert.Equal(t, planner.RuleMinNursesPerShift, v.Rule)
	}

	require.Equal(t, 1, store.savePlanCalls)
	saved := store.plans["2025-02"]
	require.NotNil(t, saved)
	assert.Equal(t, result.PlanID, saved.ID)
	assert.False(t, saved.IsFinalized)

	var decoded planner.MonthlyShiftPlan
	require.NoError(t, json.Unmarshal(saved.PlanData, &decoded))
	assert.Len(t, decoded.Days, 28)
	assert.Nil(t, decoded.Days[1].Shifts, "02.02.2025 is a Sunday")

	savedViolations := store.violations[result.PlanID]
	require.Len(t, savedViolations, len(result.Violations.Hard)+len(result.Violations.Soft))
	for _, v := range savedViolations {
		assert.Equal(t, result.PlanID, v.ShiftPlanID)
		if v.Type == "hard" {
			assert.Equal(t, db.SeverityHard, v.Severity)
			require.NotNil(t, v.Date)
		} else {
			assert.Equal(t, db.SeveritySoft, v.Severity)
		}
	}
}

func TestGeneratePlan_DryRunDoesNotSave(t *testing.T) {
	store := newMockStore(smallTeam()...)

	result, err := GeneratePlan(context.Background(), store, nil, zap.NewNop(), GeneratePlanRequest{Year: 2025, Month: 2}, true)
	require.NoError(t, err)

	assert.Empty(t, result.PlanID)
	assert.NotNil(t, result.ShiftPlan)
	assert.Equal(t, 0, store.savePlanCalls)
	assert.Equal(t, 0, store.saveViolationsCalls)
}

func TestGeneratePlan_NoEmployees(t *testing.T) {
	store := newMockStore()

	result, err := GeneratePlan(context.Background(), store, nil, zap.NewNop(), GeneratePlanRequest{Year: 2025, Month: 2}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoEmployees)
	assert.Nil(t, result)
	assert.Equal(t, 0, store.savePlanCalls)
}

func TestGeneratePlan_EmployeeFilter(t *testing.T) {
	store := newMockStore(smallTeam()...)

	result, err := GeneratePlan(context.Background(), store, nil, zap.NewNop(), GeneratePlanRequest{
		Year:        2025,
		Month:       2,
		EmployeeIDs: []string{"l1", "p1", "a1"},
	}, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"l1", "p1", "a1"}, store.requestedIDs)
	require.Len(t, result.EmployeeAvailability, 3)
	for _, id := range []string{"l1", "p1", "a1"} {
		assert.Contains(t, result.EmployeeAvailability, id)
	}
	assert.Len(t, result.Statistics.WorkloadDistribution, 3)
}

func TestGeneratePlan_UsesDefaultRulesWhenNoneStored(t *testing.T) {
	store := newMockStore(smallTeam()...)

	result, err := GeneratePlan(context.Background(), store, nil, zap.NewNop(), GeneratePlanRequest{Year: 2025, Month: 2}, true)
	require.NoError(t, err)

	// With the default minimum of 4 the five-person early shift on 03.02.2025 is fully staffed
	day, ok := result.ShiftPlan.Day("03.02.2025")
	require.True(t, ok)
	assert.Len(t, day.Shifts[planner.ShiftEarly], 5)
	for _, v := range result.Violations.Hard {
		assert.NotContains(t, v.Message, "Shift F on 03.02.2025")
	}
}

func TestGeneratePlan_StoredRulesApply(t *testing.T) {
	store := newMockStore(smallTeam()...)
	store.rules = &db.ShiftRules{ID: "strict", MinNursesPerShift: 6, WeeklyHoursOverflowTolerance: 0.1, IsActive: true}

	result, err := GeneratePlan(context.Background(), store, nil, zap.NewNop(), GeneratePlanRequest{Year: 2025, Month: 2}, true)
	require.NoError(t, err)

	messages := make([]string, 0, len(result.Violations.Hard))
	for _, v := range result.Violations.Hard {
		messages = append(messages, v.Message)
	}
	assert.Contains(t, messages, "Shift F on 03.02.2025 is understaffed: 5 of 6 required employees")
}

func TestGeneratePlan_SaveFailurePropagates(t *testing.T) {
	store := newMockStore(smallTeam()...)
	store.savePlanErr = errors.New("disk full")

	_, err := GeneratePlan(context.Background(), store, nil, zap.NewNop(), GeneratePlanRequest{Year: 2025, Month: 2}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save plan")
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 0, store.saveViolationsCalls)
}

func TestGeneratePlan_ViolationSaveFailurePropagates(t *testing.T) {
	store := newMockStore(smallTeam()...)
	store.saveViolationsErr = errors.New("constraint failed")

	_, err := GeneratePlan(context.Background(), store, nil, zap.NewNop(), GeneratePlanRequest{Year: 2025, Month: 2}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save violations")
}

func TestGeneratePlan_LoadErrorsPropagate(t *testing.T) {
	store := newMockStore(smallTeam()...)
	store.rulesErr = errors.New("rules table missing")

	_, err := GeneratePlan(context.Background(), store, nil, zap.NewNop(), GeneratePlanRequest{Year: 2025, Month: 2}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rules table missing")
}

func TestGeneratePlan_FinalizedPlanIsNotOverwritten(t *testing.T) {
	store := newMockStore(smallTeam()...)
	store.plans["2025-02"] = &db.ShiftPlan{ID: db.PlanID(2025, 2), Year: 2025, Month: 2, IsFinalized: true}

	_, err := GeneratePlan(context.Background(), store, nil, zap.NewNop(), GeneratePlanRequest{Year: 2025, Month: 2}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlanFinalized)
	assert.Equal(t, 0, store.savePlanCalls)
}

func TestGeneratePlan_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		req  GeneratePlanRequest
	}{
		{name: "month 13", req: GeneratePlanRequest{Year: 2025, Month: 13}},
		{name: "month 0", req: GeneratePlanRequest{Year: 2025, Month: 0}},
		{name: "missing year", req: GeneratePlanRequest{Month: 2}},
		{name: "year before 2000", req: GeneratePlanRequest{Year: 1999, Month: 2}},
		{name: "year after 2100", req: GeneratePlanRequest{Year: 2101, Month: 2}},
		{name: "empty employee id", req: GeneratePlanRequest{Year: 2025, Month: 2, EmployeeIDs: []string{""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockStore(smallTeam()...)

			_, err := GeneratePlan(context.Background(), store, nil, zap.NewNop(), tt.req, false)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestGeneratePlan_ClosedDaysFromConfig(t *testing.T) {
	store := newMockStore(smallTeam()...)
	cfg := &config.Config{
		DatabaseURL: "postgres://localhost/shiftplan",
		ClosedDays:  []config.ClosedDay{{RRule: "FREQ=YEARLY;BYMONTH=2;BYMONTHDAY=3", Description: "Team day"}},
	}

	result, err := GeneratePlan(context.Background(), store, cfg, zap.NewNop(), GeneratePlanRequest{Year: 2025, Month: 2}, true)
	require.NoError(t, err)

	closed, ok := result.ShiftPlan.Day("03.02.2025")
	require.True(t, ok)
	assert.Nil(t, closed.Shifts)

	open, ok := result.ShiftPlan.Day("04.02.2025")
	require.True(t, ok)
	assert.NotNil(t, open.Shifts)
}

func TestToDBViolations(t *testing.T) {
	violations := planner.Violations{
		Hard: []planner.ConstraintViolation{
			{Kind: planner.ViolationHard, Rule: planner.RuleMinNursesPerShift, Message: "understaffed", DateKey: "03.02.2025"},
		},
		Soft: []planner.ConstraintViolation{
			{Kind: planner.ViolationSoft, Rule: planner.RuleMonthlyHoursExceeded, Message: "over target", EmployeeID: "e1"},
		},
	}

	records := toDBViolations("plan-1", violations)
	require.Len(t, records, 2)

	assert.Equal(t, "hard", records[0].Type)
	assert.Equal(t, db.SeverityHard, records[0].Severity)
	require.NotNil(t, records[0].Date)
	assert.Equal(t, "03.02.2025", *records[0].Date)
	assert.Nil(t, records[0].EmployeeID)

	assert.Equal(t, "soft", records[1].Type)
	assert.Equal(t, db.SeveritySoft, records[1].Severity)
	require.NotNil(t, records[1].EmployeeID)
	assert.Equal(t, "e1", *records[1].EmployeeID)
	assert.Nil(t, records[1].Date)

	assert.Equal(t, violations, fromDBViolations(records))
}

func TestGeneratePlan_RelaxedRulesAreLoggedOnly(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	relaxed, err := GeneratePlan(context.Background(), newMockStore(smallTeam()...), nil, zap.New(core),
		GeneratePlanRequest{Year: 2025, Month: 2, UseRelaxedRules: true}, true)
	require.NoError(t, err)

	strict, err := GeneratePlan(context.Background(), newMockStore(smallTeam()...), nil, zap.NewNop(),
		GeneratePlanRequest{Year: 2025, Month: 2}, true)
	require.NoError(t, err)

	started := logs.FilterMessage("Starting generatePlan").All()
	require.Len(t, started, 1)
	assert.Equal(t, true, started[0].ContextMap()["use_relaxed_rules"])

	assert.Equal(t, strict.ShiftPlan.Days, relaxed.ShiftPlan.Days)
	assert.Equal(t, strict.Violations, relaxed.Violations)
}
