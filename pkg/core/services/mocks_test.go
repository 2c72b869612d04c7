package services

import (
	"context"
	"fmt"

	"github.com/pflegeteam/shiftplan/pkg/clients/sheetsclient"
	"github.com/pflegeteam/shiftplan/pkg/db"
)

// mockStore implements db.Database for testing
type mockStore struct {
	employees  []db.Employee
	rules      *db.ShiftRules
	plans      map[string]*db.ShiftPlan
	violations map[string][]db.ConstraintViolation

	listErr           error
	rulesErr          error
	getPlanErr        error
	savePlanErr       error
	saveViolationsErr error

	requestedIDs        []string
	savePlanCalls       int
	saveViolationsCalls int
}

func newMockStore(employees ...db.Employee) *mockStore {
	return &mockStore{
		employees:  employees,
		plans:      make(map[string]*db.ShiftPlan),
		violations: make(map[string][]db.ConstraintViolation),
	}
}

func planKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func (m *mockStore) ListActiveEmployees(ctx context.Context, ids []string) ([]db.Employee, error) {
	m.requestedIDs = ids
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.employees, nil
}

func (m *mockStore) GetActiveShiftRules(ctx context.Context) (*db.ShiftRules, error) {
	if m.rulesErr != nil {
		return nil, m.rulesErr
	}
	if m.rules == nil {
		return nil, db.ErrNotFound
	}
	return m.rules, nil
}

func (m *mockStore) SavePlan(ctx context.Context, plan *db.ShiftPlan) (string, error) {
	m.savePlanCalls++
	if m.savePlanErr != nil {
		return "", m.savePlanErr
	}
	saved := *plan
	m.plans[planKey(plan.Year, plan.Month)] = &saved
	return plan.ID, nil
}

func (m *mockStore) SaveViolations(ctx context.Context, planID string, violations []db.ConstraintViolation) error {
	m.saveViolationsCalls++
	if m.saveViolationsErr != nil {
		return m.saveViolationsErr
	}
	m.violations[planID] = violations
	return nil
}

func (m *mockStore) GetPlan(ctx context.Context, year, month int) (*db.ShiftPlan, error) {
	if m.getPlanErr != nil {
		return nil, m.getPlanErr
	}
	plan, ok := m.plans[planKey(year, month)]
	if !ok {
		return nil, db.ErrNotFound
	}
	return plan, nil
}

func (m *mockStore) GetViolations(ctx context.Context, planID string) ([]db.ConstraintViolation, error) {
	return m.violations[planID], nil
}

func (m *mockStore) SetPlanFinalized(ctx context.Context, planID string, finalized bool) error {
	for _, plan := range m.plans {
		if plan.ID == planID {
			plan.IsFinalized = finalized
			return nil
		}
	}
	return db.ErrNotFound
}

// mockPublisher implements PlanPublisher for testing
type mockPublisher struct {
	spreadsheetID string
	published     *sheetsclient.PublishedPlan
	err           error
}

func (m *mockPublisher) PublishPlan(spreadsheetID string, plan *sheetsclient.PublishedPlan) error {
	if m.err != nil {
		return m.err
	}
	m.spreadsheetID = spreadsheetID
	m.published = plan
	return nil
}

func employee(id, name, role string, hours float64) db.Employee {
	return db.Employee{
		ID:            id,
		Name:          name,
		Role:          role,
		HoursPerMonth: hours,
		IsActive:      true,
	}
}

// smallTeam is one leader, three specialists and one assistant: enough for the weekday early shift only
func smallTeam() []db.Employee {
	return []db.Employee{
		employee("p1", "Paula", "specialist", 160),
		employee("l1", "Lena", "shift_leader", 160),
		employee("a1", "Arno", "assistant", 160),
		employee("p2", "Peter", "specialist", 160),
		employee("p3", "Pia", "specialist", 160),
	}
}
