package db

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// EmployeeStore defines the interface for employee database operations
type EmployeeStore interface {
	// ListActiveEmployees returns active employees, restricted to ids when ids is non-empty
	ListActiveEmployees(ctx context.Context, ids []string) ([]Employee, error)
}

// ShiftRulesStore defines the interface for shift rule database operations
type ShiftRulesStore interface {
	// GetActiveShiftRules returns the most recently created active rules or ErrNotFound
	GetActiveShiftRules(ctx context.Context) (*ShiftRules, error)
}

// PlanStore defines the interface for shift plan database operations
type PlanStore interface {
	SavePlan(ctx context.Context, plan *ShiftPlan) (string, error)
	SaveViolations(ctx context.Context, planID string, violations []ConstraintViolation) error
	GetPlan(ctx context.Context, year, month int) (*ShiftPlan, error)
	GetViolations(ctx context.Context, planID string) ([]ConstraintViolation, error)
	SetPlanFinalized(ctx context.Context, planID string, finalized bool) error
}

// Database defines the interface for all database operations
type Database interface {
	EmployeeStore
	ShiftRulesStore
	PlanStore
}
