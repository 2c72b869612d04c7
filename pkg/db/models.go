package db

import (
	"encoding/json"
	"time"
)

// Employee represents a database employee record
type Employee struct {
	ID            string
	Name          string
	Role          string
	HoursPerMonth float64
	HoursPerWeek  *float64
	LocationID    *string
	IsActive      bool
}

// ShiftRules represents a database shift rule record
type ShiftRules struct {
	ID                           string
	MinNursesPerShift            int
	MinNurseManagersPerShift     int
	MinHelpers                   int
	MaxSaturdaysPerMonth         int
	MaxConsecutiveSameShifts     int
	WeeklyHoursOverflowTolerance float64
	IsActive                     bool
	CreatedAt                    time.Time
}

// ShiftPlan represents a database shift plan record.
// PlanData, EmployeeAvailability and Statistics hold serialized JSON.
type ShiftPlan struct {
	ID                   string
	Year                 int
	Month                int
	PlanData             json.RawMessage
	EmployeeAvailability json.RawMessage
	Statistics           json.RawMessage
	IsFinalized          bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ConstraintViolation represents a database constraint violation record
type ConstraintViolation struct {
	ID          string
	ShiftPlanID string
	Type        string // hard or soft
	Rule        string
	Message     string
	EmployeeID  *string
	Date        *string // DD.MM.YYYY
	Severity    int
	IsResolved  bool
	CreatedAt   time.Time
}

const (
	SeverityHard = 3
	SeveritySoft = 2
)
