package planner

import (
	"fmt"

	"github.com/pflegeteam/shiftplan/pkg/core/model"
)

// ViolationKind separates blocking from advisory violations
type ViolationKind string

const (
	ViolationHard ViolationKind = "hard"
	ViolationSoft ViolationKind = "soft"
)

const (
	RuleMinNursesPerShift    = "MIN_NURSES_PER_SHIFT"
	RuleMonthlyHoursExceeded = "MONTHLY_HOURS_EXCEEDED"
)

// ConstraintViolation is a rule breach found in a finished plan
type ConstraintViolation struct {
	Kind       ViolationKind `json:"type"`
	Rule       string        `json:"rule"`
	Message    string        `json:"message"`
	EmployeeID string        `json:"employeeId,omitempty"`
	DateKey    string        `json:"date,omitempty"`
}

// Violations groups violations by kind
type Violations struct {
	Hard []ConstraintViolation `json:"hard"`
	Soft []ConstraintViolation `json:"soft"`
}

// All returns hard violations followed by soft ones
func (v Violations) All() []ConstraintViolation {
	all := make([]ConstraintViolation, 0, len(v.Hard)+len(v.Soft))
	all = append(all, v.Hard...)
	return append(all, v.Soft...)
}

// ValidationState is the read-only input of the validation rules
type ValidationState struct {
	Plan         *MonthlyShiftPlan
	Availability AvailabilityTable
	Employees    []model.Employee
	Rules        model.ShiftRules
}

// ValidationRule checks a finished plan for one kind of breach
type ValidationRule interface {
	Code() string
	Kind() ViolationKind
	Check(state *ValidationState) []ConstraintViolation
}

// DefaultValidationRules returns the rules checked after every generation run.
// Role mix minimums and the Saturday limit are not checked.
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		&MinStaffRule{},
		&MonthlyHoursRule{},
	}
}

// ValidatePlan runs every rule and sorts the results by kind
func ValidatePlan(state *ValidationState, rules []ValidationRule) Violations {
	violations := Violations{
		Hard: []ConstraintViolation{},
		Soft: []ConstraintViolation{},
	}

	for _, rule := range rules {
		for _, violation := range rule.Check(state) {
			switch violation.Kind {
			case ViolationHard:
				violations.Hard = append(violations.Hard, violation)
			default:
				violations.Soft = append(violations.Soft, violation)
			}
		}
	}

	return violations
}

// MinStaffRule flags every slot staffed below ShiftRules.MinNursesPerShift
type MinStaffRule struct{}

func (r *MinStaffRule) Code() string {
	return RuleMinNursesPerShift
}

func (r *MinStaffRule) Kind() ViolationKind {
	return ViolationHard
}

func (r *MinStaffRule) Check(state *ValidationState) []ConstraintViolation {
	var violations []ConstraintViolation
	required := state.Rules.MinNursesPerShift

	for _, day := range state.Plan.Days {
		if day.Shifts == nil {
			continue
		}

		for _, shiftType := range day.Shifts.ShiftTypes() {
			actual := len(day.Shifts[shiftType])
			if actual >= required {
				continue
			}

			violations = append(violations, ConstraintViolation{
				Kind:    r.Kind(),
				Rule:    r.Code(),
				Message: fmt.Sprintf("Shift %s on %s is understaffed: %d of %d required employees", shiftType, day.DateKey, actual, required),
				DateKey: day.DateKey,
			})
		}
	}

	return violations
}

// MonthlyHoursRule flags employees whose assigned hours exceed target plus tolerance
type MonthlyHoursRule struct{}

func (r *MonthlyHoursRule) Code() string {
	return RuleMonthlyHoursExceeded
}

func (r *MonthlyHoursRule) Kind() ViolationKind {
	return ViolationSoft
}

func (r *MonthlyHoursRule) Check(state *ValidationState) []ConstraintViolation {
	var violations []ConstraintViolation

	for _, emp := range state.Employees {
		avail, ok := state.Availability[emp.ID]
		if !ok {
			continue
		}

		target := emp.HoursPerMonth
		tolerance := target * state.Rules.WeeklyHoursOverflowTolerance
		if avail.MonthlyHours <= target+tolerance {
			continue
		}

		violations = append(violations, ConstraintViolation{
			Kind:       r.Kind(),
			Rule:       r.Code(),
			Message:    fmt.Sprintf("%s exceeds the monthly target: %.1fh assigned, target %.1fh (+%.1fh)", emp.Name, avail.MonthlyHours, target, avail.MonthlyHours-target),
			EmployeeID: emp.ID,
		})
	}

	return violations
}
