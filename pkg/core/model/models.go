package model

type Role string

const (
	RoleShiftLeader Role = "shift_leader"
	RoleSpecialist  Role = "specialist"
	RoleAssistant   Role = "assistant"
)

func (r Role) IsValid() bool {
	return r == RoleShiftLeader || r == RoleSpecialist || r == RoleAssistant
}

// Employee represents a member of the care staff that can be planned into shifts
type Employee struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Role          Role     `json:"role"`
	HoursPerMonth float64  `json:"hoursPerMonth"`
	HoursPerWeek  *float64 `json:"hoursPerWeek,omitempty"` // nil if no weekly target
	LocationID    *string  `json:"locationId,omitempty"`   // nil if no home location
}

// ShiftRules is the staffing configuration for one generation run
type ShiftRules struct {
	MinNursesPerShift            int     `json:"minNursesPerShift"`
	MinNurseManagersPerShift     int     `json:"minNurseManagersPerShift"`
	MinHelpers                   int     `json:"minHelpers"`
	MaxSaturdaysPerMonth         int     `json:"maxSaturdaysPerMonth"`
	MaxConsecutiveSameShifts     int     `json:"maxConsecutiveSameShifts"`
	WeeklyHoursOverflowTolerance float64 `json:"weeklyHoursOverflowTolerance"`
}

// DefaultShiftRules returns the rules used when no active rule set is stored
func DefaultShiftRules() ShiftRules {
	return ShiftRules{
		MinNursesPerShift:            4,
		MinNurseManagersPerShift:     1,
		MinHelpers:                   1,
		MaxSaturdaysPerMonth:         1,
		MaxConsecutiveSameShifts:     0,
		WeeklyHoursOverflowTolerance: 0.1,
	}
}
