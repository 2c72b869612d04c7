package planner

import (
	"slices"
	"time"

	"github.com/pflegeteam/shiftplan/pkg/core/model"
)

// ShiftType is the label of a shift slot within a day
type ShiftType string

const (
	ShiftEarly      ShiftType = "F"  // morning
	ShiftLate       ShiftType = "S"  // evening
	ShiftLateShort  ShiftType = "S0" // short secondary evening
	ShiftWeekendDay ShiftType = "FS" // combined weekend slot
)

// shiftTypeOrder is the canonical order used whenever slots of a day are iterated
var shiftTypeOrder = []ShiftType{ShiftEarly, ShiftLate, ShiftLateShort, ShiftWeekendDay}

// AllShiftTypes returns every shift type in canonical order
func AllShiftTypes() []ShiftType {
	return slices.Clone(shiftTypeOrder)
}

// RoleTake is the number of employees of a role considered for a slot
type RoleTake struct {
	Role  model.Role
	Count int
}

// SlotTemplate describes a slot that is opened on a day
type SlotTemplate struct {
	Type  ShiftType
	Hours float64

	// Take lists candidate counts in role priority order
	Take []RoleTake
}

var weekdaySlots = []SlotTemplate{
	{
		Type:  ShiftEarly,
		Hours: 8,
		Take: []RoleTake{
			{Role: model.RoleShiftLeader, Count: 1},
			{Role: model.RoleSpecialist, Count: 3},
			{Role: model.RoleAssistant, Count: 1},
		},
	},
	{
		Type:  ShiftLate,
		Hours: 8,
		Take: []RoleTake{
			{Role: model.RoleShiftLeader, Count: 2},
			{Role: model.RoleSpecialist, Count: 6},
			{Role: model.RoleAssistant, Count: 2},
		},
	},
	{
		Type:  ShiftLateShort,
		Hours: 6,
		Take: []RoleTake{
			{Role: model.RoleSpecialist, Count: 8},
		},
	},
}

var weekendSlots = []SlotTemplate{
	{
		Type:  ShiftEarly,
		Hours: 8,
		Take: []RoleTake{
			{Role: model.RoleShiftLeader, Count: 1},
			{Role: model.RoleSpecialist, Count: 2},
			{Role: model.RoleAssistant, Count: 1},
		},
	},
	{
		Type:  ShiftWeekendDay,
		Hours: 12,
		Take: []RoleTake{
			{Role: model.RoleShiftLeader, Count: 2},
			{Role: model.RoleSpecialist, Count: 4},
			{Role: model.RoleAssistant, Count: 2},
		},
	},
}

// SlotsFor returns the slot templates opened on the given date
func SlotsFor(date time.Time) []SlotTemplate {
	if isWeekend(date) {
		return weekendSlots
	}
	return weekdaySlots
}

// ShiftHours returns the duration of a shift type in hours, 0 for unknown labels
func ShiftHours(shiftType ShiftType) float64 {
	for _, slots := range [][]SlotTemplate{weekdaySlots, weekendSlots} {
		for _, slot := range slots {
			if slot.Type == shiftType {
				return slot.Hours
			}
		}
	}
	return 0
}

// DayShiftPlan maps shift types to the ordered employee ids assigned that day
type DayShiftPlan map[ShiftType][]string

// ShiftTypes returns the shift types present in the day in canonical order.
// Unknown labels are appended in lexical order.
func (d DayShiftPlan) ShiftTypes() []ShiftType {
	types := make([]ShiftType, 0, len(d))
	for _, shiftType := range shiftTypeOrder {
		if _, ok := d[shiftType]; ok {
			types = append(types, shiftType)
		}
	}

	var unknown []ShiftType
	for shiftType := range d {
		if !slices.Contains(shiftTypeOrder, shiftType) {
			unknown = append(unknown, shiftType)
		}
	}
	slices.Sort(unknown)

	return append(types, unknown...)
}

// IsStaffed returns true if at least one slot has an assigned employee
func (d DayShiftPlan) IsStaffed() bool {
	for _, ids := range d {
		if len(ids) > 0 {
			return true
		}
	}
	return false
}

// PlanDay is one calendar day of a monthly plan
type PlanDay struct {
	DateKey string
	Date    time.Time

	// Shifts is nil when no shifts are planned that day
	Shifts DayShiftPlan
}

// MonthlyShiftPlan holds one entry per calendar day of the target month, in day order
type MonthlyShiftPlan struct {
	Year  int
	Month time.Month
	Days  []PlanDay
}

// Day returns the entry for a date-key
func (p *MonthlyShiftPlan) Day(dateKey string) (PlanDay, bool) {
	for _, day := range p.Days {
		if day.DateKey == dateKey {
			return day, true
		}
	}
	return PlanDay{}, false
}

// EmployeeAvailability tracks the running totals of one employee during a generation run
type EmployeeAvailability struct {
	EmployeeID      string    `json:"employeeId"`
	WeeklyHours     float64   `json:"weeklyHours"`
	MonthlyHours    float64   `json:"monthlyHours"`
	AssignedDates   []string  `json:"assignedDates"`
	LastShiftType   ShiftType `json:"lastShiftType,omitempty"`
	SaturdaysWorked int       `json:"saturdaysWorked"`

	// CurrentWeek is the ISO week WeeklyHours refers to
	CurrentWeek string `json:"currentWeek,omitempty"`
}

// IsAssigned returns true if the employee already works on the given date-key
func (a *EmployeeAvailability) IsAssigned(dateKey string) bool {
	return slices.Contains(a.AssignedDates, dateKey)
}

func (a *EmployeeAvailability) record(date time.Time, slot SlotTemplate) {
	week := isoWeekKey(date)
	if a.CurrentWeek != week {
		a.CurrentWeek = week
		a.WeeklyHours = 0
	}

	a.WeeklyHours += slot.Hours
	a.MonthlyHours += slot.Hours
	a.AssignedDates = append(a.AssignedDates, FormatDateKey(date))
	a.LastShiftType = slot.Type
	if date.Weekday() == time.Saturday {
		a.SaturdaysWorked++
	}
}

// AvailabilityTable is the per-employee state owned by a single generation run
type AvailabilityTable map[string]*EmployeeAvailability

// NewAvailabilityTable creates zeroed availability for every employee
func NewAvailabilityTable(employees []model.Employee) AvailabilityTable {
	table := make(AvailabilityTable, len(employees))
	for _, emp := range employees {
		table[emp.ID] = &EmployeeAvailability{
			EmployeeID:    emp.ID,
			AssignedDates: []string{},
		}
	}
	return table
}

// Get returns the availability of an employee, creating a zero entry if missing
func (t AvailabilityTable) Get(employeeID string) *EmployeeAvailability {
	avail, ok := t[employeeID]
	if !ok {
		avail = &EmployeeAvailability{EmployeeID: employeeID, AssignedDates: []string{}}
		t[employeeID] = avail
	}
	return avail
}

func isWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}
