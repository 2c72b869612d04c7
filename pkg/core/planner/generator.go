package planner

import (
	"time"

	"github.com/pflegeteam/shiftplan/pkg/core/model"
)

// maxPlannedSaturdays is the number of Saturdays per month that get shifts.
// It is independent of ShiftRules.MaxSaturdaysPerMonth.
const maxPlannedSaturdays = 2

// Options configures a generation run
type Options struct {
	UseRelaxedRules bool

	// Policy selects slot candidates, PositionalSelection if nil
	Policy SelectionPolicy

	// IsClosed reports dates that get no shifts, in addition to Sundays
	IsClosed func(date time.Time) bool
}

// Outcome is the result of a generation run
type Outcome struct {
	Plan         *MonthlyShiftPlan
	Availability AvailabilityTable
}

// Generate plans every day of the month in order. Sundays, Saturdays after the
// second one and closed days are recorded without shifts.
func Generate(year int, month time.Month, employees []model.Employee, opts Options) *Outcome {
	availability := NewAvailabilityTable(employees)
	dayPlanner := NewDayPlanner(employees, availability, opts.Policy)

	daysInMonth := DaysInMonth(year, month)
	plan := &MonthlyShiftPlan{
		Year:  year,
		Month: month,
		Days:  make([]PlanDay, 0, daysInMonth),
	}

	saturdays := 0
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		entry := PlanDay{DateKey: FormatDateKey(date), Date: date}

		switch date.Weekday() {
		case time.Sunday:
			plan.Days = append(plan.Days, entry)
			continue
		case time.Saturday:
			saturdays++
			if saturdays > maxPlannedSaturdays {
				plan.Days = append(plan.Days, entry)
				continue
			}
		}

		if opts.IsClosed != nil && opts.IsClosed(date) {
			plan.Days = append(plan.Days, entry)
			continue
		}

		entry.Shifts = dayPlanner.PlanDay(date, opts.UseRelaxedRules)
		plan.Days = append(plan.Days, entry)
	}

	return &Outcome{
		Plan:         plan,
		Availability: availability,
	}
}
