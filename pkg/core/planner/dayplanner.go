package planner

import (
	"time"

	"github.com/pflegeteam/shiftplan/pkg/core/model"
)

// monthlyCeilingFactor caps assignments at 110% of an employee's monthly target.
// It is independent of ShiftRules.WeeklyHoursOverflowTolerance.
const monthlyCeilingFactor = 1.1

// RolePool is the roster partitioned by role, each partition keeping roster order
type RolePool map[model.Role][]model.Employee

// NewRolePool partitions employees by role without reordering them
func NewRolePool(employees []model.Employee) RolePool {
	pool := make(RolePool)
	for _, emp := range employees {
		pool[emp.Role] = append(pool[emp.Role], emp)
	}
	return pool
}

// SelectionPolicy builds the ordered candidate list for a slot
type SelectionPolicy func(pool RolePool, slot SlotTemplate) []model.Employee

// PositionalSelection takes the first N employees of each role in the slot's role priority order
func PositionalSelection(pool RolePool, slot SlotTemplate) []model.Employee {
	var candidates []model.Employee
	for _, take := range slot.Take {
		members := pool[take.Role]
		candidates = append(candidates, members[:min(take.Count, len(members))]...)
	}
	return candidates
}

// DayPlanner fills the slots of single days, mutating the availability table it was given
type DayPlanner struct {
	pool         RolePool
	availability AvailabilityTable
	policy       SelectionPolicy
}

// NewDayPlanner creates a planner over the given roster and availability table.
// A nil policy falls back to PositionalSelection.
func NewDayPlanner(employees []model.Employee, availability AvailabilityTable, policy SelectionPolicy) *DayPlanner {
	if policy == nil {
		policy = PositionalSelection
	}
	return &DayPlanner{
		pool:         NewRolePool(employees),
		availability: availability,
		policy:       policy,
	}
}

// PlanDay opens the slots for the date and fills each one first-fit in candidate order.
// useRelaxedRules is accepted for request compatibility and does not change assignment;
// the generate service logs it.
func (p *DayPlanner) PlanDay(date time.Time, useRelaxedRules bool) DayShiftPlan {
	dateKey := FormatDateKey(date)
	dayPlan := make(DayShiftPlan)

	for _, slot := range SlotsFor(date) {
		assigned := make([]string, 0, len(slot.Take))

		for _, candidate := range p.policy(p.pool, slot) {
			avail := p.availability.Get(candidate.ID)

			// No double booking on the same day
			if avail.IsAssigned(dateKey) {
				continue
			}

			if avail.MonthlyHours+slot.Hours > candidate.HoursPerMonth*monthlyCeilingFactor {
				continue
			}

			assigned = append(assigned, candidate.ID)
			avail.record(date, slot)
		}

		dayPlan[slot.Type] = assigned
	}

	return dayPlan
}
