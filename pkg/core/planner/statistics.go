package planner

import (
	"time"

	"github.com/pflegeteam/shiftplan/pkg/core/model"
)

// WorkloadEntry compares assigned and target hours of one employee
type WorkloadEntry struct {
	EmployeeID         string  `json:"employeeId"`
	Name               string  `json:"name"`
	AssignedHours      float64 `json:"assignedHours"`
	TargetHours        float64 `json:"targetHours"`
	WorkloadPercentage float64 `json:"workloadPercentage"`
}

// PlanningStatistics summarises a finished plan
type PlanningStatistics struct {
	CompleteDays         int                      `json:"completeDays"`
	IncompleteDays       int                      `json:"incompleteDays"`
	CompletionRate       float64                  `json:"completionRate"`
	AverageWorkload      float64                  `json:"averageWorkload"`
	WorkloadDistribution map[string]WorkloadEntry `json:"workloadDistribution"`
	SaturdayDistribution map[string]int           `json:"saturdayDistribution"`
}

// CalculateStatistics derives coverage and workload figures. It does not modify its inputs.
func CalculateStatistics(plan *MonthlyShiftPlan, availability AvailabilityTable, employees []model.Employee) PlanningStatistics {
	stats := PlanningStatistics{
		WorkloadDistribution: make(map[string]WorkloadEntry, len(employees)),
		SaturdayDistribution: make(map[string]int, len(employees)),
	}

	for _, day := range plan.Days {
		if day.Date.Weekday() == time.Sunday {
			continue
		}
		if day.Shifts != nil && day.Shifts.IsStaffed() {
			stats.CompleteDays++
		} else {
			stats.IncompleteDays++
		}
	}

	workingDays := DaysInMonth(plan.Year, plan.Month) - SundaysInMonth(plan.Year, plan.Month)
	if workingDays > 0 {
		stats.CompletionRate = float64(stats.CompleteDays) / float64(workingDays) * 100
	}

	var workloadSum float64
	for _, emp := range employees {
		var assigned float64
		var saturdays int
		if avail, ok := availability[emp.ID]; ok {
			assigned = avail.MonthlyHours
			saturdays = avail.SaturdaysWorked
		}

		var percentage float64
		if emp.HoursPerMonth > 0 {
			percentage = assigned / emp.HoursPerMonth * 100
		}

		stats.WorkloadDistribution[emp.ID] = WorkloadEntry{
			EmployeeID:         emp.ID,
			Name:               emp.Name,
			AssignedHours:      assigned,
			TargetHours:        emp.HoursPerMonth,
			WorkloadPercentage: percentage,
		}
		stats.SaturdayDistribution[emp.ID] = saturdays
		workloadSum += percentage
	}

	if len(employees) > 0 {
		stats.AverageWorkload = workloadSum / float64(len(employees))
	}

	return stats
}
