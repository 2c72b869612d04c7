package planner

import (
	"fmt"
	"time"

	"github.com/pflegeteam/shiftplan/pkg/core/model"
)

// buildRoster creates a role-sorted roster with 160h monthly targets
func buildRoster(leaders, specialists, assistants int) []model.Employee {
	var employees []model.Employee
	add := func(role model.Role, prefix string, count int) {
		for i := 1; i <= count; i++ {
			employees = append(employees, model.Employee{
				ID:            fmt.Sprintf("%s-%d", prefix, i),
				Name:          fmt.Sprintf("%s %02d", prefix, i),
				Role:          role,
				HoursPerMonth: 160,
			})
		}
	}
	add(model.RoleAssistant, "assistant", assistants)
	add(model.RoleShiftLeader, "leader", leaders)
	add(model.RoleSpecialist, "specialist", specialists)
	return employees
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
