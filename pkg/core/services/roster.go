package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/pflegeteam/shiftplan/pkg/core/model"
	"github.com/pflegeteam/shiftplan/pkg/db"
)

// LoadRoster returns the active employees in roster order: by role, then by name.
// A non-empty ids restricts the roster to those employees.
func LoadRoster(ctx context.Context, store db.EmployeeStore, logger *zap.Logger, ids []string) ([]model.Employee, error) {
	logger.Debug("Fetching active employees", zap.Int("requested_ids", len(ids)))

	records, err := store.ListActiveEmployees(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	var wanted map[string]bool
	if len(ids) > 0 {
		wanted = make(map[string]bool, len(ids))
		for _, id := range ids {
			wanted[id] = true
		}
	}

	employees := make([]model.Employee, 0, len(records))
	for _, record := range records {
		if !record.IsActive {
			continue
		}
		if wanted != nil && !wanted[record.ID] {
			continue
		}

		emp, err := toModelEmployee(record)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	sort.SliceStable(employees, func(i, j int) bool {
		if employees[i].Role != employees[j].Role {
			return employees[i].Role < employees[j].Role
		}
		return employees[i].Name < employees[j].Name
	})

	logger.Debug("Roster loaded", zap.Int("employees", len(employees)))
	return employees, nil
}

func toModelEmployee(record db.Employee) (model.Employee, error) {
	role := model.Role(record.Role)
	if !role.IsValid() {
		return model.Employee{}, fmt.Errorf("employee %s has unknown role %q", record.ID, record.Role)
	}

	return model.Employee{
		ID:            record.ID,
		Name:          record.Name,
		Role:          role,
		HoursPerMonth: record.HoursPerMonth,
		HoursPerWeek:  record.HoursPerWeek,
		LocationID:    record.LocationID,
	}, nil
}
