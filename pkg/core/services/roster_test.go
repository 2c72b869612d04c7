package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pflegeteam/shiftplan/pkg/core/model"
	"github.com/pflegeteam/shiftplan/pkg/db"
)

func employeeIDs(employees []model.Employee) []string {
	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}
	return ids
}

func TestLoadRoster_SortsByRoleThenName(t *testing.T) {
	store := newMockStore(
		employee("s2", "Zora", "specialist", 160),
		employee("l1", "Mia", "shift_leader", 160),
		employee("a1", "Ben", "assistant", 120),
		employee("s1", "Anna", "specialist", 160),
		employee("a2", "Ada", "assistant", 120),
	)

	roster, err := LoadRoster(context.Background(), store, zap.NewNop(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a2", "a1", "l1", "s1", "s2"}, employeeIDs(roster))
	assert.Equal(t, model.RoleAssistant, roster[0].Role)
	assert.Equal(t, 120.0, roster[0].HoursPerMonth)
}

func TestLoadRoster_FiltersByIDs(t *testing.T) {
	store := newMockStore(
		employee("e1", "Anna", "specialist", 160),
		employee("e2", "Ben", "specialist", 160),
		employee("e3", "Cara", "shift_leader", 160),
		employee("e4", "Dirk", "assistant", 160),
		employee("e5", "Eva", "specialist", 160),
	)

	roster, err := LoadRoster(context.Background(), store, zap.NewNop(), []string{"e5", "e1", "e3"})
	require.NoError(t, err)

	assert.Equal(t, []string{"e3", "e1", "e5"}, employeeIDs(roster))
	assert.Equal(t, []string{"e5", "e1", "e3"}, store.requestedIDs)
}

func TestLoadRoster_SkipsInactiveEmployees(t *testing.T) {
	inactive := employee("e2", "Ben", "specialist", 160)
	inactive.IsActive = false
	store := newMockStore(employee("e1", "Anna", "specialist", 160), inactive)

	roster, err := LoadRoster(context.Background(), store, zap.NewNop(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"e1"}, employeeIDs(roster))
}

func TestLoadRoster_UnknownRole(t *testing.T) {
	store := newMockStore(employee("e1", "Anna", "doctor", 160))

	_, err := LoadRoster(context.Background(), store, zap.NewNop(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown role "doctor"`)
}

func TestLoadRoster_StoreError(t *testing.T) {
	store := newMockStore()
	store.listErr = errors.New("connection refused")

	_, err := LoadRoster(context.Background(), store, zap.NewNop(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch employees")
}

func TestLoadActiveRules(t *testing.T) {
	t.Run("defaults when nothing is stored", func(t *testing.T) {
		rules, err := LoadActiveRules(context.Background(), newMockStore(), zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, model.DefaultShiftRules(), rules)
	})

	t.Run("stored rules", func(t *testing.T) {
		store := newMockStore()
		store.rules = &db.ShiftRules{
			ID:                           "r1",
			MinNursesPerShift:            3,
			MinNurseManagersPerShift:     1,
			MinHelpers:                   2,
			MaxSaturdaysPerMonth:         2,
			MaxConsecutiveSameShifts:     5,
			WeeklyHoursOverflowTolerance: 0.05,
			IsActive:                     true,
		}

		rules, err := LoadActiveRules(context.Background(), store, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 3, rules.MinNursesPerShift)
		assert.Equal(t, 2, rules.MinHelpers)
		assert.Equal(t, 5, rules.MaxConsecutiveSameShifts)
		assert.Equal(t, 0.05, rules.WeeklyHoursOverflowTolerance)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		store := newMockStore()
		store.rulesErr = errors.New("timeout")

		_, err := LoadActiveRules(context.Background(), store, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch shift rules")
	})
}
