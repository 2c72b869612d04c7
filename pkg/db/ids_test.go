package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanID(t *testing.T) {
	t.Run("same month gives same id", func(t *testing.T) {
		assert.Equal(t, PlanID(2025, 2), PlanID(2025, 2))
	})

	t.Run("different months give different ids", func(t *testing.T) {
		assert.NotEqual(t, PlanID(2025, 2), PlanID(2025, 3))
		assert.NotEqual(t, PlanID(2025, 2), PlanID(2024, 2))
	})

	t.Run("id is a name based uuid", func(t *testing.T) {
		parsed, err := uuid.Parse(PlanID(2025, 2))
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(5), parsed.Version())
	})
}
