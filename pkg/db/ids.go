package db

import (
	"fmt"

	"github.com/google/uuid"
)

// planNamespace scopes the name-based plan ids
var planNamespace = uuid.MustParse("6f1c4b7e-3a52-4d0e-9c8a-2b7d5e41f903")

// PlanID returns the stable id of the plan for a month, so regenerating a month replaces its plan
func PlanID(year, month int) string {
	return uuid.NewSHA1(planNamespace, []byte(fmt.Sprintf("%04d-%02d", year, month))).String()
}
