package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pflegeteam/shiftplan/pkg/core/planner"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

const dayColWidth = 18

// rowColor picks the color of a plan row: dim when closed, red with hard violations, green otherwise
func rowColor(closed, flagged bool, green, red, dim string) string {
	switch {
	case closed:
		return dim
	case flagged:
		return red
	default:
		return green
	}
}

// flaggedDates returns the date-keys named by hard violations
func flaggedDates(violations planner.Violations) map[string]bool {
	flagged := make(map[string]bool)
	for _, v := range violations.Hard {
		if v.DateKey != "" {
			flagged[v.DateKey] = true
		}
	}
	return flagged
}

// printPlanGrid prints one row per day with the staff count of every shift type
func printPlanGrid(w io.Writer, plan *planner.MonthlyShiftPlan, violations planner.Violations) {
	shiftTypes := planner.AllShiftTypes()
	flagged := flaggedDates(violations)

	fmt.Fprintf(w, "%-*s", dayColWidth, "Date")
	for _, shiftType := range shiftTypes {
		fmt.Fprintf(w, "%6s", shiftType)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", dayColWidth+6*len(shiftTypes)))

	for _, day := range plan.Days {
		closed := day.Shifts == nil
		color := rowColor(closed, flagged[day.DateKey], colorGreen, colorRed, colorDim)

		label := fmt.Sprintf("%s %s", day.DateKey, day.Date.Weekday().String()[:3])
		fmt.Fprintf(w, "%s%-*s", color, dayColWidth, label)
		for _, shiftType := range shiftTypes {
			staff, ok := day.Shifts[shiftType]
			if closed || !ok {
				fmt.Fprintf(w, "%6s", "·")
				continue
			}
			fmt.Fprintf(w, "%6d", len(staff))
		}
		fmt.Fprintf(w, "%s\n", colorReset)
	}
}

func printViolations(w io.Writer, violations planner.Violations) {
	if len(violations.Hard) == 0 && len(violations.Soft) == 0 {
		fmt.Fprintln(w, "No constraint violations.")
		return
	}

	if len(violations.Hard) > 0 {
		fmt.Fprintf(w, "%sHard violations (%d):%s\n", colorRed, len(violations.Hard), colorReset)
		for _, v := range violations.Hard {
			fmt.Fprintf(w, "  ✗ %s\n", v.Message)
		}
	}
	if len(violations.Soft) > 0 {
		fmt.Fprintf(w, "%sSoft violations (%d):%s\n", colorYellow, len(violations.Soft), colorReset)
		for _, v := range violations.Soft {
			fmt.Fprintf(w, "  ! %s\n", v.Message)
		}
	}
}

func printStatistics(w io.Writer, stats planner.PlanningStatistics) {
	fmt.Fprintf(w, "Complete days:    %d\n", stats.CompleteDays)
	fmt.Fprintf(w, "Incomplete days:  %d\n", stats.IncompleteDays)
	fmt.Fprintf(w, "Completion rate:  %.1f%%\n", stats.CompletionRate)
	fmt.Fprintf(w, "Average workload: %.1f%%\n", stats.AverageWorkload)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
