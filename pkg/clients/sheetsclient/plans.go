package sheetsclient

import (
	"fmt"
	"strings"
)

// closedMarker fills the shift columns of days without shifts
const closedMarker = "—"

// PublishedPlanRow is one day of a published plan
type PublishedPlanRow struct {
	Date    string // DD.MM.YYYY
	Weekday string
	Closed  bool
	Shifts  map[string][]string // shift type -> employee names
}

// PublishedPlan is a monthly plan laid out for a spreadsheet tab
type PublishedPlan struct {
	Title      string
	ShiftTypes []string
	Rows       []PublishedPlanRow
}

// PublishPlan writes the plan into the tab named plan.Title, creating the tab if needed.
// An existing tab is cleared and rewritten.
func (c *Client) PublishPlan(spreadsheetID string, plan *PublishedPlan) error {
	existing, err := c.findSheet(spreadsheetID, plan.Title)
	if err != nil {
		return err
	}

	if existing == nil {
		if _, err := c.createSheet(spreadsheetID, plan.Title); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	} else if err := c.clearSheet(spreadsheetID, plan.Title); err != nil {
		return err
	}

	return c.writeValues(spreadsheetID, plan.Title, BuildPlanValues(plan))
}

// BuildPlanValues lays out the plan as a header row followed by one row per day
func BuildPlanValues(plan *PublishedPlan) [][]interface{} {
	header := []interface{}{"Date", "Weekday"}
	for _, shiftType := range plan.ShiftTypes {
		header = append(header, shiftType)
	}

	values := make([][]interface{}, 0, len(plan.Rows)+1)
	values = append(values, header)

	for _, row := range plan.Rows {
		sheetRow := []interface{}{row.Date, row.Weekday}
		for _, shiftType := range plan.ShiftTypes {
			if row.Closed {
				sheetRow = append(sheetRow, closedMarker)
				continue
			}
			sheetRow = append(sheetRow, strings.Join(row.Shifts[shiftType], ", "))
		}
		values = append(values, sheetRow)
	}

	return values
}
