package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// MarshalJSON encodes the plan as an object keyed by date-key in day order.
// Days without shifts are encoded as null.
func (p MonthlyShiftPlan) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, day := range p.Days {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(day.DateKey)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		if day.Shifts == nil {
			buf.WriteString("null")
			continue
		}

		shifts, err := json.Marshal(map[ShiftType][]string(day.Shifts))
		if err != nil {
			return nil, fmt.Errorf("failed to encode shifts for %s: %w", day.DateKey, err)
		}
		buf.Write(shifts)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the date-keyed object produced by MarshalJSON, keeping key order
func (p *MonthlyShiftPlan) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read plan: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("plan must be a JSON object")
	}

	days := make([]PlanDay, 0, 31)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read plan key: %w", err)
		}
		dateKey, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected plan key %v", tok)
		}

		date, err := ParseDateKey(dateKey)
		if err != nil {
			return err
		}

		var shifts DayShiftPlan
		if err := dec.Decode(&shifts); err != nil {
			return fmt.Errorf("failed to decode shifts for %s: %w", dateKey, err)
		}

		days = append(days, PlanDay{DateKey: dateKey, Date: date, Shifts: shifts})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read end of plan: %w", err)
	}

	p.Days = days
	if len(days) > 0 {
		p.Year = days[0].Date.Year()
		p.Month = days[0].Date.Month()
	} else {
		p.Year, p.Month = 0, time.Month(0)
	}
	return nil
}
