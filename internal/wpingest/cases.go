// Package wpingest decodes the solver's case-list input schema (spec §6)
// from JSON, applying the documented field defaults before the cases ever
// reach the planner.
package wpingest

import (
	"encoding/json"
	"fmt"

	"github.com/flightcase/wallplanner/internal/wpcore"
)

// CaseRecord is the on-the-wire shape of one case. Pointer fields
// distinguish "absent" from "explicitly false/zero" so the documented
// defaults (missing dept -> GENERAL, missing group -> name, missing
// stackable -> false, missing maxStack -> 1, missing allowRotation -> true)
// can be applied correctly.
type CaseRecord struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Width         float64  `json:"width"`
	Depth         float64  `json:"depth"`
	Height        float64  `json:"height"`
	Dept          *string  `json:"dept,omitempty"`
	Group         *string  `json:"group,omitempty"`
	Stackable     *bool    `json:"stackable,omitempty"`
	MaxStack      *int     `json:"maxStack,omitempty"`
	IsFloor       *bool    `json:"isFloor,omitempty"`
	AllowRotation *bool    `json:"allowRotation,omitempty"`
	Rotation      int      `json:"rotation,omitempty"`
}

// DecodeCases parses a JSON array of CaseRecord and normalizes it into
// wpcore.Case values.
func DecodeCases(b []byte) ([]wpcore.Case, error) {
	var records []CaseRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("wallplanner: decoding case list: %w", err)
	}
	out := make([]wpcore.Case, 0, len(records))
	for i, r := range records {
		out = append(out, r.normalize(i))
	}
	return out, nil
}

func (r CaseRecord) normalize(index int) wpcore.Case {
	c := wpcore.Case{
		ID:       r.ID,
		Name:     r.Name,
		Width:    r.Width,
		Depth:    r.Depth,
		Height:   r.Height,
		Rotation: r.Rotation,
	}
	if c.ID == "" {
		c.ID = fmt.Sprintf("case_%d", index)
	}
	if r.Dept != nil {
		c.Dept = *r.Dept
	} else {
		c.Dept = "GENERAL"
	}
	if r.Group != nil {
		c.Group = *r.Group
	} else {
		c.Group = r.Name
	}
	if r.Stackable != nil {
		c.Stackable = *r.Stackable
	}
	if r.MaxStack != nil {
		c.MaxStack = *r.MaxStack
	} else {
		c.MaxStack = 1
	}
	if r.IsFloor != nil {
		c.IsFloor = *r.IsFloor
	}
	if r.AllowRotation != nil {
		c.AllowRotation = *r.AllowRotation
	} else {
		c.AllowRotation = true
	}
	return c
}
