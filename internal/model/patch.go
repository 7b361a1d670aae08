package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Field is a JSON value that remembers whether it was present in the input and
// whether it was an explicit null. Absent fields leave Set false.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// UnmarshalJSON is only invoked by encoding/json for keys present in the input.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		var zero T
		f.Null = true
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// Timestamp accepts RFC 3339 as well as date-only and zone-less datetimes,
// which are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses s using the accepted timestamp layouts. The result is
// UTC with millisecond precision.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Millisecond), nil
		}
	}
	return time.Time{}, &ValidationError{Field: "due_date", Message: fmt.Sprintf("invalid timestamp %q", s)}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &ValidationError{Field: "due_date", Message: "must be a string timestamp"}
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// TimePtr returns the timestamp in UTC with millisecond precision, or nil for
// a nil receiver.
func (t *Timestamp) TimePtr() *time.Time {
	if t == nil {
		return nil
	}
	u := t.Time.UTC().Truncate(time.Millisecond)
	return &u
}

// ItemPatch is a partial item update. Only fields present in the input are
// applied; an explicit null clears optional fields.
type ItemPatch struct {
	Title       Field[string]    `json:"title"`
	Description Field[string]    `json:"description"`
	Status      Field[string]    `json:"status"`
	DueDate     Field[Timestamp] `json:"due_date"`
	Tags        Field[[]string]  `json:"tags"`
}

// Change is a single validated field assignment.
type Change struct {
	Field string
	Value any
}

// Empty reports whether the patch supplies no fields at all.
func (p ItemPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Status.Set && !p.DueDate.Set && !p.Tags.Set
}

// Changes validates the patch and returns its assignments in field order.
// A nil Value means the field is explicitly cleared.
func (p ItemPatch) Changes() ([]Change, error) {
	var changes []Change

	if p.Title.Set {
		if p.Title.Null {
			return nil, &ValidationError{Field: "title", Message: "cannot be null"}
		}
		if err := ValidateTitle(p.Title.Value); err != nil {
			return nil, err
		}
		changes = append(changes, Change{Field: "title", Value: p.Title.Value})
	}

	if p.Description.Set {
		if p.Description.Null {
			changes = append(changes, Change{Field: "description", Value: nil})
		} else {
			if err := ValidateDescription(&p.Description.Value); err != nil {
				return nil, err
			}
			changes = append(changes, Change{Field: "description", Value: p.Description.Value})
		}
	}

	if p.Status.Set {
		if p.Status.Null {
			return nil, &ValidationError{Field: "status", Message: "cannot be null"}
		}
		if err := ValidateStatus(p.Status.Value); err != nil {
			return nil, err
		}
		changes = append(changes, Change{Field: "status", Value: p.Status.Value})
	}

	if p.DueDate.Set {
		if p.DueDate.Null {
			changes = append(changes, Change{Field: "due_date", Value: nil})
		} else {
			changes = append(changes, Change{Field: "due_date", Value: p.DueDate.Value.Time.UTC().Truncate(time.Millisecond)})
		}
	}

	if p.Tags.Set {
		tags := p.Tags.Value
		if tags == nil {
			tags = []string{}
		}
		changes = append(changes, Change{Field: "tags", Value: tags})
	}

	return changes, nil
}
