package realtime

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roastline/beanbot/internal/domain/common/errorz"
)

type EventKind string

const (
	KindInsert EventKind = "insert"
	KindUpdate EventKind = "update"
	KindDelete EventKind = "delete"
	KindAll    EventKind = "*"
)

// Event is a single row-level change as emitted by the database
// triggers. Old is absent on insert, New is absent on delete. The row
// images stay raw at this level; handlers decode them exactly once via
// DecodeRows.
type Event struct {
	Table string          `json:"table"`
	Kind  EventKind       `json:"kind"`
	Old   json.RawMessage `json:"old,omitempty"`
	New   json.RawMessage `json:"new,omitempty"`
}

// DecodeRows decodes the before/after row images of an event into the
// typed row shape for its table.
func DecodeRows[T any](ev Event) (oldRow, newRow *T, err error) {
	if len(ev.Old) > 0 {
		oldRow = new(T)
		if err = json.Unmarshal(ev.Old, oldRow); err != nil {
			return nil, nil, fmt.Errorf("%w: old image: %v", errorz.InvalidPayload, err)
		}
	}
	if len(ev.New) > 0 {
		newRow = new(T)
		if err = json.Unmarshal(ev.New, newRow); err != nil {
			return nil, nil, fmt.Errorf("%w: new image: %v", errorz.InvalidPayload, err)
		}
	}
	return oldRow, newRow, nil
}

func decodeEvent(raw string) (Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %v", errorz.InvalidPayload, err)
	}
	if ev.Table == "" || ev.Kind == "" {
		return Event{}, errorz.InvalidPayload
	}
	return ev, nil
}

// parseFilter parses an equality filter of the form "column=eq.value".
func parseFilter(filter string) (column, value string, err error) {
	if filter == "" {
		return "", "", nil
	}
	column, rest, found := strings.Cut(filter, "=eq.")
	if !found || column == "" {
		return "", "", fmt.Errorf("%w: %q", errorz.InvalidFilter, filter)
	}
	return column, rest, nil
}

// matchesFilter checks the filter column against the event's new row
// image, falling back to the old image for deletes.
func matchesFilter(ev Event, column, value string) bool {
	if column == "" {
		return true
	}
	row := ev.New
	if len(row) == 0 {
		row = ev.Old
	}
	if len(row) == 0 {
		return false
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(row, &fields); err != nil {
		return false
	}
	got, ok := fields[column]
	if !ok {
		return false
	}
	return fmt.Sprint(got) == value
}
