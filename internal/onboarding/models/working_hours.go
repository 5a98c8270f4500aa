package models

import (
	"maps"
	"strconv"
	"strings"
	"time"

	dErrors "launchpad/pkg/domain-errors"
)

// Weekday names are lowercase english, matching the keys the presentation
// layer sends.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists the days in display order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

const (
	DefaultOpenTime  = "09:00"
	DefaultCloseTime = "18:00"
	clockLayout      = "15:04"
)

// ParseWeekday accepts any casing and surrounding whitespace.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Weekdays {
		if d == known {
			return d, nil
		}
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown weekday")
}

// HoursField names the mutable parts of a DaySchedule.
type HoursField string

const (
	HoursFieldOpen   HoursField = "open"
	HoursFieldClose  HoursField = "close"
	HoursFieldClosed HoursField = "closed"
)

type DaySchedule struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// WorkingHours is a branch's weekly schedule. Values are replaced, never
// mutated in place; use With to derive a changed copy.
type WorkingHours map[Weekday]DaySchedule

// DefaultWorkingHours is open 09:00–18:00 Monday to Saturday and closed Sunday.
func DefaultWorkingHours() WorkingHours {
	h := make(WorkingHours, len(Weekdays))
	for _, d := range Weekdays {
		h[d] = DaySchedule{Open: DefaultOpenTime, Close: DefaultCloseTime, Closed: d == Sunday}
	}
	return h
}

// With returns a copy of h with one field of one day replaced. Other days are
// carried over unchanged.
func (h WorkingHours) With(day Weekday, field HoursField, value string) (WorkingHours, error) {
	current, ok := h[day]
	if !ok {
		current = DaySchedule{Open: DefaultOpenTime, Close: DefaultCloseTime}
	}

	value = strings.TrimSpace(value)
	switch field {
	case HoursFieldOpen, HoursFieldClose:
		if _, err := time.Parse(clockLayout, value); err != nil {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "time must use HH:MM format")
		}
		if field == HoursFieldOpen {
			current.Open = value
		} else {
			current.Close = value
		}
	case HoursFieldClosed:
		closed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "closed must be true or false")
		}
		current.Closed = closed
	default:
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown working hours field")
	}

	next := maps.Clone(h)
	if next == nil {
		next = make(WorkingHours, 1)
	}
	next[day] = current
	return next, nil
}
