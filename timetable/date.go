package timetable

import (
	"fmt"
	"time"
)

//*******************************************
// dates
//*******************************************

const (
	DATE_LAYOUT     = "2006-01-02"
	DATETIME_LAYOUT = "2006-01-02T15:04:05"
	TIME_LAYOUT     = "15:04:05"
)

// Parses a calendar date. Date-times are truncated to their date.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DATE_LAYOUT, value)
	if err == nil {
		return date, nil
	}
	date, err = time.Parse(DATETIME_LAYOUT, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return TruncateDate(date), nil
}

func TruncateDate(value time.Time) time.Time {
	y, m, d := value.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Returns the number of whole days from "from" to "to".
func DaysBetween(from, to time.Time) int {
	return int(TruncateDate(to).Sub(TruncateDate(from)) / (24 * time.Hour))
}

//*******************************************
// time of day
//*******************************************

// TimeOfDay is given in seconds since midnight.
type TimeOfDay int32

func ParseTimeOfDay(value string) (TimeOfDay, error) {
	t, err := time.Parse(TIME_LAYOUT, value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
}

func (self TimeOfDay) Format() string {
	s := int32(self)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

func (self TimeOfDay) String() string {
	return self.Format()
}
