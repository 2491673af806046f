package timetable

import (
	"time"

	"github.com/bits-and-blooms/bitset"

	. "github.com/ttpr0/netex-routing/util"
)

//*******************************************
// operating period
//*******************************************

type OperatingPeriod struct {
	From time.Time
	To   time.Time
	// bit i is set if the period runs on From + i days
	Days *bitset.BitSet
}

func NewOperatingPeriod(from, to time.Time, days ...uint) OperatingPeriod {
	bits := bitset.New(uint(DaysBetween(from, to) + 1))
	for _, day := range days {
		bits.Set(day)
	}
	return OperatingPeriod{
		From: TruncateDate(from),
		To:   TruncateDate(to),
		Days: bits,
	}
}

func (self *OperatingPeriod) IsValid(date time.Time) bool {
	if date.Before(self.From) || date.After(self.To) {
		return false
	}
	return self.Days.Test(uint(DaysBetween(self.From, date)))
}

//*******************************************
// journey
//*******************************************

type Passing struct {
	// station index, local to its timetable until merged into a feed
	Stop      int32
	Arrival   Optional[TimeOfDay]
	Departure Optional[TimeOfDay]
}

type Journey struct {
	ID        string
	Passings  List[Passing]
	ValidFrom time.Time
	ValidTo   time.Time
	// indices into the day types of the owning timetable
	Days List[int32]
}

//*******************************************
// timetable
//*******************************************

// Timetable holds the content of one source file.
type Timetable struct {
	Source           string
	OperatingPeriods List[OperatingPeriod]
	// index of the operating period assigned to each day type
	DayTypes List[Optional[int32]]
	Journeys List[Journey]
	// station names by local index, cleared once merged into a feed
	Stations List[string]
}

// Checks whether the journey runs on the given date.
func (self *Timetable) IsJourneyValid(journey *Journey, date time.Time) bool {
	if date.Before(journey.ValidFrom) || date.After(journey.ValidTo) {
		return false
	}
	for _, day := range journey.Days {
		if day < 0 || int(day) >= self.DayTypes.Length() {
			continue
		}
		period := self.DayTypes[day]
		if !period.HasValue() {
			continue
		}
		if self.OperatingPeriods[period.Value].IsValid(date) {
			return true
		}
	}
	return false
}
