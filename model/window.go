package model

import (
	"fmt"
	"time"
)

var ValidRanges = []int{7, 14, 30, 90}

// FetchWindow is an inclusive date range. End is the last second of the day
// before the reference time, Start the first second of the earliest day.
type FetchWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`
}

func NewFetchWindow(now time.Time, days int) (FetchWindow, error) {
	if !validRange(days) {
		return FetchWindow{}, fmt.Errorf("unsupported range of %d days, want one of %v", days, ValidRanges)
	}

	y, m, d := now.AddDate(0, 0, -1).Date()
	end := time.Date(y, m, d, 23, 59, 59, 0, now.Location())
	sy, sm, sd := end.AddDate(0, 0, -(days - 1)).Date()
	start := time.Date(sy, sm, sd, 0, 0, 0, 0, now.Location())

	return FetchWindow{
		Start: start,
		End:   end,
		Days:  days,
	}, nil
}

func (fw FetchWindow) String() string {
	return fmt.Sprintf("%s - %s", fw.Start.Format("01/02/06"), fw.End.Format("01/02/06"))
}

func validRange(days int) bool {
	for _, r := range ValidRanges {
		if r == days {
			return true
		}
	}
	return false
}
