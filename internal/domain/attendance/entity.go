package attendance

import (
	"fmt"
	"time"
)

// DayCode is the closed set of codes a calendar day can carry.
type DayCode string

const (
	DayWorked    DayCode = "worked"
	DayAbsent    DayCode = "absent"
	DayPaidLeave DayCode = "paid_leave"
	DaySick      DayCode = "sick"
	DayHoliday   DayCode = "holiday"
	DayStoppage  DayCode = "stoppage"
	DayUnset     DayCode = "unset"
)

// ParseDayCode validates a raw code against the closed set.
func ParseDayCode(raw string) (DayCode, error) {
	switch DayCode(raw) {
	case DayWorked, DayAbsent, DayPaidLeave, DaySick, DayHoliday, DayStoppage, DayUnset:
		return DayCode(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDayCode, raw)
}

// MaxDaysInMonth is the size of the per-month day array; days beyond the
// month's real length stay DayUnset.
const MaxDaysInMonth = 31

// Month holds one employee's attendance codes for a calendar month.
// Mutable until Locked is set; a locked month is read-only to the payroll
// core and is only unlocked by the external workflow.
type Month struct {
	ID         string
	EmployeeID string
	Year       int
	Month      int
	Days       [MaxDaysInMonth]DayCode
	Locked     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DaysInMonth returns the calendar length of the month.
func (m Month) DaysInMonth() int {
	return time.Date(m.Year, time.Month(m.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Code returns the code for a 1-based calendar day, DayUnset when the day
// is out of range for this month.
func (m Month) Code(day int) DayCode {
	if day < 1 || day > m.DaysInMonth() {
		return DayUnset
	}
	if m.Days[day-1] == "" {
		return DayUnset
	}
	return m.Days[day-1]
}
