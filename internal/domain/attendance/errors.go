package attendance

import "errors"

var (
	ErrNoAttendanceForPeriod = errors.New("no attendance record for this period")
	ErrMonthLocked           = errors.New("attendance month is locked")
	ErrInvalidDayCode        = errors.New("invalid attendance day code")
	ErrInvalidPeriod         = errors.New("invalid attendance period")
)
