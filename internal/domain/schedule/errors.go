package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("no schedule found for this date")
)
