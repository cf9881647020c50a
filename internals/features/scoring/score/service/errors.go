package service

import "errors"

var (
	ErrScheduleInverted   = errors.New("scheduled start must be before scheduled end")
	ErrDeadlineAfterStart = errors.New("confirmation deadline must not be after scheduled start")
)
