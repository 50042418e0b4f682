package service

import "errors"

var (
	ErrAlreadyRunning     = errors.New("simulation already active for device")
	ErrInvalidMode        = errors.New("invalid simulation mode")
	ErrInvalidInterval    = errors.New("interval outside allowed range")
	ErrDeviceIDRequired   = errors.New("deviceId is required")
	ErrSimulationNotFound = errors.New("no active simulation found")
)
