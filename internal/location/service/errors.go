package service

import "errors"

// Caller-input errors. Classification does not proceed and no side effect is
// performed when one of these is returned.
var (
	ErrDeviceIDRequired  = errors.New("deviceId is required")
	ErrCoordsOutOfRange  = errors.New("userCoords out of range")
	ErrTimestampRequired = errors.New("timestamp must be a positive epoch value")
)

// IsValidationError reports whether err is a rejected-input error rather than
// a dependency failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrDeviceIDRequired) ||
		errors.Is(err, ErrCoordsOutOfRange) ||
		errors.Is(err, ErrTimestampRequired)
}
