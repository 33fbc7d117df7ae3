package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAttachmentNotFound  = errors.New("attachment not found")
	ErrClientClosed        = errors.New("client is closed")
	ErrClientNotFound      = errors.New("client not found")
	ErrExtraHoursNotFound  = errors.New("extra hours entry not found")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidDeliveryDate = errors.New("invalid delivery date")
	ErrInvalidImport       = errors.New("invalid import payload")
	ErrInvalidSchedule     = errors.New("invalid focus schedule")
	ErrNoSession           = errors.New("no active session")
	ErrOffline             = errors.New("remote store is offline")
	ErrStorageUnavailable  = errors.New("local storage unavailable")
	ErrWriteRejected       = errors.New("write rejected: local storage unavailable")
)

// ImportError describes why an import payload was rejected
type ImportError struct {
	Field  string
	Reason string
}

func (e *ImportError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidImport, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidImport, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidImport
func (e *ImportError) Unwrap() error {
	return ErrInvalidImport
}
