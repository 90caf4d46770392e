// Package domain contains entity without logic, just meta-data
package domain

const MaxUserIDLen = 64

type UserID string

// ValidUserID reports whether id can be bound to a connection.
func ValidUserID(id UserID) error {
	if len(id) == 0 {
		return ErrUserIDEmpty
	}
	if len(id) > MaxUserIDLen {
		return ErrUserIDTooLong
	}
	return nil
}
