// Package uuidx generates the time-ordered ids used for envelopes and
// subscriptions.
package uuidx

import "github.com/google/uuid"

// New returns a version 7 UUID, so ids sort by creation time. It panics if
// the random source fails.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// NewString is New rendered as a string.
func NewString() string {
	return New().String()
}
