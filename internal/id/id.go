// Package id provides identifier generation for combat sessions.
package id

import "github.com/google/uuid"

// NewID generates a new random identifier.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
