package utils

import (
	"strconv"

	"github.com/google/uuid"
)

// ParseUUIDPtr parses s into a UUID pointer. Empty input yields nil without error.
func ParseUUIDPtr(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// PositiveIntOrDefault parses s as a positive int, falling back to def.
func PositiveIntOrDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
