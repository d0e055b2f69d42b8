package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseID converts a positional argument to a positive row id
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}

// ParseQuantity converts a positional argument to an integer quantity
func ParseQuantity(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", value)
	}
	return n, nil
}
