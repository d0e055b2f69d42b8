package utils

import "github.com/google/uuid"

// GenerateRequestID tags one command invocation across its log lines.
func GenerateRequestID() string {
	return uuid.New().String()
}
