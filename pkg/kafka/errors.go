package kafka

import (
	"errors"
	"strings"
)

var (
	ErrProducerClosed = errors.New("kafka producer is closed")

	ErrInvalidMessage = errors.New("invalid message")

	ErrEmptyKey = errors.New("message key cannot be empty")

	ErrEmptyValue = errors.New("message value cannot be empty")
)

var transientPatterns = []string{
	"connection refused",
	"timeout",
	"deadline exceeded",
	"no such host",
	"network is unreachable",
	"broken pipe",
	"connection reset",
	"temporary failure",
	"leader not available",
}

// IsTransient reports whether a publish failure is worth retrying later.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrProducerClosed) || errors.Is(err, ErrInvalidMessage) ||
		errors.Is(err, ErrEmptyKey) || errors.Is(err, ErrEmptyValue) {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
