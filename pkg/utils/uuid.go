package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateReceiptNo generates a unique receipt number such as
// RCT-20240115-1A2B3C4D.
func GenerateReceiptNo(prefix string, date time.Time) string {
	if prefix == "" {
		prefix = "RCT"
	}
	return prefix + "-" + date.Format("20060102") + "-" + strings.ToUpper(uuid.New().String()[:8])
}
