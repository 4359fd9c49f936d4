// Package id generates entity and request identifiers.
package id

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NextIDLength is the length of identifiers returned by NextID.
const NextIDLength = 50

// NextID returns a 50-character entity identifier: the creation time in
// milliseconds as 15 zero-padded digits, a random UUID in hex and a
// "000" suffix. Identifiers sort by creation time.
func NextID() string {
	return nextID(time.Now(), uuid.New())
}

func nextID(t time.Time, u uuid.UUID) string {
	return fmt.Sprintf("%015d%s000", t.UnixMilli(), strings.ReplaceAll(u.String(), "-", ""))
}

// NewRequestID returns a random UUID string for request tracing.
func NewRequestID() string {
	return uuid.NewString()
}
