package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID generates an identifier of the form {PREFIX}-{epochMillis}-{random8},
// e.g. BUY-1699999999999-ab12cd34. The random suffix is the first eight hex
// characters of a v4 UUID; this is not a security boundary, only a
// collision guard.
func NewID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}

// NewTimestampID generates an identifier of the form {PREFIX}-{epochMillis},
// used for newsletter subscriptions and document request references.
func NewTimestampID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixMilli())
}
