package services

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// SubmissionFilter suppresses near-instant double submissions of the
// general contact form. It is process-local and lost on restart; its only
// job is to keep an accidental double-click from producing two records
// and two confirmation emails.
type SubmissionFilter struct {
	mu      sync.Mutex
	window  time.Duration
	ttl     time.Duration
	entries map[string]filterEntry
}

type filterEntry struct {
	at        time.Time
	messageID string
}

// NewSubmissionFilter creates a filter. window is how recent a matching
// submission must be to count as a duplicate; ttl is how long fingerprints
// are retained before lazy eviction. The two are independent policy
// constants.
func NewSubmissionFilter(window, ttl time.Duration) *SubmissionFilter {
	return &SubmissionFilter{
		window:  window,
		ttl:     ttl,
		entries: make(map[string]filterEntry),
	}
}

// Fingerprint derives the duplicate-detection key: submitter email,
// subject, and the first 50 characters of the message with whitespace
// stripped. A prefix match can conflate distinct longer messages; that is
// a known approximation carried over from the original policy.
func (f *SubmissionFilter) Fingerprint(email, subject, message string) string {
	runes := []rune(message)
	if len(runes) > 50 {
		runes = runes[:50]
	}
	prefix := strings.Join(strings.Fields(string(runes)), "")
	return fmt.Sprintf("%s:%s:%s", email, subject, prefix)
}

// Check looks up the fingerprint. It returns the message id of the
// original submission and true when a matching submission was recorded
// less than the duplicate window ago. Expired entries are evicted on the
// way through.
func (f *SubmissionFilter) Check(fingerprint string) (string, bool) {
	now := time.Now()

	f.mu.Lock()
	defer f.mu.Unlock()

	for key, e := range f.entries {
		if now.Sub(e.at) > f.ttl {
			delete(f.entries, key)
		}
	}

	e, ok := f.entries[fingerprint]
	if !ok || now.Sub(e.at) >= f.window {
		return "", false
	}
	return e.messageID, true
}

// Remember records the fingerprint with the generated message id.
func (f *SubmissionFilter) Remember(fingerprint, messageID string) {
	f.mu.Lock()
	f.entries[fingerprint] = filterEntry{at: time.Now(), messageID: messageID}
	f.mu.Unlock()
}

// Len reports the number of retained fingerprints.
func (f *SubmissionFilter) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}
