package search

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	sessionAlphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
	sessionSuffixLen = 6
)

// NewSessionID mints a conversation id of the form demo_{unixMillis}_{suffix},
// where suffix is six characters of [0-9a-z].
func NewSessionID(now time.Time) string {
	id := uuid.New()
	suffix := make([]byte, sessionSuffixLen)
	for i := range suffix {
		suffix[i] = sessionAlphabet[int(id[i])%len(sessionAlphabet)]
	}
	return fmt.Sprintf("demo_%d_%s", now.UnixMilli(), suffix)
}
