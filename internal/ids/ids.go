package ids

import (
	mathrand "math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// NewULID returns a lexicographically sortable identifier for user records.
func NewULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

var (
	numericMu   sync.Mutex
	lastNumeric int64
)

// NewNumeric returns a numeric-string identifier derived from the current
// Unix millisecond clock, bumped when necessary so values issued by this
// process are strictly increasing even within the same millisecond.
func NewNumeric() string {
	numericMu.Lock()
	defer numericMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastNumeric {
		now = lastNumeric + 1
	}
	lastNumeric = now
	return strconv.FormatInt(now, 10)
}
