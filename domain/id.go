package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// newID returns a ULID. ULIDs sort lexicographically by creation time,
// which lets "most recent first" listings run as reverse index scans
// without a separate timestamp sort key.
func newID() string {
	return ulid.MustNewDefault(time.Now()).String()
}
