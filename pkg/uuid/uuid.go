// Package uuid provides UUID v4 generation backed by crypto/rand.
// Instant identifiers must be opaque and collision-free for the lifetime of
// the process; 122 random bits make collisions negligible without any
// coordination or timestamp ordering.
package uuid

import (
	"crypto/rand"
	"fmt"
)

// UUID represents a UUID v4 identifier.
type UUID [16]byte

// NewV4 generates a new random UUID v4 (RFC 4122).
// Panics if the system entropy source fails, which on supported platforms
// means the process environment is broken beyond recovery.
func NewV4() UUID {
	var uuid UUID
	if _, err := rand.Read(uuid[:]); err != nil {
		panic(fmt.Sprintf("uuid: reading random bytes: %v", err))
	}

	// Version 0100 in the high nibble of byte 6
	uuid[6] = 0x40 | (uuid[6] & 0x0f)
	// Variant 10xxxxxx in RFC 4122
	uuid[8] = 0x80 | (uuid[8] & 0x3f)

	return uuid
}

// String returns the UUID in standard form: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
func (u UUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		u[0:4],
		u[4:6],
		u[6:8],
		u[8:10],
		u[10:16],
	)
}
