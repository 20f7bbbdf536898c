package uuid

import (
	"regexp"
	"testing"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewV4_StringFormat(t *testing.T) {
	t.Parallel()

	s := NewV4().String()
	if !uuidPattern.MatchString(s) {
		t.Fatalf("NewV4().String() = %q; not a canonical v4 UUID", s)
	}
}

func TestNewV4_VersionAndVariantBits(t *testing.T) {
	t.Parallel()

	u := NewV4()
	if u[6]>>4 != 0x4 {
		t.Errorf("version nibble = %x; want 4", u[6]>>4)
	}
	if u[8]>>6 != 0x2 {
		t.Errorf("variant bits = %02b; want 10", u[8]>>6)
	}
}

func TestNewV4_Uniqueness(t *testing.T) {
	t.Parallel()

	const n = 1000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		s := NewV4().String()
		if _, dup := seen[s]; dup {
			t.Fatalf("duplicate UUID after %d generations: %s", i, s)
		}
		seen[s] = struct{}{}
	}
}
