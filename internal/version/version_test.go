package version

import (
	"strings"
	"testing"
)

func TestString_ContainsVersionAndBuildTime(t *testing.T) {
	t.Parallel()

	s := String()
	if !strings.Contains(s, "kairos version") {
		t.Errorf("expected version prefix, got %q", s)
	}
	if !strings.Contains(s, Version) {
		t.Errorf("expected %q in output, got %q", Version, s)
	}
	if !strings.Contains(s, BuildTime) {
		t.Errorf("expected %q in output, got %q", BuildTime, s)
	}
}
