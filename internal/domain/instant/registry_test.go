package instant

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeClock is a settable clock for deterministic elapsed durations.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestRegistry_CreateThenElapsed_ReturnsLabelAndZeroDuration(t *testing.T) {
	t.Parallel()

	r := New()
	id := r.Create("question-1")

	label, elapsed, err := r.Elapsed(id)
	if err != nil {
		t.Fatalf("Elapsed returned error: %v", err)
	}
	if label != "question-1" {
		t.Errorf("label = %q; want %q", label, "question-1")
	}
	if elapsed < 0 || elapsed > time.Second {
		t.Errorf("elapsed = %v; want small non-negative duration", elapsed)
	}
}

func TestRegistry_Create_EmptyLabelAllowed(t *testing.T) {
	t.Parallel()

	r := New()
	id := r.Create("")

	label, _, err := r.Elapsed(id)
	if err != nil {
		t.Fatalf("Elapsed returned error: %v", err)
	}
	if label != "" {
		t.Errorf("label = %q; want empty", label)
	}
}

func TestRegistry_Elapsed_UnknownID_ReturnsNotFoundNamingID(t *testing.T) {
	t.Parallel()

	r := New()
	_, _, err := r.Elapsed("no-such-id")
	if err == nil {
		t.Fatal("expected error for unknown id")
	}
	if !errors.Is(err, ErrInstantNotFound) {
		t.Fatalf("expected ErrInstantNotFound, got: %v", err)
	}
	if !strings.Contains(err.Error(), "no-such-id") {
		t.Errorf("error should name the offending id, got: %v", err)
	}
}

func TestRegistry_Create_IdentifiersAreUnique(t *testing.T) {
	t.Parallel()

	r := New()
	const n = 1000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := r.Create("dup-check")
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate identifier after %d creates: %s", i, id)
		}
		seen[id] = struct{}{}
	}
	if r.Len() != n {
		t.Errorf("Len() = %d; want %d", r.Len(), n)
	}
}

func TestRegistry_Elapsed_IsReadOnly(t *testing.T) {
	t.Parallel()

	r := New()
	id := r.Create("stable")

	for i := 0; i < 5; i++ {
		label, _, err := r.Elapsed(id)
		if err != nil {
			t.Fatalf("Elapsed call %d returned error: %v", i, err)
		}
		if label != "stable" {
			t.Fatalf("Elapsed call %d: label = %q; want %q", i, label, "stable")
		}
	}
}

func TestRegistry_ConcurrentCreates_AllResolvable(t *testing.T) {
	t.Parallel()

	r := New()
	const workers = 100

	ids := make([]string, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			ids[i] = r.Create("concurrent")
		}(i)
	}
	wg.Wait()

	if r.Len() != workers {
		t.Fatalf("Len() = %d; want %d — concurrent creates lost entries", r.Len(), workers)
	}
	for _, id := range ids {
		if _, _, err := r.Elapsed(id); err != nil {
			t.Errorf("Elapsed(%q) returned error: %v", id, err)
		}
	}
}

func TestRegistry_ConcurrentReadsAndWrites(t *testing.T) {
	t.Parallel()

	r := New()
	id := r.Create("shared")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Create("writer")
		}()
		go func() {
			defer wg.Done()
			if _, _, err := r.Elapsed(id); err != nil {
				t.Errorf("Elapsed returned error: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestRegistry_FakeClock_TwoSecondAnswer(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	r := NewWithClock(clock.Now)

	id := r.Create("question-1")
	clock.Advance(2 * time.Second)

	label, elapsed, err := r.Elapsed(id)
	if err != nil {
		t.Fatalf("Elapsed returned error: %v", err)
	}
	if label != "question-1" {
		t.Errorf("label = %q; want %q", label, "question-1")
	}
	if got := FormatMMSS(elapsed); got != "00:02" {
		t.Errorf("FormatMMSS(%v) = %q; want %q", elapsed, got, "00:02")
	}
}

func TestFormatMMSS(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "00:00"},
		{"sub-second", 900 * time.Millisecond, "00:00"},
		{"sixty-five seconds", 65 * time.Second, "01:05"},
		{"five minutes nine", 309 * time.Second, "05:09"},
		{"minutes not capped", 3661 * time.Second, "61:01"},
		{"negative clamps", -3 * time.Second, "00:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatMMSS(tc.d); got != tc.want {
				t.Errorf("FormatMMSS(%v) = %q; want %q", tc.d, got, tc.want)
			}
		})
	}
}
