package util

import (
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIDGenerator_Monotonic(t *testing.T) {
	g := NewIDGeneratorWithClock(FixedClock(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = g.NewID()
	}

	if !sort.StringsAreSorted(ids) {
		t.Error("ids issued within one millisecond should sort in issue order")
	}

	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true

		u, err := uuid.Parse(id)
		if err != nil {
			t.Fatalf("invalid uuid %q: %v", id, err)
		}
		if u.Version() != 7 {
			t.Errorf("version = %d, want 7", u.Version())
		}
		if u.Variant() != uuid.RFC4122 {
			t.Errorf("variant = %v", u.Variant())
		}
	}
}

func TestIDGenerator_ClockGoingBackwards(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	g := NewIDGeneratorWithClock(StepClock(start, -time.Second))

	a, b := g.NewID(), g.NewID()
	if b <= a {
		t.Errorf("ids must keep increasing: %s then %s", a, b)
	}
}

func TestIDGenerator_CounterOverflow(t *testing.T) {
	g := NewIDGeneratorWithClock(FixedClock(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))

	prev := g.NewID()
	for i := 0; i < 5000; i++ {
		id := g.NewID()
		if id <= prev {
			t.Fatalf("id %d not increasing: %s <= %s", i, id, prev)
		}
		prev = id
	}
}

func TestParseID(t *testing.T) {
	id := NewIDGenerator().NewID()
	if got, err := ParseID(id); err != nil || got != id {
		t.Errorf("ParseID(%q) = %q, %v", id, got, err)
	}
	if _, err := ParseID("not-an-id"); err == nil {
		t.Error("expected error")
	}
	if IsValidID("xyz") {
		t.Error("IsValidID accepted garbage")
	}
}

func TestStepClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := StepClock(start, time.Minute)
	if !c().Equal(start) || !c().Equal(start.Add(time.Minute)) {
		t.Error("StepClock should advance by step")
	}
}
