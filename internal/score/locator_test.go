package score

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func standardIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("s%d", i)
	}
	return ids
}

// TestOffsetLocatorRanges uses the block layout of the llava result files.
func TestOffsetLocatorRanges(t *testing.T) {
	locator := NewOffsetLocator([]Range{
		{Min: 0, Max: 561, Offset: 0},
		{Min: 903, Max: math.MaxInt, Offset: 277},
		{Min: 562, Max: 902, Offset: 135},
	}, standardIDs(1000))

	cases := map[string]string{
		"10":  "s10",
		"561": "s561",
		"600": "s465",
		"903": "s626",
	}
	for input, want := range cases {
		got, err := locator.Locate(input)
		if err != nil {
			t.Fatalf("locate %s: %v", input, err)
		}
		if got != want {
			t.Fatalf("locate %s: expected %s, got %s", input, want, got)
		}
	}

	for _, input := range []string{"x", "5000", "-3"} {
		if _, err := locator.Locate(input); !errors.Is(err, ErrNotLocated) {
			t.Fatalf("locate %s: expected ErrNotLocated, got %v", input, err)
		}
	}
}

func TestDirectLocator(t *testing.T) {
	locator := NewDirectLocator([]string{"a", "17"})
	if got, err := locator.Locate(" 17 "); err != nil || got != "17" {
		t.Fatalf("expected 17, got %q (%v)", got, err)
	}
	if _, err := locator.Locate("b"); !errors.Is(err, ErrNotLocated) {
		t.Fatalf("expected ErrNotLocated, got %v", err)
	}
}

func TestUnboundedRange(t *testing.T) {
	locator := NewOffsetLocator([]Range{Unbounded(2)}, standardIDs(5))
	if got, err := locator.Locate("6"); err != nil || got != "s4" {
		t.Fatalf("expected s4, got %q (%v)", got, err)
	}
}
