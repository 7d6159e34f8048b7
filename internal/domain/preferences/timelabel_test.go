package preferences

import (
	"fmt"
	"testing"
)

func TestLabelToMinutes_RoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for _, m := range []int{0, 30} {
			label := fmt.Sprintf("%02d:%02d", h, m)

			got, ok := LabelToMinutes(label)
			if !ok {
				t.Fatalf("expected %q to be valid", label)
			}
			if got != h*60+m {
				t.Fatalf("LabelToMinutes(%q) = %d, want %d", label, got, h*60+m)
			}

			back := MinutesToLabel(&got)
			if back == nil || *back != label {
				t.Fatalf("round trip failed for %q: got %v", label, back)
			}
		}
	}
}

func TestLabelToMinutes_Rejects(t *testing.T) {
	bad := []string{
		"", "8:30", "08:3", "08:15", "24:00", "99:30", "08:60",
		"08-30", " 08:30", "08:30 ", "0830", "ab:cd", "08:30:00",
	}
	for _, s := range bad {
		if m, ok := LabelToMinutes(s); ok {
			t.Fatalf("expected %q to be rejected, got %d", s, m)
		}
	}
}

func TestMinutesToLabel(t *testing.T) {
	if MinutesToLabel(nil) != nil {
		t.Fatalf("nil must map to nil")
	}
	m := 510
	if got := MinutesToLabel(&m); got == nil || *got != "08:30" {
		t.Fatalf("expected 08:30, got %v", got)
	}
	m = 0
	if got := MinutesToLabel(&m); *got != "00:00" {
		t.Fatalf("expected 00:00, got %s", *got)
	}
}
