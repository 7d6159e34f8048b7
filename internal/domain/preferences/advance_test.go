package preferences

import (
	"math"
	"testing"
)

func floatp(v float64) *float64 { return &v }

func TestIsValidAdvanceMinutes(t *testing.T) {
	cases := []struct {
		in   *float64
		want bool
	}{
		{nil, true},
		{floatp(30), true},
		{floatp(45), false},
		{floatp(60), true},
		{floatp(720), true},
		{floatp(750), false},
		{floatp(0), false},
		{floatp(-30), false},
		{floatp(30.5), false},
		{floatp(math.NaN()), false},
		{floatp(math.Inf(1)), false},
	}
	for _, c := range cases {
		if got := IsValidAdvanceMinutes(c.in); got != c.want {
			if c.in == nil {
				t.Fatalf("IsValidAdvanceMinutes(nil) = %v, want %v", got, c.want)
			}
			t.Fatalf("IsValidAdvanceMinutes(%v) = %v, want %v", *c.in, got, c.want)
		}
	}
}
