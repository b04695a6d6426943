package axis_test

import (
	"testing"

	"github.com/nasa-jpl/motioncore/axis"
)

func TestAnyLimitTripped(t *testing.T) {
	var f axis.Flags
	if f.AnyLimitTripped() {
		t.Fatal("zero-valued flags should report no limits tripped")
	}
	f.PosSoftLimit = true
	if !f.AnyLimitTripped() {
		t.Fatal("expected PosSoftLimit to count as tripped")
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		idx  int
		want bool
	}{
		{-1, false},
		{0, true},
		{axis.MaxAxis - 1, true},
		{axis.MaxAxis, false},
	}
	for _, c := range cases {
		if got := axis.Valid(c.idx); got != c.want {
			t.Errorf("Valid(%d) = %v, want %v", c.idx, got, c.want)
		}
	}
}
