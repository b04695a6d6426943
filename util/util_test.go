package util_test

import (
	"testing"

	"github.com/nasa-jpl/motioncore/util"
)

func TestClampHigh(t *testing.T) {
	var (
		low   = 0.
		high  = 10.
		input = 20.
	)
	clamped := util.Clamp(input, low, high)
	if clamped == input {
		t.Errorf("expected out of range value %f to be clipped to %f < x < %f, got %f", input, low, high, clamped)
	}
}

func TestClampLow(t *testing.T) {
	var (
		low   = 0.
		high  = 10.
		input = -1.
	)
	clamped := util.Clamp(input, low, high)
	if clamped == input {
		t.Errorf("expected out of range value %f to be clipped to %f < x < %f, got %f", input, low, high, clamped)
	}
}

func TestLimiterClamp(t *testing.T) {
	l := util.Limiter{Min: -10, Max: 10}
	if got := l.Clamp(25); got != 10 {
		t.Errorf("expected Clamp(25) = 10, got %f", got)
	}
	if got := l.Clamp(-25); got != -10 {
		t.Errorf("expected Clamp(-25) = -10, got %f", got)
	}
}

func TestLimiterCheck(t *testing.T) {
	l := util.Limiter{Min: -10, Max: 10}
	if !l.Check(5) {
		t.Error("expected 5 to be within [-10, 10]")
	}
	if l.Check(15) {
		t.Error("expected 15 to be outside [-10, 10]")
	}
}
