package logsvc_test

import (
	"testing"

	"github.com/nasa-jpl/motioncore/logsvc"
)

func TestOpenStartAdd(t *testing.T) {
	var l logsvc.Log
	ok := l.Open(logsvc.TypeCmd, 4, -1, 0, logsvc.TriggerManual, 0, 0, nil)
	if !ok {
		t.Fatal("expected Open to succeed")
	}
	l.Start(100)
	l.Add(logsvc.Entry{Command: 1})
	l.Add(logsvc.Entry{Command: 2})
	if got := l.Howmany(); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
}

func TestOpenRejectsOversizedLog(t *testing.T) {
	var l logsvc.Log
	if l.Open(logsvc.TypeCmd, logsvc.MaxSize+1, -1, 0, logsvc.TriggerManual, 0, 0, nil) {
		t.Fatal("expected Open to reject a log larger than MaxSize")
	}
}

func TestOpenRejectsBadAxisForScopedType(t *testing.T) {
	var l logsvc.Log
	if l.Open(logsvc.TypeAxisPos, 4, -1, 0, logsvc.TriggerManual, 0, 0, nil) {
		t.Fatal("expected Open to reject an axis-scoped type with no axis")
	}
	if !l.Open(logsvc.TypeAxisPos, 4, 0, 0, logsvc.TriggerManual, 0, 0, nil) {
		t.Fatal("expected Open to accept an axis-scoped type with a valid axis")
	}
}

func TestPosVoltageNeverStarts(t *testing.T) {
	var l logsvc.Log
	l.Open(logsvc.TypePosVoltage, 4, 0, 0, logsvc.TriggerManual, 0, 0, nil)
	l.Start(0)
	if l.Started() {
		t.Fatal("TypePosVoltage should never arm via Start")
	}
}

func TestDeltaTriggerDoesNotArmViaStart(t *testing.T) {
	var l logsvc.Log
	sample := func(v logsvc.TriggerVariable, axis int) float64 { return 42 }
	l.Open(logsvc.TypeAxisPos, 4, 0, 0, logsvc.TriggerDelta, logsvc.TriggerOnPos, 1, sample)
	if l.StartVal() != 42 {
		t.Fatalf("expected baseline snapshot of 42, got %v", l.StartVal())
	}
	l.Start(0)
	if l.Started() {
		t.Fatal("delta-triggered log should not arm via Start")
	}
}

func TestRingOverwritesOldest(t *testing.T) {
	var l logsvc.Log
	l.Open(logsvc.TypeCmd, 2, -1, 0, logsvc.TriggerManual, 0, 0, nil)
	l.Start(0)
	l.Add(logsvc.Entry{Command: 1})
	l.Add(logsvc.Entry{Command: 2})
	l.Add(logsvc.Entry{Command: 3})
	entries := l.Entries()
	if len(entries) != 2 || entries[0].Command != 2 || entries[1].Command != 3 {
		t.Fatalf("unexpected ring contents: %+v", entries)
	}
}

func TestSkipHonored(t *testing.T) {
	var l logsvc.Log
	l.Open(logsvc.TypeCmd, 4, -1, 1, logsvc.TriggerManual, 0, 0, nil)
	l.Start(0)
	for i := 0; i < 4; i++ {
		l.Add(logsvc.Entry{Command: i})
	}
	// skip=1 means every other sample is dropped
	if got := l.Howmany(); got != 2 {
		t.Fatalf("expected 2 entries with skip=1, got %d", got)
	}
}

func TestCloseResets(t *testing.T) {
	var l logsvc.Log
	l.Open(logsvc.TypeCmd, 4, -1, 0, logsvc.TriggerManual, 0, 0, nil)
	l.Start(0)
	l.Add(logsvc.Entry{Command: 1})
	l.Close()
	if l.IsOpen() || l.Started() || l.Howmany() != 0 {
		t.Fatal("expected Close to fully reset the log")
	}
}
