package scheduler

import (
	"context"
	"testing"
)

func TestScheduler_StartWithoutReportFunc(t *testing.T) {
	s := New("0 19 * * *", nil)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.IsRunning() {
		t.Fatalf("scheduler without a report function must stay idle")
	}
	s.Stop()
}

func TestScheduler_RegistersJob(t *testing.T) {
	s := New("0 19 * * *", nil)
	s.SetReportFunction(func(context.Context) error { return nil })
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !s.IsRunning() {
		t.Fatalf("expected a registered job")
	}
	s.Stop()
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := New("every evening", nil)
	s.SetReportFunction(func(context.Context) error { return nil })
	if err := s.Start(); err == nil {
		t.Fatalf("expected cron parse error")
	}
	s.Stop()
}
