package service

import (
	"log/slog"
	"time"
)

// SimpleScheduler runs deferred functions with time.AfterFunc. Work is one-shot and
// not cancellable; once scheduled, a nudge fires even if the guest replies first.
type SimpleScheduler struct{}

// NewSimpleScheduler creates a SimpleScheduler.
func NewSimpleScheduler() *SimpleScheduler {
	return &SimpleScheduler{}
}

// ScheduleAfter schedules fn to run once after delay.
func (s *SimpleScheduler) ScheduleAfter(delay time.Duration, fn func()) {
	slog.Debug("scheduling deferred action", "delay", delay)
	time.AfterFunc(delay, fn)
}
