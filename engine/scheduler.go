package engine

import "time"

// Timer is a pending delayed call
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock schedules callbacks with the runtime timers
func RealClock() Scheduler {
	return clockScheduler{}
}
