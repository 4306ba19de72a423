package cpu

import "time"

// Pacer sleeps a fixed duration every time Wait is called, letting a host
// run loop call Clock() at roughly a real hardware clock rate instead of
// as fast as the Go runtime can execute it.
//
// Grounded on SetClock/avgClock in the teacher's cpu.go, which calibrates
// a busy-loop by measuring the overhead of repeated time.Now() calls so
// it can pace ticks without ever invoking time.Sleep (whose OS-scheduler
// granularity the teacher's own comments call too jittery for some
// hosts). Pacer is deliberately simpler: it accepts that jitter and
// sleeps directly every tick, trading the teacher's calibration
// precision for a handful of lines. A host that needs busy-loop-grade
// accuracy should port the teacher's calibration instead of using Pacer.
type Pacer struct {
	period time.Duration
}

// NewPacer creates a Pacer that paces a host's Clock() loop to clockHz
// ticks per second (e.g. 1789773 for the NTSC NES dot clock, or 985248
// for PAL). clockHz must be positive.
func NewPacer(clockHz float64) (*Pacer, error) {
	if clockHz <= 0 {
		return nil, InvalidCPUState{Reason: "clock rate must be positive"}
	}
	return &Pacer{period: time.Duration(float64(time.Second) / clockHz)}, nil
}

// Wait sleeps for one tick's worth of wall-clock time. Call it once per
// Clock() call in a host's run loop; Clock() itself never sleeps.
func (p *Pacer) Wait() {
	time.Sleep(p.period)
}
