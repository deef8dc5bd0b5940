package loop

import (
	"time"

	"github.com/plus3/tetrodeck/engine"
)

type UpdateFrame struct {
	DeltaTime float64
	// Inputs are the player commands queued since the previous frame.
	Inputs   []Input
	Commands *Commands
	Session  *engine.Session

	scheduler *Scheduler
}

func newUpdateFrame(dt float64, inputs []Input, scheduler *Scheduler) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Inputs:    inputs,
		Commands:  newCommands(),
		Session:   scheduler.session,
		scheduler: scheduler,
	}
}

// Stats returns the scheduler statistics gathered so far. Unlike
// Scheduler.GetStats it is safe to call from inside a frame.
func (f *UpdateFrame) Stats() *SchedulerStats {
	return f.scheduler.collectStats()
}

// Elapsed returns DeltaTime as a duration.
func (f *UpdateFrame) Elapsed() time.Duration {
	return time.Duration(f.DeltaTime * float64(time.Second))
}
