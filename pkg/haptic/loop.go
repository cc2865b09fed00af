package haptic

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/teslashibe/go-haptic/internal/log"
	"github.com/teslashibe/go-haptic/pkg/freq"
	"github.com/teslashibe/go-haptic/pkg/scene"
)

// DefaultTimestep is the fixed integration timestep of the per-object
// dynamical models, matching the nominal 1 kHz device rate.
const DefaultTimestep = 0.001

// Loop is the haptic control loop. Each iteration refreshes the tool
// kinematics from the device, computes the base interaction force, lets
// every contributor transform it in order, and commits the result to the
// device exactly once. The blocking device sample call paces the loop at
// device rate; there is no internal ticker.
//
// Shutdown is a request/acknowledge handshake: Stop asks the loop to
// finish its current tick, Done is closed once it has fully drained.
type Loop struct {
	scene        *scene.Scene
	tool         *Tool
	contributors []Contributor
	counter      *freq.Counter

	dt float64

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	running  atomic.Bool

	tickCount     uint64
	errorCount    uint64
	lastErrorTime time.Time
}

// NewLoop creates a control loop over the given scene and tool. The
// contributors are applied in the order given; order matters, later
// contributors compose on the force already modified by earlier ones.
func NewLoop(sc *scene.Scene, tool *Tool, counter *freq.Counter, contributors ...Contributor) *Loop {
	return &Loop{
		scene:        sc,
		tool:         tool,
		contributors: contributors,
		counter:      counter,
		dt:           DefaultTimestep,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Run executes the control loop until Stop is called. Blocks; run it on
// its own goroutine.
func (l *Loop) Run() {
	l.running.Store(true)
	defer func() {
		l.running.Store(false)
		close(l.done)
	}()

	log.Info("haptic loop started", "contributors", len(l.contributors))

	for {
		select {
		case <-l.stop:
			log.Info("haptic loop stopped", "ticks", l.tickCount, "errors", l.errorCount)
			return
		default:
		}
		l.tick()
	}
}

// Stop requests the loop to exit after its current tick. Safe to call
// more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Done is closed once the loop has fully drained after Stop.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Running reports whether the loop is currently executing ticks.
func (l *Loop) Running() bool { return l.running.Load() }

// TickCount returns the number of completed ticks.
func (l *Loop) TickCount() uint64 { return atomic.LoadUint64(&l.tickCount) }

// tick executes one control cycle in the fixed contributor order.
func (l *Loop) tick() {
	l.scene.ComputeGlobalPositions()

	if err := l.tool.UpdateFromDevice(); err != nil {
		l.deviceError("device update failed", err)
		return
	}

	base := l.tool.ComputeInteractionForces()

	t := &Tick{
		ToolPos: l.tool.Position(),
		ToolVel: l.tool.LinearVelocity(),
		Force:   base,
		Dt:      l.dt,
	}
	for _, c := range l.contributors {
		c.Apply(t)
	}

	l.tool.SetForce(t.Force)
	if err := l.tool.Apply(); err != nil {
		l.deviceError("device apply failed", err)
		return
	}

	atomic.AddUint64(&l.tickCount, 1)
	l.counter.Signal(1)
}

// deviceError logs device I/O failures at most once per 5 seconds. The
// loop keeps running: a disconnected device surfaces as stale or zero
// kinematics, which is indistinguishable from idle by design.
func (l *Loop) deviceError(msg string, err error) {
	l.errorCount++
	if l.lastErrorTime.IsZero() || time.Since(l.lastErrorTime) > 5*time.Second {
		log.Warn(msg, "err", err, "total_errors", l.errorCount)
		l.lastErrorTime = time.Now()
	}
	// Back off one sample period so a dead device cannot spin the loop.
	time.Sleep(time.Millisecond)
}
