// Package render runs the display-side loop of the demo: at frame rate it
// snapshots the shared world state and hands a Frame to a sink (the web
// dashboard). It never writes haptic state; a one-frame-stale read of a
// moving object is imperceptible and accepted.
package render

import (
	"sync"
	"time"

	"github.com/teslashibe/go-haptic/internal/log"
	"github.com/teslashibe/go-haptic/pkg/freq"
	"github.com/teslashibe/go-haptic/pkg/haptic"
	"github.com/teslashibe/go-haptic/pkg/scene"
)

// DefaultFrameRate is the render loop cadence in Hz.
const DefaultFrameRate = 60

// ObjectState is one sphere's display state.
type ObjectState struct {
	ID     int        `json:"id"`
	Pos    [3]float64 `json:"pos"`
	Radius float64    `json:"radius"`
}

// Frame is one display snapshot of the simulation.
type Frame struct {
	Timestamp  int64         `json:"ts"` // Unix milliseconds
	Tool       [3]float64    `json:"tool"`
	Force      [3]float64    `json:"force"`
	Objects    []ObjectState `json:"objects"`
	HapticHz   float64       `json:"haptic_hz"`
	GraphicsHz float64       `json:"graphics_hz"`
}

// FrameSink receives frames at display rate.
type FrameSink interface {
	PushFrame(Frame)
}

// Renderer is the render loop. It reads object positions, the tool
// snapshot and both frequency counters, and produces one Frame per tick.
type Renderer struct {
	scene *scene.Scene
	tool  *haptic.Tool
	sink  FrameSink

	hapticRate   *freq.Counter
	graphicsRate *freq.Counter

	rate time.Duration

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a renderer at the given frame rate (Hz); zero or negative
// selects DefaultFrameRate.
func New(sc *scene.Scene, tool *haptic.Tool, sink FrameSink, hapticRate, graphicsRate *freq.Counter, frameRate int) *Renderer {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	return &Renderer{
		scene:        sc,
		tool:         tool,
		sink:         sink,
		hapticRate:   hapticRate,
		graphicsRate: graphicsRate,
		rate:         time.Second / time.Duration(frameRate),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Run executes the render loop until Stop is called. Blocks.
func (r *Renderer) Run() {
	defer close(r.done)

	ticker := time.NewTicker(r.rate)
	defer ticker.Stop()

	log.Info("render loop started", "rate_hz", float64(time.Second)/float64(r.rate))

	for {
		select {
		case <-r.stop:
			log.Info("render loop stopped")
			return
		case <-ticker.C:
			r.sink.PushFrame(r.Snapshot())
			r.graphicsRate.Signal(1)
		}
	}
}

// Stop requests the render loop to exit. Safe to call more than once.
func (r *Renderer) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Done is closed once the render loop has exited.
func (r *Renderer) Done() <-chan struct{} { return r.done }

// Snapshot builds a display frame from the current shared state.
func (r *Renderer) Snapshot() Frame {
	spheres := r.scene.Spheres()
	objects := make([]ObjectState, 0, len(spheres))
	for _, s := range spheres {
		p := s.GlobalPos()
		objects = append(objects, ObjectState{
			ID:     s.ID(),
			Pos:    [3]float64{p.X, p.Y, p.Z},
			Radius: s.Radius(),
		})
	}

	pos := r.tool.Position()
	force := r.tool.Force()

	return Frame{
		Timestamp:  time.Now().UnixMilli(),
		Tool:       [3]float64{pos.X, pos.Y, pos.Z},
		Force:      [3]float64{force.X, force.Y, force.Z},
		Objects:    objects,
		HapticHz:   r.hapticRate.Frequency(),
		GraphicsHz: r.graphicsRate.Frequency(),
	}
}
