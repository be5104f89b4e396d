package tui

import (
	"sync"

	"floormap/internal/geom"
)

// PoseReplay plays a recorded trajectory back one pose per frame, looping at
// the end. It is shared between the UI goroutine and the render loop.
type PoseReplay struct {
	mu      sync.Mutex
	poses   []geom.Pose
	next    int
	paused  bool
	current geom.Pose
}

// NewPoseReplay replays poses; with none it stays at the origin.
func NewPoseReplay(poses []geom.Pose) *PoseReplay {
	return &PoseReplay{poses: poses}
}

// Next advances to the following pose unless paused and returns it.
func (p *PoseReplay) Next() geom.Pose {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused || len(p.poses) == 0 {
		return p.current
	}
	p.current = p.poses[p.next]
	p.next = (p.next + 1) % len(p.poses)
	return p.current
}

func (p *PoseReplay) Current() geom.Pose {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// TogglePause flips the paused state and reports the new one.
func (p *PoseReplay) TogglePause() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = !p.paused
	return p.paused
}

func (p *PoseReplay) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.poses)
}

func (p *PoseReplay) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}
