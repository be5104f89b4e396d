package render

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultInterval gives a 10 Hz refresh.
const DefaultInterval = 100 * time.Millisecond

type State int32

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Loop repaints a surface at a fixed cadence on one goroutine. Each tick
// locks a canvas from the current surface, draws and posts it; a tick with no
// surface or no available canvas is skipped.
type Loop struct {
	interval time.Duration
	source   func() Surface
	draw     func(Canvas)
	logger   *log.Logger

	mu     sync.Mutex
	state  State
	cancel context.CancelFunc
	done   chan struct{}

	frames  atomic.Uint64
	skipped atomic.Uint64
}

func NewLoop(interval time.Duration, source func() Surface, draw func(Canvas), logger *log.Logger) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Loop{interval: interval, source: source, draw: draw, logger: logger}
}

// Start moves a stopped loop to Running. The loop also stops when ctx is done.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == Running {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.state, l.cancel, l.done = Running, cancel, done

	id := uuid.NewString()[:8]
	l.logger.Debug("render loop started", "run", id, "interval", l.interval)
	go l.run(ctx, id, done)
}

// Stop cancels the loop and waits for its goroutine to exit. No canvas is
// locked after Stop returns. It must not be called from the draw function.
func (l *Loop) Stop() {
	l.mu.Lock()
	if l.state == Stopped {
		l.mu.Unlock()
		return
	}
	cancel, done := l.cancel, l.done
	l.state, l.cancel, l.done = Stopped, nil, nil
	l.mu.Unlock()

	cancel()
	<-done
}

func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Stats reports drawn and skipped ticks since the loop was created.
func (l *Loop) Stats() (frames, skipped uint64) {
	return l.frames.Load(), l.skipped.Load()
}

func (l *Loop) run(ctx context.Context, id string, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(l.interval)
	defer t.Stop()
	for ctx.Err() == nil {
		l.tick()
		select {
		case <-ctx.Done():
		case <-t.C:
		}
	}
	frames, skipped := l.Stats()
	l.logger.Debug("render loop stopped", "run", id, "frames", frames, "skipped", skipped)
	l.markStopped(done)
}

// markStopped covers a loop ended by its parent context rather than Stop.
func (l *Loop) markStopped(done chan struct{}) {
	l.mu.Lock()
	if l.done == done {
		l.cancel()
		l.state, l.cancel, l.done = Stopped, nil, nil
	}
	l.mu.Unlock()
}

func (l *Loop) tick() {
	s := l.source()
	if s == nil {
		l.skipped.Add(1)
		return
	}
	c, ok := s.Lock()
	if !ok {
		l.skipped.Add(1)
		return
	}
	l.draw(c)
	s.Post(c)
	l.frames.Add(1)
}
