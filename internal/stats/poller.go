package stats

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/khadim210/WolumaProject-sub000/internal/model"
)

// DefaultInterval is the default refresh period for dashboard polling.
const DefaultInterval = 30 * time.Second

// Fetcher loads the project collection to aggregate over.
type Fetcher func(ctx context.Context) ([]model.Project, error)

// Poller periodically re-runs fetch+aggregate and hands each snapshot to a
// callback. It is a cancellable scheduled task: the timer is owned by the
// poller and stopped on shutdown.
type Poller struct {
	fetch      Fetcher
	onSnapshot func(Snapshot)
	cancel     context.CancelFunc
	done       chan struct{}
	interval   time.Duration
	mu         sync.Mutex
}

// NewPoller creates a poller. A non-positive interval falls back to
// DefaultInterval.
func NewPoller(fetch Fetcher, interval time.Duration, onSnapshot func(Snapshot)) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		fetch:      fetch,
		interval:   interval,
		onSnapshot: onSnapshot,
	}
}

// Start begins polling. The first refresh runs immediately; subsequent
// refreshes run every interval until Stop is called or ctx is cancelled.
// Start is a no-op if the poller is already running.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

// Stop cancels polling and waits for the in-flight refresh to finish.
// Stopping a poller that never started is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.refresh(ctx)

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			p.refresh(ctx)
			timer.Reset(p.interval)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	projects, err := p.fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Warn("Stats refresh failed", "error", err)
		return
	}
	p.onSnapshot(Aggregate(projects, time.Now()))
}
