package dashboard

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"BCVMonitor/internal/model"
	"BCVMonitor/internal/normalizer"
	"BCVMonitor/internal/store"
)

// DefaultInterval is the auto-refresh period.
const DefaultInterval = 5 * time.Minute

// Fetcher produces a fresh record; *collector.Collector satisfies it.
type Fetcher interface {
	Collect(ctx context.Context) (*model.Record, error)
}

// Sink receives a View after every completed refresh.
type Sink interface {
	Publish(ctx context.Context, v View) error
}

// Controller owns the dashboard state: the displayed record, the cache and
// the auto-refresh timer.
type Controller struct {
	Fetcher    Fetcher
	Cache      *store.Cache
	Normalizer *normalizer.Normalizer
	Interval   time.Duration
	Logger     logrus.FieldLogger
	Now        func() time.Time

	cron     *cron.Cron
	inFlight atomic.Bool
	ctx      context.Context

	mu        sync.Mutex
	state     State
	record    *model.Record
	updatedAt time.Time
	notice    string
	auto      bool
	entry     cron.EntryID
	sinks     []Sink
}

// NewController creates a controller with auto-refresh enabled.
func NewController(f Fetcher, c *store.Cache, n *normalizer.Normalizer, interval time.Duration, logger logrus.FieldLogger) *Controller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Controller{
		Fetcher:    f,
		Cache:      c,
		Normalizer: n,
		Interval:   interval,
		Logger:     logger,
		Now:        time.Now,
		cron:       cron.New(),
		ctx:        context.Background(),
		auto:       true,
	}
}

// AddSink registers a subscriber for new views.
func (c *Controller) AddSink(s Sink) {
	c.mu.Lock()
	c.sinks = append(c.sinks, s)
	c.mu.Unlock()
}

// Start shows a fresh cached record when there is one and otherwise fetches.
// ctx is also used for the refreshes fired by the timer.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()
	c.cron.Start()
	c.Logger.WithField("interval", c.Interval).Info("dashboard started")

	if entry, ok := c.Cache.Fresh(ctx); ok {
		rec := entry.Data
		c.mu.Lock()
		c.record = &rec
		c.updatedAt = entry.StoredAt()
		c.state = Displaying
		c.mu.Unlock()
		c.Logger.WithField("age", entry.Age(c.now()).Round(time.Second)).Info("serving cached rates")
		c.restartTimer()
		c.publish(ctx)
		return
	}
	c.Refresh(ctx)
}

// Stop halts the timer and waits for a running tick to finish.
func (c *Controller) Stop() {
	<-c.cron.Stop().Done()
	c.Logger.Info("dashboard stopped")
}

// Refresh runs one fetch. It returns false without doing anything when a
// fetch is already in flight.
func (c *Controller) Refresh(ctx context.Context) bool {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.Logger.Debug("refresh ignored, fetch in flight")
		return false
	}
	c.run(ctx)
	return true
}

// RefreshAsync claims the in-flight slot and runs the fetch in the
// background. It returns false when a fetch is already running.
func (c *Controller) RefreshAsync(ctx context.Context) bool {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.Logger.Debug("refresh ignored, fetch in flight")
		return false
	}
	go c.run(ctx)
	return true
}

// run expects the in-flight slot to be held and releases it once the new
// state is set, before the sinks are notified.
func (c *Controller) run(ctx context.Context) {
	c.mu.Lock()
	c.state = Loading
	c.mu.Unlock()

	now := c.now()
	rec, err := c.Fetcher.Collect(ctx)
	if err != nil {
		c.Logger.Errorf("fetch rates: %v", err)
		fb := c.Normalizer.FallbackRecord(now)
		rec = &fb
	}
	if perr := c.Cache.Put(ctx, *rec); perr != nil {
		c.Logger.Errorf("save cache: %v", perr)
	}

	c.mu.Lock()
	c.record = rec
	c.updatedAt = now
	if err != nil {
		c.state = ErrorDisplayed
		c.notice = NoticePrefix + err.Error()
	} else {
		c.state = Displaying
		c.notice = ""
	}
	c.mu.Unlock()
	c.inFlight.Store(false)

	c.restartTimer()
	c.publish(ctx)
}

// SetAutoRefresh turns the timer on or off.
func (c *Controller) SetAutoRefresh(enabled bool) {
	c.mu.Lock()
	c.auto = enabled
	c.mu.Unlock()
	c.restartTimer()
	c.Logger.WithField("enabled", enabled).Info("auto-refresh toggled")
}

// restartTimer drops the pending tick and, when auto-refresh is on,
// schedules the next one a full interval from now.
func (c *Controller) restartTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry != 0 {
		c.cron.Remove(c.entry)
		c.entry = 0
	}
	if !c.auto {
		return
	}
	id, err := c.cron.AddFunc(fmt.Sprintf("@every %s", c.Interval), c.tick)
	if err != nil {
		c.Logger.Errorf("schedule auto-refresh: %v", err)
		return
	}
	c.entry = id
}

func (c *Controller) tick() {
	c.mu.Lock()
	ctx := c.ctx
	c.mu.Unlock()
	c.Refresh(ctx)
}

// Snapshot returns the current view.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// LastRecord returns the record on display, or nil before the first one.
func (c *Controller) LastRecord() *model.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.record == nil {
		return nil
	}
	rec := *c.record
	return &rec
}

// TimerScheduled reports whether an auto-refresh tick is pending.
func (c *Controller) TimerScheduled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entry != 0
}

func (c *Controller) viewLocked() View {
	v := View{
		State:       c.state,
		UpdatedAt:   c.updatedAt,
		Notice:      c.notice,
		AutoRefresh: c.auto,
		Loading:     c.state == Loading,
	}
	if c.record != nil {
		rec := *c.record
		v.Record = &rec
	}
	return v
}

func (c *Controller) publish(ctx context.Context) {
	c.mu.Lock()
	v := c.viewLocked()
	sinks := append([]Sink(nil), c.sinks...)
	c.mu.Unlock()

	for _, s := range sinks {
		if err := s.Publish(ctx, v); err != nil {
			c.Logger.Warnf("publish view: %v", err)
		}
	}
}

func (c *Controller) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
