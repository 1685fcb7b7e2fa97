package infra

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"pricealert/configs"
)

// Scheduler drives the cosmetic dashboard effects: a clock tick and a short
// glitch pulse. It only writes its own display state and never touches alerts.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
	cfg    configs.EffectsConfig
	now    func() time.Time

	clock  atomic.Pointer[time.Time]
	glitch atomic.Bool

	mu          sync.Mutex
	clockEntry  cron.EntryID
	glitchEntry cron.EntryID
	glitchReset *time.Timer
	glitchGen   uint64
	started     bool
	subscribers []func()
}

// NewScheduler creates a new scheduler; nothing runs until Start
func NewScheduler(cfg configs.EffectsConfig, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}
	t := s.now()
	s.clock.Store(&t)
	return s
}

// Subscribe registers fn to run after every display change.
// Callbacks run on the scheduler goroutine and must not block.
func (s *Scheduler) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Start schedules both effects and starts the cron loop
func (s *Scheduler) Start() error {
	if err := s.StartClock(); err != nil {
		return err
	}
	if err := s.StartGlitch(); err != nil {
		s.StopClock()
		return err
	}

	s.mu.Lock()
	if !s.started {
		s.cron.Start()
		s.started = true
	}
	s.mu.Unlock()

	s.logger.Info("effects scheduler started",
		zap.Duration("clock_interval", s.cfg.ClockInterval),
		zap.Duration("glitch_interval", s.cfg.GlitchInterval),
		zap.Duration("glitch_hold", s.cfg.GlitchHold),
	)
	return nil
}

// Stop cancels both effects and waits for running callbacks to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	started := s.started
	s.started = false
	s.mu.Unlock()

	if started {
		<-s.cron.Stop().Done()
	}
	s.StopGlitch()
	s.StopClock()
	s.logger.Info("effects scheduler stopped")
}

// StartClock schedules the clock tick. Calling it twice is a no-op.
func (s *Scheduler) StartClock() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clockEntry != 0 {
		return nil
	}
	id, err := s.cron.AddFunc(every(s.cfg.ClockInterval), s.tick)
	if err != nil {
		return errors.Wrap(err, "failed to schedule clock")
	}
	s.clockEntry = id
	return nil
}

// StopClock removes the clock tick
func (s *Scheduler) StopClock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clockEntry != 0 {
		s.cron.Remove(s.clockEntry)
		s.clockEntry = 0
	}
}

// StartGlitch schedules the glitch pulse. Calling it twice is a no-op.
func (s *Scheduler) StartGlitch() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.glitchEntry != 0 {
		return nil
	}
	id, err := s.cron.AddFunc(every(s.cfg.GlitchInterval), s.pulse)
	if err != nil {
		return errors.Wrap(err, "failed to schedule glitch")
	}
	s.glitchEntry = id
	return nil
}

// StopGlitch removes the pulse, cancels a pending reset and clears the flag
func (s *Scheduler) StopGlitch() {
	s.mu.Lock()
	if s.glitchEntry != 0 {
		s.cron.Remove(s.glitchEntry)
		s.glitchEntry = 0
	}
	if s.glitchReset != nil {
		s.glitchReset.Stop()
		s.glitchReset = nil
	}
	s.mu.Unlock()

	if s.glitch.Swap(false) {
		s.notify()
	}
}

// Now returns the last clock tick
func (s *Scheduler) Now() time.Time {
	return *s.clock.Load()
}

// Glitching reports whether the glitch flag is currently raised
func (s *Scheduler) Glitching() bool {
	return s.glitch.Load()
}

func (s *Scheduler) tick() {
	t := s.now()
	s.clock.Store(&t)
	s.notify()
}

func (s *Scheduler) pulse() {
	s.mu.Lock()
	if s.glitchReset != nil {
		s.glitchReset.Stop()
	}
	s.glitchGen++
	gen := s.glitchGen
	s.glitch.Store(true)
	s.glitchReset = time.AfterFunc(s.cfg.GlitchHold, func() { s.clearGlitch(gen) })
	s.mu.Unlock()

	s.notify()
}

// clearGlitch ignores resets left over from an earlier pulse
func (s *Scheduler) clearGlitch(gen uint64) {
	s.mu.Lock()
	if gen != s.glitchGen {
		s.mu.Unlock()
		return
	}
	s.glitchReset = nil
	s.glitch.Store(false)
	s.mu.Unlock()

	s.notify()
}

func (s *Scheduler) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

func every(d time.Duration) string {
	return "@every " + d.String()
}
