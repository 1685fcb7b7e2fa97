package infra

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pricealert/configs"
	"pricealert/internal/domain"
	"pricealert/internal/repository"
	"pricealert/internal/service"
)

func testEffects() configs.EffectsConfig {
	return configs.EffectsConfig{
		ClockInterval:  time.Second,
		GlitchInterval: 4 * time.Second,
		GlitchHold:     20 * time.Millisecond,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestTickUpdatesClock(t *testing.T) {
	s := NewScheduler(testEffects(), nil)
	fixed := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	var notified atomic.Int32
	s.Subscribe(func() { notified.Add(1) })

	s.tick()

	if !s.Now().Equal(fixed) {
		t.Errorf("expected clock %s, got %s", fixed, s.Now())
	}
	if notified.Load() != 1 {
		t.Errorf("expected one notification, got %d", notified.Load())
	}
}

func TestPulseRaisesAndClearsGlitch(t *testing.T) {
	s := NewScheduler(testEffects(), nil)

	s.pulse()
	if !s.Glitching() {
		t.Fatal("expected glitch flag to be raised")
	}

	waitFor(t, func() bool { return !s.Glitching() })
}

func TestRepeatedPulseKeepsLatestHold(t *testing.T) {
	cfg := testEffects()
	cfg.GlitchHold = 100 * time.Millisecond
	s := NewScheduler(cfg, nil)

	s.pulse()
	time.Sleep(60 * time.Millisecond)
	s.pulse()
	time.Sleep(60 * time.Millisecond)

	if !s.Glitching() {
		t.Error("second pulse should extend the glitch past the first hold")
	}
	waitFor(t, func() bool { return !s.Glitching() })
}

func TestStopGlitchCancelsPendingReset(t *testing.T) {
	cfg := testEffects()
	cfg.GlitchHold = time.Hour
	s := NewScheduler(cfg, nil)

	if err := s.StartGlitch(); err != nil {
		t.Fatal(err)
	}
	s.pulse()
	s.StopGlitch()

	if s.Glitching() {
		t.Error("stopping must clear the glitch flag")
	}
	if s.glitchReset != nil || s.glitchEntry != 0 {
		t.Error("stopping must release the timer and cron entry")
	}
}

func TestStartStopIsIdempotent(t *testing.T) {
	s := NewScheduler(testEffects(), nil)

	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("second start: %v", err)
	}
	if got := len(s.cron.Entries()); got != 2 {
		t.Errorf("expected 2 cron entries, got %d", got)
	}

	s.Stop()
	s.Stop()

	if got := len(s.cron.Entries()); got != 0 {
		t.Errorf("expected no cron entries after stop, got %d", got)
	}
}

func TestClockAndGlitchAreIndependent(t *testing.T) {
	s := NewScheduler(testEffects(), nil)

	if err := s.StartClock(); err != nil {
		t.Fatal(err)
	}
	if err := s.StartGlitch(); err != nil {
		t.Fatal(err)
	}
	s.StopGlitch()

	entries := s.cron.Entries()
	if len(entries) != 1 || entries[0].ID != s.clockEntry {
		t.Errorf("expected only the clock entry to remain, got %d entries", len(entries))
	}
	s.StopClock()
}

func TestEffectsDoNotTouchAlerts(t *testing.T) {
	prices := service.NewDefaultPriceTableService()
	repo := repository.NewAlertRepository(prices,
		repository.WithAlerts(repository.SeedAlerts(prices, time.Now())))
	repo.Add("ETH", decimal.NewFromInt(4000), domain.ConditionAbove)
	before := repo.List()

	s := NewScheduler(testEffects(), nil)
	for i := 0; i < 5; i++ {
		s.tick()
		s.pulse()
	}
	waitFor(t, func() bool { return !s.Glitching() })

	after := repo.List()
	if len(after) != len(before) {
		t.Fatalf("alert count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID != after[i].ID || before[i].IsTriggered != after[i].IsTriggered {
			t.Errorf("alert %d changed", i)
		}
	}
}
