package repository

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pricealert/internal/domain"
	"pricealert/internal/service"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newSeededRepo(t *testing.T) domain.AlertRepository {
	t.Helper()
	prices := service.NewDefaultPriceTableService()
	next := 100
	return NewAlertRepository(prices,
		WithAlerts(SeedAlerts(prices, fixedNow)),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			next++
			return fmt.Sprintf("id-%d", next)
		}),
	)
}

func ids(alerts []domain.Alert) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.ID
	}
	return out
}

func assertIDs(t *testing.T, got []domain.Alert, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, g)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, g)
		}
	}
}

func assertInvariant(t *testing.T, repo domain.AlertRepository) {
	t.Helper()
	c := repo.Counts()
	if c.Active+c.Triggered != c.Total {
		t.Fatalf("active %d + triggered %d != total %d", c.Active, c.Triggered, c.Total)
	}
	if c.Total != len(repo.List()) {
		t.Fatalf("total %d does not match list length %d", c.Total, len(repo.List()))
	}
}

func TestSeedCounts(t *testing.T) {
	repo := newSeededRepo(t)
	c := repo.Counts()
	if c != (domain.AlertCounts{Total: 3, Active: 2, Triggered: 1}) {
		t.Errorf("unexpected seed counts %+v", c)
	}
	assertIDs(t, repo.List(), "1", "2", "3")
}

func TestAddPrependsWithSnapshotPrice(t *testing.T) {
	repo := newSeededRepo(t)

	alert := repo.Add("ETH", decimal.NewFromInt(4000), domain.ConditionAbove)

	c := repo.Counts()
	if c != (domain.AlertCounts{Total: 4, Active: 3, Triggered: 1}) {
		t.Errorf("unexpected counts %+v", c)
	}
	if !alert.CurrentPrice.Equal(decimal.RequireFromString("3456.78")) {
		t.Errorf("expected ETH snapshot 3456.78, got %s", alert.CurrentPrice)
	}
	if alert.IsTriggered {
		t.Error("new alerts must not be triggered")
	}
	if alert.Condition != domain.ConditionAbove {
		t.Errorf("unexpected condition %s", alert.Condition)
	}
	if !alert.CreatedAt.Equal(fixedNow) {
		t.Errorf("unexpected created at %s", alert.CreatedAt)
	}

	assertIDs(t, repo.List(), alert.ID, "1", "2", "3")
	assertInvariant(t, repo)
}

func TestAddDoesNotReevaluateTrigger(t *testing.T) {
	repo := newSeededRepo(t)

	// BTC is already above 1000; the alert still starts out monitoring
	alert := repo.Add("BTC", decimal.NewFromInt(1000), domain.ConditionAbove)
	if alert.IsTriggered {
		t.Error("alerts are never evaluated against the price")
	}
}

func TestAddUnknownSymbolPricesAtZero(t *testing.T) {
	repo := newSeededRepo(t)

	alert := repo.Add("PEPE", decimal.NewFromInt(1), domain.ConditionBelow)
	if !alert.CurrentPrice.IsZero() {
		t.Errorf("expected zero price, got %s", alert.CurrentPrice)
	}
	assertInvariant(t, repo)
}

func TestAddGeneratesUniqueIDs(t *testing.T) {
	repo := NewAlertRepository(service.NewDefaultPriceTableService())

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		a := repo.Add("SOL", decimal.NewFromInt(int64(i)), domain.ConditionAbove)
		if seen[a.ID] {
			t.Fatalf("duplicate id %s", a.ID)
		}
		seen[a.ID] = true
	}
}

func TestRemoveTriggeredSeed(t *testing.T) {
	repo := newSeededRepo(t)

	if !repo.Remove("2") {
		t.Fatal("expected alert 2 to be removed")
	}

	c := repo.Counts()
	if c != (domain.AlertCounts{Total: 2, Active: 2, Triggered: 0}) {
		t.Errorf("unexpected counts %+v", c)
	}
	assertIDs(t, repo.List(), "1", "3")
	assertInvariant(t, repo)
}

func TestRemovePreservesOrderOfOthers(t *testing.T) {
	repo := newSeededRepo(t)
	a := repo.Add("DOT", decimal.NewFromInt(8), domain.ConditionAbove)
	b := repo.Add("ADA", decimal.NewFromInt(1), domain.ConditionBelow)

	repo.Remove(a.ID)

	assertIDs(t, repo.List(), b.ID, "1", "2", "3")
	assertInvariant(t, repo)
}

func TestRemoveMissingIDIsNoop(t *testing.T) {
	repo := newSeededRepo(t)
	before := repo.List()

	if repo.Remove("does-not-exist") {
		t.Error("removing an unknown id must report false")
	}

	after := repo.List()
	assertIDs(t, after, ids(before)...)
	if repo.Counts() != domain.CountAlerts(before) {
		t.Error("counts changed after no-op remove")
	}
}

func TestListReturnsCopy(t *testing.T) {
	repo := newSeededRepo(t)
	list := repo.List()
	list[0].Symbol = "HACKED"

	if repo.List()[0].Symbol != "BTC" {
		t.Error("List must not expose internal state")
	}
}

func TestGet(t *testing.T) {
	repo := newSeededRepo(t)

	a, err := repo.Get("3")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Symbol != "SOL" {
		t.Errorf("expected SOL, got %s", a.Symbol)
	}

	if _, err := repo.Get("nope"); err != domain.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWithAlertsCopiesInput(t *testing.T) {
	prices := service.NewDefaultPriceTableService()
	seed := SeedAlerts(prices, fixedNow)
	repo := NewAlertRepository(prices, WithAlerts(seed))

	seed[0].ID = "changed"
	if repo.List()[0].ID != "1" {
		t.Error("store must not alias the seed slice")
	}
}

func TestConcurrentAddRemove(t *testing.T) {
	repo := NewAlertRepository(service.NewDefaultPriceTableService())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a := repo.Add("LINK", decimal.NewFromInt(15), domain.ConditionAbove)
			_ = repo.Counts()
			repo.Remove(a.ID)
		}()
	}
	wg.Wait()

	if repo.Counts().Total != 0 {
		t.Errorf("expected empty store, got %+v", repo.Counts())
	}
}
