package backoffice

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"workshop/internal/infrastructure/persistence/schema"
	"workshop/internal/infrastructure/persistence/sqlite/repository"
	"workshop/internal/infrastructure/persistence/sqlite/uow"
	"workshop/internal/ports"
)

type fixture struct {
	db      *gorm.DB
	clock   *testClock
	metrics *countingMetrics
	events  *recordingObserver
	deps    Deps
	svc     *Service
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type countingMetrics struct {
	mu         sync.Mutex
	issued     map[string]int
	degraded   map[string]int
	collisions map[string]int
	teardowns  map[string]int
	purged     int64
	dropped    int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{
		issued:     map[string]int{},
		degraded:   map[string]int{},
		collisions: map[string]int{},
		teardowns:  map[string]int{},
	}
}

func (m *countingMetrics) IdentifierIssued(kind string, degraded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued[kind]++
	if degraded {
		m.degraded[kind]++
	}
}

func (m *countingMetrics) IdentifierCollision(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collisions[kind]++
}

func (m *countingMetrics) TeardownFinished(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teardowns[result]++
}

func (m *countingMetrics) CallbacksPurged(count int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.purged += count
}

func (m *countingMetrics) ActivityDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropped++
}

type recordingObserver struct {
	mu     sync.Mutex
	events []ports.LedgerEvent
}

func (o *recordingObserver) Observe(_ context.Context, event ports.LedgerEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) Types() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.events))
	for _, event := range o.events {
		out = append(out, event.Type)
	}
	return out
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "backoffice.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	if err := db.AutoMigrate(schema.Models(schema.CurrentVersion)...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

// newFixture builds a service over real repositories. mutate may swap
// f.deps for failing decorators before the service is created.
func newFixture(t *testing.T, options Options, mutate func(f *fixture)) *fixture {
	t.Helper()

	db := setupDB(t)
	f := &fixture{
		db:      db,
		clock:   &testClock{now: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)},
		metrics: newCountingMetrics(),
		events:  &recordingObserver{},
	}
	f.deps = Deps{
		Tenants:   repository.NewTenantRepository(db),
		Counters:  repository.NewCounterRepository(db),
		Jobs:      repository.NewJobRepository(db),
		Orders:    repository.NewOrderRepository(db),
		Parts:     repository.NewPartRepository(db),
		Callbacks: repository.NewCallbackRepository(db),
		UOW:       uow.NewUnitOfWork(db),
		Observer:  f.events,
		Metrics:   f.metrics,
		Clock:     f.clock.Now,
	}
	if mutate != nil {
		mutate(f)
	}

	svc, err := NewService(f.deps, options)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	f.svc = svc
	return f
}

func (f *fixture) business(t *testing.T, name string) uint64 {
	t.Helper()

	business, err := f.svc.CreateBusiness(context.Background(), name)
	if err != nil {
		t.Fatalf("CreateBusiness() error = %v", err)
	}
	return business.BusinessID
}
