package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossfell/cashfall/internal/common"
	"github.com/mossfell/cashfall/internal/model"
)

// fakeStore is an in-memory DocumentStore that counts writes and can be
// made to fail.
type fakeStore struct {
	mu      sync.Mutex
	docs    map[string][]byte
	upserts int
	getErr  error
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[string][]byte)}
}

func (f *fakeStore) Get(_ context.Context, userID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	doc, ok := f.docs[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return doc, nil
}

func (f *fakeStore) Upsert(_ context.Context, userID string, doc []byte, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if f.putErr != nil {
		return f.putErr
	}
	f.docs[userID] = doc
	return nil
}

func (f *fakeStore) upsertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.upserts
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func testClock() fixedClock {
	return fixedClock{t: time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)}
}

func TestManager_Load_FirstTimeUserProvisionsDefaults(t *testing.T) {
	store := newFakeStore()
	mgr := NewManager(store, testClock(), "user-1")

	require.NoError(t, mgr.Load(context.Background()))

	state := mgr.State()
	assert.Equal(t, "2026-08", state.Month.String())
	assert.Equal(t, model.ToolCapital, state.ActiveTool)
	assert.Equal(t, 1, store.upsertCount(), "defaults are written through")
}

func TestManager_Load_ReadFailureTreatedAsFirstTime(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("store unavailable")
	mgr := NewManager(store, testClock(), "user-1")

	require.NoError(t, mgr.Load(context.Background()), "read failure is not a hard error")
	assert.Equal(t, "2026-08", mgr.State().Month.String())
}

func TestManager_Load_MergesPersistedState(t *testing.T) {
	store := newFakeStore()
	store.docs["user-1"] = []byte(`{"month":"2026-03","workingCapital":{"operatingExpenses":"55,000","daysPerMonth":"30","bufferDays":"45","reserveDays":"45","businessChecking":"125,000","reserveBalance":"75,000"}}`)
	mgr := NewManager(store, testClock(), "user-1")

	require.NoError(t, mgr.Load(context.Background()))

	state := mgr.State()
	assert.Equal(t, "2026-03", state.Month.String())
	assert.InDelta(t, 35000.0, state.SuggestedBusinessInflow, 1e-6,
		"waterfall hand-off recomputed on load")
	assert.Equal(t, 0, store.upsertCount(), "no write-through when a document exists")
}

func TestManager_Mutate_DebouncesSaves(t *testing.T) {
	store := newFakeStore()
	mgr := NewManager(store, testClock(), "user-1", WithSaveDelay(30*time.Millisecond))
	require.NoError(t, mgr.Load(context.Background()))
	baseline := store.upsertCount()

	for i := 0; i < 5; i++ {
		mgr.Mutate(func(s *model.AllocationState) {
			s.CashFlow.LifestyleMonthly = "9000"
		})
	}

	assert.Equal(t, baseline, store.upsertCount(), "no write inside the quiet period")

	require.Eventually(t, func() bool {
		return store.upsertCount() == baseline+1
	}, time.Second, 5*time.Millisecond, "five edits coalesce to one write")

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, baseline+1, store.upsertCount(), "timer does not refire")
}

func TestManager_Mutate_RecomputesSuggestedInflow(t *testing.T) {
	store := newFakeStore()
	mgr := NewManager(store, testClock(), "user-1", WithSaveDelay(time.Hour))
	require.NoError(t, mgr.Load(context.Background()))

	mgr.Mutate(func(s *model.AllocationState) {
		s.WorkingCapital = model.WorkingCapitalInputs{
			OperatingExpenses: "55,000",
			DaysPerMonth:      "30",
			BufferDays:        "45",
			ReserveDays:       "45",
			BusinessChecking:  "125,000",
			ReserveBalance:    "75,000",
		}
	})

	assert.InDelta(t, 35000.0, mgr.State().SuggestedBusinessInflow, 1e-6)
}

func TestManager_Close_AbandonsPendingWrite(t *testing.T) {
	store := newFakeStore()
	mgr := NewManager(store, testClock(), "user-1", WithSaveDelay(20*time.Millisecond))
	require.NoError(t, mgr.Load(context.Background()))
	baseline := store.upsertCount()

	mgr.Mutate(func(s *model.AllocationState) {
		s.CashFlow.LifestyleMonthly = "9000"
	})
	mgr.Close()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, baseline, store.upsertCount(), "pending debounced write abandoned on close")

	mgr.Mutate(func(s *model.AllocationState) {
		s.CashFlow.LifestyleMonthly = "1"
	})
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, baseline, store.upsertCount(), "mutations after close are ignored")
}

func TestManager_Flush_WritesImmediately(t *testing.T) {
	store := newFakeStore()
	mgr := NewManager(store, testClock(), "user-1", WithSaveDelay(time.Hour))
	require.NoError(t, mgr.Load(context.Background()))
	baseline := store.upsertCount()

	mgr.Mutate(func(s *model.AllocationState) {
		s.CashFlow.OtherInflow = "12,000"
	})
	require.NoError(t, mgr.Flush(context.Background()))
	assert.Equal(t, baseline+1, store.upsertCount())

	loaded := model.LoadState(store.docs["user-1"], model.ParseMonth("2026-08"))
	assert.Equal(t, model.MoneyText("12,000"), loaded.CashFlow.OtherInflow)
}

func TestManager_SaveFailureSurfacedNotRolledBack(t *testing.T) {
	store := newFakeStore()
	mgr := NewManager(store, testClock(), "user-1", WithSaveDelay(time.Hour))
	require.NoError(t, mgr.Load(context.Background()))

	store.mu.Lock()
	store.putErr = errors.New("disk full")
	store.mu.Unlock()

	mgr.Mutate(func(s *model.AllocationState) {
		s.CashFlow.OtherInflow = "500"
	})
	require.Error(t, mgr.Flush(context.Background()))
	assert.Error(t, mgr.LastSaveErr())
	assert.Equal(t, model.MoneyText("500"), mgr.State().CashFlow.OtherInflow,
		"in-memory state stays authoritative")

	store.mu.Lock()
	store.putErr = nil
	store.mu.Unlock()

	require.NoError(t, mgr.Flush(context.Background()))
	assert.NoError(t, mgr.LastSaveErr())
}
