package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/primowater/deliveryform/internal/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	st := NewStore(ttl, zap.NewNop())
	st.now = clock.Now
	return st, clock
}

func TestCreateAndGet(t *testing.T) {
	st, _ := newTestStore(time.Hour)

	s := st.Create()
	got, ok := st.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, domain.SubmissionStateIdle, got.View().State)
}

func TestGetExpired(t *testing.T) {
	st, clock := newTestStore(time.Hour)
	s := st.Create()

	clock.Advance(59 * time.Minute)
	_, ok := st.Get(s.ID)
	require.True(t, ok)

	// Get refreshed the session, so another 59 minutes keeps it alive
	clock.Advance(59 * time.Minute)
	_, ok = st.Get(s.ID)
	require.True(t, ok)

	clock.Advance(61 * time.Minute)
	_, ok = st.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, st.Len())
}

func TestLookup(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	existing := st.Create()

	s, created := st.Lookup(existing.ID.String())
	assert.False(t, created)
	assert.Equal(t, existing.ID, s.ID)

	s, created = st.Lookup("not-a-uuid")
	assert.True(t, created)
	assert.NotEqual(t, existing.ID, s.ID)

	s, created = st.Lookup(uuid.New().String())
	assert.True(t, created)
	assert.Equal(t, 3, st.Len())
	st.Delete(s.ID)
	assert.Equal(t, 2, st.Len())
}

func TestSweep(t *testing.T) {
	st, clock := newTestStore(time.Hour)
	old := st.Create()
	clock.Advance(30 * time.Minute)
	fresh := st.Create()
	clock.Advance(45 * time.Minute)

	assert.Equal(t, 1, st.Sweep())
	_, ok := st.Get(old.ID)
	assert.False(t, ok)
	_, ok = st.Get(fresh.ID)
	assert.True(t, ok)
}

func TestRunStopsOnCancel(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		st.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestBeginSubmitGuardsDuplicates(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	s := st.Create()

	require.NoError(t, s.BeginSubmit())
	assert.ErrorIs(t, s.BeginSubmit(), ErrSubmissionInFlight)
	assert.True(t, s.View().Loading)

	_, err := s.Update(func(fs *domain.FormState) error {
		return fs.Fail("try again")
	})
	require.NoError(t, err)
	require.NoError(t, s.BeginSubmit())

	_, err = s.Update(func(fs *domain.FormState) error {
		return fs.Transition(domain.SubmissionStateConfirmed)
	})
	require.NoError(t, err)
	assert.ErrorIs(t, s.BeginSubmit(), ErrAlreadySubmitted)
}

func TestBeginSubmitConcurrent(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	s := st.Create()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.BeginSubmit() == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestUpdateReturnsViewOnError(t *testing.T) {
	st, _ := newTestStore(time.Hour)
	s := st.Create()

	v, err := s.Update(func(fs *domain.FormState) error {
		return fs.ApplyField("nope", "1")
	})
	require.Error(t, err)
	assert.Equal(t, domain.SubmissionStateIdle, v.State)
}
