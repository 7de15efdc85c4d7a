package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
	called  chan struct{}
}

func newFakePruner() *fakePruner {
	return &fakePruner{called: make(chan struct{}, 16)}
}

func (f *fakePruner) PruneBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	f.cutoffs = append(f.cutoffs, cutoff)
	err := f.err
	f.mu.Unlock()
	f.called <- struct{}{}
	if err != nil {
		return 0, err
	}
	return 3, nil
}

func TestSearchLogPrune_PrunesOnStartWithRetentionCutoff(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := newFakePruner()
	w := NewSearchLogPrune(store, zap.NewNop(), time.Hour, 90*24*time.Hour)
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	w.Start()
	select {
	case <-store.called:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not prune on start")
	}
	w.Stop()
	w.Stop()

	store.mu.Lock()
	defer store.mu.Unlock()
	want := fixed.Add(-90 * 24 * time.Hour)
	if len(store.cutoffs) != 1 || !store.cutoffs[0].Equal(want) {
		t.Errorf("cutoffs: got %v, want [%v]", store.cutoffs, want)
	}
}

func TestSearchLogPrune_LogsErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	core, logs := observer.New(zap.ErrorLevel)
	store := newFakePruner()
	store.err = errors.New("boom")

	w := NewSearchLogPrune(store, zap.New(core), time.Hour, time.Hour)
	w.prune()

	if n := logs.FilterMessage("failed to prune search log").Len(); n != 1 {
		t.Errorf("error logs: got %d, want 1", n)
	}
}
