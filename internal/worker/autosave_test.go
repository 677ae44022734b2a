package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingSaver struct {
	count atomic.Int64
}

func (s *countingSaver) RequestSave() { s.count.Add(1) }

func TestAutosaveWorkerTicks(t *testing.T) {
	saver := &countingSaver{}
	w := NewAutosaveWorker(saver, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return saver.count.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}

func TestAutosaveWorkerDisabled(t *testing.T) {
	saver := &countingSaver{}
	w := NewAutosaveWorker(saver, 0, zap.NewNop())

	// Run must return immediately with a non-positive interval.
	w.Run(context.Background())
	assert.EqualValues(t, 0, saver.count.Load())
}
