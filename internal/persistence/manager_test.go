package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jcdoncaster/shift-management-bot/internal/domain"
)

func fixtureSnapshot() domain.Snapshot {
	clockIn := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return domain.Snapshot{
		Staff: []domain.StaffMember{
			{Identity: "U1", DisplayName: "Alice", Role: "Manager", Contact: "a@x.com", RegisteredAt: clockIn},
		},
		Shifts: []domain.ShiftRecord{
			domain.NewShiftRecord("rec-1", domain.ActiveShift{
				Identity: "U1", DisplayName: "Alice", Role: "Manager", ClockInAt: clockIn,
			}, clockIn.Add(95*time.Minute)),
		},
		Settings: map[string]string{},
	}
}

func newFileManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shift-data.json")
	return NewManager(NewFileStore(path), JSONCodec{}, zap.NewNop(), time.Second), path
}

func TestManagerLoadMissingCreatesStorage(t *testing.T) {
	mgr, path := newFileManager(t)

	snapshot := mgr.Load(context.Background())
	assert.Empty(t, snapshot.Staff)
	assert.Empty(t, snapshot.Shifts)

	// The empty snapshot was saved immediately, so the file now exists.
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestManagerLoadCorruptFallsBackToEmpty(t *testing.T) {
	mgr, path := newFileManager(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	snapshot := mgr.Load(context.Background())
	assert.Empty(t, snapshot.Staff)
	assert.Empty(t, snapshot.Shifts)
}

func TestManagerSaveLoadRoundTrip(t *testing.T) {
	mgr, _ := newFileManager(t)
	want := fixtureSnapshot()
	mgr.SetProvider(func() domain.Snapshot { return want })

	require.NoError(t, mgr.SaveNow(context.Background()))

	got := mgr.Load(context.Background())
	assert.Equal(t, want.Staff, got.Staff)
	assert.Equal(t, want.Shifts, got.Shifts)
}

func TestManagerSaveNowWithoutProvider(t *testing.T) {
	mgr, _ := newFileManager(t)
	assert.Error(t, mgr.SaveNow(context.Background()))
}

func TestManagerRunServicesSaveRequests(t *testing.T) {
	mgr, path := newFileManager(t)
	mgr.SetProvider(func() domain.Snapshot { return fixtureSnapshot() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		mgr.Run(ctx)
		close(done)
	}()

	mgr.RequestSave()
	require.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("manager did not stop after cancellation")
	}
}

func TestManagerRequestSaveNeverBlocks(t *testing.T) {
	mgr, _ := newFileManager(t)
	// No Run loop draining the channel; repeated requests must coalesce.
	for i := 0; i < 10; i++ {
		mgr.RequestSave()
	}
}

func TestJSONCodecNormalizesNilCollections(t *testing.T) {
	snapshot, err := JSONCodec{}.Unmarshal([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, snapshot.Staff)
	assert.NotNil(t, snapshot.Shifts)
	assert.NotNil(t, snapshot.Settings)
}
