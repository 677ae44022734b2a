package persistence

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/jcdoncaster/shift-management-bot/internal/domain"
)

// SnapshotProvider assembles the current durable image from the live
// registries.
type SnapshotProvider func() domain.Snapshot

// Manager owns the load/save contract between the in-memory registries and
// the blob store. Load failures degrade to an empty snapshot; save failures
// are logged and never interrupt command handling.
type Manager struct {
	store    BlobStore
	codec    Codec
	logger   *zap.Logger
	timeout  time.Duration
	provider SnapshotProvider
	saveCh   chan struct{}
}

// NewManager wires a manager around a store and codec.
func NewManager(store BlobStore, codec Codec, logger *zap.Logger, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Manager{
		store:   store,
		codec:   codec,
		logger:  logger,
		timeout: timeout,
		saveCh:  make(chan struct{}, 1),
	}
}

// SetProvider binds the snapshot source. Called once the registries are
// hydrated; saves requested before that are ignored.
func (m *Manager) SetProvider(provider SnapshotProvider) {
	m.provider = provider
}

// Load reads the durable snapshot. A missing storage location yields an empty
// snapshot and an immediate save of it, so storage always exists after first
// run. Corrupt content is logged and replaced by an empty snapshot; the next
// save overwrites it.
func (m *Manager) Load(ctx context.Context) domain.Snapshot {
	data, err := m.store.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			m.logger.Info("no snapshot found, initializing empty storage")
			m.writeSnapshot(ctx, domain.EmptySnapshot())
			return domain.EmptySnapshot()
		}
		m.logger.Error("failed to read snapshot, starting empty", zap.Error(err))
		return domain.EmptySnapshot()
	}

	snapshot, err := m.codec.Unmarshal(data)
	if err != nil {
		m.logger.Error("corrupt snapshot, starting empty", zap.Error(err))
		return domain.EmptySnapshot()
	}

	m.logger.Info("snapshot loaded",
		zap.Int("staff", len(snapshot.Staff)),
		zap.Int("shifts", len(snapshot.Shifts)),
	)
	return snapshot
}

// SaveNow serializes the current snapshot and writes it synchronously.
func (m *Manager) SaveNow(ctx context.Context) error {
	if m.provider == nil {
		return errors.New("no snapshot provider bound")
	}
	return m.writeSnapshot(ctx, m.provider())
}

// RequestSave queues an asynchronous save. Requests are coalesced: while one
// save is pending, further requests fold into it. Never blocks the caller.
func (m *Manager) RequestSave() {
	select {
	case m.saveCh <- struct{}{}:
	default:
	}
}

// Run services queued save requests until the context is cancelled. A final
// save is attempted on shutdown.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), m.timeout)
			if err := m.SaveNow(flushCtx); err != nil {
				m.logger.Error("final snapshot save failed", zap.Error(err))
			}
			cancel()
			return
		case <-m.saveCh:
			saveCtx, cancel := context.WithTimeout(ctx, m.timeout)
			if err := m.SaveNow(saveCtx); err != nil {
				m.logger.Error("snapshot save failed", zap.Error(err))
			}
			cancel()
		}
	}
}

// Ping reports storage reachability for readiness checks.
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

func (m *Manager) writeSnapshot(ctx context.Context, snapshot domain.Snapshot) error {
	data, err := m.codec.Marshal(snapshot)
	if err != nil {
		m.logger.Error("failed to serialize snapshot", zap.Error(err))
		return err
	}
	if err := m.store.Write(ctx, data); err != nil {
		m.logger.Error("failed to write snapshot", zap.Error(err))
		return err
	}
	m.logger.Debug("snapshot saved",
		zap.Int("staff", len(snapshot.Staff)),
		zap.Int("shifts", len(snapshot.Shifts)),
	)
	return nil
}
