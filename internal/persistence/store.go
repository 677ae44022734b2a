package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jcdoncaster/shift-management-bot/internal/domain"
)

// ErrNotExist reports that the storage location holds no snapshot yet. The
// manager treats it as an empty snapshot, never as a failure.
var ErrNotExist = errors.New("snapshot storage does not exist")

// BlobStore reads and writes the serialized snapshot as an opaque blob.
// It has no knowledge of the snapshot schema.
type BlobStore interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Ping(ctx context.Context) error
	Close()
}

// Codec serializes snapshots. The snapshot schema is the contract; the
// encoding behind it is pluggable.
type Codec interface {
	Marshal(snapshot domain.Snapshot) ([]byte, error)
	Unmarshal(data []byte) (domain.Snapshot, error)
}

// JSONCodec encodes snapshots as indented JSON.
type JSONCodec struct{}

// Marshal implements Codec.
func (JSONCodec) Marshal(snapshot domain.Snapshot) ([]byte, error) {
	return json.MarshalIndent(snapshot, "", "  ")
}

// Unmarshal implements Codec.
func (JSONCodec) Unmarshal(data []byte) (domain.Snapshot, error) {
	var snapshot domain.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return domain.Snapshot{}, err
	}
	if snapshot.Staff == nil {
		snapshot.Staff = []domain.StaffMember{}
	}
	if snapshot.Shifts == nil {
		snapshot.Shifts = []domain.ShiftRecord{}
	}
	if snapshot.Settings == nil {
		snapshot.Settings = map[string]string{}
	}
	return snapshot, nil
}
