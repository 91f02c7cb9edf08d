// Package storage persists the session save slot: one versioned JSON
// blob under a single well-known key, last-writer-wins.
package storage

import (
	"context"

	"github.com/yooho-ai/trainee-engine/pkg/state"
)

// SaveKey is the single save slot key.
const SaveKey = "trainee:save"

// Storage is the persistence interface for the save slot.
type Storage interface {
	// Ping tests the storage connection.
	Ping(ctx context.Context) error

	// SaveSession writes the save blob, overwriting any prior value.
	SaveSession(ctx context.Context, data *state.SaveData) error

	// LoadSession reads the save blob. Returns nil if the slot is empty.
	LoadSession(ctx context.Context) (*state.SaveData, error)

	// HasSession reports whether the save slot holds a value.
	HasSession(ctx context.Context) (bool, error)

	// DeleteSession clears the save slot.
	DeleteSession(ctx context.Context) error

	// Close closes the storage connection.
	Close() error
}
