// Package cache is the durable local copy of league state. It is what the
// app runs on when the remote store is unreachable, and the seed pushed back
// up when the remote comes back empty.
package cache

import (
	"github.com/edgewalker/leagueops/internal/model"
)

// Cache persists the working snapshot and the locally saved log book.
// A missing or unreadable entry is reported as absent, never as an error;
// startup must proceed on a fresh snapshot when the cache is gone.
type Cache interface {
	// LoadSnapshot returns the cached snapshot, or ok=false when no
	// usable snapshot is stored.
	LoadSnapshot() (snap *model.Snapshot, ok bool)
	// SaveSnapshot writes the snapshot through to durable storage.
	SaveSnapshot(snap *model.Snapshot) error

	// LoadLogs returns the locally saved logs keyed by ISO date.
	// A missing or corrupt log file yields an empty map.
	LoadLogs() map[string]*model.Snapshot
	// SaveLogs replaces the locally saved logs.
	SaveLogs(logs map[string]*model.Snapshot) error
}
