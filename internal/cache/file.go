package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edgewalker/leagueops/internal/model"
)

const (
	snapshotFile = "snapshot.json"
	logsFile     = "logs.json"
)

// FileCache stores the snapshot and logs as JSON files under a directory.
type FileCache struct {
	dir string
}

var _ Cache = (*FileCache)(nil)

// NewFileCache creates the cache directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

func (c *FileCache) LoadSnapshot() (*model.Snapshot, bool) {
	raw, err := os.ReadFile(filepath.Join(c.dir, snapshotFile))
	if err != nil {
		return nil, false
	}
	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// Corrupt cache reads as absent; the caller starts fresh.
		return nil, false
	}
	snap.Normalize()
	return &snap, true
}

func (c *FileCache) SaveSnapshot(snap *model.Snapshot) error {
	return c.writeJSON(snapshotFile, snap)
}

func (c *FileCache) LoadLogs() map[string]*model.Snapshot {
	logs := make(map[string]*model.Snapshot)
	raw, err := os.ReadFile(filepath.Join(c.dir, logsFile))
	if err != nil {
		return logs
	}
	if err := json.Unmarshal(raw, &logs); err != nil {
		return make(map[string]*model.Snapshot)
	}
	for _, snap := range logs {
		snap.Normalize()
	}
	return logs
}

func (c *FileCache) SaveLogs(logs map[string]*model.Snapshot) error {
	return c.writeJSON(logsFile, logs)
}

// writeJSON writes to a temp file in the same directory and renames it over
// the target, so a crash mid-write never leaves a half-written file behind.
func (c *FileCache) writeJSON(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(c.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(c.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
