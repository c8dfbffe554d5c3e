package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/klauern/mcpsync/internal/model"
)

// Metadata describes a single snapshot.
type Metadata struct {
	ID          string       `json:"id"`
	Client      model.Client `json:"client"`
	SourcePath  string       `json:"source_path"`
	BackupPath  string       `json:"backup_path"`
	CreatedAt   time.Time    `json:"created_at"`
	ModifiedAt  time.Time    `json:"modified_at"`
	Hash        string       `json:"hash"`
	Size        int64        `json:"size"`
	Description string       `json:"description,omitempty"`
}

// index is the on-disk catalog of all snapshots.
type index struct {
	Version string              `json:"version"`
	Updated time.Time           `json:"updated"`
	Backups map[string]Metadata `json:"backups"`
}

const (
	indexVersion  = "1.0"
	indexFilename = "index.json"
)

func (s *Store) indexPath() string {
	return filepath.Join(s.metadataDir, indexFilename)
}

func (s *Store) loadIndex() (*index, error) {
	path := s.indexPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &index{
			Version: indexVersion,
			Updated: time.Now(),
			Backups: make(map[string]Metadata),
		}, nil
	}

	// #nosec G304 - index path is derived from the store's own root
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup index: %w", err)
	}

	var idx index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to parse backup index: %w", err)
	}
	if idx.Backups == nil {
		idx.Backups = make(map[string]Metadata)
	}
	return &idx, nil
}

func (s *Store) saveIndex(idx *index) error {
	if err := os.MkdirAll(s.metadataDir, DirPerm); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}

	idx.Updated = time.Now()
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup index: %w", err)
	}
	if err := os.WriteFile(s.indexPath(), data, FilePerm); err != nil {
		return fmt.Errorf("failed to write backup index: %w", err)
	}
	return nil
}

// list returns all snapshots newest first.
func (idx *index) list() []Metadata {
	backups := make([]Metadata, 0, len(idx.Backups))
	for _, b := range idx.Backups {
		backups = append(backups, b)
	}
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups
}
