// Package backup snapshots client config files before destructive
// operations and restores them on demand.
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauern/mcpsync/internal/logging"
	"github.com/klauern/mcpsync/internal/model"
	"github.com/klauern/mcpsync/internal/util"
)

const (
	// DirPerm is the permission for backup directories (rwxr-x---)
	DirPerm = 0o750
	// FilePerm is the permission for backup files (rw-r-----)
	FilePerm = 0o640
)

// Store holds config snapshots under a backups directory, one
// subdirectory per client, with an index file describing every snapshot.
type Store struct {
	backupsDir  string
	metadataDir string
}

// NewStore creates a store rooted at the default data directories.
func NewStore() *Store {
	return &Store{
		backupsDir:  util.BackupsDir(),
		metadataDir: util.MetadataDir(),
	}
}

// NewStoreAt creates a store rooted at an explicit location.
func NewStoreAt(backupsDir, metadataDir string) *Store {
	return &Store{backupsDir: backupsDir, metadataDir: metadataDir}
}

// Snapshot copies the client's config file into the store and records it
// in the index. A missing source file yields nil metadata and no error;
// a client with no config yet has nothing to back up.
func (s *Store) Snapshot(client model.Client, sourcePath, description string) (*Metadata, error) {
	sourceInfo, err := os.Stat(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debug("nothing to back up",
				logging.Client(string(client)),
				logging.Path(sourcePath),
			)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat source %q: %w", sourcePath, err)
	}

	// #nosec G304 - sourcePath comes from the client registry
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %q: %w", sourcePath, err)
	}

	hash := sha256.Sum256(content)
	hashStr := hex.EncodeToString(hash[:])
	id := time.Now().Format("20060102-150405-") + hashStr[:8]

	clientDir := filepath.Join(s.backupsDir, string(client))
	if err := os.MkdirAll(clientDir, DirPerm); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath := filepath.Join(clientDir, id+filepath.Ext(sourcePath))
	if err := os.WriteFile(backupPath, content, FilePerm); err != nil {
		return nil, fmt.Errorf("failed to write backup file: %w", err)
	}

	meta := &Metadata{
		ID:          id,
		Client:      client,
		SourcePath:  sourcePath,
		BackupPath:  backupPath,
		CreatedAt:   time.Now(),
		ModifiedAt:  sourceInfo.ModTime(),
		Hash:        hashStr,
		Size:        sourceInfo.Size(),
		Description: description,
	}

	index, err := s.loadIndex()
	if err != nil {
		return nil, err
	}
	index.Backups[id] = *meta
	if err := s.saveIndex(index); err != nil {
		return nil, err
	}

	logging.Debug("snapshot created",
		logging.Client(string(client)),
		logging.Path(backupPath),
	)
	return meta, nil
}

// Get returns the metadata for a snapshot.
func (s *Store) Get(id string) (*Metadata, error) {
	index, err := s.loadIndex()
	if err != nil {
		return nil, err
	}
	meta, ok := index.Backups[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return &meta, nil
}

// List returns snapshots newest first, filtered to one client when
// client is non-empty.
func (s *Store) List(client model.Client) ([]Metadata, error) {
	index, err := s.loadIndex()
	if err != nil {
		return nil, err
	}

	backups := index.list()
	if client == "" {
		return backups, nil
	}

	filtered := make([]Metadata, 0, len(backups))
	for _, b := range backups {
		if b.Client == client {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// Restore writes a snapshot's content back to a target path, verifying
// the stored hash first. An empty targetPath restores to the original
// source location.
func (s *Store) Restore(id, targetPath string) error {
	meta, err := s.Get(id)
	if err != nil {
		return err
	}
	if targetPath == "" {
		targetPath = meta.SourcePath
	}

	// #nosec G304 - backup path comes from the store's own index
	content, err := os.ReadFile(meta.BackupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	hash := sha256.Sum256(content)
	if hex.EncodeToString(hash[:]) != meta.Hash {
		return &CorruptError{ID: id, Path: meta.BackupPath}
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), DirPerm); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}
	if err := os.WriteFile(targetPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write target file: %w", err)
	}

	logging.Info("snapshot restored",
		logging.Client(string(meta.Client)),
		logging.Path(targetPath),
	)
	return nil
}

// Delete removes a snapshot file and its index entry.
func (s *Store) Delete(id string) error {
	index, err := s.loadIndex()
	if err != nil {
		return err
	}
	meta, ok := index.Backups[id]
	if !ok {
		return &NotFoundError{ID: id}
	}

	if err := os.Remove(meta.BackupPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete backup file: %w", err)
	}
	delete(index.Backups, id)
	return s.saveIndex(index)
}

// Verify checks that a snapshot file is present and matches its recorded
// hash.
func (s *Store) Verify(id string) error {
	meta, err := s.Get(id)
	if err != nil {
		return err
	}

	// #nosec G304 - backup path comes from the store's own index
	content, err := os.ReadFile(meta.BackupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{ID: id}
		}
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	hash := sha256.Sum256(content)
	if hex.EncodeToString(hash[:]) != meta.Hash {
		return &CorruptError{ID: id, Path: meta.BackupPath}
	}
	return nil
}
