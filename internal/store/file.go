// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/AzizLive1/ultrachat-tui/internal/util"
)

// =============================================================================
// FILE STORE
// =============================================================================

// FileStore is the long-lived Store: one JSON file per key under a base
// directory (default ~/.ultrachat/store/). Writes are atomic with fsync so a
// crash never leaves a half-written value.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a file store rooted at the default directory.
func NewFileStore() (*FileStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewFileStoreWithDir(filepath.Join(homeDir, ".ultrachat", "store"))
}

// NewFileStoreWithDir creates a file store rooted at baseDir.
func NewFileStoreWithDir(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{baseDir: baseDir}, nil
}

// BaseDir returns the directory holding the store files.
func (s *FileStore) BaseDir() string {
	return s.baseDir
}

// Get returns the stored value for key, if any.
func (s *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set stores value under key, overwriting any existing value.
func (s *FileStore) Set(key string, value []byte) error {
	return util.AtomicWriteFile(s.path(key), value, 0600)
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// path maps a key to its file. Keys are fixed application constants, but
// separators are stripped anyway so a key can never escape the base dir.
func (s *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.baseDir, safe+".json")
}
