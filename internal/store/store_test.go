// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract runs the behavior every backend must share.
func storeContract(t *testing.T, s Store) {
	t.Helper()

	// Absent key on first run.
	v, ok, err := s.Get("ultra_chat_user")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)

	// Set then get.
	require.NoError(t, s.Set("ultra_chat_user", []byte(`{"id":"u1"}`)))
	v, ok, err = s.Get("ultra_chat_user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"id":"u1"}`, string(v))

	// Overwrite.
	require.NoError(t, s.Set("ultra_chat_user", []byte(`{"id":"u2"}`)))
	v, _, err = s.Get("ultra_chat_user")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"u2"}`, string(v))

	// Delete, then delete again (idempotent).
	require.NoError(t, s.Delete("ultra_chat_user"))
	_, ok, err = s.Get("ultra_chat_user")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, s.Delete("ultra_chat_user"))

	// Independent keys.
	require.NoError(t, s.Set("a", []byte("1")))
	require.NoError(t, s.Set("b", []byte("2")))
	va, _, _ := s.Get("a")
	vb, _, _ := s.Get("b")
	assert.Equal(t, "1", string(va))
	assert.Equal(t, "2", string(vb))
}

func TestMemStore(t *testing.T) {
	storeContract(t, NewMemStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStoreWithDir(t.TempDir())
	require.NoError(t, err)
	storeContract(t, s)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s1, err := NewFileStoreWithDir(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Set("theme", []byte(`"dark"`)))

	s2, err := NewFileStoreWithDir(dir)
	require.NoError(t, err)
	v, ok, err := s2.Get("theme")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"dark"`, string(v))
}

func TestFileStoreKeyCannotEscapeBaseDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStoreWithDir(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("../evil", []byte("x")))
	v, ok, err := s.Get("../evil")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "x", string(v))
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "ultrachat.db"))
	require.NoError(t, err)
	defer s.Close()
	storeContract(t, s)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ultrachat.db")

	s1, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s1.Set("theme", []byte(`"dark"`)))
	require.NoError(t, s1.Close())

	s2, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s2.Close()
	v, ok, err := s2.Get("theme")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"dark"`, string(v))
}

func TestMemStoreReturnsCopies(t *testing.T) {
	s := NewMemStore()
	require.NoError(t, s.Set("k", []byte("abc")))

	v, _, _ := s.Get("k")
	v[0] = 'X'

	v2, _, _ := s.Get("k")
	assert.Equal(t, "abc", string(v2))
}
