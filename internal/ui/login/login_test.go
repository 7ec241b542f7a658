// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzizLive1/ultrachat-tui/internal/model"
	"github.com/AzizLive1/ultrachat-tui/internal/ui/styles"
)

func newTestModel() Model {
	return New(styles.NewTheme(model.ThemeLight))
}

func pressEnter(m Model) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSubmitRequiresNames(t *testing.T) {
	m := newTestModel()
	m.focus = fieldAvatarPath

	m, cmd := pressEnter(m)
	assert.Nil(t, cmd)
	assert.False(t, m.Submitting())
	assert.Equal(t, "First and last name are required", m.Err())
}

func TestSubmitTrimsWhitespaceOnlyNames(t *testing.T) {
	m := newTestModel()
	m.inputs[fieldFirstName].SetValue("   ")
	m.inputs[fieldLastName].SetValue("Lovelace")
	m.focus = fieldAvatarPath

	m, _ = pressEnter(m)
	assert.False(t, m.Submitting())
	assert.NotEmpty(t, m.Err())
}

func TestSubmitStartsDelay(t *testing.T) {
	m := newTestModel()
	m.inputs[fieldFirstName].SetValue("Ada")
	m.inputs[fieldLastName].SetValue("Lovelace")
	m.focus = fieldAvatarPath

	m, cmd := pressEnter(m)
	assert.True(t, m.Submitting())
	assert.Empty(t, m.Err())
	assert.NotNil(t, cmd, "submit schedules the simulated delay")
}

func TestSubmitRejectsBadAvatar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avatar.gif")
	require.NoError(t, os.WriteFile(path, []byte("GIF89a\x01\x00\x01\x00"), 0o644))

	m := newTestModel()
	m.inputs[fieldFirstName].SetValue("Ada")
	m.inputs[fieldLastName].SetValue("Lovelace")
	m.inputs[fieldAvatarPath].SetValue(path)
	m.focus = fieldAvatarPath

	m, _ = pressEnter(m)
	assert.False(t, m.Submitting())
	assert.Contains(t, m.Err(), "Avatar")
}

func TestDelayElapsedProducesDoneMsg(t *testing.T) {
	user := model.NewUser("Ada", "Lovelace", "")

	m := newTestModel()
	m, cmd := m.Update(delayElapsedMsg{user: user})
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(DoneMsg)
	require.True(t, ok)
	assert.Equal(t, user, done.User)
	_ = m
}

func TestEnterAdvancesFocus(t *testing.T) {
	m := newTestModel()
	require.Equal(t, fieldFirstName, m.focus)

	m, _ = pressEnter(m)
	assert.Equal(t, fieldLastName, m.focus)

	m, _ = pressEnter(m)
	assert.Equal(t, fieldAvatarPath, m.focus)
}

func TestKeysFrozenWhileSubmitting(t *testing.T) {
	m := newTestModel()
	m.submitting = true

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Nil(t, cmd)
	assert.Equal(t, fieldFirstName, m.focus)
}

func TestViewRenders(t *testing.T) {
	m := newTestModel()
	out := m.View()
	assert.Contains(t, out, "Ultra Chat")
	assert.Contains(t, out, "First name")
}
