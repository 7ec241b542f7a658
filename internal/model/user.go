// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for users, messages, analytics
// and themes.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// USER TYPE
// =============================================================================

// User is the display profile collected at login. It is created once,
// immutable afterwards, and destroyed on logout. There is no server-side
// account behind it.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"avatarUrl"` // inline data: URL
	CreatedAt string `json:"createdAt"` // RFC 3339
}

// NewUser creates a user profile with a fresh opaque ID.
func NewUser(firstName, lastName, avatarURL string) *User {
	return &User{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		AvatarURL: avatarURL,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
}

// FullName returns "First Last".
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Initials returns up to two upper-cased initials for avatar fallbacks.
func (u *User) Initials() string {
	var b strings.Builder
	for _, name := range []string{u.FirstName, u.LastName} {
		r := []rune(strings.TrimSpace(name))
		if len(r) > 0 {
			b.WriteString(strings.ToUpper(string(r[0])))
		}
	}
	return b.String()
}
