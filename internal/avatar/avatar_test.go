// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package avatar

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, []byte("JFIF")...)
	pngBytes  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 13}
	webpBytes = append([]byte("RIFF\x24\x00\x00\x00WEBPVP8 "), make([]byte, 8)...)
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00")
)

func TestDataURL(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantType string
	}{
		{"jpeg", jpegBytes, "image/jpeg"},
		{"png", pngBytes, "image/png"},
		{"webp", webpBytes, "image/webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := DataURL(tt.data)
			require.NoError(t, err)

			prefix := "data:" + tt.wantType + ";base64,"
			require.True(t, strings.HasPrefix(url, prefix), "got %q", url)

			decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
			require.NoError(t, err)
			assert.True(t, bytes.Equal(tt.data, decoded))
		})
	}
}

func TestDataURLRejectsOtherTypes(t *testing.T) {
	_, err := DataURL(gifBytes)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = DataURL([]byte("just some text"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDataURLAcceptsLargeImages(t *testing.T) {
	big := make([]byte, 12<<20)
	copy(big, jpegBytes)

	url, err := DataURL(big)
	require.NoError(t, err, "no size limit is enforced")
	assert.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "avatar.png")
	require.NoError(t, os.WriteFile(path, pngBytes, 0o644))

	url, err := FromFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}
