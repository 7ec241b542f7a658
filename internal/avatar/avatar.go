// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package avatar turns profile images into data URLs for storage inline with
// the user record.
package avatar

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
)

// Accepted image types, by sniffed content type.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ErrUnsupportedType is returned for images that are not JPEG, PNG or WebP.
var ErrUnsupportedType = fmt.Errorf("unsupported image type (want JPEG, PNG or WebP)")

// DataURL validates raw image bytes and encodes them as a data URL. The
// content type comes from sniffing the bytes, never from a file extension.
// No size limit is enforced; the encoded avatar is stored inline with the
// user record, however large.
func DataURL(data []byte) (string, error) {
	contentType := http.DetectContentType(data)
	if !allowedTypes[contentType] {
		return "", ErrUnsupportedType
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// FromFile reads an image file and encodes it as a data URL.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read avatar: %w", err)
	}
	return DataURL(data)
}
