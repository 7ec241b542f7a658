// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strconv"

	"github.com/mattn/go-runewidth"
)

// TruncateRunes truncates a string to a maximum number of runes.
// Counts characters, not bytes, so UTF-8 text is never split mid-character.
// If the string is truncated, "..." is appended.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// PadRight pads a string with spaces to the given display width.
// Uses terminal cell width so CJK and emoji columns line up.
func PadRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	for i := 0; i < width-w; i++ {
		s += " "
	}
	return s
}

// PadLeft pads a string with spaces on the left to the given display width.
func PadLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	for i := 0; i < width-w; i++ {
		s = " " + s
	}
	return s
}

// FormatInt formats an integer with thousands separators ("4,520").
func FormatInt(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// FormatSeconds formats a duration in seconds with two decimals ("1.20s").
func FormatSeconds(secs float64) string {
	return strconv.FormatFloat(secs, 'f', 2, 64) + "s"
}
