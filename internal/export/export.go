// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts to shareable formats.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AzizLive1/ultrachat-tui/internal/model"
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript is the exportable view of a conversation.
type Transcript struct {
	User     *model.User      `json:"user,omitempty"`
	Model    string           `json:"model"`
	Messages []*model.Message `json:"messages"`
	Exported time.Time        `json:"exported"`
}

// NewTranscript assembles a transcript from the live conversation.
func NewTranscript(user *model.User, modelName string, messages []*model.Message) *Transcript {
	return &Transcript{
		User:     user,
		Model:    modelName,
		Messages: messages,
		Exported: time.Now(),
	}
}

// =============================================================================
// EXPORTERS
// =============================================================================

// Exporter converts a transcript to one output format.
type Exporter interface {
	Export(t *Transcript) ([]byte, error)
	FileExtension() string
}

// ForFormat returns the exporter for a format name.
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch format {
	case "", "markdown", "md":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(), nil
	case "html":
		return NewHTMLExporter(opts), nil
	default:
		return nil, fmt.Errorf("unknown export format: %s (want markdown, json, or html)", format)
	}
}

// Options configures export output.
type Options struct {
	// OutputDir is where files are written. Default: current directory.
	OutputDir string

	// IncludeTimestamps includes per-message clock times.
	IncludeTimestamps bool

	// Title overrides the generated document title.
	Title string
}

// DefaultOptions returns the default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeTimestamps: true,
	}
}

// ExportToFile writes the transcript and returns the output path.
func ExportToFile(t *Transcript, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(t.Messages) == 0 {
		return "", fmt.Errorf("nothing to export")
	}

	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	filename := fmt.Sprintf("chat_%s%s",
		t.Exported.Format("20060102_150405"),
		exporter.FileExtension(),
	)
	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := os.WriteFile(outputPath, content, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outputPath, nil
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// title returns the document title, derived from the first user message when
// not set explicitly.
func (t *Transcript) title(opts *Options) string {
	if opts != nil && opts.Title != "" {
		return opts.Title
	}
	for _, msg := range t.Messages {
		if msg.Role == model.RoleUser && msg.Content != "" {
			s := msg.Content
			if len(s) > 60 {
				s = s[:60] + "..."
			}
			return strings.ReplaceAll(s, "\n", " ")
		}
	}
	return "Ultra Chat conversation"
}

// roleLabel names a message author for display.
func (t *Transcript) roleLabel(role model.Role) string {
	if role == model.RoleUser {
		if t.User != nil {
			return t.User.FullName()
		}
		return "You"
	}
	return "Assistant"
}

// clockTime renders a message timestamp for display, empty for the zero time.
func clockTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format("2006-01-02 15:04")
}
