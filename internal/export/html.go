// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/AzizLive1/ultrachat-tui/internal/model"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter writes transcripts as standalone HTML pages.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates an HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

var htmlPage = template.Must(template.New("transcript").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 48rem;
         margin: 2rem auto; padding: 0 1rem; background: #111827; color: #e5e7eb; }
  h1 { font-size: 1.4rem; border-bottom: 1px solid #374151; padding-bottom: .5rem; }
  .meta { color: #9ca3af; font-size: .85rem; margin-bottom: 2rem; }
  .msg { margin: 1rem 0; padding: .75rem 1rem; border-radius: .75rem; white-space: pre-wrap; }
  .user { background: #4f46e5; color: #fff; margin-left: 20%; }
  .assistant { background: #1f2937; margin-right: 20%; }
  .who { font-size: .75rem; color: #9ca3af; margin-bottom: .25rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">{{.Model}} · {{.Count}} messages · exported {{.Exported}}</div>
{{range .Messages}}<div class="msg {{.Class}}"><div class="who">{{.Who}}{{if .Clock}} · {{.Clock}}{{end}}</div>{{.Content}}</div>
{{end}}</body>
</html>
`))

type htmlMessage struct {
	Class   string
	Who     string
	Clock   string
	Content string
}

// Export converts a transcript to a standalone HTML page.
func (e *HTMLExporter) Export(t *Transcript) ([]byte, error) {
	if t == nil || len(t.Messages) == 0 {
		return nil, fmt.Errorf("transcript has no messages")
	}

	msgs := make([]htmlMessage, 0, len(t.Messages))
	for _, msg := range t.Messages {
		class := "assistant"
		if msg.Role == model.RoleUser {
			class = "user"
		}
		clock := ""
		if e.options.IncludeTimestamps {
			clock = clockTime(msg.Timestamp)
		}
		msgs = append(msgs, htmlMessage{
			Class:   class,
			Who:     t.roleLabel(msg.Role),
			Clock:   clock,
			Content: msg.Content,
		})
	}

	var buf bytes.Buffer
	err := htmlPage.Execute(&buf, map[string]any{
		"Title":    t.title(e.options),
		"Model":    t.Model,
		"Count":    len(t.Messages),
		"Exported": t.Exported.Format("2006-01-02 15:04"),
		"Messages": msgs,
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// FileExtension returns ".html".
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}
