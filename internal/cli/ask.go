// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command handler for the ultrachat CLI.
//
// Handles "ultrachat ask" which sends one question to the model and prints
// the reply. When stdout is a terminal the reply is rendered as markdown.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/AzizLive1/ultrachat-tui/internal/gemini"
)

// askTimeout bounds a single non-interactive question.
const askTimeout = 2 * time.Minute

// RunAsk executes the ask command.
func RunAsk(ctx context.Context, client *gemini.Client, args *Args) error {
	ctx, cancel := context.WithTimeout(ctx, askTimeout)
	defer cancel()

	if !args.Quiet {
		fmt.Fprintln(os.Stderr, infoStyle.Render("thinking..."))
	}

	reply, err := client.Complete(ctx, nil, args.Query)
	if err != nil {
		return describeCompletionError(err)
	}

	if args.Plain || !stdoutIsTerminal() {
		fmt.Println(reply)
		return nil
	}

	rendered, err := renderMarkdown(reply)
	if err != nil {
		// Rendering trouble should never eat the reply.
		fmt.Println(reply)
		return nil
	}
	fmt.Print(rendered)
	return nil
}

// describeCompletionError maps API errors onto actionable messages.
func describeCompletionError(err error) error {
	switch {
	case gemini.IsAuthError(err):
		return fmt.Errorf("authentication failed: set GEMINI_API_KEY or run 'ultrachat config set gemini.api_key <key>'")
	case gemini.IsQuotaError(err):
		return fmt.Errorf("quota exceeded: the API rejected the request, try again later")
	default:
		return err
	}
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// renderMarkdown renders a reply for terminal display.
func renderMarkdown(text string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWidth()),
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}

// terminalWidth returns the usable render width, capped for readability.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	if width > 100 {
		return 100
	}
	return width
}
