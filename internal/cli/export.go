// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export.go - Transcript export command handler for the ultrachat CLI.
//
// Handles "ultrachat export [format]" which writes the stored conversation
// to a file in the current directory.
package cli

import (
	"fmt"

	"github.com/AzizLive1/ultrachat-tui/internal/chat"
	"github.com/AzizLive1/ultrachat-tui/internal/config"
	"github.com/AzizLive1/ultrachat-tui/internal/export"
	"github.com/AzizLive1/ultrachat-tui/internal/session"
)

// RunExport executes the export command.
func RunExport(cfg *config.Config, sessions *session.Manager, controller *chat.Controller, args *Args) error {
	messages := controller.Messages()
	if len(messages) == 0 {
		return fmt.Errorf("no conversation to export")
	}

	user, err := sessions.GetUser()
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	opts := export.DefaultOptions()
	exporter, err := export.ForFormat(args.Subcommand, opts)
	if err != nil {
		return err
	}

	transcript := export.NewTranscript(user, cfg.Gemini.Model, messages)
	path, err := export.ExportToFile(transcript, exporter, opts)
	if err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Println(infoStyle.Render("Exported to ") + commandStyle.Render(path))
	}
	return nil
}
