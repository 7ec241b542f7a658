// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the ultrachat CLI.
//
// Handles "ultrachat chat" which provides a line-oriented REPL over the same
// conversation engine the TUI uses. The transcript persists between runs.
//
// Interactive commands:
//   /help, /h       Show available commands
//   /clear, /c      Clear the conversation
//   /history        Show the conversation so far
//   /quit, /q       Exit chat
//   Ctrl+D          Exit chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/AzizLive1/ultrachat-tui/internal/chat"
	"github.com/AzizLive1/ultrachat-tui/internal/config"
	"github.com/AzizLive1/ultrachat-tui/internal/model"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with history loaded from the config directory.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.loadHistory()
	return c
}

func (c *ChatCLI) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

func (c *ChatCLI) saveHistory() {
	if f, err := os.Create(c.historyFile); err == nil {
		_, _ = c.line.WriteHistory(f)
		f.Close()
	}
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.saveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT LOOP
// =============================================================================

// RunChat executes the interactive chat command.
func RunChat(ctx context.Context, controller *chat.Controller, args *Args) error {
	cli := NewChatCLI()
	defer cli.Close()

	if !args.Quiet {
		printWelcome(len(controller.Messages()))
	}

	for {
		input, err := cli.line.Prompt(promptStyle.Render("you> "))
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			continue
		case errors.Is(err, io.EOF):
			fmt.Println()
			return nil
		case err != nil:
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		cli.line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := handleSlashCommand(input, controller); quit {
				return nil
			}
			continue
		}

		if err := controller.Send(ctx, input); err != nil {
			fmt.Println(warningStyle.Render(err.Error()))
			continue
		}
		if err := streamReply(controller); err != nil {
			fmt.Println(warningStyle.Render(err.Error()))
		}
	}
}

// streamReply prints fragments as they arrive until the reply settles.
func streamReply(controller *chat.Controller) error {
	for event := range controller.Events() {
		switch event.Kind {
		case chat.EventFragment:
			fmt.Print(event.Fragment)
		case chat.EventCompleted:
			fmt.Println()
			return nil
		case chat.EventFailed:
			fmt.Println()
			if event.Err != nil {
				return describeCompletionError(event.Err)
			}
			return errors.New("request failed")
		}
	}
	return errors.New("conversation closed")
}

func printWelcome(restored int) {
	fmt.Println(welcomeStyle.Render("Ultra Chat"))
	if restored > 0 {
		fmt.Println(infoStyle.Render(fmt.Sprintf("Restored %d messages. Type /help for commands.", restored)))
	} else {
		fmt.Println(infoStyle.Render("Type a message to start, /help for commands."))
	}
	fmt.Println()
}

// handleSlashCommand runs an interactive command. Returns true to quit.
func handleSlashCommand(input string, controller *chat.Controller) bool {
	switch strings.Fields(input)[0] {
	case "/quit", "/q", "/exit":
		return true

	case "/clear", "/c":
		controller.Reset()
		fmt.Println(infoStyle.Render("Conversation cleared."))

	case "/history":
		printHistory(controller.Messages())

	case "/help", "/h":
		fmt.Println(commandStyle.Render("/clear") + infoStyle.Render("    clear the conversation"))
		fmt.Println(commandStyle.Render("/history") + infoStyle.Render("  show the conversation so far"))
		fmt.Println(commandStyle.Render("/quit") + infoStyle.Render("     exit chat"))

	default:
		fmt.Println(warningStyle.Render("Unknown command. Type /help for commands."))
	}
	return false
}

func printHistory(messages []*model.Message) {
	if len(messages) == 0 {
		fmt.Println(infoStyle.Render("No messages yet."))
		return
	}
	for _, msg := range messages {
		label := "you"
		style := promptStyle
		if msg.Role == model.RoleAssistant {
			label = "ai"
			style = commandStyle
		}
		fmt.Printf("%s %s\n", style.Render(label+">"), msg.Content)
	}
}
