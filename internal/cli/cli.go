// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for ultrachat.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdDashboard
	CmdExport
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	Model   string
	Plain   bool // disable markdown rendering for ask output

	// Command-specific
	Query      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `ultrachat - terminal chat client for Gemini

Ultra Chat is a streaming AI chat client for the terminal.

It provides:
  - Streaming chat with the Gemini API
  - A full-screen TUI with login, chat, and analytics screens
  - Persistent transcripts and usage analytics
  - Light and dark themes

Usage:
  ultrachat                    Start TUI (default)
  ultrachat ask "question"     Ask a single question
  ultrachat chat               Interactive chat in the shell
  ultrachat dashboard          Print the analytics dashboard
  ultrachat export [format]    Export the transcript (markdown, json, html)
  ultrachat config [show|get|set|path]  Configuration
  ultrachat version            Show version
  ultrachat help               Show this help

Flags:
  -m, --model NAME    Use a specific model (overrides config)
  --plain             Plain text output (no markdown rendering)
  -q, --quiet         Minimal output
  -v, --verbose       Verbose output

Environment:
  GEMINI_API_KEY      API key for the Gemini API
  ULTRACHAT_CONFIG    Path to an alternate config file

Examples:
  ultrachat ask "What is a goroutine?"
  ultrachat ask --model gemini-3-pro-preview "Explain context.Context"
  ultrachat config set ui.theme dark
  ultrachat dashboard
`

// Parse parses os.Args style arguments into a command and its Args.
func Parse(argv []string) (Command, *Args, error) {
	args := &Args{}

	rest := make([]string, 0, len(argv))
	i := 0
	for i < len(argv) {
		arg := argv[i]
		switch arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--plain":
			args.Plain = true
		case "-m", "--model":
			if i+1 >= len(argv) {
				return CmdHelp, nil, fmt.Errorf("%s requires a value", arg)
			}
			i++
			args.Model = argv[i]
		default:
			if strings.HasPrefix(arg, "--model=") {
				args.Model = strings.TrimPrefix(arg, "--model=")
			} else {
				rest = append(rest, arg)
			}
		}
		i++
	}

	if len(rest) == 0 {
		return CmdTUI, args, nil
	}

	cmd := rest[0]
	args.Raw = rest[1:]

	switch cmd {
	case "ask":
		if len(args.Raw) == 0 {
			return CmdAsk, nil, fmt.Errorf("ask requires a question")
		}
		args.Query = strings.Join(args.Raw, " ")
		return CmdAsk, args, nil

	case "chat":
		return CmdChat, args, nil

	case "dashboard", "dash", "stats":
		return CmdDashboard, args, nil

	case "export":
		if len(args.Raw) > 0 {
			args.Subcommand = args.Raw[0]
		}
		return CmdExport, args, nil

	case "config":
		if len(args.Raw) > 0 {
			args.Subcommand = args.Raw[0]
		}
		if len(args.Raw) > 1 {
			args.ConfigKey = args.Raw[1]
		}
		if len(args.Raw) > 2 {
			args.ConfigVal = strings.Join(args.Raw[2:], " ")
		}
		return CmdConfig, args, nil

	case "version", "-V", "--version":
		return CmdVersion, args, nil

	case "help", "-h", "--help":
		return CmdHelp, args, nil

	default:
		return CmdHelp, nil, fmt.Errorf("unknown command: %s", cmd)
	}
}

// PrintUsage writes the usage text to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion writes version information to stdout.
func PrintVersion() {
	fmt.Printf("ultrachat %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Fatalf prints an error to stderr and exits with status 1.
func Fatalf(format string, a ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+fmt.Sprintf(format, a...))
	os.Exit(1)
}
