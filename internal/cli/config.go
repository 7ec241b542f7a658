// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Configuration command handler for the ultrachat CLI.
//
// Handles "ultrachat config" with the show, get, set, and path subcommands.
package cli

import (
	"fmt"

	"github.com/AzizLive1/ultrachat-tui/internal/config"
)

// RunConfig executes the config command.
func RunConfig(cfg *config.Config, args *Args) error {
	switch args.Subcommand {
	case "", "show":
		fmt.Println(cfg.String())
		return nil

	case "get":
		if args.ConfigKey == "" {
			return fmt.Errorf("config get requires a key, e.g. 'ultrachat config get ui.theme'")
		}
		value, err := cfg.Get(args.ConfigKey)
		if err != nil {
			return err
		}
		fmt.Println(value)
		return nil

	case "set":
		if args.ConfigKey == "" || args.ConfigVal == "" {
			return fmt.Errorf("config set requires a key and a value, e.g. 'ultrachat config set ui.theme dark'")
		}
		updated := cfg.Clone()
		if err := updated.Set(args.ConfigKey, args.ConfigVal); err != nil {
			return err
		}
		if err := updated.Validate(); err != nil {
			return err
		}
		if err := config.Save(updated); err != nil {
			return err
		}
		fmt.Println(commandStyle.Render(args.ConfigKey) + infoStyle.Render(" = ") + args.ConfigVal)
		return nil

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil

	case "keys":
		for _, key := range config.GetAllKeys() {
			fmt.Println(key)
		}
		return nil

	default:
		return fmt.Errorf("unknown config subcommand: %s (want show, get, set, path, or keys)", args.Subcommand)
	}
}
