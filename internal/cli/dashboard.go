// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// dashboard.go - Analytics dashboard command handler for the ultrachat CLI.
//
// Handles "ultrachat dashboard" which prints the stored usage analytics as
// plain shell output, for scripts or a quick look without the TUI.
package cli

import (
	"fmt"
	"strings"

	"github.com/AzizLive1/ultrachat-tui/internal/analytics"
	"github.com/AzizLive1/ultrachat-tui/internal/util"
)

const dashboardBarWidth = 30

// RunDashboard executes the dashboard command.
func RunDashboard(agg *analytics.Aggregator, args *Args) error {
	data, err := agg.GetAnalytics()
	if err != nil {
		return fmt.Errorf("load analytics: %w", err)
	}

	fmt.Println(headerStyle.Render("Analytics Dashboard"))
	fmt.Println()

	printStat("Total Visits", util.FormatInt(data.TotalVisits))
	printStat("Live Users", util.FormatInt(data.LiveUsers))
	printStat("Unique Users", util.FormatInt(data.UniqueUsers))
	printStat("Sessions", util.FormatInt(data.TotalSessions))
	printStat("Messages", util.FormatInt(data.TotalMessages))
	printStat("Avg Response", util.FormatSeconds(data.AvgResponseTime))

	if len(data.DailyUsage) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Daily Usage"))

	maxCount := 0
	for _, day := range data.DailyUsage {
		if day.Count > maxCount {
			maxCount = day.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, day := range data.DailyUsage {
		filled := day.Count * dashboardBarWidth / maxCount
		bar := strings.Repeat("█", filled) + strings.Repeat("░", dashboardBarWidth-filled)
		fmt.Printf("  %s  %s  %s\n",
			infoStyle.Render(day.Date),
			commandStyle.Render(bar),
			util.FormatInt(day.Count),
		)
	}
	return nil
}

func printStat(label, value string) {
	fmt.Printf("  %s %s\n", infoStyle.Render(util.PadRight(label+":", 15)), value)
}
