// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// ANALYTICS TYPES
// =============================================================================

// DailyUsage is one bar of the dashboard usage history.
type DailyUsage struct {
	Date  string `json:"date"` // "2006-01-02"
	Count int    `json:"count"`
}

// AnalyticsData is the single mocked usage record shown on the dashboard.
// It is read-modify-written on every tracked event; LiveUsers is a display
// placeholder, not a real presence count.
type AnalyticsData struct {
	TotalVisits     int          `json:"totalVisits"`
	LiveUsers       int          `json:"liveUsers"`
	UniqueUsers     int          `json:"uniqueUsers"`
	TotalSessions   int          `json:"totalSessions"`
	TotalMessages   int          `json:"totalMessages"`
	AvgResponseTime float64      `json:"avgResponseTime"` // seconds, running mean
	DailyUsage      []DailyUsage `json:"dailyUsage"`
}

// DefaultAnalytics returns the seed record used when nothing is stored yet.
// The values are fixed demo data, not measurements.
func DefaultAnalytics() AnalyticsData {
	return AnalyticsData{
		TotalVisits:     1450,
		LiveUsers:       12,
		UniqueUsers:     342,
		TotalSessions:   890,
		TotalMessages:   4520,
		AvgResponseTime: 1.2,
		DailyUsage: []DailyUsage{
			{Date: "2023-10-01", Count: 400},
			{Date: "2023-10-02", Count: 300},
			{Date: "2023-10-03", Count: 500},
			{Date: "2023-10-04", Count: 800},
			{Date: "2023-10-05", Count: 600},
			{Date: "2023-10-06", Count: 900},
			{Date: "2023-10-07", Count: 1100},
		},
	}
}
