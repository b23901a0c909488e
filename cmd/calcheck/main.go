// Command calcheck fetches today's calendar events and prints both the
// raw entries and the FOCUS/SLEEP intervals built from them. Useful for
// verifying credentials and keyword matching before running the daemon.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/SZhOU-c/focusbox/internal/config"
	"github.com/SZhOU-c/focusbox/internal/log"
	"github.com/SZhOU-c/focusbox/pkg/calendar"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log.Init(cfg.LogLevel)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Error("unknown timezone", "tz", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	cal, err := calendar.NewClient(ctx, calendar.Config{
		CredentialsFile: cfg.CredentialsFile,
		TokenFile:       cfg.TokenFile,
		CalendarID:      cfg.CalendarID,
	})
	if err != nil {
		log.Error("calendar init failed", "error", err)
		os.Exit(1)
	}

	now := time.Now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	fmt.Printf("Querying %s events between %s and %s\n\n", cfg.CalendarID, dayStart, dayEnd)

	events, err := cal.Events(ctx, dayStart, dayEnd)
	if err != nil {
		log.Error("fetch failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("=== RAW EVENTS (%d) ===\n", len(events))
	for i, e := range events {
		start, end := "?", "?"
		if e.Start != nil {
			start = e.Start.DateTime + e.Start.Date
		}
		if e.End != nil {
			end = e.End.DateTime + e.End.Date
		}
		fmt.Printf("[%02d] %s\n      %s → %s\n", i, e.Summary, start, end)
	}

	keywords := calendar.KeywordConfig{Focus: cfg.FocusKeyword, Sleep: cfg.SleepKeyword}
	intervals := calendar.BuildIntervals(events, loc, keywords)

	fmt.Printf("\n=== LOCK INTERVALS (%d) ===\n", len(intervals))
	for _, iv := range intervals {
		fmt.Println("-", iv.String())
	}
}
