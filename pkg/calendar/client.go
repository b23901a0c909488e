// Package calendar fetches scheduled lock intervals from Google Calendar.
//
// Events whose titles contain the focus or sleep keyword become
// box.Interval values, normalized to the configured location. The
// OAuth2 token is cached on disk next to the daemon; the first run
// walks the manual authorization flow on the terminal.
package calendar

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarv3 "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Config configures the calendar client.
type Config struct {
	// CredentialsFile is the OAuth client secret downloaded from
	// Google Cloud.
	CredentialsFile string

	// TokenFile caches the user token between runs.
	TokenFile string

	// CalendarID defaults to "primary".
	CalendarID string
}

// Client wraps the Calendar API service.
type Client struct {
	svc        *calendarv3.Service
	calendarID string
	logger     *slog.Logger
}

// NewClient authenticates and builds a Calendar API client. A cached
// token is refreshed transparently; with no cached token the terminal
// authorization flow runs once and the result is saved.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.CalendarID == "" {
		cfg.CalendarID = "primary"
	}

	b, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("calendar: read credentials: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, calendarv3.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("calendar: parse credentials: %w", err)
	}

	tok, err := tokenFromFile(cfg.TokenFile)
	if err != nil {
		tok, err = tokenFromTerminal(ctx, oauthCfg)
		if err != nil {
			return nil, err
		}
		if err := saveToken(cfg.TokenFile, tok); err != nil {
			slog.Warn("could not cache oauth token", "path", cfg.TokenFile, "error", err)
		}
	}

	svc, err := calendarv3.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("calendar: build service: %w", err)
	}

	return &Client{
		svc:        svc,
		calendarID: cfg.CalendarID,
		logger:     slog.Default().With("component", "calendar"),
	}, nil
}

// Events fetches single-instance events in [timeMin, timeMax), ordered
// by start time.
func (c *Client) Events(ctx context.Context, timeMin, timeMax time.Time) ([]*calendarv3.Event, error) {
	res, err := c.svc.Events.List(c.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: list events: %w", err)
	}
	c.logger.Debug("fetched calendar events", "count", len(res.Items))
	return res.Items, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// tokenFromTerminal runs the out-of-band authorization flow: print the
// consent URL, read the code back from stdin, exchange it.
func tokenFromTerminal(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	url := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Visit the URL below, authorize focusbox, then paste the code:\n%s\n> ", url)

	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("calendar: read auth code: %w", err)
	}

	tok, err := cfg.Exchange(ctx, trimNewline(code))
	if err != nil {
		return nil, fmt.Errorf("calendar: exchange auth code: %w", err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
