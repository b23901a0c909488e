// Command focusbox runs the phone lockbox daemon: it polls Google
// Calendar for FOCUS/SLEEP blocks, drives the lock state machine on a
// fixed tick, and serves telemetry over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SZhOU-c/focusbox/internal/config"
	"github.com/SZhOU-c/focusbox/internal/log"
	"github.com/SZhOU-c/focusbox/pkg/audio"
	"github.com/SZhOU-c/focusbox/pkg/box"
	"github.com/SZhOU-c/focusbox/pkg/calendar"
	"github.com/SZhOU-c/focusbox/pkg/hardware"
	"github.com/SZhOU-c/focusbox/pkg/web"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	lock, err := hardware.NewMotorLock(hardware.LockConfig{
		LeftDirPin:  cfg.LeftDirPin,
		RightDirPin: cfg.RightDirPin,
		LeftPWMPin:  cfg.LeftPWMPin,
		RightPWMPin: cfg.RightPWMPin,
		Speed:       cfg.LockSpeed,
		RunTime:     cfg.LockRunTime,
	})
	if err != nil {
		log.Error("lock init failed", "error", err)
		os.Exit(1)
	}

	detector, err := buildDetector(cfg)
	if err != nil {
		log.Error("sensor init failed", "error", err)
		os.Exit(1)
	}

	machine := box.NewMachine(lock, detector, audio.NewPlayer(cfg.PlayerCommand), box.Config{
		PollPeriod:      cfg.PollPeriod,
		RequirePresence: cfg.RequirePresence,
		WaitCue:         cfg.WaitCue,
		ConfirmedCue:    cfg.ConfirmedCue,
		ReleasedCue:     cfg.ReleasedCue,
	})

	cal, err := calendar.NewClient(ctx, calendar.Config{
		CredentialsFile: cfg.CredentialsFile,
		TokenFile:       cfg.TokenFile,
		CalendarID:      cfg.CalendarID,
	})
	if err != nil {
		log.Error("calendar init failed", "error", err)
		os.Exit(1)
	}

	srv := web.NewServer(cfg.WebPort, machine)
	go func() {
		if err := srv.Start(); err != nil {
			log.Error("telemetry server stopped", "error", err)
		}
	}()

	log.Info("focusbox started",
		"tz", cfg.Timezone,
		"sensor", cfg.Sensor,
		"tick", cfg.TickInterval,
		"refresh", cfg.RefreshInterval)

	run(ctx, cfg, loc, machine, cal)

	// Leave the box open on the way out
	_ = srv.Shutdown()
	if err := lock.ReleaseLock(); err != nil {
		log.Error("final unlock failed, lid may be stuck closed", "error", err)
	}
}

// run drives the tick loop until ctx is canceled.
func run(ctx context.Context, cfg *config.Config, loc *time.Location, machine *box.Machine, cal *calendar.Client) {
	keywords := calendar.KeywordConfig{Focus: cfg.FocusKeyword, Sleep: cfg.SleepKeyword}

	var intervals []box.Interval
	var lastFetch time.Time

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case tick := <-ticker.C:
			now := tick.In(loc)

			if lastFetch.IsZero() || now.Sub(lastFetch) > cfg.RefreshInterval {
				dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
				events, err := cal.Events(ctx, dayStart, dayStart.AddDate(0, 0, 1))
				if err != nil {
					// Keep driving the machine on the stale schedule
					log.Error("calendar refresh failed", "error", err)
				} else {
					intervals = calendar.BuildIntervals(events, loc, keywords)
					if next, ok := box.NextStart(now, intervals); ok {
						log.Info("next block", "interval", next.String())
					}
				}
				lastFetch = now
			}

			if err := machine.Update(now, intervals); err != nil {
				log.Error("update failed", "error", err)
			}
		}
	}
}

// buildDetector assembles the configured presence strategy.
func buildDetector(cfg *config.Config) (box.Detector, error) {
	switch cfg.Sensor {
	case "reflectance":
		adc, err := hardware.NewGrayscale(cfg.I2CBus, cfg.ADCAddress)
		if err != nil {
			return nil, err
		}
		return &box.ReflectanceDetector{
			Sampler:          adc,
			SampleCount:      cfg.ReflectSamples,
			InterSampleDelay: cfg.ReflectSampleDelay,
			Threshold:        cfg.ReflectThreshold,
			Invert:           cfg.ReflectInvert,
		}, nil
	default: // ultrasonic
		sonar, err := hardware.NewUltrasonic(cfg.TrigPin, cfg.EchoPin, 0)
		if err != nil {
			return nil, err
		}
		return &box.DistanceDetector{
			Sampler:          sonar,
			SampleCount:      cfg.DistanceSamples,
			InterSampleDelay: cfg.DistanceSampleDelay,
			Threshold:        cfg.DistanceThresholdCM,
		}, nil
	}
}
