// Command boxctl exercises the focusbox hardware by hand: run a lock or
// unlock stroke, read the sensors, or run one presence detection cycle.
package main

import (
	"fmt"
	"os"

	"github.com/SZhOU-c/focusbox/internal/config"
	"github.com/SZhOU-c/focusbox/internal/log"
	"github.com/SZhOU-c/focusbox/pkg/box"
	"github.com/SZhOU-c/focusbox/pkg/hardware"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: boxctl <lock|unlock|distance|reflect|detect>")
	os.Exit(2)
}

func main() {
	if len(os.Args) != 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log.Init(cfg.LogLevel)

	switch os.Args[1] {
	case "lock", "unlock":
		lock, err := hardware.NewMotorLock(hardware.LockConfig{
			LeftDirPin:  cfg.LeftDirPin,
			RightDirPin: cfg.RightDirPin,
			LeftPWMPin:  cfg.LeftPWMPin,
			RightPWMPin: cfg.RightPWMPin,
			Speed:       cfg.LockSpeed,
			RunTime:     cfg.LockRunTime,
		})
		if err != nil {
			fatal(err)
		}
		if os.Args[1] == "lock" {
			err = lock.EngageLock()
		} else {
			// A fresh process starts disengaged; mark it engaged so the
			// unlock stroke actually runs the motors.
			lock.SetEngaged(true)
			err = lock.ReleaseLock()
		}
		if err != nil {
			fatal(err)
		}

	case "distance":
		sonar, err := hardware.NewUltrasonic(cfg.TrigPin, cfg.EchoPin, 0)
		if err != nil {
			fatal(err)
		}
		d, err := sonar.ReadDistance()
		if err != nil {
			fatal(err)
		}
		fmt.Printf("distance: %.2f cm\n", d)

	case "reflect":
		adc, err := hardware.NewGrayscale(cfg.I2CBus, cfg.ADCAddress)
		if err != nil {
			fatal(err)
		}
		defer adc.Close()
		ch, err := adc.ReadReflectance()
		if err != nil {
			fatal(err)
		}
		fmt.Printf("reflectance: %.0f %.0f %.0f\n", ch[0], ch[1], ch[2])

	case "detect":
		var det box.Detector
		if cfg.Sensor == "reflectance" {
			adc, err := hardware.NewGrayscale(cfg.I2CBus, cfg.ADCAddress)
			if err != nil {
				fatal(err)
			}
			defer adc.Close()
			det = &box.ReflectanceDetector{
				Sampler:          adc,
				SampleCount:      cfg.ReflectSamples,
				InterSampleDelay: cfg.ReflectSampleDelay,
				Threshold:        cfg.ReflectThreshold,
				Invert:           cfg.ReflectInvert,
			}
		} else {
			sonar, err := hardware.NewUltrasonic(cfg.TrigPin, cfg.EchoPin, 0)
			if err != nil {
				fatal(err)
			}
			det = &box.DistanceDetector{
				Sampler:          sonar,
				SampleCount:      cfg.DistanceSamples,
				InterSampleDelay: cfg.DistanceSampleDelay,
				Threshold:        cfg.DistanceThresholdCM,
			}
		}
		present, err := det.Detect()
		if err != nil {
			fatal(err)
		}
		fmt.Printf("present: %v\n", present)

	default:
		usage()
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "boxctl:", err)
	os.Exit(1)
}
