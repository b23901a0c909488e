// Package config provides environment-backed configuration for focusbox.
// A .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable the daemon and tools read at startup.
type Config struct {
	// General
	LogLevel string
	Timezone string

	// Calendar
	CalendarID      string
	CredentialsFile string
	TokenFile       string
	FocusKeyword    string
	SleepKeyword    string
	RefreshInterval time.Duration

	// Core machine
	TickInterval    time.Duration
	PollPeriod      time.Duration
	RequirePresence bool

	// Presence sensor
	Sensor              string // "ultrasonic" or "reflectance"
	DistanceThresholdCM float64
	DistanceSamples     int
	DistanceSampleDelay time.Duration
	ReflectThreshold    float64
	ReflectSamples      int
	ReflectSampleDelay  time.Duration
	ReflectInvert       bool

	// Lock motors
	LeftDirPin  string
	RightDirPin string
	LeftPWMPin  string
	RightPWMPin string
	LockSpeed   int
	LockRunTime time.Duration

	// Ultrasonic pins
	TrigPin string
	EchoPin string

	// Reflectance ADC
	I2CBus     string
	ADCAddress uint16

	// Audio cues
	PlayerCommand string
	WaitCue       string
	ConfirmedCue  string
	ReleasedCue   string

	// Telemetry server
	WebPort string
}

// Load reads configuration from the environment, applying defaults.
// A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel: getEnv("FOCUSBOX_LOG_LEVEL", "info"),
		Timezone: getEnv("FOCUSBOX_TZ", "America/Toronto"),

		CalendarID:      getEnv("FOCUSBOX_CALENDAR_ID", "primary"),
		CredentialsFile: getEnv("FOCUSBOX_CREDENTIALS_FILE", "credentials.json"),
		TokenFile:       getEnv("FOCUSBOX_TOKEN_FILE", "token.json"),
		FocusKeyword:    getEnv("FOCUSBOX_FOCUS_KEYWORD", "FOCUS"),
		SleepKeyword:    getEnv("FOCUSBOX_SLEEP_KEYWORD", "SLEEP"),
		RefreshInterval: getDuration("FOCUSBOX_REFRESH_INTERVAL", 30*time.Minute),

		TickInterval:    getDuration("FOCUSBOX_TICK_INTERVAL", 200*time.Millisecond),
		PollPeriod:      getDuration("FOCUSBOX_POLL_PERIOD", time.Second),
		RequirePresence: getBool("FOCUSBOX_REQUIRE_PRESENCE", true),

		Sensor:              getEnv("FOCUSBOX_SENSOR", "ultrasonic"),
		DistanceThresholdCM: getFloat("FOCUSBOX_DISTANCE_THRESHOLD_CM", 10.0),
		DistanceSamples:     getInt("FOCUSBOX_DISTANCE_SAMPLES", 3),
		DistanceSampleDelay: getDuration("FOCUSBOX_DISTANCE_SAMPLE_DELAY", 50*time.Millisecond),
		ReflectThreshold:    getFloat("FOCUSBOX_REFLECT_THRESHOLD", 700.0),
		ReflectSamples:      getInt("FOCUSBOX_REFLECT_SAMPLES", 5),
		ReflectSampleDelay:  getDuration("FOCUSBOX_REFLECT_SAMPLE_DELAY", 20*time.Millisecond),
		ReflectInvert:       getBool("FOCUSBOX_REFLECT_INVERT", false),

		LeftDirPin:  getEnv("FOCUSBOX_LEFT_DIR_PIN", "GPIO23"),
		RightDirPin: getEnv("FOCUSBOX_RIGHT_DIR_PIN", "GPIO24"),
		LeftPWMPin:  getEnv("FOCUSBOX_LEFT_PWM_PIN", "GPIO12"),
		RightPWMPin: getEnv("FOCUSBOX_RIGHT_PWM_PIN", "GPIO13"),
		LockSpeed:   getInt("FOCUSBOX_LOCK_SPEED", 70),
		LockRunTime: getDuration("FOCUSBOX_LOCK_RUN_TIME", 1200*time.Millisecond),

		TrigPin: getEnv("FOCUSBOX_TRIG_PIN", "GPIO27"),
		EchoPin: getEnv("FOCUSBOX_ECHO_PIN", "GPIO22"),

		I2CBus:     getEnv("FOCUSBOX_I2C_BUS", ""),
		ADCAddress: uint16(getInt("FOCUSBOX_ADC_ADDRESS", 0x14)),

		PlayerCommand: getEnv("FOCUSBOX_PLAYER", "mpg123"),
		WaitCue:       getEnv("FOCUSBOX_WAIT_CUE", "musics/waiting.mp3"),
		ConfirmedCue:  getEnv("FOCUSBOX_CONFIRMED_CUE", "musics/placed.mp3"),
		ReleasedCue:   getEnv("FOCUSBOX_RELEASED_CUE", "musics/unlock.mp3"),

		WebPort: getEnv("FOCUSBOX_WEB_PORT", "8090"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Sensor {
	case "ultrasonic", "reflectance":
	default:
		return fmt.Errorf("config: unknown sensor %q (want ultrasonic or reflectance)", c.Sensor)
	}
	if c.DistanceSamples < 1 || c.ReflectSamples < 1 {
		return fmt.Errorf("config: sample counts must be >= 1")
	}
	if c.PollPeriod < 100*time.Millisecond {
		c.PollPeriod = 100 * time.Millisecond
	}
	if c.LockSpeed < 0 || c.LockSpeed > 100 {
		return fmt.Errorf("config: lock speed %d out of range 0..100", c.LockSpeed)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(v, "0x"), base(v), 64)
	if err != nil {
		return def
	}
	return int(n)
}

func base(v string) int {
	if strings.HasPrefix(v, "0x") {
		return 16
	}
	return 10
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
