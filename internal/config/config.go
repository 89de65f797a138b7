package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// SourceConfig selects and parameterizes the telemetry source backend.
type SourceConfig struct {
	Type    string              `json:"type" mapstructure:"type" validate:"oneof=http archive synthetic"`
	HTTP    HTTPSourceConfig    `json:"http" mapstructure:"http"`
	Archive ArchiveSourceConfig `json:"archive" mapstructure:"archive"`
}

// HTTPSourceConfig holds settings for the live-timing HTTP source.
type HTTPSourceConfig struct {
	BaseURL string        `json:"baseUrl" mapstructure:"baseUrl" validate:"required,url"`
	APIKey  string        `json:"apiKey" mapstructure:"apiKey"`
	Timeout time.Duration `json:"timeout" mapstructure:"timeout" validate:"gt=0"`
}

// ArchiveSourceConfig holds settings for the session-archive database source.
type ArchiveSourceConfig struct {
	Driver string `json:"driver" mapstructure:"driver" validate:"oneof=sqlite postgres"`
	Path   string `json:"path" mapstructure:"path"`
	DSN    string `json:"dsn" mapstructure:"dsn"`
}

// SessionConfig identifies the session to replay and its global time range.
type SessionConfig struct {
	Key   uint32    `json:"key" mapstructure:"key" validate:"required"`
	Start time.Time `json:"start" mapstructure:"start" validate:"required"`
	End   time.Time `json:"end" mapstructure:"end" validate:"required,gtfield=Start"`
}

// AcquireConfig tunes the acquisition pipeline.
type AcquireConfig struct {
	WindowSize        time.Duration `json:"windowSize" mapstructure:"windowSize" validate:"gt=0"`
	Concurrency       int           `json:"concurrency" mapstructure:"concurrency" validate:"gte=1"`
	BackoffBase       time.Duration `json:"backoffBase" mapstructure:"backoffBase" validate:"gt=0"`
	BackoffCap        time.Duration `json:"backoffCap" mapstructure:"backoffCap" validate:"gtefield=BackoffBase"`
	MaxAttempts       int           `json:"maxAttempts" mapstructure:"maxAttempts" validate:"gte=1"`
	StopOnEmptyWindow bool          `json:"stopOnEmptyWindow" mapstructure:"stopOnEmptyWindow"`
}

// FramesConfig tunes frame synthesis.
type FramesConfig struct {
	Capacity int `json:"capacity" mapstructure:"capacity" validate:"gte=1"`
}

// PlaybackConfig tunes the playback clock and render tick.
type PlaybackConfig struct {
	UpdateRateMs int           `json:"updateRateMs" mapstructure:"updateRateMs" validate:"gte=1"`
	MinSpeed     int           `json:"minSpeed" mapstructure:"minSpeed" validate:"gte=1"`
	MaxSpeed     int           `json:"maxSpeed" mapstructure:"maxSpeed" validate:"gtefield=MinSpeed"`
	TickInterval time.Duration `json:"tickInterval" mapstructure:"tickInterval" validate:"gt=0"`
}

// FrameDuration returns the inter-frame interval derived from UpdateRateMs.
func (p PlaybackConfig) FrameDuration() time.Duration {
	return time.Duration(p.UpdateRateMs) * time.Millisecond
}

// BoardConfig points at an optional layout override file.
type BoardConfig struct {
	LayoutFile string `json:"layoutFile" mapstructure:"layoutFile"`
}

// RosterConfig points at an optional roster override file.
type RosterConfig struct {
	File string `json:"file" mapstructure:"file"`
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

// InfluxConfig holds InfluxDB statistics settings.
type InfluxConfig struct {
	Enabled       bool          `json:"enabled" mapstructure:"enabled"`
	URL           string        `json:"url" mapstructure:"url"`
	Token         string        `json:"token" mapstructure:"token"`
	Org           string        `json:"org" mapstructure:"org"`
	Bucket        string        `json:"bucket" mapstructure:"bucket"`
	FlushInterval time.Duration `json:"flushInterval" mapstructure:"flushInterval"`
}

// GraylogConfig holds GELF log shipping settings.
type GraylogConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Address string `json:"address" mapstructure:"address"`
}

// MonitorConfig holds status monitor settings.
type MonitorConfig struct {
	Interval time.Duration `json:"interval" mapstructure:"interval" validate:"gt=0"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. A missing file is
// not an error; defaults apply.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "tracklight-replay")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.url", "")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "tracklight")
	viper.SetDefault("influx.bucket", "replay-stats")
	viper.SetDefault("influx.flushInterval", "10s")

	viper.SetDefault("board.layoutFile", "")
	viper.SetDefault("roster.file", "")

	viper.SetDefault("source.type", "http")
	viper.SetDefault("source.http.baseUrl", "https://api.openf1.org")
	viper.SetDefault("source.http.apiKey", "")
	viper.SetDefault("source.http.timeout", "30s")
	viper.SetDefault("source.archive.driver", "sqlite")
	viper.SetDefault("source.archive.path", "./session.db")
	viper.SetDefault("source.archive.dsn", "")

	viper.SetDefault("session.key", 9149)
	viper.SetDefault("session.start", "2023-08-27T12:58:56.2Z")
	viper.SetDefault("session.end", "2023-08-27T13:20:54.3Z")

	viper.SetDefault("acquire.windowSize", "3m")
	viper.SetDefault("acquire.concurrency", 10)
	viper.SetDefault("acquire.backoffBase", "1s")
	viper.SetDefault("acquire.backoffCap", "16s")
	viper.SetDefault("acquire.maxAttempts", 5)
	viper.SetDefault("acquire.stopOnEmptyWindow", false)

	viper.SetDefault("frames.capacity", 20)

	viper.SetDefault("playback.updateRateMs", 100)
	viper.SetDefault("playback.minSpeed", 1)
	viper.SetDefault("playback.maxSpeed", 5)
	viper.SetDefault("playback.tickInterval", "100ms")

	viper.SetDefault("monitor.interval", "5s")

	viper.SetConfigName("tracklight.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetSourceConfig returns the telemetry source configuration.
func GetSourceConfig() SourceConfig {
	return SourceConfig{
		Type: viper.GetString("source.type"),
		HTTP: HTTPSourceConfig{
			BaseURL: viper.GetString("source.http.baseUrl"),
			APIKey:  viper.GetString("source.http.apiKey"),
			Timeout: viper.GetDuration("source.http.timeout"),
		},
		Archive: ArchiveSourceConfig{
			Driver: viper.GetString("source.archive.driver"),
			Path:   viper.GetString("source.archive.path"),
			DSN:    viper.GetString("source.archive.dsn"),
		},
	}
}

// GetSessionConfig returns the session identity and time range.
// Malformed times surface during Validate, not here.
func GetSessionConfig() SessionConfig {
	return SessionConfig{
		Key:   viper.GetUint32("session.key"),
		Start: viper.GetTime("session.start"),
		End:   viper.GetTime("session.end"),
	}
}

// GetAcquireConfig returns the acquisition pipeline configuration.
func GetAcquireConfig() AcquireConfig {
	return AcquireConfig{
		WindowSize:        viper.GetDuration("acquire.windowSize"),
		Concurrency:       viper.GetInt("acquire.concurrency"),
		BackoffBase:       viper.GetDuration("acquire.backoffBase"),
		BackoffCap:        viper.GetDuration("acquire.backoffCap"),
		MaxAttempts:       viper.GetInt("acquire.maxAttempts"),
		StopOnEmptyWindow: viper.GetBool("acquire.stopOnEmptyWindow"),
	}
}

// GetFramesConfig returns the frame synthesis configuration.
func GetFramesConfig() FramesConfig {
	return FramesConfig{
		Capacity: viper.GetInt("frames.capacity"),
	}
}

// GetPlaybackConfig returns the playback configuration.
func GetPlaybackConfig() PlaybackConfig {
	return PlaybackConfig{
		UpdateRateMs: viper.GetInt("playback.updateRateMs"),
		MinSpeed:     viper.GetInt("playback.minSpeed"),
		MaxSpeed:     viper.GetInt("playback.maxSpeed"),
		TickInterval: viper.GetDuration("playback.tickInterval"),
	}
}

// GetBoardConfig returns the board layout configuration.
func GetBoardConfig() BoardConfig {
	return BoardConfig{
		LayoutFile: viper.GetString("board.layoutFile"),
	}
}

// GetRosterConfig returns the roster configuration.
func GetRosterConfig() RosterConfig {
	return RosterConfig{
		File: viper.GetString("roster.file"),
	}
}

// GetOTelConfig returns the OpenTelemetry configuration.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetInfluxConfig returns the InfluxDB statistics configuration.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:       viper.GetBool("influx.enabled"),
		URL:           viper.GetString("influx.url"),
		Token:         viper.GetString("influx.token"),
		Org:           viper.GetString("influx.org"),
		Bucket:        viper.GetString("influx.bucket"),
		FlushInterval: viper.GetDuration("influx.flushInterval"),
	}
}

// GetGraylogConfig returns the GELF shipping configuration.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}

// GetMonitorConfig returns the status monitor configuration.
func GetMonitorConfig() MonitorConfig {
	return MonitorConfig{
		Interval: viper.GetDuration("monitor.interval"),
	}
}

// Validate checks the loaded configuration. It is called once at startup;
// a validation failure is fatal.
func Validate() error {
	v := validator.New()

	checks := []struct {
		name string
		cfg  any
	}{
		{"source", GetSourceConfig()},
		{"session", GetSessionConfig()},
		{"acquire", GetAcquireConfig()},
		{"frames", GetFramesConfig()},
		{"playback", GetPlaybackConfig()},
		{"monitor", GetMonitorConfig()},
	}

	for _, c := range checks {
		if err := v.Struct(c.cfg); err != nil {
			return fmt.Errorf("invalid %s config: %w", c.name, err)
		}
	}

	return nil
}
