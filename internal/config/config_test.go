package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"source": { "type": "synthetic" },
		"acquire": { "concurrency": 4, "windowSize": "90s" }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracklight.cfg.json"), []byte(cfg), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, "synthetic", viper.GetString("source.type"))
	assert.Equal(t, 4, viper.GetInt("acquire.concurrency"))
	assert.Equal(t, 90*time.Second, viper.GetDuration("acquire.windowSize"))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./logs", viper.GetString("logsDir"))
	assert.Equal(t, "http", viper.GetString("source.type"))
	assert.Equal(t, "https://api.openf1.org", viper.GetString("source.http.baseUrl"))
	assert.Equal(t, "", viper.GetString("source.http.apiKey"))
	assert.Equal(t, "sqlite", viper.GetString("source.archive.driver"))
	assert.Equal(t, 9149, viper.GetInt("session.key"))
	assert.Equal(t, 10, viper.GetInt("acquire.concurrency"))
	assert.Equal(t, 20, viper.GetInt("frames.capacity"))
	assert.Equal(t, 100, viper.GetInt("playback.updateRateMs"))
	assert.Equal(t, 1, viper.GetInt("playback.minSpeed"))
	assert.Equal(t, 5, viper.GetInt("playback.maxSpeed"))
	assert.Equal(t, false, viper.GetBool("graylog.enabled"))
	assert.Equal(t, false, viper.GetBool("otel.enabled"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
}

func TestGetString(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	assert.Equal(t, "testValue", GetString("testKey"))
}

func TestGetInt(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testInt", 42)
	assert.Equal(t, 42, GetInt("testInt"))
}

func TestGetBool(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testBool", true)
	assert.Equal(t, true, GetBool("testBool"))
}

func TestGetAcquireConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(t.TempDir()))

	cfg := GetAcquireConfig()
	assert.Equal(t, 3*time.Minute, cfg.WindowSize)
	assert.Equal(t, 10, cfg.Concurrency)
	assert.Equal(t, time.Second, cfg.BackoffBase)
	assert.Equal(t, 16*time.Second, cfg.BackoffCap)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, false, cfg.StopOnEmptyWindow)
}

func TestGetAcquireConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"acquire": {
			"windowSize": "2m",
			"concurrency": 3,
			"backoffBase": "500ms",
			"backoffCap": "8s",
			"maxAttempts": 7,
			"stopOnEmptyWindow": true
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracklight.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	ac := GetAcquireConfig()
	assert.Equal(t, 2*time.Minute, ac.WindowSize)
	assert.Equal(t, 3, ac.Concurrency)
	assert.Equal(t, 500*time.Millisecond, ac.BackoffBase)
	assert.Equal(t, 8*time.Second, ac.BackoffCap)
	assert.Equal(t, 7, ac.MaxAttempts)
	assert.Equal(t, true, ac.StopOnEmptyWindow)
}

func TestGetSessionConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(t.TempDir()))

	sc := GetSessionConfig()
	assert.Equal(t, uint32(9149), sc.Key)
	assert.Equal(t, time.Date(2023, 8, 27, 12, 58, 56, 200_000_000, time.UTC), sc.Start.UTC())
	assert.True(t, sc.End.After(sc.Start))
}

func TestGetPlaybackConfig_FrameDuration(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(t.TempDir()))

	pc := GetPlaybackConfig()
	assert.Equal(t, 100*time.Millisecond, pc.FrameDuration())
	assert.Equal(t, 100*time.Millisecond, pc.TickInterval)
}

func TestGetOTelConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(t.TempDir()))

	oc := GetOTelConfig()
	assert.Equal(t, false, oc.Enabled)
	assert.Equal(t, "tracklight-replay", oc.ServiceName)
	assert.Equal(t, 5*time.Second, oc.BatchTimeout)
	assert.Equal(t, "", oc.Endpoint)
	assert.Equal(t, true, oc.Insecure)
}

func TestGetOTelConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"otel": {
			"enabled": true,
			"serviceName": "my-service",
			"batchTimeout": "30s",
			"endpoint": "localhost:4317",
			"insecure": false
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracklight.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	oc := GetOTelConfig()
	assert.Equal(t, true, oc.Enabled)
	assert.Equal(t, "my-service", oc.ServiceName)
	assert.Equal(t, 30*time.Second, oc.BatchTimeout)
	assert.Equal(t, "localhost:4317", oc.Endpoint)
	assert.Equal(t, false, oc.Insecure)
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(t.TempDir()))
	require.NoError(t, Validate())
}

func TestValidate_RejectsBadSourceType(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{ "source": { "type": "carrier-pigeon" } }`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracklight.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	err := Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source")
}

func TestValidate_RejectsInvertedSessionRange(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"session": {
			"start": "2023-08-27T13:20:54.3Z",
			"end": "2023-08-27T12:58:56.2Z"
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracklight.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	err := Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session")
}

func TestValidate_RejectsZeroConcurrency(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{ "acquire": { "concurrency": 0 } }`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracklight.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	err := Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquire")
}
