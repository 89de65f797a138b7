package logging

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogFilePath(t *testing.T) {
	sessionStart := time.Date(2023, 8, 27, 12, 58, 56, 0, time.UTC)

	tests := []struct {
		name    string
		logsDir string
		appName string
		want    string
	}{
		{
			name:    "basic path",
			logsDir: "logs",
			appName: "tracklight",
			want:    filepath.Join("logs", "tracklight.20230827_125856.log"),
		},
		{
			name:    "relative path with dot",
			logsDir: "./logs",
			appName: "tracklight",
			want:    filepath.Join(".", "logs", "tracklight.20230827_125856.log"),
		},
		{
			name:    "absolute path",
			logsDir: filepath.Join("/var", "log", "tracklight"),
			appName: "tracklight",
			want:    filepath.Join("/var", "log", "tracklight", "tracklight.20230827_125856.log"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogFilePath(tt.logsDir, tt.appName, sessionStart)
			assert.Equal(t, tt.want, got)
		})
	}
}
