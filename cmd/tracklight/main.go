package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/tracklight/replay/internal/acquire"
	"github.com/tracklight/replay/internal/board"
	"github.com/tracklight/replay/internal/config"
	"github.com/tracklight/replay/internal/dispatcher"
	"github.com/tracklight/replay/internal/frame"
	"github.com/tracklight/replay/internal/influx"
	"github.com/tracklight/replay/internal/logging"
	"github.com/tracklight/replay/internal/monitor"
	intOtel "github.com/tracklight/replay/internal/otel"
	"github.com/tracklight/replay/internal/playback"
	"github.com/tracklight/replay/internal/roster"
	"github.com/tracklight/replay/internal/session"
	"github.com/tracklight/replay/internal/telemetry"
)

// Version and BuildDate can be set at build time via ldflags.
var (
	Version   string = "0.1.0"
	BuildDate string = "unknown"
)

var (
	configDir string

	startTime = time.Now()

	logFilePath string
	logFile     *os.File
)

// global services
var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry log export
	OTelProvider *intOtel.Provider

	telemetrySource   telemetry.Source
	sessionService    *session.Service
	monitorService    *monitor.Service
	renderTicker      *playback.Ticker
	influxManager     *influx.Manager
	commandDispatcher *dispatcher.Dispatcher
)

func main() {
	flag.StringVar(&configDir, "config", ".", "directory containing tracklight.cfg.json")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(2)
	}

	command := strings.ToLower(args[0])
	if command != "fetch" && command != "play" && command != "demo" {
		fmt.Printf("unknown command: %s\n\n", command)
		printUsage()
		os.Exit(2)
	}

	if err := run(command); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(command string) error {
	// console logging until the session log file exists
	SlogManager = logging.NewSlogManager()
	SlogManager.Setup(logging.Options{Level: "info"})
	Logger = SlogManager.Logger()

	if err := config.Load(configDir); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Info("Loaded config", "dir", configDir)
	}

	if command == "demo" {
		// the demo never talks to a live source
		viper.Set("source.type", "synthetic")
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	setupLogging()
	defer closeLogging()

	Logger.Info("Starting tracklight",
		"version", Version, "buildDate", BuildDate, "command", command)

	if err := initServices(); err != nil {
		return err
	}
	defer shutdownServices()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "fetch":
		return runFetch(ctx)
	default:
		return runPlay(ctx, command == "demo")
	}
}

// setupLogging moves logging from the console to a timestamped session log
// file, with OTel and GELF outputs attached when configured.
func setupLogging() {
	logsDir := config.GetString("logsDir")
	if _, err := os.Stat(logsDir); os.IsNotExist(err) {
		os.Mkdir(logsDir, 0755)
	}

	logFilePath = logging.LogFilePath(logsDir, "tracklight", startTime)

	// if a file from an earlier run holds this name, move it aside
	if _, err := os.Stat(logFilePath); err == nil {
		os.Rename(logFilePath, logFilePath+".old")
	}

	var err error
	logFile, err = os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		Logger.Error("Failed to create log file, staying on console", "error", err, "path", logFilePath)
		logFile = nil
	}

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		var w io.Writer
		if logFile != nil {
			w = logFile
		}
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    w,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
		} else if otelCfg.Endpoint != "" {
			Logger.Info("OTel provider initialized", "file", logFilePath, "endpoint", otelCfg.Endpoint)
		} else {
			Logger.Info("OTel provider initialized", "file", logFilePath)
		}
	}

	var logProvider *sdklog.LoggerProvider
	if OTelProvider != nil {
		logProvider = OTelProvider.LoggerProvider()
	}

	var gelfSender logging.GelfSender
	if gl := config.GetGraylogConfig(); gl.Enabled {
		w, err := logging.NewGelfWriter(gl.Address)
		if err != nil {
			Logger.Warn("Graylog unreachable, GELF shipping disabled", "error", err, "address", gl.Address)
		} else {
			gelfSender = w
		}
	}

	var fileWriter io.Writer
	if logFile != nil {
		fileWriter = logFile
	}

	SlogManager.Setup(logging.Options{
		File:        fileWriter,
		Level:       config.GetString("logLevel"),
		LogProvider: logProvider,
		Gelf:        gelfSender,
		Context:     engineContext,
	})
	Logger = SlogManager.Logger()
	Logger.Info("Logging to file", "path", logFilePath)
}

// engineContext supplies the current run id and playback state on every log
// record once a session has loaded.
func engineContext() []slog.Attr {
	if sessionService == nil {
		return nil
	}
	status := sessionService.Status()
	if status.RunID == "" {
		return nil
	}
	return []slog.Attr{
		slog.String("runID", status.RunID),
		slog.String("playback", status.Playback.State.String()),
	}
}

func closeLogging() {
	if OTelProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := OTelProvider.Shutdown(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "otel shutdown:", err)
		}
	}
	if logFile != nil {
		logFile.Close()
	}
}

// flushLogs forces export of pending OTel records, so a completed run is
// fully written out even if the process lingers in the console loop.
func flushLogs() {
	if OTelProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := OTelProvider.Flush(ctx); err != nil {
		Logger.Warn("Failed to flush log exporters", "error", err)
	}
}

// newZerologLogger targets the session log file, or stderr before one exists.
func newZerologLogger() zerolog.Logger {
	var w io.Writer = os.Stderr
	if logFile != nil {
		w = logFile
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// initServices builds the engine: board and roster, telemetry source,
// acquisition, frames, playback, statistics and the command dispatcher.
func initServices() error {
	var err error

	boardCfg := config.GetBoardConfig()
	var layout *board.Layout
	if boardCfg.LayoutFile != "" {
		layout, err = board.LoadFile(boardCfg.LayoutFile)
		if err != nil {
			return fmt.Errorf("loading board layout: %w", err)
		}
		Logger.Info("Board layout loaded", "path", boardCfg.LayoutFile, "positions", layout.Len())
	} else {
		layout = board.DefaultLayout()
		Logger.Info("Using built-in board layout", "positions", layout.Len())
	}

	rosterCfg := config.GetRosterConfig()
	var entrants *roster.Roster
	if rosterCfg.File != "" {
		entrants, err = roster.LoadFile(rosterCfg.File)
		if err != nil {
			return fmt.Errorf("loading roster: %w", err)
		}
		Logger.Info("Roster loaded", "path", rosterCfg.File, "entities", entrants.Len())
	} else {
		entrants = roster.DefaultRoster()
		Logger.Info("Using built-in roster", "entities", entrants.Len())
	}

	zlog := newZerologLogger()
	sessionCfg := config.GetSessionConfig()

	telemetrySource, err = telemetry.NewSource(
		config.GetSourceConfig(), sessionCfg.Key, layout.Positions(), entrants.IDs(), zlog)
	if err != nil {
		return fmt.Errorf("creating telemetry source: %w", err)
	}

	acquirer, err := acquire.NewService(acquire.Dependencies{
		Source:     telemetrySource,
		Roster:     entrants,
		LogManager: SlogManager,
	}, config.GetAcquireConfig())
	if err != nil {
		return fmt.Errorf("creating acquisition service: %w", err)
	}

	sequence := frame.NewSequence()
	playbackCfg := config.GetPlaybackConfig()
	clock := playback.NewClock(sequence, playbackCfg)

	sessionService = session.NewService(session.Dependencies{
		Acquirer:   acquirer,
		Resolver:   board.NewResolver(layout),
		Sequence:   sequence,
		Clock:      clock,
		LogManager: SlogManager,
	}, config.GetFramesConfig(), sessionCfg)

	renderTicker = playback.NewTicker(playback.Dependencies{
		Clock:      clock,
		Roster:     entrants,
		LogManager: SlogManager,
	}, playbackCfg.TickInterval, newBoardRenderer(layout))

	influxManager = influx.NewManager(zlog, config.GetInfluxConfig())
	if err := influxManager.Connect(context.Background()); err != nil {
		if !errors.Is(err, influx.ErrDisabled) {
			Logger.Warn("InfluxDB unreachable, statistics disabled", "error", err)
		}
	} else {
		influxManager.Start()
		Logger.Info("InfluxDB statistics enabled")
	}

	monitorService = monitor.NewService(monitor.Dependencies{
		Session:    sessionService,
		Progress:   acquirer.Progress(),
		LogManager: SlogManager,
		Stats:      influxManager,
	}, config.GetMonitorConfig().Interval)

	commandDispatcher, err = dispatcher.New(logging.NewDispatcherLogger(zlog))
	if err != nil {
		return fmt.Errorf("creating dispatcher: %w", err)
	}
	registerControlHandlers(commandDispatcher)

	return nil
}

func shutdownServices() {
	renderTicker.Stop()
	monitorService.Stop()
	influxManager.Close()
	if err := telemetrySource.Close(); err != nil {
		Logger.Warn("Failed to close telemetry source", "error", err)
	}
}

// registerControlHandlers wires the console commands onto the session
// service.
func registerControlHandlers(d *dispatcher.Dispatcher) {
	d.Register("start", func(e dispatcher.Event) (any, error) {
		if !sessionService.Status().Loaded {
			return nil, fmt.Errorf("no session loaded")
		}
		sessionService.Start()
		return "playback started", nil
	}, dispatcher.Logged())

	d.Register("stop", func(e dispatcher.Event) (any, error) {
		sessionService.Stop()
		return "playback stopped", nil
	}, dispatcher.Logged())

	d.Register("speed", func(e dispatcher.Event) (any, error) {
		playbackCfg := config.GetPlaybackConfig()
		if len(e.Args) == 0 {
			return nil, fmt.Errorf("usage: speed <%d-%d>", playbackCfg.MinSpeed, playbackCfg.MaxSpeed)
		}
		requested, err := strconv.Atoi(e.Args[0])
		if err != nil {
			return nil, fmt.Errorf("speed must be a number, got %q", e.Args[0])
		}
		applied := sessionService.SetSpeed(requested)
		return fmt.Sprintf("speed set to %dx", applied), nil
	}, dispatcher.Logged())

	d.Register("status", func(e dispatcher.Event) (any, error) {
		return formatStatus(sessionService.Status()), nil
	})

	d.Register("report", func(e dispatcher.Event) (any, error) {
		report, ok := sessionService.Report()
		if !ok {
			return nil, fmt.Errorf("no completed acquisition run")
		}
		return formatReport(report), nil
	})
}
