package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tracklight/replay/internal/acquire"
	"github.com/tracklight/replay/internal/board"
	"github.com/tracklight/replay/internal/config"
	"github.com/tracklight/replay/internal/dispatcher"
	"github.com/tracklight/replay/internal/playback"
	"github.com/tracklight/replay/internal/session"
	"github.com/tracklight/replay/internal/util"
	"github.com/tracklight/replay/pkg/core"
)

// boardStripWidth caps the rendered board strip so the status line stays on
// one row in a standard terminal.
const boardStripWidth = 64

func printUsage() {
	fmt.Println("usage: tracklight [-config <dir>] <command>")
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  fetch   acquire the configured session and print the run report")
	fmt.Println("  play    acquire the configured session, then replay it interactively")
	fmt.Println("  demo    replay a synthetic session without touching a live source")
}

// runFetch acquires the configured session and prints the run report.
func runFetch(ctx context.Context) error {
	sessionCfg := config.GetSessionConfig()
	fmt.Printf("fetching session %d (%s source)...\n",
		sessionCfg.Key, config.GetSourceConfig().Type)

	monitorService.Start()
	defer monitorService.Stop()

	if err := sessionService.Load(ctx); err != nil {
		return err
	}

	report, _ := sessionService.Report()
	influxManager.RecordRun(report)

	fmt.Print(formatReport(report))
	fmt.Printf("sealed %d frames of %d slots\n",
		sessionService.Status().Frames, config.GetFramesConfig().Capacity)

	flushLogs()
	return nil
}

// runPlay acquires the configured session, then hands control to the
// console loop. The demo variant starts playback as soon as frames are
// sealed.
func runPlay(ctx context.Context, autostart bool) error {
	sessionCfg := config.GetSessionConfig()
	fmt.Printf("loading session %d (%s source)...\n",
		sessionCfg.Key, config.GetSourceConfig().Type)

	monitorService.Start()

	if err := sessionService.Load(ctx); err != nil {
		return err
	}

	report, _ := sessionService.Report()
	influxManager.RecordRun(report)

	status := sessionService.Status()
	fmt.Printf("loaded %d samples into %d frames", status.Samples, status.Frames)
	if status.Warnings > 0 {
		fmt.Printf(" (use 'report' to list %d warnings)", status.Warnings)
	}
	fmt.Println()

	renderTicker.Start()

	if autostart {
		sessionService.Start()
	}

	runConsole(ctx)

	sessionService.Stop()
	flushLogs()
	return nil
}

// runConsole reads commands from stdin and dispatches them until quit, EOF
// or a termination signal.
func runConsole(ctx context.Context) {
	fmt.Println("commands: start, stop, speed <n>, status, report, help, quit")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case line, ok := <-lines:
			if !ok {
				fmt.Println()
				return
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			command := strings.ToLower(fields[0])
			switch command {
			case "quit", "exit":
				return
			case "help":
				printHelp()
				continue
			}
			result, err := commandDispatcher.Dispatch(dispatcher.Event{
				Command:   command,
				Args:      fields[1:],
				Timestamp: time.Now(),
			})
			if err != nil {
				fmt.Println("error:", err)
				continue
			}
			if text, ok := result.(string); ok && text != "" {
				fmt.Println(text)
			}
		}
	}
}

func printHelp() {
	fmt.Println("registered commands:", strings.Join(commandDispatcher.Commands(), ", "))
	fmt.Println("console commands:    help, quit")
}

func formatStatus(status session.Status) string {
	if !status.Loaded {
		return "no session loaded"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "run      %s\n", status.RunID)
	fmt.Fprintf(&b, "state    %s at %dx\n", status.Playback.State, status.Playback.Speed)
	if status.Playback.FrameCount > 0 {
		fmt.Fprintf(&b, "frame    %d/%d\n", status.Playback.FrameIndex+1, status.Playback.FrameCount)
	}
	fmt.Fprintf(&b, "elapsed  %s\n", util.FormatRaceTime(status.Playback.Elapsed))
	fmt.Fprintf(&b, "samples  %d in %d frames, %d warnings",
		status.Samples, status.Frames, status.Warnings)
	return b.String()
}

func formatReport(report acquire.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s completed in %s\n", report.RunID, report.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "  entities   %d\n", report.Entities)
	fmt.Fprintf(&b, "  windows    %d planned: %d succeeded, %d abandoned, %d skipped\n",
		report.Windows, report.Succeeded, report.Abandoned, report.Skipped)
	fmt.Fprintf(&b, "  samples    %d fetched, %d dropped, %d kept\n",
		report.Fetched, report.Dropped, report.Kept)
	for _, w := range report.Warnings {
		fmt.Fprintf(&b, "  warning: %s\n", w)
	}
	return b.String()
}

// newBoardRenderer returns the console render callback. While the clock
// runs it redraws a single status line with a strip of the board, one cell
// per position in layout order, lit cells marked.
func newBoardRenderer(layout *board.Layout) playback.RenderFunc {
	positions := layout.Positions()
	var wasRunning bool

	return func(snap playback.Snapshot, colors map[core.PositionID]core.Color) {
		if snap.State != playback.Running {
			// terminate the redraw line once, so the prompt gets its own row
			if wasRunning {
				fmt.Println()
				wasRunning = false
			}
			return
		}
		wasRunning = true

		var strip strings.Builder
		for _, p := range positions {
			if _, lit := colors[p.ID]; lit {
				strip.WriteByte('#')
			} else {
				strip.WriteByte('.')
			}
		}

		fmt.Printf("\r[%s] %s %dx frame %d/%d  ",
			util.Truncate(strip.String(), boardStripWidth),
			util.FormatRaceTime(snap.Elapsed),
			snap.Speed, snap.FrameIndex+1, snap.FrameCount)
	}
}
