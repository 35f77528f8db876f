// Tomatick is a terminal Pomodoro timer.
//
// Usage:
//
//	tomatick [-verbose] [-quiet]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/tomatick/internal/clock"
	"github.com/hammamikhairi/tomatick/internal/display"
	"github.com/hammamikhairi/tomatick/internal/engine"
	"github.com/hammamikhairi/tomatick/internal/history"
	"github.com/hammamikhairi/tomatick/internal/logger"
	"github.com/hammamikhairi/tomatick/internal/notify"
	"github.com/hammamikhairi/tomatick/internal/settings"
	"github.com/hammamikhairi/tomatick/internal/storage"
)

const appName = "tomatick"

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", defaultLogFile(), "file to write logs to (use \"stderr\" to log to console)")
	dataFile := flag.String("data-file", envOr("TOMATICK_DATA_FILE", defaultDataFile()), "path to the timer state file")
	configFile := flag.String("config", envOr("TOMATICK_CONFIG", ""), "path to the YAML config file")
	noSound := flag.Bool("no-sound", false, "disable the completion chime even if audio is available")
	noDesktop := flag.Bool("no-desktop", false, "disable desktop notifications")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the TUI stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs) to
	// the same output so it doesn't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Set up context, cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	store := storage.NewTyped(storage.NewFileStore(*dataFile, log), log)

	configPath := *configFile
	if configPath == "" {
		if p, err := settings.DefaultConfigPath(appName); err == nil {
			configPath = p
		} else {
			log.Warn("main: %v (skipping config file)", err)
		}
	}
	prefs := settings.NewProvider(store, configPath, log)

	recorder := history.NewRecorder(store, log)
	worker := clock.New(log)
	defer worker.Stop()

	eng := engine.New(worker, prefs, store, nil, recorder, log)
	prefs.OnDurationChange(eng.OnDurationChanged)

	ui := display.NewUI(eng, prefs, recorder)

	// Build the notifier stack: terminal banner always, then desktop
	// notifications and the chime when their backends are available.
	notifiers := notify.Multi{notify.NewTerminalNotifier(log, ui.Printf)}
	if !*noDesktop {
		if desktop, err := notify.NewDesktopNotifier(log); err != nil {
			log.Warn("main: desktop notifications unavailable: %v", err)
		} else {
			defer desktop.Close()
			notifiers = append(notifiers, desktop)
		}
	}
	if !*noSound {
		if chime, err := notify.NewChimeNotifier(log); err != nil {
			log.Warn("main: audio unavailable, chime disabled: %v", err)
		} else {
			notifiers = append(notifiers, chime)
		}
	}
	eng.SetNotifier(notifiers)

	go eng.Run(ctx, worker.Events())

	log.Info("main: %s started (data=%s)", appName, *dataFile)
	if err := ui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tomatick: %v\n", err)
		os.Exit(1)
	}
	cancel()
}

// defaultDataFile places the state file under the user config dir,
// falling back to the working directory.
func defaultDataFile() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "." + appName + "/state.json"
	}
	return filepath.Join(base, appName, "state.json")
}

func defaultLogFile() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "." + appName + "/" + appName + ".log"
	}
	return filepath.Join(base, appName, appName+".log")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
