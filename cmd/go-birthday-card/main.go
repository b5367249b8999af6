package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/gdamore/tcell/v2"
	"github.com/tartampluch/go-birthday-card/internal/audio"
	"github.com/tartampluch/go-birthday-card/internal/config"
	"github.com/tartampluch/go-birthday-card/internal/metrics"
	"github.com/tartampluch/go-birthday-card/internal/server"
	"github.com/tartampluch/go-birthday-card/internal/tui"
	"github.com/tartampluch/go-birthday-card/internal/ui"
)

// main delegates to runMain so deferred calls (closing the log file) run
// before os.Exit.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	terminalMode := flag.Bool(config.FlagTUI, false, config.FlagDescTUI)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// The terminal card owns stdout, so it only logs to the file.
	logCloser := setupLogging(*debugMode, !*terminalMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	player := audio.NewPlayer()
	if err := player.Init(); err != nil {
		slog.Warn(config.ErrSpeakerInit, config.LogKeyComponent, config.CompMain, config.LogKeyError, err)
	}
	defer player.Close()

	run := runWindow
	if *terminalMode {
		run = runTerminal
	}
	if err := run(ctx, player); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// runWindow initializes the Fyne application, wires dependencies, and starts the UI loop.
func runWindow(ctx context.Context, player *audio.Player) error {
	a := app.NewWithID(config.AppID)
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	collector := metrics.New()
	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)

	card := ui.NewCardApp(a, ctx, ui.Deps{
		Server:  server.NewCardServer(port, collector.Handler()),
		Metrics: collector,
		Player:  player,
	})

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		fyne.Do(a.Quit)
	}()

	// Blocks until the last window closes or the tray quits.
	card.Run()
	return nil
}

// runTerminal shows the card in the current terminal until the user quits.
func runTerminal(ctx context.Context, player *audio.Player) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrTerminalInit, err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrTerminalInit, err)
	}
	defer screen.Fini()

	card := tui.NewCard(screen, tui.Deps{
		Metrics: metrics.New(),
		Player:  player,
	})
	return card.Run(ctx)
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs the default logger: colored text on stdout when
// console is set, JSON in the cache-dir log file when it can be opened.
func setupLogging(debugMode, console bool) io.Closer {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	var consoleOut, fileOut io.Writer
	if console {
		consoleOut = os.Stdout
	}

	var logFile *os.File
	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			fileOut = f
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	slog.SetDefault(slog.New(newLogHandler(consoleOut, fileOut, level, debugMode)))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
