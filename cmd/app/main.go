package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"quill/internal/canvas"
	"quill/internal/canvas/record"
	"quill/internal/evaluator"
	"quill/internal/parser"
	"quill/internal/repl"
	"quill/internal/util"
)

const DefaultConfigPath = "quill.toml"

var (
	// Version is set at build time from the VERSION file.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// logging
	logLevel string
	logFile  string
	// config vars
	configPath string
	surface    string
	output     string
	width      float64
	height     float64
	// recording
	recordOps    bool
	recordDriver string
	recordDSN    string
	session      string
	replay       bool
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	// canvas config
	flag.StringVar(&configPath, "config", DefaultConfigPath, "Path to the configuration file")
	flag.StringVar(&surface, "surface", "", "Drawing surface: svg or trace")
	flag.StringVar(&output, "out", "", "Output file for the svg surface")
	flag.Float64Var(&width, "width", 0, "Canvas width in pixels")
	flag.Float64Var(&height, "height", 0, "Canvas height in pixels")
	// recording config
	flag.BoolVar(&recordOps, "record", false, "Record drawing commands to the database")
	flag.StringVar(&recordDriver, "record-driver", "", "Database driver: sqlite3, mysql or postgres")
	flag.StringVar(&recordDSN, "record-dsn", "", "Database connection string")
	flag.StringVar(&session, "session", "", "Session name for recording and replay")
	flag.BoolVar(&replay, "replay", false, "Replay a recorded session instead of running a script")
	// log config
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {
	flag.Parse()

	if version {
		printVersion()
		return
	}
	if help {
		printHelp()
		return
	}

	config, err := util.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlags(&config)

	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(config.LogLevel),
	}
	logWriter := configureLogWriter(config.LogFile)
	log := slog.New(slog.NewJSONHandler(logWriter, loggerOptions))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyFlags lets explicit command-line values win over the file.
func applyFlags(config *util.Configuration) {
	if surface != "" {
		config.Surface = surface
	}
	if output != "" {
		config.Canvas.Output = output
	}
	if width > 0 {
		config.Canvas.Width = width
	}
	if height > 0 {
		config.Canvas.Height = height
	}
	if recordOps {
		config.Record.Enabled = true
	}
	if recordDriver != "" {
		config.Record.Driver = recordDriver
	}
	if recordDSN != "" {
		config.Record.DSN = recordDSN
	}
	if session != "" {
		config.Record.Session = session
	}
	if logLevel != "" {
		config.LogLevel = logLevel
	}
	if logFile != "" {
		config.LogFile = logFile
	}
}

func run(ctx context.Context, config util.Configuration, log *slog.Logger) error {
	target := buildSurface(config, log)

	if replay {
		log.Info("replaying session", "session", config.Record.Session, "driver", config.Record.Driver)
		if err := record.Replay(config.Record.Driver, config.Record.DSN, config.Record.Session, target); err != nil {
			return err
		}
		return target.Present()
	}

	drawing := target
	if config.Record.Enabled {
		rec, err := record.Open(config.Record.Driver, config.Record.DSN, config.Record.Session, target, log)
		if err != nil {
			return err
		}
		defer rec.Close()
		drawing = rec
	}

	if script := flag.Arg(0); script != "" {
		return runScript(ctx, script, drawing, log)
	}

	fmt.Printf("quill v%s interactive drawing. Type help for commands, exit to leave.\n", Version)
	return repl.New(drawing, log).Start(ctx, os.Stdin, os.Stdout)
}

func runScript(ctx context.Context, path string, surface canvas.Surface, log *slog.Logger) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	program, err := parser.Parse(string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	log.Info("running script", "path", path, "statements", len(program.Statements))
	if _, err := evaluator.New(surface).Run(ctx, program); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return surface.Present()
}

func buildSurface(config util.Configuration, log *slog.Logger) canvas.Surface {
	switch config.Surface {
	case "trace":
		return canvas.NewTrace(log)
	default:
		return canvas.NewSVG(config.Canvas.Width, config.Canvas.Height, config.Canvas.Output)
	}
}

func configureLogWriter(logFile string) *os.File {
	var logWriter *os.File
	var err error
	if logFile != "" {
		// Create parent directories if they don't exist
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
			return os.Stderr
		}
		logWriter, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
			logWriter = os.Stderr
		}
	} else {
		logWriter = os.Stderr
	}
	return logWriter
}

func printVersion() {
	fmt.Printf("quill version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: quill [options] [script]

Options:
  -config <path>         Path to the configuration file. Default is 'quill.toml'.
  -surface <name>        Drawing surface: svg or trace. Default is 'svg'.
  -out <path>            Output file for the svg surface. Default is 'drawing.svg'.
  -width <px>            Canvas width in pixels. Default is 800.
  -height <px>           Canvas height in pixels. Default is 600.
  -record                Record drawing commands to the database.
  -record-driver <name>  Database driver: sqlite3, mysql or postgres.
  -record-dsn <dsn>      Database connection string.
  -session <name>        Session name for recording and replay.
  -replay                Replay a recorded session instead of running a script.
  -help                  Display this help information and exit.
  -version               Display version information and exit.
  -log-level <level>     Set the log level: debug, info, warn, error.
  -log-file <path>       Specify a log file to write logs. Default is stderr.

Details:
Quill runs turtle-style drawing scripts and renders them to SVG. Without a
script it starts an interactive drawing shell.

Examples:
  quill                          Start the interactive shell
  quill spiral.qll               Run a script and write drawing.svg
  quill -out art.svg spiral.qll  Run a script into a chosen file
  quill -record spiral.qll       Run and record the drawing commands
  quill -replay -session demo    Re-render a recorded session

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError
	}
}
