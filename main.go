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
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// -------------------- Logger --------------------

// logger is the package-wide structured logger. Safe to use before initLogger
// is called; defaults to slog.Default().
var logger = slog.Default()

// initLogger configures the shared slog logger and calls slog.SetDefault so
// the stdlib log package also routes through the same handler.
func initLogger(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug, // include file:line in debug mode
	})
	logger = slog.New(h)
	slog.SetDefault(logger)
}

// -------------------- Main --------------------

type options struct {
	configPath string
	mode       string
	debug      bool
	logFile    string
	serialDev  string
	baud       int
	song       string
	songsDir   string
	logPath    string
	simulate   bool
	addr       string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "config.yaml", "YAML config file")
	flag.StringVar(&o.mode, "mode", "play", "play | tui | http | live | ports")
	flag.BoolVar(&o.debug, "debug", false, "enable debug logging (adds source location)")
	flag.StringVar(&o.logFile, "logfile", "", "write diagnostics here instead of stderr (tui mode defaults to lou-haptics.log)")
	flag.StringVar(&o.serialDev, "serial", "", "serial port device (empty: discover)")
	flag.IntVar(&o.baud, "baud", 0, "serial baud rate")
	flag.StringVar(&o.song, "song", "", "MIDI file to play in play mode")
	flag.StringVar(&o.songsDir, "songs", "", "songs directory (one folder per instrument)")
	flag.StringVar(&o.logPath, "log", "", "session CSV log path")
	flag.BoolVar(&o.simulate, "simulate", false, "never open a serial port")
	flag.StringVar(&o.addr, "addr", "", "HTTP listen address in http mode")
	flag.Parse()
	return o
}

func (o options) apply(cfg *Config) {
	if o.serialDev != "" {
		cfg.Serial.Port = o.serialDev
	}
	if o.baud > 0 {
		cfg.Serial.Baud = o.baud
	}
	if o.songsDir != "" {
		cfg.SongsDir = o.songsDir
	}
	if o.logPath != "" {
		cfg.LogPath = o.logPath
	}
	if o.simulate {
		cfg.Serial.Simulate = true
	}
	if o.addr != "" {
		cfg.HTTP.Addr = o.addr
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logOut := io.Writer(os.Stderr)
	if opts.logFile == "" && opts.mode == "tui" {
		opts.logFile = "lou-haptics.log"
	}
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	initLogger(logOut, opts.debug)

	cfg, err := LoadConfig(opts.configPath)
	if err != nil {
		logger.Error("config load failed", "path", opts.configPath, "err", err)
		return 1
	}
	opts.apply(cfg)

	logger.Info("lou-haptics starting",
		"mode", opts.mode,
		"serial", cfg.Serial.Port,
		"baud", cfg.Serial.Baud,
		"simulate", cfg.Serial.Simulate,
		"songs", cfg.SongsDir,
		"log", cfg.LogPath,
		"debug", opts.debug,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.mode == "ports" {
		return listPorts()
	}

	var out io.Writer
	if sp := openOutput(cfg); sp != nil {
		defer sp.Close()
		out = sp
	}

	switch opts.mode {
	case "play":
		return playSong(ctx, out, cfg, opts.song)
	case "tui":
		p := NewPlayer(out, cfg.LogPath)
		err := RunPicker(ctx, p, cfg.SongsDir)
		_ = p.Stop()
		_, _ = p.Wait()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			logger.Error("tui failed", "err", err)
			return 1
		}
		return 0
	case "http":
		p := NewPlayer(out, cfg.LogPath)
		ws := NewWebServer(ctx, p, cfg.SongsDir)
		if err := ws.ListenAndServe(cfg.HTTP.Addr); err != nil {
			logger.Error("http server failed", "err", err)
			return 1
		}
		_ = p.Stop()
		_, _ = p.Wait()
		return 0
	case "live":
		return runLive(ctx, out, cfg.Live.Pulse)
	}
	fmt.Fprintf(os.Stderr, "unknown mode %q\n", opts.mode)
	flag.Usage()
	return 2
}

// openOutput opens the configured or discovered serial port. Any failure
// leaves playback in simulation mode.
func openOutput(cfg *Config) *SerialPort {
	if cfg.Serial.Simulate {
		logger.Info("serial: simulation requested, no port opened")
		return nil
	}
	name := cfg.Serial.Port
	if name == "" {
		found, err := FindPort(cfg.Serial.Match)
		if err != nil {
			logger.Warn("serial: no device found, running in simulation mode", "err", err)
			return nil
		}
		name = found
	}
	sp, err := OpenSerial(name, cfg.Serial.Baud, cfg.Serial.Settle)
	if err != nil {
		logger.Warn("serial: open failed, running in simulation mode", "err", err)
		return nil
	}
	return sp
}

func playSong(ctx context.Context, out io.Writer, cfg *Config, song string) int {
	if song == "" {
		fmt.Fprintln(os.Stderr, "play mode needs -song")
		return 2
	}
	p := NewPlayer(out, cfg.LogPath)
	if err := p.Start(ctx, song); err != nil {
		logger.Error("playback failed to start", "err", err)
		return 1
	}
	res, _ := p.Wait()
	fmt.Printf("%s: %s (%d events, %d sent)\n", res.Song, res.Outcome, res.Dispatched, res.Sent)
	if res.State == StateFailed {
		return 1
	}
	return 0
}

func runLive(ctx context.Context, out io.Writer, pulse time.Duration) int {
	mapper := NewLiveMapper(NewTransmitter(out), pulse)
	watcher, err := NewMIDIWatcher(mapper.NoteStart)
	if err != nil {
		logger.Error("midi watcher init failed", "err", err)
		return 1
	}
	defer watcher.Close()

	logger.Info("running - waiting for MIDI device")
	watcher.Run(ctx)
	return 0
}

func listPorts() int {
	ports, err := ListPorts()
	if err != nil {
		logger.Error("port listing failed", "err", err)
		return 1
	}
	if len(ports) == 0 {
		fmt.Println("no serial ports found")
		return 0
	}
	for _, p := range ports {
		usb := ""
		if p.IsUSB {
			usb = " (usb)"
		}
		fmt.Printf("%s\t%s%s\n", p.Name, p.Product, usb)
	}
	return 0
}
