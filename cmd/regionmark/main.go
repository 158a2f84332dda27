package main

import (
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

	"github.com/1broseidon/regionmark/internal/config"
	"github.com/1broseidon/regionmark/internal/geometry"
	"github.com/1broseidon/regionmark/internal/overlay"
	"github.com/1broseidon/regionmark/internal/x11"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: regionmark [options] <x> <y> <w> <h>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Draw a translucent, click-through outline around a screen region")
	fmt.Fprintln(w, "until interrupted (Ctrl-C) or the optional duration elapses.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// options holds command-line values. Only flags the user actually set
// override the config file.
type options struct {
	configPath     string
	color          string
	fill           string
	style          string
	thickness      int
	opacity        float64
	duration       int
	display        string
	logLevel       string
	noClickThrough bool
	noKeepAbove    bool
	printConfig    bool
}

func newFlagSet(opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("regionmark", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Config file (default ~/.config/regionmark/config.yaml)")
	fs.StringVar(&opts.color, "color", "", "Outline color: name, #rrggbb or 0xrrggbb")
	fs.StringVar(&opts.fill, "fill", "", "Interior color for --style filled")
	fs.StringVar(&opts.style, "style", "", "Drawing style: outline or filled")
	fs.IntVar(&opts.thickness, "thickness", 0, "Outline thickness in pixels")
	fs.Float64Var(&opts.opacity, "opacity", 0, "Window opacity, 0 < opacity <= 1")
	fs.IntVar(&opts.duration, "duration", 0, "Exit after N seconds (0 = run until closed)")
	fs.StringVar(&opts.display, "display", "", "X display to use (default $DISPLAY)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warning, error")
	fs.BoolVar(&opts.noClickThrough, "no-click-through", false, "Let the overlay receive pointer events")
	fs.BoolVar(&opts.noKeepAbove, "no-keep-above", false, "Do not re-raise the overlay when it is covered")
	fs.BoolVar(&opts.printConfig, "print-config", false, "Print the effective configuration and exit")
	return fs
}

// applyFlags copies explicitly set flags into the loaded config and records
// them as command-line sources.
func applyFlags(fs *flag.FlagSet, opts *options, res *config.LoadResult) {
	cfg := res.Config
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "color":
			cfg.Color = opts.color
			res.MarkFlag("color")
		case "fill":
			cfg.Fill = opts.fill
			res.MarkFlag("fill")
		case "style":
			cfg.Style = config.Style(opts.style)
			res.MarkFlag("style")
		case "thickness":
			cfg.Thickness = opts.thickness
			res.MarkFlag("thickness")
		case "opacity":
			cfg.Opacity = opts.opacity
			res.MarkFlag("opacity")
		case "duration":
			cfg.Duration = opts.duration
			res.MarkFlag("duration")
		case "display":
			cfg.Display = opts.display
			res.MarkFlag("display")
		case "log-level":
			cfg.LogLevel = opts.logLevel
			res.MarkFlag("log_level")
		case "no-click-through":
			cfg.ClickThrough = !opts.noClickThrough
			res.MarkFlag("click_through")
		case "no-keep-above":
			cfg.KeepAbove = !opts.noKeepAbove
			res.MarkFlag("keep_above")
		}
	})
}

// splitArgs separates geometry arguments from flags so negative coordinates
// such as "-20" are not mistaken for flags. Everything after "--" is
// positional.
func splitArgs(fs *flag.FlagSet, args []string) (flagArgs, positional []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if _, err := strconv.Atoi(arg); err == nil {
			positional = append(positional, arg)
			continue
		}
		if !strings.HasPrefix(arg, "-") {
			positional = append(positional, arg)
			continue
		}

		flagArgs = append(flagArgs, arg)
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil || isBoolFlag(f) {
			continue
		}
		if i+1 < len(args) {
			i++
			flagArgs = append(flagArgs, args[i])
		}
	}
	return flagArgs, positional
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// isFlagError reports whether a validation error was caused by a
// command-line value rather than the config file.
func isFlagError(err error) bool {
	var verr *config.ValidationError
	return errors.As(err, &verr) && verr.Source.Kind == config.SourceFlag
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

// run parses arguments, shows the overlay and blocks until it closes. It
// returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := newFlagSet(&opts)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, fs) }

	flagArgs, positional := splitArgs(fs, args)
	if err := fs.Parse(flagArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	positional = append(positional, fs.Args()...)

	res, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	applyFlags(fs, &opts, res)
	if err := res.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		if isFlagError(err) {
			fmt.Fprintln(stderr, "")
			fs.Usage()
			return 2
		}
		return 1
	}

	if opts.printConfig {
		if err := config.PrintEffective(stdout, res); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	rect, err := geometry.Parse(positional)
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, "")
		fs.Usage()
		return 2
	}

	cfg := res.Config
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	if err := show(rect, cfg, logger); err != nil {
		logger.Error("overlay failed", "error", err)
		return 1
	}
	return 0
}

// show connects to X, draws the overlay and runs the event loop until a
// signal, the configured duration, or external destruction ends it.
func show(rect geometry.Rect, cfg *config.Config, logger *slog.Logger) error {
	conn, err := x11.NewConnection(cfg.Display)
	if err != nil {
		return err
	}
	defer conn.Close()

	if !conn.ScreenBounds().Intersects(rect) {
		logger.Warn("region lies outside the screen", "geometry", rect.String(), "screen", conn.ScreenBounds().String())
	}
	if ok, err := conn.CompositorRunning(); err != nil {
		logger.Debug("compositor detection failed", "error", err)
	} else if !ok {
		logger.Warn("no compositing manager running; opacity will have no effect")
	}
	logger.Debug("connected to X", "wm", conn.WindowManagerName())

	ov, err := overlay.New(conn.XUtil, conn.Root, rect, cfg, logger)
	if err != nil {
		return err
	}
	defer ov.Close()
	ov.OnClosed = conn.Quit

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	var timeout <-chan time.Time
	if d := cfg.Timeout(); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		timeout = timer.C
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, closing overlay", "signal", sig)
		case <-timeout:
			logger.Info("duration elapsed, closing overlay", "duration", cfg.Timeout())
		case <-done:
			return
		}
		conn.Quit()
	}()

	ov.Show()
	logger.Info("overlay shown", "geometry", ov.Rect().String(), "style", cfg.Style, "opacity", cfg.Opacity)

	conn.EventLoop()
	return nil
}
