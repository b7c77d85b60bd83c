package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/example/wroomer/internal/appstate"
	"github.com/example/wroomer/internal/config"
	"github.com/example/wroomer/internal/interaction"
	"github.com/example/wroomer/internal/logging"
	"github.com/example/wroomer/internal/notify"
	"github.com/example/wroomer/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

// runViewerFn opens the viewer window; tests replace it.
var runViewerFn = func(st *appstate.AppState) error { return st.Run() }

type runnable interface{ Run() error }

type root struct {
	fs            *flag.FlagSet
	program       string
	notifier      *notify.Notifier
	config        *config.Config
	captureAlerts bool
	saveAlerts    bool
	copyAlerts    bool
	themeName     string
	activeTheme   *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		logging.Logger().Warn("failed to load config, using defaults", "err", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("wroomer", flag.ExitOnError),
		program:  "wroomer",
		notifier: notify.New(notify.LoadPreferences()),
		config:   cfg,
	}
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", cfg.Notify.Capture, "show a desktop notification after capturing the desktop")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a capture")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying the view")

	// Precedence: CLI > Env > Config > Default. An empty flag falls through.
	r.fs.StringVar(&r.themeName, "theme", "", "colour theme to use ("+strings.Join(theme.Names(), ", ")+")")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier.Enable(notify.EventCapture, r.captureAlerts)
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "view":
		cmd, err = parseViewCmd(subArgs, r)
	case "capture":
		cmd, err = parseCaptureCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("WROOMER_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}
	if t, ok := r.config.Themes[name]; ok {
		return t
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			logging.Logger().Warn("failed to load theme, using default", "theme", name, "err", err)
		}
		return theme.Default()
	}
	return t
}

// viewOptions are the per-invocation overrides of the [view] config section.
type viewOptions struct {
	dvdLogo        bool
	rotate         bool
	centerOnResize bool
}

func (r *root) defaultViewOptions() viewOptions {
	return viewOptions{
		dvdLogo:        r.config.View.DVDLogo,
		rotate:         r.config.View.Rotation,
		centerOnResize: r.config.View.CenterOnResize,
	}
}

func (r *root) interactionConfig(opts viewOptions) interaction.Config {
	cfg := r.config.Interaction()
	cfg.OverlaySupported = opts.dvdLogo
	cfg.RotationSupported = opts.rotate
	cfg.CenteringOnResize = opts.centerOnResize
	return cfg
}

func (r *root) view(img *image.RGBA, title string, opts viewOptions) error {
	st := appstate.New(
		appstate.WithImage(img),
		appstate.WithConfig(r.interactionConfig(opts)),
		appstate.WithTheme(r.activeTheme),
		appstate.WithNotifier(r.notifier),
		appstate.WithTitle(title),
	)
	return runViewerFn(st)
}

func main() {
	logging.SetLogger(logging.FromEnv(os.Stderr))
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
