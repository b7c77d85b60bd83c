package main

import (
	"errors"
	"flag"
	"fmt"
	"image"

	"github.com/example/wroomer/internal/capture"
	"github.com/example/wroomer/internal/logging"
)

var (
	captureAllFn     = capture.AllScreens
	captureMonitorFn = capture.MonitorScreenshot
)

type captureCmd struct {
	output        string
	monitor       string
	includeCursor bool
	openViewer    bool
	opts          viewOptions
	*root
	fs *flag.FlagSet
}

func (c *captureCmd) Program() string {
	return c.root.subcommand("capture")
}

func (c *captureCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseCaptureCmd(args []string, r *root) (*captureCmd, error) {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	c := &captureCmd{root: r, fs: fs, openViewer: true, opts: r.defaultViewOptions()}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "", "write the capture to this PNG file")
	fs.StringVar(&c.monitor, "monitor", "", "capture a single monitor by index or name instead of the whole desktop")
	fs.BoolVar(&c.includeCursor, "cursor", false, "include the mouse pointer when the portal supports it")
	fs.BoolVar(&c.openViewer, "view", c.openViewer, "open the capture in the viewer")
	addViewFlags(fs, &c.opts)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	if !c.openViewer && c.output == "" {
		return nil, errors.New("nothing to do: pass -output or keep -view enabled")
	}
	return c, nil
}

func (c *captureCmd) grab() (*image.RGBA, string, error) {
	opts := capture.CaptureOptions{IncludeCursor: c.includeCursor}
	if c.monitor != "" {
		img, err := captureMonitorFn(c.monitor, opts)
		if err != nil {
			return nil, "", fmt.Errorf("failed to capture monitor %s: %w", c.monitor, err)
		}
		return img, "monitor " + c.monitor, nil
	}
	img, err := captureAllFn(opts)
	if err != nil {
		return nil, "", fmt.Errorf("failed to capture screen: %w", err)
	}
	return img, "desktop", nil
}

func (c *captureCmd) Run() error {
	img, detail, err := c.grab()
	if err != nil {
		return err
	}
	logging.Logger().Info("captured", "target", detail, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	c.root.notifier.Capture(detail, img)

	if c.output != "" {
		if err := savePNG(c.output, img); err != nil {
			return fmt.Errorf("save capture: %w", err)
		}
		c.root.notifier.Save(c.output)
	}
	if !c.openViewer {
		return nil
	}
	return c.root.view(img, "Wroomer", c.opts)
}
