package main

import (
	"flag"
	"path/filepath"
)

type viewCmd struct {
	file string
	opts viewOptions
	*root
	fs *flag.FlagSet
}

func (v *viewCmd) Program() string {
	return v.root.subcommand("view")
}

func (v *viewCmd) FlagSet() *flag.FlagSet {
	return v.fs
}

func addViewFlags(fs *flag.FlagSet, opts *viewOptions) {
	fs.BoolVar(&opts.dvdLogo, "dvd-logo", opts.dvdLogo, "show the bouncing DVD logo")
	fs.BoolVar(&opts.rotate, "rotate", opts.rotate, "allow Alt+scroll to rotate the view")
	fs.BoolVar(&opts.centerOnResize, "center-on-resize", opts.centerOnResize, "refit the image whenever the window is resized")
}

func parseViewCmd(args []string, r *root) (*viewCmd, error) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	c := &viewCmd{root: r, fs: fs, opts: r.defaultViewOptions()}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", "", "image file to open")
	addViewFlags(fs, &c.opts)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && fs.NArg() == 1 {
		c.file = fs.Arg(0)
	}
	if c.file == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (v *viewCmd) Run() error {
	img, err := loadImage(v.file)
	if err != nil {
		return err
	}
	return v.root.view(img, filepath.Base(v.file)+" - Wroomer", v.opts)
}
