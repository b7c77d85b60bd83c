package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

type versionCmd struct {
	r   *root
	out io.Writer
}

func (v *versionCmd) Program() string { return v.r.subcommand("version") }
func (v *versionCmd) FlagSet() *flag.FlagSet { return nil }

func (v *versionCmd) Run() error {
	out := v.out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "%s version %s\n", v.r.program, version)
	if commit != "" {
		fmt.Fprintf(out, "commit: %s\n", commit)
	}
	if date != "" {
		fmt.Fprintf(out, "built: %s\n", date)
	}
	return nil
}
