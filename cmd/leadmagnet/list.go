package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/alnah/go-leadmagnet/internal/dateutil"
)

// runList prints a table of the artifacts in the library.
func runList(args []string, env *Environment) error {
	flags, positional, err := parseListFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: list takes at most one directory", ErrUsage)
	}

	cfg, _, err := resolveConfig(flags.common, env)
	if err != nil {
		return err
	}
	dir := cfg.Library.Dir
	if len(positional) == 1 {
		dir = positional[0]
	}

	if _, err := dateutil.ResolveLayout(flags.dateFormat); err != nil {
		return err
	}

	entries, err := loadLibrary(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		if !flags.common.quiet {
			fmt.Fprintln(env.Stdout, "No artifacts found.")
		}
		return nil
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tTYPE\tTHEME\tWORDS\tDOWNLOADS\tCREATED\tFILE")
	for _, e := range entries {
		a := e.Artifact
		theme := a.Design.Template
		if theme == "" {
			theme = "-"
		}
		created, _ := dateutil.FormatDate(a.CreatedAt.Local(), flags.dateFormat)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			a.Title, a.Type.Label(), theme, a.WordCount, a.DownloadCount, created, e.Path)
	}
	return tw.Flush()
}
