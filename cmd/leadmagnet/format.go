package main

import (
	"fmt"

	leadmagnet "github.com/alnah/go-leadmagnet"
)

// runFormat formats raw provider text read from a file or stdin.
func runFormat(args []string, env *Environment) error {
	flags, positional, err := parseFormatFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, _, err := resolveConfig(flags.common, env)
	if err != nil {
		return err
	}

	raw, err := readInput(positional, env.Stdin)
	if err != nil {
		return err
	}

	if flags.stats {
		s := leadmagnet.AnalyzeContent(raw)
		fmt.Fprintf(env.Stdout, "words: %d\nitems: %d\n", s.Words, s.Items)
		if s.Headline != "" {
			fmt.Fprintf(env.Stdout, "headline: %s\n", s.Headline)
		}
		return nil
	}

	formatter := leadmagnet.NewFormatter()
	if flags.highlight || cfg.Export.Highlight {
		style := flags.style
		if style == "" {
			style = cfg.Export.HighlightStyle
		}
		formatter = leadmagnet.NewFormatter(leadmagnet.WithHighlighting(style))
	}

	if out := formatter.Format(raw); out != "" {
		fmt.Fprintln(env.Stdout, out)
	}
	return nil
}
