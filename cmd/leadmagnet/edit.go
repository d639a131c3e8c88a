package main

import (
	"fmt"

	leadmagnet "github.com/alnah/go-leadmagnet"
)

// runEdit prints an artifact as plain text, or replaces its content with
// edited text.
func runEdit(args []string, env *Environment) error {
	flags, positional, err := parseEditFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: edit takes exactly one artifact file", ErrUsage)
	}
	path := positional[0]

	a, err := loadArtifact(path)
	if err != nil {
		return err
	}

	if flags.text == "" {
		fmt.Fprintln(env.Stdout, leadmagnet.EditableText(*a))
		return nil
	}

	text, err := readInput([]string{flags.text}, env.Stdin)
	if err != nil {
		return err
	}
	edited := leadmagnet.ApplyEdit(*a, text, env.Now())
	if err := writeArtifact(path, &edited); err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Updated %s (%d words)\n", path, edited.WordCount)
	}
	return nil
}
