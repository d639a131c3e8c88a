package main

import (
	"fmt"
	"io"
	"strings"

	leadmagnet "github.com/alnah/go-leadmagnet"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: leadmagnet <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Generate a lead magnet with an AI provider")
	fmt.Fprintln(w, "  format     Format raw text into lead magnet HTML")
	fmt.Fprintln(w, "  export     Export artifacts to PDF or HTML")
	fmt.Fprintln(w, "  edit       Print or replace the text of an artifact")
	fmt.Fprintln(w, "  list       List artifacts in the library")
	fmt.Fprintln(w, "  plans      Show plan tiers and their limits")
	fmt.Fprintln(w, "  doctor     Check the rendering environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'leadmagnet help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --plan <s>            Plan tier: free, pro, unlimited")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed logs and timing")
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: leadmagnet export <artifact.yaml|dir>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export artifacts to PDF or HTML. Directories export every artifact inside.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -f, --format <s>          Format: pdf, html (default: pdf)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "      --theme <name>        Theme: "+strings.Join(leadmagnet.ThemeNames(), ", "))
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --share               Open the document with the share command")
	fmt.Fprintln(w, "      --no-record           Do not update download counts")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Renderer:")
	fmt.Fprintln(w, "      --renderer <s>        chrome (default) or remote")
	fmt.Fprintln(w, "      --endpoint <url>      Remote renderer URL")
	fmt.Fprintln(w, "  -t, --timeout <d>         Render timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel renderers (0 = auto)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: leadmagnet generate --type <t> --title <s> --prompt <s> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a lead magnet and save it as an artifact file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content:")
	types := make([]string, 0, len(leadmagnet.ArtifactTypes()))
	for _, t := range leadmagnet.ArtifactTypes() {
		types = append(types, string(t))
	}
	fmt.Fprintln(w, "      --type <t>            "+strings.Join(types, ", "))
	fmt.Fprintln(w, "      --title <s>           Title")
	fmt.Fprintln(w, "      --prompt <s>          What the content should cover")
	fmt.Fprintln(w, "      --audience <s>        Target audience")
	fmt.Fprintln(w, "      --niche <s>           Niche or industry")
	fmt.Fprintln(w, "      --tone <s>            professional, friendly, educational, persuasive")
	fmt.Fprintln(w, "      --length <s>          short, standard, detailed")
	fmt.Fprintln(w, "      --items <n>           Number of items (checklists, resource lists)")
	fmt.Fprintln(w, "      --user <id>           Owner ID stored on the artifact")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Provider:")
	fmt.Fprintln(w, "      --model <s>           Chat model (default: "+leadmagnet.DefaultModel+")")
	fmt.Fprintln(w, "      --highlight           Syntax-highlight fenced code")
	fmt.Fprintln(w, "  -o, --output <dir>        Library directory")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printFormatUsage prints usage for the format command.
func printFormatUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: leadmagnet format [file|-] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Format raw provider text into an HTML fragment. Reads stdin by default.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --stats               Print word and item counts instead")
	fmt.Fprintln(w, "      --highlight           Syntax-highlight fenced code")
	fmt.Fprintln(w, "      --style <name>        Highlight style (default: github)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printEditUsage prints usage for the edit command.
func printEditUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: leadmagnet edit <artifact.yaml> [--text <file|->]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without --text, print the artifact as plain text. With --text, replace")
	fmt.Fprintln(w, "its content; blank lines separate paragraphs.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printListUsage prints usage for the list command.
func printListUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: leadmagnet list [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List artifacts in the library directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --date-format <s>     Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm")
	fmt.Fprintln(w, "                            Presets: iso, european, us, long, stamp")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printPlansUsage prints usage for the plans command.
func printPlansUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: leadmagnet plans [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show plan tiers and their limits.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: leadmagnet doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, the remote renderer and the generation API key.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "export":
		printExportUsage(env.Stdout)
	case "generate":
		printGenerateUsage(env.Stdout)
	case "format":
		printFormatUsage(env.Stdout)
	case "edit":
		printEditUsage(env.Stdout)
	case "list":
		printListUsage(env.Stdout)
	case "plans":
		printPlansUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: leadmagnet version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: leadmagnet help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
