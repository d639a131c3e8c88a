// Package hints builds the "\n  hint: ..." suffixes the CLI appends to
// error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-leadmagnet/internal/fileutil"
)

// IsInContainer reports whether /.dockerenv exists. Tests swap it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
func ForBrowserConnect() string {
	var hints []string

	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	if os.Getenv("LEADMAGNET_RENDERER_ENDPOINT") == "" {
		hints = append(hints, "or use --renderer remote with --endpoint")
	}

	return formatHints(hints)
}

// ciVars are set by the CI systems we know about.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

func inCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for long documents or slow renderers, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(toSlash(p), ".config/go-leadmagnet") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory is appended when the output directory cannot be created.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForThemeNotFound returns hints for unknown theme names.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForPlanRestriction returns hints when the plan does not allow an action.
func ForPlanRestriction(plan string) string {
	switch plan {
	case "", "free":
		return format("upgrade to pro or unlimited, or pass --plan if you already have")
	default:
		return format("check --plan matches your subscription")
	}
}

// ForMissingAPIKey returns hints when no API key is available for generation.
func ForMissingAPIKey(envVar string) string {
	if envVar == "" {
		envVar = "OPENAI_API_KEY"
	}
	return format("export " + envVar + "=<key> or set generation.apiKeyEnv in config")
}

// ForRemoteRenderer returns hints for remote rendering failures.
func ForRemoteRenderer() string {
	return format("check --endpoint is reachable, or use --renderer chrome")
}

// toSlash normalizes Windows separators for substring matching.
func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format prefixes a non-empty hint.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins hints into one line.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
