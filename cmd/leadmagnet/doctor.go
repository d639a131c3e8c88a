package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	leadmagnet "github.com/alnah/go-leadmagnet"
	"github.com/alnah/go-leadmagnet/internal/config"
)

// versionProbeTimeout bounds "chrome --version".
const versionProbeTimeout = 10 * time.Second

// doctorResult is the full report, also printed as JSON.
type doctorResult struct {
	Status     string         `json:"status"` // "ready", "warnings", "errors"
	Chrome     chromeInfo     `json:"chrome"`
	Renderer   rendererInfo   `json:"renderer"`
	Generation generationInfo `json:"generation"`
	Env        envInfo        `json:"environment"`
	System     systemInfo     `json:"system"`
	Warnings   []string       `json:"warnings,omitempty"`
	Errors     []string       `json:"errors,omitempty"`
}

// chromeInfo is the detected browser.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// rendererInfo describes the configured PDF surface.
type rendererInfo struct {
	Mode     string `json:"mode"`
	Endpoint string `json:"endpoint,omitempty"`
}

// generationInfo describes the configured AI provider.
type generationInfo struct {
	Model     string `json:"model"`
	APIKeyEnv string `json:"api_key_env"`
	APIKeySet bool   `json:"api_key_set"`
}

// envInfo describes where we run.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo reports directory checks.
type systemInfo struct {
	TempWritable    bool   `json:"temp_writable"`
	LibraryDir      string `json:"library_dir"`
	LibraryWritable bool   `json:"library_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := newFlagSet("doctor", env.Stderr, printDoctorUsage)
	var (
		common     commonFlags
		jsonOutput bool
	)
	fs.BoolVar(&jsonOutput, "json", false, "print results as JSON")
	addCommonFlags(fs, &common)
	if err := parseArgs(fs, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	cfg, _, err := resolveConfig(commonFlags{config: common.config, plan: common.plan, quiet: true}, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	result := runDoctor(cfg, env.Getenv)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(cfg *config.Config, getenv func(string) string) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Renderer: rendererInfo{
			Mode:     cfg.Renderer.Mode,
			Endpoint: cfg.Renderer.Endpoint,
		},
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  getenv("ROD_NO_SANDBOX"),
			BrowserBin: getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkGeneration(result, cfg, getenv)
	checkEnvironment(result, getenv)
	checkSystem(result, cfg.Library.Dir)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects Chrome/Chromium. A missing browser is only an error
// when the Chrome renderer is selected.
func checkChrome(result *doctorResult) {
	report := func(msg string) {
		if result.Renderer.Mode == config.RendererRemote {
			result.Warnings = append(result.Warnings, msg+" (remote renderer selected, PDF export still works)")
			return
		}
		result.Errors = append(result.Errors, msg)
	}

	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			report("Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		report(fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	ctx, cancel := context.WithTimeout(context.Background(), versionProbeTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, chromePath, "--version").Output() // #nosec G204 -- browser path from rod lookup or ROD_BROWSER_BIN
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkGeneration verifies the provider key is available. generate cannot
// run without it, everything else can.
func checkGeneration(result *doctorResult, cfg *config.Config, getenv func(string) string) {
	keyEnv := cfg.Generation.APIKeyEnv
	if keyEnv == "" {
		keyEnv = leadmagnet.DefaultAPIKeyEnv
	}
	model := cfg.Generation.Model
	if model == "" {
		model = leadmagnet.DefaultModel
	}

	result.Generation = generationInfo{
		Model:     model,
		APIKeyEnv: keyEnv,
		APIKeySet: getenv(keyEnv) != "",
	}
	if !result.Generation.APIKeySet {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s not set. generate will fail until it is", keyEnv))
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(getenv)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" && result.Renderer.Mode != config.RendererRemote {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer reports whether we run in a container and which signal said
// so.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("LEADMAGNET_CONTAINER") == "1" {
		return true, "LEADMAGNET_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp and library directories are writable.
func checkSystem(result *doctorResult, libraryDir string) {
	tmpDir := os.TempDir()
	if probeWritable(tmpDir) {
		result.System.TempWritable = true
	} else {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	}

	if libraryDir == "" {
		libraryDir = "."
	}
	result.System.LibraryDir = libraryDir
	if _, err := os.Stat(libraryDir); os.IsNotExist(err) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Library directory %s does not exist yet. generate will create it", libraryDir))
		return
	}
	if probeWritable(libraryDir) {
		result.System.LibraryWritable = true
	} else {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Library directory not writable: %s", libraryDir))
	}
}

// probeWritable creates and removes a scratch file in dir.
func probeWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".leadmagnet-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(filepath.Clean(name))
	return true
}

// Line markers of the human-readable report.
const (
	markOK    = "[OK]"
	markWarn  = "[WARN]"
	markError = "[ERROR]"
)

// printDoctorResult writes the report section by section.
func printDoctorResult(w io.Writer, r *doctorResult) {
	line := func(mark, format string, args ...any) {
		fmt.Fprintf(w, "  %s %s\n", mark, fmt.Sprintf(format, args...))
	}
	section := func(title string, body func()) {
		fmt.Fprintln(w, title)
		body()
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "leadmagnet doctor")
	fmt.Fprintln(w)

	section("Chrome/Chromium", func() {
		switch {
		case r.Chrome.Found:
			line(markOK, "Found at %s", r.Chrome.Path)
			if r.Chrome.Version != "" {
				line(markOK, "Version: %s", r.Chrome.Version)
			}
			sandbox := "enabled"
			if !r.Chrome.Sandbox {
				sandbox = "disabled (ROD_NO_SANDBOX=1)"
			}
			line(markOK, "Sandbox: %s", sandbox)
		case r.Renderer.Mode == config.RendererRemote:
			line(markWarn, "Not found")
		default:
			line(markError, "Not found")
		}
	})

	section("Renderer", func() {
		if r.Renderer.Mode == config.RendererRemote {
			line(markOK, "Remote: %s", r.Renderer.Endpoint)
		} else {
			line(markOK, "Local Chrome")
		}
	})

	section("Generation", func() {
		line(markOK, "Model: %s", r.Generation.Model)
		if r.Generation.APIKeySet {
			line(markOK, "%s: set", r.Generation.APIKeyEnv)
		} else {
			line(markWarn, "%s: not set", r.Generation.APIKeyEnv)
		}
	})

	section("Environment", func() {
		line(markOK, "Platform: %s/%s", r.Env.OS, r.Env.Arch)
		if r.Env.Container {
			line(markOK, "Container: detected (%s)", r.Env.ContainerHint)
		}
		if r.Env.CI {
			line(markOK, "CI: detected")
		}
	})

	section("System", func() {
		if r.System.TempWritable {
			line(markOK, "Temp directory: writable")
		} else {
			line(markError, "Temp directory: not writable")
		}
		if r.System.LibraryWritable {
			line(markOK, "Library: %s", r.System.LibraryDir)
		}
	})

	if len(r.Warnings) > 0 {
		section("Warnings:", func() {
			for _, msg := range r.Warnings {
				line(markWarn, "%s", msg)
			}
		})
	}
	if len(r.Errors) > 0 {
		section("Errors:", func() {
			for _, msg := range r.Errors {
				line(markError, "%s", msg)
			}
		})
	}

	fmt.Fprintln(w, "Status: "+statusText[r.Status])
}

var statusText = map[string]string{
	"ready":    "Ready",
	"warnings": "Ready with warnings",
	"errors":   "Not ready (see errors above)",
}
