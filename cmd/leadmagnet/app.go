package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	leadmagnet "github.com/alnah/go-leadmagnet"
	"github.com/alnah/go-leadmagnet/internal/config"
	"github.com/alnah/go-leadmagnet/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrNoInput            = errors.New("no input specified")
	ErrReadInput          = errors.New("failed to read input")
	ErrReadArtifact       = errors.New("failed to read artifact file")
	ErrWriteArtifact      = errors.New("failed to write artifact file")
	ErrWriteDocument      = errors.New("failed to write document")
	ErrMissingAPIKey      = errors.New("missing API key")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// maxWorkers caps --workers; each worker may own a Chrome instance.
const maxWorkers = 32

// runMain dispatches args (without the program name) to a command and
// returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "generate":
		err = runGenerate(ctx, rest, env)
	case "format":
		err = runFormat(rest, env)
	case "export":
		err = runExport(ctx, rest, env)
	case "edit":
		err = runEdit(rest, env)
	case "list":
		err = runList(rest, env)
	case "plans":
		err = runPlans(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "leadmagnet %s\n", Version)
	case "help", "-h", "--help":
		err = runHelp(rest, env)
	default:
		printUsage(env.Stderr)
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintFor returns an actionable hint for common failures. Errors already
// carrying a hint get none.
func hintFor(err error) string {
	if strings.Contains(err.Error(), "hint:") {
		return ""
	}
	switch {
	case errors.Is(err, leadmagnet.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, leadmagnet.ErrRemoteRender):
		return hints.ForRemoteRenderer()
	case errors.Is(err, leadmagnet.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, leadmagnet.ErrThemeNotFound), errors.Is(err, leadmagnet.ErrUnknownTheme):
		return hints.ForThemeNotFound(leadmagnet.ThemeNames())
	case errors.Is(err, ErrWriteDocument):
		return hints.ForOutputDirectory()
	}
	return ""
}

// resolveConfig loads the config file named by --config or
// LEADMAGNET_CONFIG, then overlays environment variables and --plan.
func resolveConfig(common commonFlags, env *Environment) (*config.Config, *envConfig, error) {
	envCfg := loadEnvConfig(env.Getenv)
	if !common.quiet && env.Environ != nil {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	if common.plan != "" {
		cfg.Plan = common.plan
	}
	return cfg, envCfg, nil
}

// readInput returns the content of the single positional argument, or
// stdin when it is absent or "-".
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected at most one input, got %d", ErrUsage, len(args))
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0]) // #nosec G304 -- user-provided input path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(data), nil
}

// validateWorkers checks the --workers value.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}
