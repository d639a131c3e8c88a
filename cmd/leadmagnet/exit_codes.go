package main

import (
	"context"
	"errors"
	"os"

	leadmagnet "github.com/alnah/go-leadmagnet"
	"github.com/alnah/go-leadmagnet/internal/config"
	"github.com/alnah/go-leadmagnet/internal/dateutil"
	"github.com/alnah/go-leadmagnet/internal/yamlutil"
)

// Exit codes for the leadmagnet CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Command completed
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitRenderer = 4 // Browser or remote renderer errors
	ExitPlan     = 5 // Action not available on the plan
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Plan restrictions (exit 5)
	if errors.Is(err, leadmagnet.ErrFormatNotAllowed) ||
		errors.Is(err, leadmagnet.ErrArtifactLimit) ||
		errors.Is(err, leadmagnet.ErrGenerationLimit) {
		return ExitPlan
	}

	// Renderer errors (exit 4)
	if errors.Is(err, leadmagnet.ErrBrowserConnect) ||
		errors.Is(err, leadmagnet.ErrPageCreate) ||
		errors.Is(err, leadmagnet.ErrPageLoad) ||
		errors.Is(err, leadmagnet.ErrPDFGeneration) ||
		errors.Is(err, leadmagnet.ErrRenderFailed) ||
		errors.Is(err, leadmagnet.ErrRemoteRender) ||
		errors.Is(err, leadmagnet.ErrEmptyDocument) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitRenderer
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadArtifact) ||
		errors.Is(err, ErrWriteArtifact) ||
		errors.Is(err, ErrWriteDocument) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, leadmagnet.ErrShareFailed) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrMissingAPIKey) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, yamlutil.ErrInputTooLarge) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, leadmagnet.ErrUnknownFormat) ||
		errors.Is(err, leadmagnet.ErrUnknownPlan) ||
		errors.Is(err, leadmagnet.ErrUnknownTheme) ||
		errors.Is(err, leadmagnet.ErrInvalidRequest) ||
		errors.Is(err, leadmagnet.ErrInvalidPageSize) ||
		errors.Is(err, leadmagnet.ErrInvalidOrientation) ||
		errors.Is(err, leadmagnet.ErrInvalidMargin) ||
		errors.Is(err, leadmagnet.ErrInvalidColor) ||
		errors.Is(err, leadmagnet.ErrInvalidTitleSize) ||
		errors.Is(err, leadmagnet.ErrThemeNotFound) ||
		errors.Is(err, leadmagnet.ErrTemplateSetNotFound) ||
		errors.Is(err, leadmagnet.ErrIncompleteTemplateSet) ||
		errors.Is(err, leadmagnet.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
