package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	leadmagnet "github.com/alnah/go-leadmagnet"
	"github.com/alnah/go-leadmagnet/internal/config"
	"github.com/alnah/go-leadmagnet/internal/dateutil"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unexpected", errors.New("boom"), ExitGeneral},

		{"format not allowed", leadmagnet.ErrFormatNotAllowed, ExitPlan},
		{"artifact limit wrapped", fmt.Errorf("generate: %w", leadmagnet.ErrArtifactLimit), ExitPlan},
		{"generation limit", leadmagnet.ErrGenerationLimit, ExitPlan},

		{"browser connect", leadmagnet.ErrBrowserConnect, ExitRenderer},
		{"remote render", fmt.Errorf("%w: 503", leadmagnet.ErrRemoteRender), ExitRenderer},
		{"empty document", leadmagnet.ErrEmptyDocument, ExitRenderer},
		{"deadline", context.DeadlineExceeded, ExitRenderer},

		{"not exist", fmt.Errorf("open: %w", os.ErrNotExist), ExitIO},
		{"read artifact", ErrReadArtifact, ExitIO},
		{"write document", ErrWriteDocument, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"share failed", leadmagnet.ErrShareFailed, ExitIO},

		{"usage", ErrUsage, ExitUsage},
		{"missing key", ErrMissingAPIKey, ExitUsage},
		{"config value", config.ErrInvalidValue, ExitUsage},
		{"date format", dateutil.ErrInvalidDateFormat, ExitUsage},
		{"unknown plan", leadmagnet.ErrUnknownPlan, ExitUsage},
		{"invalid request", leadmagnet.ErrInvalidRequest, ExitUsage},
		{"theme not found", leadmagnet.ErrThemeNotFound, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
