package leadmagnet

import (
	"errors"

	"github.com/alnah/go-leadmagnet/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrNilArtifact      = errors.New("artifact cannot be nil")
	ErrEmptyTitle       = errors.New("artifact title cannot be empty")
	ErrUnknownFormat    = errors.New("unknown export format")
	ErrUnknownPlan      = errors.New("unknown plan")
	ErrFormatNotAllowed = errors.New("export format not allowed on plan")
	ErrArtifactLimit    = errors.New("artifact limit reached")
	ErrInvalidPlanTable = errors.New("invalid plan table")
	ErrUnknownTheme     = errors.New("unknown theme")

	// Asset errors.
	ErrThemeNotFound         = errors.New("theme not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set incomplete")
	ErrInvalidAssetPath      = errors.New("invalid asset path")

	// Rendering errors.
	ErrRenderFailed   = errors.New("document rendering failed")
	ErrRemoteRender   = errors.New("remote renderer failed")
	ErrEmptyDocument  = errors.New("renderer returned an empty document")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrDocumentRender = pipeline.ErrDocumentRender

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Design validation errors.
	ErrInvalidColor     = errors.New("invalid color")
	ErrInvalidTitleSize = errors.New("invalid title size")

	// Generation errors.
	ErrInvalidRequest   = errors.New("invalid generation request")
	ErrGenerationFailed = errors.New("AI generation failed")
	ErrGenerationLimit  = errors.New("AI generation limit reached")
	ErrEmptyCompletion  = errors.New("AI provider returned no content")

	// Share errors.
	ErrShareFailed = errors.New("share failed")
)
