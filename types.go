package leadmagnet

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

// ArtifactType identifies the kind of lead magnet.
type ArtifactType string

// Artifact types.
const (
	TypeChecklist    ArtifactType = "checklist"
	TypeCheatsheet   ArtifactType = "cheatsheet"
	TypeGuide        ArtifactType = "guide"
	TypeTemplate     ArtifactType = "template"
	TypeSwipefile    ArtifactType = "swipefile"
	TypeResourceList ArtifactType = "resourcelist"
	TypeWorksheet    ArtifactType = "worksheet"
)

type typeInfo struct {
	label       string
	description string
}

var artifactTypes = map[ArtifactType]typeInfo{
	TypeChecklist:    {"Checklist", "Step-by-step actionable items"},
	TypeCheatsheet:   {"Cheat Sheet", "Quick reference guide"},
	TypeGuide:        {"Quick Guide", "Short educational content"},
	TypeTemplate:     {"Template", "Fill-in-the-blank template"},
	TypeSwipefile:    {"Swipe File", "Copy-and-paste examples"},
	TypeResourceList: {"Resource List", "Curated list of tools/resources"},
	TypeWorksheet:    {"Worksheet", "Interactive worksheet"},
}

// ArtifactTypes returns every known type, sorted by name.
func ArtifactTypes() []ArtifactType {
	types := make([]ArtifactType, 0, len(artifactTypes))
	for t := range artifactTypes {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Valid reports whether t is a known artifact type.
func (t ArtifactType) Valid() bool {
	_, ok := artifactTypes[t]
	return ok
}

// Label returns the display name used for badges and prompts.
// Unknown types fall back to the checklist label.
func (t ArtifactType) Label() string {
	if info, ok := artifactTypes[t]; ok {
		return info.label
	}
	return artifactTypes[TypeChecklist].label
}

// Description returns the one-line description used in prompts.
func (t ArtifactType) Description() string {
	if info, ok := artifactTypes[t]; ok {
		return info.description
	}
	return artifactTypes[TypeChecklist].description
}

// Tone controls the voice of generated content.
type Tone string

// Tones.
const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneEducational  Tone = "educational"
	TonePersuasive   Tone = "persuasive"
)

// Length controls the target size of generated content.
type Length string

// Lengths.
const (
	LengthShort    Length = "short"
	LengthStandard Length = "standard"
	LengthDetailed Length = "detailed"
)

// Status is the lifecycle state of an artifact.
type Status string

// Statuses.
const (
	StatusDraft      Status = "draft"
	StatusGenerating Status = "generating"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// Title sizes.
const (
	TitleSmall  = "small"
	TitleMedium = "medium"
	TitleLarge  = "large"
)

// DefaultTheme is the theme used when a design names none, or names a
// premium theme the plan cannot use.
const DefaultTheme = "modern"

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Design holds the visual parameters of an artifact.
type Design struct {
	PrimaryColor    string `yaml:"primaryColor" json:"primaryColor"`
	SecondaryColor  string `yaml:"secondaryColor" json:"secondaryColor"`
	BackgroundColor string `yaml:"backgroundColor" json:"backgroundColor"`
	TextColor       string `yaml:"textColor" json:"textColor"`
	FontFamily      string `yaml:"fontFamily" json:"fontFamily"`
	TitleSize       string `yaml:"titleSize" json:"titleSize"`
	Template        string `yaml:"template" json:"template"` // theme name
	CompanyName     string `yaml:"companyName,omitempty" json:"companyName,omitempty"`
	WebsiteURL      string `yaml:"websiteUrl,omitempty" json:"websiteUrl,omitempty"`
	CTAText         string `yaml:"ctaText,omitempty" json:"ctaText,omitempty"`
	CTAURL          string `yaml:"ctaUrl,omitempty" json:"ctaUrl,omitempty"`
}

// DefaultDesign returns the design applied to new artifacts.
func DefaultDesign() Design {
	return Design{
		PrimaryColor:    "#8B5CF6",
		SecondaryColor:  "#A78BFA",
		BackgroundColor: "#FFFFFF",
		TextColor:       "#1F2937",
		FontFamily:      "Inter",
		TitleSize:       TitleLarge,
		Template:        DefaultTheme,
	}
}

// Validate checks colors and title size. Empty fields are allowed and
// resolved to defaults at export time.
func (d *Design) Validate() error {
	if d == nil {
		return nil
	}
	for _, c := range []struct{ field, value string }{
		{"primaryColor", d.PrimaryColor},
		{"secondaryColor", d.SecondaryColor},
		{"backgroundColor", d.BackgroundColor},
		{"textColor", d.TextColor},
	} {
		if c.value != "" && !hexColorPattern.MatchString(c.value) {
			return fmt.Errorf("%w: %s %q (must be #RRGGBB)", ErrInvalidColor, c.field, c.value)
		}
	}
	switch d.TitleSize {
	case "", TitleSmall, TitleMedium, TitleLarge:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTitleSize, d.TitleSize)
	}
	return nil
}

// withDefaults fills empty fields from DefaultDesign.
func (d Design) withDefaults() Design {
	def := DefaultDesign()
	if d.PrimaryColor == "" {
		d.PrimaryColor = def.PrimaryColor
	}
	if d.SecondaryColor == "" {
		d.SecondaryColor = def.SecondaryColor
	}
	if d.BackgroundColor == "" {
		d.BackgroundColor = def.BackgroundColor
	}
	if d.TextColor == "" {
		d.TextColor = def.TextColor
	}
	if d.FontFamily == "" {
		d.FontFamily = def.FontFamily
	}
	if d.TitleSize == "" {
		d.TitleSize = def.TitleSize
	}
	if d.Template == "" {
		d.Template = def.Template
	}
	return d
}

// Artifact is one generated lead magnet. Content holds the canonical HTML
// fragment; RawContent its plain-text derivative.
type Artifact struct {
	ID              string         `yaml:"id" json:"id"`
	UserID          string         `yaml:"userId,omitempty" json:"userId,omitempty"`
	Title           string         `yaml:"title" json:"title"`
	Subtitle        string         `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Type            ArtifactType   `yaml:"type" json:"type"`
	Content         string         `yaml:"content" json:"content"`
	RawContent      string         `yaml:"rawContent,omitempty" json:"rawContent,omitempty"`
	TargetAudience  string         `yaml:"targetAudience,omitempty" json:"targetAudience,omitempty"`
	Niche           string         `yaml:"niche,omitempty" json:"niche,omitempty"`
	Tone            Tone           `yaml:"tone,omitempty" json:"tone,omitempty"`
	Length          Length         `yaml:"length,omitempty" json:"length,omitempty"`
	Prompt          string         `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	Design          Design         `yaml:"design" json:"design"`
	Status          Status         `yaml:"status" json:"status"`
	WordCount       int            `yaml:"wordCount" json:"wordCount"`
	ItemCount       int            `yaml:"itemCount,omitempty" json:"itemCount,omitempty"`
	CreatedAt       time.Time      `yaml:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time      `yaml:"updatedAt" json:"updatedAt"`
	GeneratedAt     *time.Time     `yaml:"generatedAt,omitempty" json:"generatedAt,omitempty"`
	DownloadCount   int            `yaml:"downloadCount" json:"downloadCount"`
	ExportedFormats []ExportFormat `yaml:"exportedFormats,omitempty" json:"exportedFormats,omitempty"`
}

// RecordDownload returns a copy with the download counter incremented and
// format added to ExportedFormats. Export never calls this; callers do.
func (a Artifact) RecordDownload(format ExportFormat) Artifact {
	a.DownloadCount++
	if !slices.Contains(a.ExportedFormats, format) {
		a.ExportedFormats = append(slices.Clone(a.ExportedFormats), format)
	}
	return a
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.75
)

// PageSettings configures the printed page.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns US Letter portrait with 0.75in margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := paperSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// paperSizes maps page sizes to portrait width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// dimensions returns paper width and height in inches, honoring orientation.
// Nil or invalid settings resolve to the defaults.
func (p *PageSettings) dimensions() (width, height float64) {
	if p == nil || p.Validate() != nil {
		p = DefaultPageSettings()
	}
	wh := paperSizes[strings.ToLower(p.Size)]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		return wh[1], wh[0]
	}
	return wh[0], wh[1]
}

// margin returns the page margin in inches, falling back to the default.
func (p *PageSettings) margin() float64 {
	if p == nil || p.Validate() != nil {
		return DefaultMargin
	}
	return p.Margin
}
