package leadmagnet

import (
	"fmt"
	"slices"
	"strings"
)

// Plan is a subscription tier.
type Plan string

// Plan tiers.
const (
	PlanFree      Plan = "free"
	PlanPro       Plan = "pro"
	PlanUnlimited Plan = "unlimited"
)

// ParsePlan converts a case-insensitive plan name. Empty means free.
func ParsePlan(s string) (Plan, error) {
	switch p := Plan(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PlanFree, nil
	case PlanFree, PlanPro, PlanUnlimited:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlan, s)
	}
}

// ExportFormat is a downloadable document format.
type ExportFormat string

// Export formats.
const (
	FormatPDF  ExportFormat = "pdf"
	FormatHTML ExportFormat = "html"
)

// ParseFormat converts a case-insensitive format name.
func ParseFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Extension returns the file extension without the dot.
func (f ExportFormat) Extension() string {
	return string(f)
}

// MIMEType returns the media type of the format.
func (f ExportFormat) MIMEType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatHTML:
		return "text/html; charset=utf-8"
	}
	return "application/octet-stream"
}

// Unlimited is the MaxArtifacts sentinel for plans without a cap.
const Unlimited = -1

// PlanLimits is the static feature set of a plan tier.
type PlanLimits struct {
	MaxArtifacts       int // Unlimited for no cap
	ExportFormats      []ExportFormat
	PremiumTemplates   bool
	CustomBranding     bool
	RemoveWatermark    bool
	PriorityGeneration bool
	WhiteLabel         bool
}

// AllowsFormat reports whether format is in ExportFormats.
func (l PlanLimits) AllowsFormat(format ExportFormat) bool {
	return slices.Contains(l.ExportFormats, format)
}

// PlanTable maps every plan tier to its limits.
type PlanTable map[Plan]PlanLimits

// DefaultPlans returns the built-in plan table.
func DefaultPlans() PlanTable {
	return PlanTable{
		PlanFree: {
			MaxArtifacts:  1,
			ExportFormats: []ExportFormat{FormatPDF},
		},
		PlanPro: {
			MaxArtifacts:     10,
			ExportFormats:    []ExportFormat{FormatPDF, FormatHTML},
			PremiumTemplates: true,
			CustomBranding:   true,
			RemoveWatermark:  true,
		},
		PlanUnlimited: {
			MaxArtifacts:       Unlimited,
			ExportFormats:      []ExportFormat{FormatPDF, FormatHTML},
			PremiumTemplates:   true,
			CustomBranding:     true,
			RemoveWatermark:    true,
			PriorityGeneration: true,
			WhiteLabel:         true,
		},
	}
}

// Plans returns the tiers of the table from most to least restrictive
// artifact cap.
func (t PlanTable) Plans() []Plan {
	plans := make([]Plan, 0, len(t))
	for p := range t {
		plans = append(plans, p)
	}
	slices.SortFunc(plans, func(a, b Plan) int {
		ca, cb := capOrder(t[a].MaxArtifacts), capOrder(t[b].MaxArtifacts)
		if ca != cb {
			return ca - cb
		}
		return strings.Compare(string(a), string(b))
	})
	return plans
}

// Limits returns the limits of plan.
func (t PlanTable) Limits(plan Plan) (PlanLimits, error) {
	l, ok := t[plan]
	if !ok {
		return PlanLimits{}, fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
	}
	return l, nil
}

// CanExportFormat reports whether plan may export format. Unknown plans
// may export nothing.
func (t PlanTable) CanExportFormat(format ExportFormat, plan Plan) bool {
	l, ok := t[plan]
	return ok && l.AllowsFormat(format)
}

// ShouldAddWatermark reports whether exports on plan carry the attribution
// footer. Unknown plans get the watermark.
func (t PlanTable) ShouldAddWatermark(plan Plan) bool {
	l, ok := t[plan]
	return !ok || !l.RemoveWatermark
}

// CanUsePremiumTemplates reports whether plan may use premium themes.
func (t PlanTable) CanUsePremiumTemplates(plan Plan) bool {
	l, ok := t[plan]
	return ok && l.PremiumTemplates
}

// CanCreateArtifact reports whether a user on plan who already owns
// existing artifacts may create another one.
func (t PlanTable) CanCreateArtifact(plan Plan, existing int) bool {
	l, ok := t[plan]
	if !ok {
		return false
	}
	return l.MaxArtifacts == Unlimited || existing < l.MaxArtifacts
}

// Validate checks that the free tier exists and is the most restrictive
// tier on every axis.
func (t PlanTable) Validate() error {
	free, ok := t[PlanFree]
	if !ok {
		return fmt.Errorf("%w: missing %q tier", ErrInvalidPlanTable, PlanFree)
	}
	if free.MaxArtifacts < Unlimited {
		return fmt.Errorf("%w: %q has negative artifact cap %d", ErrInvalidPlanTable, PlanFree, free.MaxArtifacts)
	}

	for plan, l := range t {
		if plan == PlanFree {
			continue
		}
		if l.MaxArtifacts < Unlimited {
			return fmt.Errorf("%w: %q has negative artifact cap %d", ErrInvalidPlanTable, plan, l.MaxArtifacts)
		}
		if capOrder(l.MaxArtifacts) < capOrder(free.MaxArtifacts) {
			return fmt.Errorf("%w: %q allows fewer artifacts than %q", ErrInvalidPlanTable, plan, PlanFree)
		}
		for _, f := range free.ExportFormats {
			if !l.AllowsFormat(f) {
				return fmt.Errorf("%w: %q lacks format %q available on %q", ErrInvalidPlanTable, plan, f, PlanFree)
			}
		}
		for _, flag := range []struct {
			name       string
			free, tier bool
		}{
			{"premium templates", free.PremiumTemplates, l.PremiumTemplates},
			{"custom branding", free.CustomBranding, l.CustomBranding},
			{"watermark removal", free.RemoveWatermark, l.RemoveWatermark},
			{"priority generation", free.PriorityGeneration, l.PriorityGeneration},
			{"white label", free.WhiteLabel, l.WhiteLabel},
		} {
			if flag.free && !flag.tier {
				return fmt.Errorf("%w: %q lacks %s available on %q", ErrInvalidPlanTable, plan, flag.name, PlanFree)
			}
		}
	}
	return nil
}

// capOrder maps an artifact cap to a comparable value where Unlimited
// sorts last.
func capOrder(maxArtifacts int) int {
	if maxArtifacts == Unlimited {
		return int(^uint(0) >> 1)
	}
	return maxArtifacts
}

// defaultPlans backs the package-level helpers.
var defaultPlans = DefaultPlans()

// CanExportFormat reports whether plan may export format under the default
// plan table.
func CanExportFormat(format ExportFormat, plan Plan) bool {
	return defaultPlans.CanExportFormat(format, plan)
}

// ShouldAddWatermark reports whether exports on plan carry the attribution
// footer under the default plan table.
func ShouldAddWatermark(plan Plan) bool {
	return defaultPlans.ShouldAddWatermark(plan)
}
