package leadmagnet

import (
	"fmt"
	"slices"
	"strings"
)

// Theme is a built-in visual template.
type Theme struct {
	Name    string
	Label   string
	Premium bool // requires PlanLimits.PremiumTemplates
}

var themes = []Theme{
	{Name: "modern", Label: "Modern"},
	{Name: "clean", Label: "Clean"},
	{Name: "bold", Label: "Bold", Premium: true},
	{Name: "elegant", Label: "Elegant", Premium: true},
}

// Themes returns the built-in themes, free ones first.
func Themes() []Theme {
	return slices.Clone(themes)
}

// ThemeNames returns the names of the built-in themes.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// LookupTheme returns the built-in theme with the given name.
func LookupTheme(name string) (Theme, error) {
	for _, t := range themes {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownTheme, name, strings.Join(ThemeNames(), ", "))
}

// ResolveTheme returns the theme name to render for plan. Empty names and
// premium themes on plans without premium access resolve to DefaultTheme.
// Names that are not built in are returned unchanged so custom asset
// directories can provide them.
func (t PlanTable) ResolveTheme(name string, plan Plan) string {
	if name == "" {
		return DefaultTheme
	}
	theme, err := LookupTheme(name)
	if err != nil {
		return name
	}
	if theme.Premium && !t.CanUsePremiumTemplates(plan) {
		return DefaultTheme
	}
	return theme.Name
}
