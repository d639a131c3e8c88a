package leadmagnet

import (
	"fmt"
	"strings"
)

// Alpha suffixes appended to the primary color for derived shades.
const (
	tintAlpha = "15" // badge background
	lineAlpha = "30" // heading rules
	washAlpha = "08" // table header and callout background
)

// titleSizes maps Design.TitleSize to the document title font size.
var titleSizes = map[string]string{
	TitleSmall:  "22px",
	TitleMedium: "25px",
	TitleLarge:  "28px",
}

// buildDesignCSS generates the :root custom properties read by every theme.
// Empty design fields resolve to DefaultDesign.
func buildDesignCSS(d Design) string {
	d = d.withDefaults()
	size, ok := titleSizes[d.TitleSize]
	if !ok {
		size = titleSizes[TitleLarge]
	}

	return fmt.Sprintf(`
/* Design */
:root {
  --lm-primary: %[1]s;
  --lm-primary-tint: %[1]s%[2]s;
  --lm-primary-line: %[1]s%[3]s;
  --lm-primary-wash: %[1]s%[4]s;
  --lm-secondary: %[5]s;
  --lm-background: %[6]s;
  --lm-text: %[7]s;
  --lm-font: "%[8]s";
  --lm-title-size: %[9]s;
}
`, cssColor(d.PrimaryColor), tintAlpha, lineAlpha, washAlpha,
		cssColor(d.SecondaryColor), cssColor(d.BackgroundColor), cssColor(d.TextColor),
		escapeCSSString(d.FontFamily), size)
}

// buildPageCSS generates the @page rule for printed output.
func buildPageCSS(p *PageSettings) string {
	w, h := p.dimensions()
	return fmt.Sprintf(`
/* Page */
@page {
  size: %sin %sin;
  margin: %sin;
}
`, formatInches(w), formatInches(h), formatInches(p.margin()))
}

// buildPrintCSS keeps headings and list items together when printed.
func buildPrintCSS() string {
	return `
/* Print */
h1, h2, h3, h4, h5, h6 {
  break-after: avoid;
  page-break-after: avoid;
}
li, tr, blockquote, pre {
  break-inside: avoid;
  page-break-inside: avoid;
}
`
}

// cssColor returns c when it is a #RRGGBB color and black otherwise, so a
// design that skipped validation can never inject CSS.
func cssColor(c string) string {
	if hexColorPattern.MatchString(c) {
		return c
	}
	return "#000000"
}

// escapeCSSString escapes a value for use inside a double-quoted CSS string.
func escapeCSSString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\A `)
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "<", `\3C `)
	return s
}

// formatInches renders a dimension without trailing zeros.
func formatInches(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
