package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	leadmagnet "github.com/alnah/go-leadmagnet"
)

// planView is the JSON shape of one plan tier.
type planView struct {
	Plan               leadmagnet.Plan           `json:"plan"`
	MaxArtifacts       int                       `json:"maxArtifacts"` // -1 for unlimited
	ExportFormats      []leadmagnet.ExportFormat `json:"exportFormats"`
	PremiumTemplates   bool                      `json:"premiumTemplates"`
	CustomBranding     bool                      `json:"customBranding"`
	Watermark          bool                      `json:"watermark"`
	PriorityGeneration bool                      `json:"priorityGeneration"`
	WhiteLabel         bool                      `json:"whiteLabel"`
}

// runPlans prints the plan table.
func runPlans(args []string, env *Environment) error {
	flags, _, err := parsePlansFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	table := leadmagnet.DefaultPlans()
	views := make([]planView, 0, len(table))
	for _, p := range table.Plans() {
		l, _ := table.Limits(p)
		views = append(views, planView{
			Plan:               p,
			MaxArtifacts:       l.MaxArtifacts,
			ExportFormats:      l.ExportFormats,
			PremiumTemplates:   l.PremiumTemplates,
			CustomBranding:     l.CustomBranding,
			Watermark:          table.ShouldAddWatermark(p),
			PriorityGeneration: l.PriorityGeneration,
			WhiteLabel:         l.WhiteLabel,
		})
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAN\tARTIFACTS\tFORMATS\tPREMIUM THEMES\tWATERMARK")
	for _, v := range views {
		artifacts := fmt.Sprint(v.MaxArtifacts)
		if v.MaxArtifacts == leadmagnet.Unlimited {
			artifacts = "unlimited"
		}
		formats := make([]string, len(v.ExportFormats))
		for i, f := range v.ExportFormats {
			formats[i] = strings.ToUpper(string(f))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			v.Plan, artifacts, strings.Join(formats, ", "), yesNo(v.PremiumTemplates), yesNo(v.Watermark))
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
