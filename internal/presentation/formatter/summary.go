package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-lineup-timeline/internal/util"
)

// SummaryFormatter is responsible for formatting and outputting lineup reports.
type SummaryFormatter struct{}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

// Format writes a plain text report per band: the role legend with bits and
// members, each member in canonical form and whatever was skipped.
func (f *SummaryFormatter) Format(w io.Writer, data []BandTimeline) error {
	var sb strings.Builder

	for _, band := range data {
		f.formatBand(&sb, band)
	}
	if len(data) == 0 {
		sb.WriteString("No lineups to summarize\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (f *SummaryFormatter) formatBand(sb *strings.Builder, band BandTimeline) {
	lineup := band.Lineup
	tl := band.Timeline

	sb.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(sb, "Band Lineup Summary: %s\n", lineup.Band)
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")

	if lineup.Source != "" {
		fmt.Fprintf(sb, "Source: %s\n", lineup.Source)
	}
	fmt.Fprintf(sb, "Active Years: %s (%s)\n", lineup.Span, util.FormatYears(lineup.Span.Len()))
	if tl != nil {
		fmt.Fprintf(sb, "Timeline: %s (%s)\n", tl.Span(), util.FormatYears(tl.Len()))
	} else {
		sb.WriteString("Timeline: none\n")
	}
	fmt.Fprintf(sb, "Members: %d parsed, %d skipped\n\n", len(lineup.Members), len(lineup.Skipped))

	if tl != nil && tl.Registry.Len() > 0 {
		sb.WriteString("Roles:\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		fmt.Fprintf(sb, "  %-3s %-20s %-10s %s\n", "Sym", "Role", "Flag", "Members")
		for i, role := range tl.Registry.Names() {
			bit, _ := tl.Registry.Bit(role)
			fmt.Fprintf(sb, "  %-3c %-20s %-10d %s\n",
				roleSymbol(i), role, bit, strings.Join(tl.MembersWithRole(role), ", "))
		}
		sb.WriteString("\n")
	}

	if len(lineup.Members) > 0 {
		sb.WriteString("Members:\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for i, member := range lineup.Members {
			fmt.Fprintf(sb, "  %s", member)
			if tl != nil && i < len(tl.Rows) {
				fmt.Fprintf(sb, " [%s active]", util.FormatYears(activeYears(tl.Rows[i])))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(lineup.Skipped) > 0 {
		sb.WriteString("Skipped:\n")
		for _, s := range lineup.Skipped {
			fmt.Fprintf(sb, "  %s: %q (%s)\n", s.Name, s.Roles, s.Reason)
		}
		sb.WriteString("\n")
	}

	if len(lineup.Dropped) > 0 {
		sb.WriteString("Ignored role text:\n")
		for _, d := range lineup.Dropped {
			fmt.Fprintf(sb, "  %s: %q\n", d.Name, d.Text)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("=", 60) + "\n")
}
