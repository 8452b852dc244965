package compare

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	rankStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Render formats the comparison as a human-readable side-by-side report.
func Render(c Comparison) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Reducer comparison") + "\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("query: %q", c.Query)) + "\n")

	for _, e := range c.Entries {
		b.WriteString("\n" + sectionStyle.Render(strings.ToUpper(e.Strategy)) + "\n")
		t := e.Result.Timing
		b.WriteString(fmt.Sprintf("  total time:       %s\n", fmtDuration(t.Total)))
		if t.Encoding > 0 {
			b.WriteString(fmt.Sprintf("  encoding time:    %s\n", fmtDuration(t.Encoding)))
			b.WriteString(fmt.Sprintf("  similarity time:  %s\n", fmtDuration(t.Similarity)))
			b.WriteString(fmt.Sprintf("  lines scored:     %d\n", t.LineCount))
		}
		if t.Segmentation > 0 || e.Result.Fallback {
			b.WriteString(fmt.Sprintf("  segmentation:     %s\n", fmtDuration(t.Segmentation)))
			b.WriteString(fmt.Sprintf("  segments found:   %d\n", t.SegmentCount))
		}
		b.WriteString(fmt.Sprintf("  output size:      %d chars\n", e.Chars))
		b.WriteString(fmt.Sprintf("  3-digit matches:  %d\n", e.Matches))
		b.WriteString(fmt.Sprintf("  marker terms:     %v\n", e.HasMarkers))
		if e.Result.Fallback {
			b.WriteString("  " + warnStyle.Render("fallback path used (midpoint window)") + "\n")
		}
	}

	b.WriteString("\n" + sectionStyle.Render("RANKING BY SPEED") + "\n")
	for i, e := range c.BySpeed() {
		b.WriteString(rankStyle.Render(fmt.Sprintf("  %d. %s", i+1, e.Strategy)))
		b.WriteString(fmt.Sprintf("  %s\n", fmtDuration(e.Result.Timing.Total)))
	}

	b.WriteString("\n" + sectionStyle.Render("RANKING BY EFFICIENCY") + "\n")
	for i, e := range c.ByEfficiency() {
		b.WriteString(rankStyle.Render(fmt.Sprintf("  %d. %s", i+1, e.Strategy)))
		b.WriteString(fmt.Sprintf("  %.2f matches/KB\n", e.Density*1024))
	}
	return b.String()
}

func fmtDuration(d time.Duration) string {
	return fmt.Sprintf("%.2f ms", float64(d.Microseconds())/1000)
}
