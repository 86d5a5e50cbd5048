package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/cutcard/internal/rounds"
	"github.com/lox/cutcard/internal/shoe"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true)

	cellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4"))

	totalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)
)

// Summary renders a per up card table of partition sizes and search effort.
func Summary(title string, results []*rounds.Result) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(" " + title + " "))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%-4s %12s %12s %8s %12s %10s\n", "up", "dealer", "busted", "levels", "states", "elapsed"))

	var dealer, busted int
	var states int64
	var elapsed time.Duration
	for _, res := range results {
		line := fmt.Sprintf("%-4s %12d %12d %8d %12d %10s",
			shoe.RankLabel(res.UpCard), len(res.DealerNeeded), len(res.AllBusted), res.Stats.Levels,
			res.Stats.StatesExpanded, res.Stats.Elapsed.Round(time.Millisecond))
		b.WriteString(cellStyle.Render(line))
		b.WriteString("\n")

		dealer += len(res.DealerNeeded)
		busted += len(res.AllBusted)
		states += res.Stats.StatesExpanded
		elapsed += res.Stats.Elapsed
	}
	total := fmt.Sprintf("%-4s %12d %12d %8s %12d %10s",
		"all", dealer, busted, "", states, elapsed.Round(time.Millisecond))
	b.WriteString(totalStyle.Render(total))
	b.WriteString("\n")
	return b.String()
}
