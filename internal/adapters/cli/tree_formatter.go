package cli

import (
	"fmt"
	"strings"
	"time"

	missionQuery "github.com/andrescamacho/spacetraders-bot/internal/application/mission/queries"
)

// TreeFormatter renders a mission and its deliveries as a tree
type TreeFormatter struct {
	useColors bool
	useEmojis bool
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(useColors, useEmojis bool) *TreeFormatter {
	return &TreeFormatter{
		useColors: useColors,
		useEmojis: useEmojis,
	}
}

// FormatTree renders the mission as the root with one branch per delivery
func (f *TreeFormatter) FormatTree(status *missionQuery.GetMissionStatusResponse) string {
	if status == nil || status.Mission == nil {
		return "(no mission)\n"
	}

	var builder strings.Builder
	m := status.Mission
	builder.WriteString(fmt.Sprintf("%s %s [%s%s%s] %s, pays %d\n",
		f.statusIcon(status.Terminal && m.Fulfilled()),
		m.MissionID(),
		f.statusColor(status.Status),
		status.Status,
		f.colorReset(),
		m.FactionSymbol(),
		m.Terms().Payment.Total(),
	))

	for i, d := range status.Deliveries {
		linePrefix := "├── "
		if i == len(status.Deliveries)-1 {
			linePrefix = "└── "
		}
		builder.WriteString(fmt.Sprintf("%s%s %s %d/%d @ %s\n",
			linePrefix,
			f.statusIcon(d.Complete),
			d.TradeSymbol,
			d.UnitsFulfilled,
			d.UnitsRequired,
			d.DestinationSymbol,
		))
	}
	return builder.String()
}

// statusIcon returns a visual indicator for completion
func (f *TreeFormatter) statusIcon(complete bool) string {
	if !f.useEmojis {
		if complete {
			return "[✓]"
		}
		return "[ ]"
	}

	if complete {
		return "✅"
	}
	return "⏳"
}

// statusColor returns the ANSI color code for a mission status
func (f *TreeFormatter) statusColor(status string) string {
	if !f.useColors {
		return ""
	}

	switch status {
	case "FULFILLED":
		return "\033[32m" // Green
	case "ACCEPTED":
		return "\033[33m" // Yellow
	case "EXPIRED":
		return "\033[31m" // Red
	default:
		return ""
	}
}

// colorReset returns ANSI reset code
func (f *TreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}

// FormatTreeSummary creates a one-line progress summary
func (f *TreeFormatter) FormatTreeSummary(status *missionQuery.GetMissionStatusResponse) string {
	if status == nil {
		return "No mission"
	}

	required, complete := 0, 0
	for _, d := range status.Deliveries {
		required += d.UnitsRequired
		if d.Complete {
			complete++
		}
	}

	progress := 0
	if required > 0 {
		progress = ((required - status.UnitsRemaining) * 100) / required
	}

	deadline := "no deadline"
	switch {
	case status.Terminal:
		deadline = "closed"
	case status.TimeRemaining > 0:
		deadline = status.TimeRemaining.Truncate(time.Second).String() + " left"
	}

	return fmt.Sprintf(
		"Deliveries: %d/%d complete, %d units remaining, progress=%d%%, %s",
		complete, len(status.Deliveries), status.UnitsRemaining, progress, deadline,
	)
}
