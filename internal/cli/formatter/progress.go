package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampPct(pct float64) float64 {
	return min(max(pct, 0), 1)
}

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clampPct(pct)
	return fmt.Sprintf("[%s] %3.0f%%", RenderCompactBar(pct, width, false), pct*100)
}

// RenderCompactBar renders just the blocks, without brackets or a figure.
// A dimmed bar is used for rows that no longer need attention.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct = clampPct(pct)
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case dim:
		style = StyleDim
	case pct < 0.33:
		style = StyleRed
	case pct < 0.66:
		style = StyleYellow
	}
	return style.Render(bar)
}
