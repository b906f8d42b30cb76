package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a percentage bar like [████░░░░]  45%.
// Green from 100%, yellow from 50%, red below.
func RenderProgress(pct, width int) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleRed
	switch {
	case pct >= 100:
		style = StyleGreen
	case pct >= 50:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// RenderBar renders an unbracketed bar of value against ceiling, used for
// chart rows.
func RenderBar(value, ceiling, width int) string {
	if ceiling <= 0 || value <= 0 {
		return StyleDim.Render(strings.Repeat(emptyBlock, max(width, 1)))
	}
	filled := min(value*width/ceiling, width)
	if filled == 0 {
		filled = 1
	}
	return StyleBlue.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
}
