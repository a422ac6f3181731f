package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Series is a named line on a plot.
type Series struct {
	Name   string
	Values []float64
}

type dash struct {
	name   string
	period int
	on     int
}

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	axisSeparator     = " │ "
)

var dashes = []dash{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var seriesStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#4FB3BF")),
	hardStyle,
	advisoryStyle,
}

// Plot draws the series as braille lines on one shared value axis, so a
// rate and its threshold can be compared directly. width counts plot cells
// and excludes the axis; 0 fits the terminal.
func Plot(w io.Writer, series []Series, width, height int, p Painter) error {
	series = nonEmptySeries(series)
	if len(series) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	minVal, maxVal := valueRange(series)
	labels := axisLabels(minVal, maxVal, height)
	axisWidth := 0
	for _, l := range labels {
		axisWidth = max(axisWidth, displayWidth(l))
	}
	if width <= 0 {
		width = TerminalWidth() - axisWidth - displayWidth(axisSeparator)
	}
	width = max(width, minPlotWidth)

	layers := make([][][]uint8, len(series))
	for si, s := range series {
		layers[si] = makeCells(height, width)
		style := dashes[si%len(dashes)]
		prevX, prevY := -1, -1
		for x, v := range stretch(s.Values, width) {
			px, py := x*2, valueToRow(v, minVal, maxVal, height*4)
			if prevX >= 0 {
				drawLine(prevX, prevY, px, py, func(dx, dy int) {
					if style.draws(dx) {
						setBrailleDot(layers[si], dx, dy)
					}
				})
			} else if style.draws(px) {
				setBrailleDot(layers[si], px, py)
			}
			prevX, prevY = px, py
		}
	}

	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", axisWidth, labels[y], axisSeparator))
		for x := 0; x < width; x++ {
			mask, owner := composeCell(layers, x, y)
			cell := string(brailleFromMask(mask))
			if owner >= 0 && p.color {
				cell = seriesStyles[owner%len(seriesStyles)].Render(cell)
			}
			row.WriteString(cell)
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, legend(series, p))
	return err
}

func nonEmptySeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// valueRange spans every series. A flat range is widened so the line sits
// in the middle of the plot.
func valueRange(series []Series) (float64, float64) {
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Values {
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		minVal--
		maxVal++
	}
	return minVal, maxVal
}

func axisLabels(minVal, maxVal float64, height int) []string {
	labels := make([]string, height)
	labels[0] = FormatRate(maxVal)
	if height > 2 {
		labels[height/2] = FormatRate((minVal + maxVal) / 2)
	}
	if height > 1 {
		labels[height-1] = FormatRate(minVal)
	}
	return labels
}

func legend(series []Series, p Painter) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		label := fmt.Sprintf("%c %s (%s)", brailleFromMask(0x01), s.Name, dashes[i%len(dashes)].name)
		if p.color {
			label = seriesStyles[i%len(seriesStyles)].Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Repeat(" ", displayWidth(axisSeparator)) + strings.Join(parts, "  ")
}

func (d dash) draws(x int) bool {
	if d.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%d.period < d.on
}

// stretch fits values to exactly width points: longer series are averaged
// down, shorter ones linearly interpolated.
func stretch(values []float64, width int) []float64 {
	if len(values) >= width {
		return Downsample(values, width)
	}
	out := make([]float64, width)
	if len(values) == 1 || width == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	for i := 0; i < width; i++ {
		pos := float64(i) * float64(len(values)-1) / float64(width-1)
		idx := int(math.Floor(pos))
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

func valueToRow(v, minVal, maxVal float64, rows int) int {
	if rows <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(rows-1)))
	return min(max(row, 0), rows-1)
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return cells
}

// composeCell merges the dots of every layer. The first layer with a dot in
// the cell owns its color.
func composeCell(layers [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	owner := -1
	for i, cells := range layers {
		if cells[y][x] == 0 {
			continue
		}
		if owner == -1 {
			owner = i
		}
		mask |= cells[y][x]
	}
	return mask, owner
}

// drawLine walks Bresenham's line between two dot coordinates.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				return
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				return
			}
			err += dx
			y0 += sy
		}
	}
}

// setBrailleDot sets one dot; a braille cell is 2 dots wide and 4 tall.
func setBrailleDot(cells [][]uint8, x, y int) {
	cellY, cellX := y/4, x/2
	if y < 0 || x < 0 || cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

func brailleDotMask(x, y int) uint8 {
	masks := [2][4]uint8{
		{0x01, 0x02, 0x04, 0x40},
		{0x08, 0x10, 0x20, 0x80},
	}
	return masks[x][y]
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
