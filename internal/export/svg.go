// Package export renders saved benchmark runs as SVG charts.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/spanbench/internal/storage"
)

var seriesColors = []string{"#00ff00", "#00bfff", "#ff6347", "#ffd700", "#da70d6"}

// SeriesToSVG renders one log-log polyline per method: x is the size step,
// y is log10 of the mean nanoseconds per invocation.
func SeriesToSVG(points []storage.SeriesPoint, width, height int) string {
	if len(points) == 0 {
		return ""
	}

	byMethod := make(map[string][]storage.SeriesPoint)
	var order []string
	for _, p := range points {
		if _, ok := byMethod[p.Method]; !ok {
			order = append(order, p.Method)
		}
		byMethod[p.Method] = append(byMethod[p.Method], p)
	}

	minY, maxY := math.Inf(1), math.Inf(-1)
	maxLen := 0
	for _, series := range byMethod {
		if len(series) > maxLen {
			maxLen = len(series)
		}
		for _, p := range series {
			y := math.Log10(p.MeanNs)
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
	}
	if maxY == minY {
		maxY = minY + 1
	}

	const margin = 40.0
	plotW := float64(width) - 2*margin
	plotH := float64(height) - 2*margin

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for si, method := range order {
		series := byMethod[method]
		color := seriesColors[si%len(seriesColors)]

		var pts []string
		for i, p := range series {
			x := margin
			if maxLen > 1 {
				x += plotW * float64(i) / float64(maxLen-1)
			}
			y := margin + plotH*(1-(math.Log10(p.MeanNs)-minY)/(maxY-minY))
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", x, y))
		}

		sb.WriteString(fmt.Sprintf(
			"<polyline fill=\"none\" stroke=\"%s\" stroke-width=\"2\" points=\"%s\"/>\n",
			color, strings.Join(pts, " ")))
		sb.WriteString(fmt.Sprintf(
			"<text x=\"%.1f\" y=\"%.1f\" fill=\"%s\" font-family=\"monospace\" font-size=\"12\">%s</text>\n",
			margin, margin-8+float64(si)*14, color, method))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
