package app

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/rfwatch/tetradetect/internal/scan"
)

// Border sizes in pixels around the profile plot.
const (
	topBorder    = 16
	leftBorder   = 64
	bottomBorder = 28
	rightBorder  = 16
)

var (
	backgroundColor = color.White
	axisColor       = color.RGBA{A: 0xff}
	labelColor      = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
)

// renderProfile draws the per-channel baseline profile: one colored bar per
// channel, scaled between the measured (or manually pinned) power bounds,
// with a power scale on the left and frequency labels along the bottom.
func renderProfile(channels []scan.Channel, config *Config) *image.RGBA {
	minPower, maxPower := powerBounds(channels, config)

	plotWidth := len(channels) * config.BarWidth
	width := leftBorder + plotWidth + rightBorder
	height := topBorder + config.Height + bottomBorder

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	for i, ch := range channels {
		barHeight := scaleHeight(ch.Baseline, minPower, maxPower, config.Height)
		barColor := powerColor(normalize(ch.Baseline, minPower, maxPower))

		x0 := leftBorder + i*config.BarWidth
		y0 := topBorder + config.Height - barHeight
		bar := image.Rect(x0, y0, x0+config.BarWidth, topBorder+config.Height)
		draw.Draw(img, bar, image.NewUniform(barColor), image.Point{}, draw.Src)
	}

	// Axes
	drawHLine(img, leftBorder, width-rightBorder, topBorder+config.Height, axisColor)
	drawVLine(img, leftBorder, topBorder, topBorder+config.Height, axisColor)

	drawLabel(img, 4, topBorder+6, fmt.Sprintf("%.1f dBm", maxPower))
	drawLabel(img, 4, topBorder+config.Height, fmt.Sprintf("%.1f dBm", minPower))
	drawLabel(img, leftBorder, height-8, fmt.Sprintf("%.3f MHz", float64(scan.StartFrequency)/1e6))

	endLabel := fmt.Sprintf("%.3f MHz", float64(scan.EndFrequency)/1e6)
	drawLabel(img, width-rightBorder-textWidth(endLabel), height-8, endLabel)

	return img
}

func powerBounds(channels []scan.Channel, config *Config) (minPower, maxPower float64) {
	minPower, maxPower = math.Inf(1), math.Inf(-1)
	for _, ch := range channels {
		minPower = math.Min(minPower, ch.Baseline)
		maxPower = math.Max(maxPower, ch.Baseline)
	}

	if config.MinPower != nil {
		minPower = *config.MinPower
	}
	if config.MaxPower != nil {
		maxPower = *config.MaxPower
	}
	if maxPower-minPower < 1 {
		maxPower = minPower + 1 // keep the scale non-degenerate
	}
	return minPower, maxPower
}

func normalize(power, minPower, maxPower float64) float64 {
	norm := (power - minPower) / (maxPower - minPower)
	return math.Max(0, math.Min(1, norm))
}

func scaleHeight(power, minPower, maxPower float64, plotHeight int) int {
	h := int(normalize(power, minPower, maxPower) * float64(plotHeight))
	if h < 1 {
		h = 1
	}
	return h
}

// powerColor maps a normalized power to a thermal ramp, dark blue through
// red, with a non-linear lift for better differentiation near the floor.
func powerColor(norm float64) color.Color {
	enhanced := math.Pow(norm, 0.7)
	hue := 240 * (1 - enhanced) // blue (240) down to red (0)
	return hsvToRGB(hue, 0.9, 0.35+0.65*enhanced)
}

// hsvToRGB converts HSV (h in [0,360], s and v in [0,1]) to an RGBA color.
func hsvToRGB(h, s, v float64) color.Color {
	if s <= 0 {
		g := uint8(v * 255)
		return color.RGBA{R: g, G: g, B: g, A: 0xff}
	}

	h = math.Mod(h, 360) / 60
	i := math.Floor(h)
	f := h - i

	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}

	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 0xff}
}

func drawHLine(img *image.RGBA, x0, x1, y int, c color.Color) {
	for x := x0; x < x1; x++ {
		img.Set(x, y, c)
	}
}

func drawVLine(img *image.RGBA, x, y0, y1 int, c color.Color) {
	for y := y0; y <= y1; y++ {
		img.Set(x, y, c)
	}
}

func drawLabel(img *image.RGBA, x, y int, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func textWidth(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}
