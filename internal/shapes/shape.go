// Package shapes validates and draws geometric primitives on BGR buffers.
package shapes

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"
)

// Kind names a shape variant in log output
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
	KindText      Kind = "text"
)

// Filled is the thickness that fills a rectangle or circle
const Filled = -1

// Color is an 8-bit BGR triple
type Color struct {
	B, G, R uint8
}

// BGR builds a Color from blue, green and red channel values
func BGR(b, g, r uint8) Color {
	return Color{B: b, G: g, R: r}
}

// gocv orders the scalar as B, G, R from the RGBA fields
func (c Color) rgba() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0}
}

// Style carries the stroke shared by every shape
type Style struct {
	Color     Color
	Thickness int
}

// Shape is one of Rectangle, Circle or Text
type Shape interface {
	Kind() Kind
	draw(img *gocv.Mat) error
}

// Rectangle spans Start (top left) to End (bottom right), inclusive
type Rectangle struct {
	Start image.Point
	End   image.Point
	Style
}

func (Rectangle) Kind() Kind { return KindRectangle }

func (r Rectangle) draw(img *gocv.Mat) error {
	return gocv.Rectangle(img, image.Rectangle{Min: r.Start, Max: r.End}, r.Color.rgba(), r.Thickness)
}

// Circle is centered on Center
type Circle struct {
	Center image.Point
	Radius int
	Style
}

func (Circle) Kind() Kind { return KindCircle }

func (c Circle) draw(img *gocv.Mat) error {
	return gocv.Circle(img, c.Center, c.Radius, c.Color.rgba(), c.Thickness)
}

// Text is drawn with its baseline starting at Anchor
type Text struct {
	Content   string
	Anchor    image.Point
	Font      gocv.HersheyFont
	Scale     float64
	LineStyle gocv.LineType
	Style
}

func (Text) Kind() Kind { return KindText }

// draw strokes the glyphs; a Filled or zero thickness draws 1 pixel strokes
func (t Text) draw(img *gocv.Mat) error {
	thickness := t.Thickness
	if thickness < 1 {
		thickness = 1
	}
	return gocv.PutTextWithParams(img, t.Content, t.Anchor, t.Font, t.Scale, t.Color.rgba(), thickness, t.LineStyle, false)
}

var fonts = map[string]gocv.HersheyFont{
	"simplex":        gocv.FontHersheySimplex,
	"plain":          gocv.FontHersheyPlain,
	"duplex":         gocv.FontHersheyDuplex,
	"complex":        gocv.FontHersheyComplex,
	"triplex":        gocv.FontHersheyTriplex,
	"complex_small":  gocv.FontHersheyComplexSmall,
	"script_simplex": gocv.FontHersheyScriptSimplex,
	"script_complex": gocv.FontHersheyScriptComplex,
}

// ParseFont maps a Hershey font name such as "simplex" to its identifier
func ParseFont(name string) (gocv.HersheyFont, error) {
	font, ok := fonts[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown font: %q", name)
	}
	return font, nil
}

var lineStyles = map[string]gocv.LineType{
	"aa":    gocv.LineAA,
	"line4": gocv.Line4,
	"line8": gocv.Line8,
}

// ParseLineStyle maps "aa", "line4" or "line8" to a line type
func ParseLineStyle(name string) (gocv.LineType, error) {
	lt, ok := lineStyles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown line style: %q", name)
	}
	return lt, nil
}
