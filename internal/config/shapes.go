package config

import (
	"image"

	"raster-effects/internal/shapes"
)

// ShapeSet builds the rectangle, circle and text drawn by the shapes tool
func (c ShapesConfig) ShapeSet() ([]shapes.Shape, error) {
	font, err := shapes.ParseFont(c.Font)
	if err != nil {
		return nil, err
	}
	lineStyle, err := shapes.ParseLineStyle(c.LineStyle)
	if err != nil {
		return nil, err
	}

	return []shapes.Shape{
		shapes.Rectangle{
			Start: c.RectangleStart.pt(),
			End:   c.RectangleEnd.pt(),
			Style: shapes.Style{Color: c.RectangleColor.Color(), Thickness: c.Thickness},
		},
		shapes.Circle{
			Center: c.CircleCenter.pt(),
			Radius: c.CircleRadius,
			Style:  shapes.Style{Color: c.CircleColor.Color(), Thickness: c.Thickness},
		},
		shapes.Text{
			Content:   c.Text,
			Anchor:    c.TextAnchor.pt(),
			Font:      font,
			Scale:     c.FontScale,
			LineStyle: lineStyle,
			Style:     shapes.Style{Color: c.TextColor.Color(), Thickness: c.Thickness},
		},
	}, nil
}

func (p Point) pt() image.Point {
	return image.Pt(p[0], p[1])
}
