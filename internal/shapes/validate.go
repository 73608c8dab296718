package shapes

// Validate reports whether s lies inside a rows x cols buffer.
//
// Rectangles need both corners inside the buffer and Start strictly above
// and left of End, so swapped corners are rejected. Circles need
// x-r >= 0, x+r < cols, y-r >= 0, y+r < rows and r > 0. Text only checks
// its anchor; the rendered glyphs may still run past the right or bottom edge.
func Validate(rows, cols int, s Shape) bool {
	switch s := s.(type) {
	case Rectangle:
		return inside(rows, cols, s.Start.X, s.Start.Y) &&
			inside(rows, cols, s.End.X, s.End.Y) &&
			s.Start.X < s.End.X && s.Start.Y < s.End.Y
	case Circle:
		x, y, r := s.Center.X, s.Center.Y, s.Radius
		return x-r >= 0 && x+r < cols && y-r >= 0 && y+r < rows && r > 0
	case Text:
		return inside(rows, cols, s.Anchor.X, s.Anchor.Y)
	default:
		return false
	}
}

func inside(rows, cols, x, y int) bool {
	return x >= 0 && x < cols && y >= 0 && y < rows
}
