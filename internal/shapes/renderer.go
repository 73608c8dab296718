package shapes

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// Renderer draws shapes that pass Validate and skips the rest with a warning
type Renderer struct {
	logger logrus.FieldLogger
}

func NewRenderer(logger logrus.FieldLogger) *Renderer {
	return &Renderer{logger: logger}
}

// Render draws each shape onto img in place. Out of bounds shapes leave img
// untouched and are not an error; only a failing draw primitive is.
func (r *Renderer) Render(img *gocv.Mat, shapes ...Shape) error {
	if img == nil || img.Empty() {
		return fmt.Errorf("cannot render on empty image")
	}

	rows, cols := img.Rows(), img.Cols()
	for _, s := range shapes {
		if s == nil {
			r.logger.Warn("Skipping nil shape")
			continue
		}

		if !Validate(rows, cols, s) {
			r.logger.WithFields(logrus.Fields{
				"shape":  s.Kind(),
				"width":  cols,
				"height": rows,
			}).Warnf("%s coordinates are out of image bounds, skipping", s.Kind())
			continue
		}

		if err := s.draw(img); err != nil {
			return fmt.Errorf("failed to draw %s: %w", s.Kind(), err)
		}
		r.logger.WithField("shape", s.Kind()).Debug("Shape drawn")
	}

	return nil
}
