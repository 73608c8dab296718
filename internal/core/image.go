// Raster buffer helpers shared by the loader, renderer and blur stages
package core

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Blank canvas geometry used whenever no decodable input exists
const (
	BlankRows = 400
	BlankCols = 600
)

// RasterType is the only buffer layout the pipeline works on: 8-bit BGR
const RasterType = gocv.MatTypeCV8UC3

// NewBlankCanvas allocates a BlankRows x BlankCols BGR buffer with every channel zero
func NewBlankCanvas() gocv.Mat {
	return gocv.Zeros(BlankRows, BlankCols, RasterType)
}

// Dimensions describes a raster buffer in rows and columns
type Dimensions struct {
	Rows int
	Cols int
}

// DimensionsOf returns the row/column size of mat
func DimensionsOf(mat gocv.Mat) Dimensions {
	return Dimensions{Rows: mat.Rows(), Cols: mat.Cols()}
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Cols, d.Rows)
}

// ValidateImage validates an OpenCV Mat for basic requirements
func ValidateImage(mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("image is empty")
	}

	if mat.Cols() <= 0 || mat.Rows() <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", mat.Cols(), mat.Rows())
	}

	if mat.Channels() != 3 {
		return fmt.Errorf("unsupported channel count: %d", mat.Channels())
	}

	if mat.Type() != RasterType {
		return fmt.Errorf("unsupported mat type: %v", mat.Type())
	}

	return nil
}
