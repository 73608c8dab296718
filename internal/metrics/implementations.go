package metrics

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"
)

// sameLayout returns the raw bytes of both Mats once their layout matches
func sameLayout(original, processed gocv.Mat) ([]byte, []byte, error) {
	if original.Empty() || processed.Empty() {
		return nil, nil, fmt.Errorf("empty images")
	}

	if original.Rows() != processed.Rows() || original.Cols() != processed.Cols() {
		return nil, nil, fmt.Errorf("image dimensions mismatch")
	}

	if original.Type() != processed.Type() {
		return nil, nil, fmt.Errorf("image type mismatch")
	}

	return original.ToBytes(), processed.ToBytes(), nil
}

// MSE implements Mean Squared Error over every channel sample
type MSE struct{}

// NewMSE creates a new MSE metric
func NewMSE() *MSE {
	return &MSE{}
}

func (m *MSE) Calculate(original, processed gocv.Mat) (float64, error) {
	a, b, err := sameLayout(original, processed)
	if err != nil {
		return 0, err
	}
	return meanSquaredError(a, b), nil
}

func meanSquaredError(a, b []byte) float64 {
	if len(a) == 0 {
		return 0
	}

	sumSquaredDiff := 0.0
	for i := range a {
		diff := float64(a[i]) - float64(b[i])
		sumSquaredDiff += diff * diff
	}
	return sumSquaredDiff / float64(len(a))
}

// PSNR implements Peak Signal-to-Noise Ratio metric
type PSNR struct{}

// NewPSNR creates a new PSNR metric
func NewPSNR() *PSNR {
	return &PSNR{}
}

func (p *PSNR) Calculate(original, processed gocv.Mat) (float64, error) {
	a, b, err := sameLayout(original, processed)
	if err != nil {
		return 0, err
	}

	mse := meanSquaredError(a, b)
	if mse == 0 {
		return math.Inf(1), nil // Perfect match
	}

	maxVal := 255.0
	return 20 * math.Log10(maxVal/math.Sqrt(mse)), nil
}

// ChangedPixels counts pixels where any channel differs
type ChangedPixels struct{}

// NewChangedPixels creates a new changed pixel counter
func NewChangedPixels() *ChangedPixels {
	return &ChangedPixels{}
}

func (c *ChangedPixels) Calculate(original, processed gocv.Mat) (float64, error) {
	a, b, err := sameLayout(original, processed)
	if err != nil {
		return 0, err
	}

	channels := original.Channels()
	changed := 0
	for i := 0; i < len(a); i += channels {
		for ch := 0; ch < channels; ch++ {
			if a[i+ch] != b[i+ch] {
				changed++
				break
			}
		}
	}
	return float64(changed), nil
}
