// Kernel convolution backends
package algorithms

import (
	"fmt"
	"image"
	"strings"

	"github.com/anthonynsimon/bild/convolution"
	"gocv.io/x/gocv"
)

// Backend names the convolution routine used to apply a kernel
type Backend string

const (
	// BackendOpenCV uses filter2D with OpenCV's default border (reflect 101)
	BackendOpenCV Backend = "opencv"
	// BackendBild uses bild's pure Go convolution with clamped (replicated) edges
	BackendBild Backend = "bild"
)

// ParseBackend maps a backend name to a Backend
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case BackendOpenCV, BackendBild:
		return b, nil
	case "":
		return BackendOpenCV, nil
	}
	return "", fmt.Errorf("%w: unknown backend %q", ErrInvalidParameter, name)
}

// ApplyKernel convolves every channel of input with k and returns a new Mat
// of the same size and depth. The input is not modified.
func ApplyKernel(input gocv.Mat, k Kernel) (gocv.Mat, error) {
	if err := checkBlurInput(input, k); err != nil {
		return gocv.NewMat(), err
	}

	kernel := k.Mat()
	defer kernel.Close()

	output := gocv.NewMat()
	if err := gocv.Filter2D(input, &output, -1, kernel, image.Pt(-1, -1), 0, gocv.BorderDefault); err != nil {
		output.Close()
		return gocv.NewMat(), fmt.Errorf("filter2D failed: %w", err)
	}

	return output, nil
}

// ApplyKernelBild is ApplyKernel on the bild backend
func ApplyKernelBild(input gocv.Mat, k Kernel) (gocv.Mat, error) {
	if err := checkBlurInput(input, k); err != nil {
		return gocv.NewMat(), err
	}

	img, err := input.ToImage()
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to convert Mat to image: %w", err)
	}

	output, err := gocv.ImageToMatRGB(ConvolveImage(img, k))
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("failed to convert image to Mat: %w", err)
	}

	return output, nil
}

// ConvolveImage applies k to a Go image. Alpha is passed through untouched.
// bild truncates each sum to a byte, the 0.5 bias turns that into rounding
// so results match filter2D. bild spreads the rows over goroutines, the
// call itself still returns only when every row is done.
func ConvolveImage(img image.Image, k Kernel) *image.RGBA {
	return convolution.Convolve(img, bildMatrix{k: k}, &convolution.Options{
		Bias:      0.5,
		Wrap:      false,
		KeepAlpha: true,
	})
}

func checkBlurInput(input gocv.Mat, k Kernel) error {
	if k.Size() == 0 {
		return fmt.Errorf("%w: kernel is not initialized", ErrInvalidParameter)
	}
	if input.Empty() {
		return fmt.Errorf("input image is empty")
	}
	return nil
}

// Blur applies k with the selected backend
func Blur(input gocv.Mat, k Kernel, backend Backend) (gocv.Mat, error) {
	switch backend {
	case BackendOpenCV, "":
		return ApplyKernel(input, k)
	case BackendBild:
		return ApplyKernelBild(input, k)
	}
	return gocv.NewMat(), fmt.Errorf("%w: unknown backend %q", ErrInvalidParameter, backend)
}

// bildMatrix exposes a Kernel through bild's x/y (column/row) matrix interface
type bildMatrix struct {
	k          Kernel
	transposed bool
}

func (m bildMatrix) At(x, y int) float64 {
	if m.transposed {
		return m.k.At(x, y)
	}
	return m.k.At(y, x)
}

func (m bildMatrix) MaxX() int { return m.k.Size() }
func (m bildMatrix) MaxY() int { return m.k.Size() }

// Normalized returns m itself, motion blur kernels already sum to 1
func (m bildMatrix) Normalized() convolution.Matrix { return m }

func (m bildMatrix) Transposed() convolution.Matrix {
	return bildMatrix{k: m.k, transposed: !m.transposed}
}
