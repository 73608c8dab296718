// Directional motion blur kernels
package algorithms

import (
	"errors"
	"fmt"
	"strings"

	"gocv.io/x/gocv"
)

// ErrInvalidParameter is returned when a kernel cannot be built from the
// requested parameters. There is no fallback kernel.
var ErrInvalidParameter = errors.New("invalid parameter")

// Direction selects which line of the kernel carries the weights
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection maps "horizontal" or "vertical" to a Direction
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	}
	return 0, fmt.Errorf("%w: direction must be 'horizontal' or 'vertical', got %q", ErrInvalidParameter, name)
}

// Kernel is an immutable size x size motion blur kernel. Exactly one center
// row or column holds 1/size, every other weight is zero.
type Kernel struct {
	size      int
	direction Direction
	weights   []float64 // row-major
}

// NewMotionBlurKernel builds a normalized kernel of the given odd size
func NewMotionBlurKernel(size int, direction Direction) (Kernel, error) {
	if size%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: kernel_size must be odd, got %d", ErrInvalidParameter, size)
	}
	if size < 1 {
		return Kernel{}, fmt.Errorf("%w: kernel_size must be at least 1, got %d", ErrInvalidParameter, size)
	}
	if direction != Horizontal && direction != Vertical {
		return Kernel{}, fmt.Errorf("%w: unknown direction %v", ErrInvalidParameter, direction)
	}

	weights := make([]float64, size*size)
	center := (size - 1) / 2
	for i := 0; i < size; i++ {
		if direction == Horizontal {
			weights[center*size+i] = 1
		} else {
			weights[i*size+center] = 1
		}
	}
	for i := range weights {
		weights[i] /= float64(size)
	}

	return Kernel{size: size, direction: direction, weights: weights}, nil
}

func (k Kernel) Size() int            { return k.size }
func (k Kernel) Direction() Direction { return k.direction }

// At returns the weight at row, col
func (k Kernel) At(row, col int) float64 {
	return k.weights[row*k.size+col]
}

// Sum returns the total of all weights, 1 for any valid kernel
func (k Kernel) Sum() float64 {
	total := 0.0
	for _, w := range k.weights {
		total += w
	}
	return total
}

// Mat copies the kernel into a single channel CV_64F Mat. The caller owns it.
func (k Kernel) Mat() gocv.Mat {
	mat := gocv.NewMatWithSize(k.size, k.size, gocv.MatTypeCV64F)
	for row := 0; row < k.size; row++ {
		for col := 0; col < k.size; col++ {
			mat.SetDoubleAt(row, col, k.At(row, col))
		}
	}
	return mat
}
