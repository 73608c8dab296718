package algorithms

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

const (
	testRows = 40
	testCols = 60
)

// singlePixelMat returns a BGR Mat that is black except for one white pixel
func singlePixelMat(t *testing.T, row, col int) gocv.Mat {
	t.Helper()
	data := make([]byte, testRows*testCols*3)
	offset := (row*testCols + col) * 3
	data[offset], data[offset+1], data[offset+2] = 255, 255, 255

	mat, err := gocv.NewMatFromBytes(testRows, testCols, gocv.MatTypeCV8UC3, data)
	require.NoError(t, err)
	return mat
}

func pixel(data []byte, row, col, channel int) byte {
	return data[(row*testCols+col)*3+channel]
}

func TestApplyKernelBlankStaysBlank(t *testing.T) {
	input := gocv.Zeros(testRows, testCols, gocv.MatTypeCV8UC3)
	defer input.Close()

	k, err := NewMotionBlurKernel(15, Horizontal)
	require.NoError(t, err)

	output, err := ApplyKernel(input, k)
	require.NoError(t, err)
	defer output.Close()

	assert.Equal(t, input.Rows(), output.Rows())
	assert.Equal(t, input.Cols(), output.Cols())
	assert.Equal(t, gocv.MatTypeCV8UC3, output.Type())
	for _, b := range output.ToBytes() {
		require.Zero(t, b)
	}
}

func TestApplyKernelSpreadsSinglePixel(t *testing.T) {
	tests := []struct {
		name      string
		direction Direction
	}{
		{"horizontal", Horizontal},
		{"vertical", Vertical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col := 20, 30
			input := singlePixelMat(t, row, col)
			defer input.Close()

			k, err := NewMotionBlurKernel(15, tt.direction)
			require.NoError(t, err)

			output, err := ApplyKernel(input, k)
			require.NoError(t, err)
			defer output.Close()

			data := output.ToBytes()
			lit := 0
			for r := 0; r < testRows; r++ {
				for c := 0; c < testCols; c++ {
					inSpan := r == row && c >= col-7 && c <= col+7
					if tt.direction == Vertical {
						inSpan = c == col && r >= row-7 && r <= row+7
					}
					for ch := 0; ch < 3; ch++ {
						if inSpan {
							assert.Equal(t, byte(17), pixel(data, r, c, ch), "r=%d c=%d", r, c)
						} else {
							require.Zero(t, pixel(data, r, c, ch), "r=%d c=%d", r, c)
						}
					}
					if inSpan {
						lit++
					}
				}
			}
			assert.Equal(t, 15, lit)
		})
	}
}

func TestApplyKernelEmptyInput(t *testing.T) {
	k, err := NewMotionBlurKernel(3, Horizontal)
	require.NoError(t, err)

	empty := gocv.NewMat()
	defer empty.Close()

	_, err = ApplyKernel(empty, k)
	assert.Error(t, err)
}

func TestApplyKernelReflectsAtBorder(t *testing.T) {
	input := singlePixelMat(t, 5, 0)
	defer input.Close()

	k, err := NewMotionBlurKernel(15, Horizontal)
	require.NoError(t, err)

	output, err := ApplyKernel(input, k)
	require.NoError(t, err)
	defer output.Close()

	// reflect 101 never duplicates the edge pixel
	data := output.ToBytes()
	assert.Equal(t, byte(17), pixel(data, 5, 0, 0))
	assert.Equal(t, byte(17), pixel(data, 5, 7, 0))
	assert.Zero(t, pixel(data, 5, 8, 0))
}

func TestConvolveImageSpreadsSinglePixel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, testCols, testRows))
	for y := 0; y < testRows; y++ {
		for x := 0; x < testCols; x++ {
			img.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}
	img.SetRGBA(30, 20, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	k, err := NewMotionBlurKernel(15, Horizontal)
	require.NoError(t, err)

	out := ConvolveImage(img, k)
	require.Equal(t, img.Bounds(), out.Bounds())

	lit := 0
	for y := 0; y < testRows; y++ {
		for x := 0; x < testCols; x++ {
			c := out.RGBAAt(x, y)
			assert.Equal(t, uint8(255), c.A)
			if y == 20 && x >= 23 && x <= 37 {
				assert.Equal(t, uint8(17), c.R, "x=%d", x)
				lit++
				continue
			}
			require.Zero(t, c.R, "x=%d y=%d", x, y)
		}
	}
	assert.Equal(t, 15, lit)
}

func TestConvolveImageReplicatesAtBorder(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, testCols, testRows))
	for y := 0; y < testRows; y++ {
		for x := 0; x < testCols; x++ {
			img.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}
	img.SetRGBA(0, 5, color.RGBA{R: 255, A: 255})

	k, err := NewMotionBlurKernel(15, Horizontal)
	require.NoError(t, err)

	out := ConvolveImage(img, k)
	// the clamped edge pixel is sampled 8 times for x=0
	assert.Equal(t, uint8(136), out.RGBAAt(0, 5).R)
	assert.Zero(t, out.RGBAAt(8, 5).R)
}

func TestBlurBackends(t *testing.T) {
	k, err := NewMotionBlurKernel(5, Vertical)
	require.NoError(t, err)

	input := gocv.Zeros(testRows, testCols, gocv.MatTypeCV8UC3)
	defer input.Close()

	for _, backend := range []Backend{BackendOpenCV, BackendBild} {
		out, err := Blur(input, k, backend)
		require.NoError(t, err, backend)
		assert.Equal(t, testRows, out.Rows())
		assert.Equal(t, testCols, out.Cols())
		assert.Equal(t, gocv.MatTypeCV8UC3, out.Type())
		out.Close()
	}

	_, err = Blur(input, k, Backend("gpu"))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestBlurKeepsUniformImage(t *testing.T) {
	values := []float64{1, 2, 4, 5, 8, 9, 10, 11, 16, 17, 30, 119, 128, 200, 254, 255}

	for _, backend := range []Backend{BackendOpenCV, BackendBild} {
		for _, direction := range []Direction{Horizontal, Vertical} {
			k, err := NewMotionBlurKernel(15, direction)
			require.NoError(t, err)

			for _, v := range values {
				input := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, 255-v, v, 0), testRows, testCols, gocv.MatTypeCV8UC3)
				out, err := Blur(input, k, backend)
				require.NoError(t, err, "%s %s v=%v", backend, direction, v)

				require.Equal(t, input.ToBytes(), out.ToBytes(), "%s %s v=%v", backend, direction, v)
				out.Close()
				input.Close()
			}
		}
	}
}

func TestBlurRoundsFaintPixel(t *testing.T) {
	k, err := NewMotionBlurKernel(15, Horizontal)
	require.NoError(t, err)

	for _, backend := range []Backend{BackendOpenCV, BackendBild} {
		data := make([]byte, testRows*testCols*3)
		offset := (20*testCols + 30) * 3
		data[offset], data[offset+1], data[offset+2] = 14, 14, 14
		input, err := gocv.NewMatFromBytes(testRows, testCols, gocv.MatTypeCV8UC3, data)
		require.NoError(t, err)

		out, err := Blur(input, k, backend)
		require.NoError(t, err, backend)

		// 14/15 rounds up to 1 across the whole span
		got := out.ToBytes()
		for c := 23; c <= 37; c++ {
			assert.Equal(t, byte(1), pixel(got, 20, c, 1), "%s c=%d", backend, c)
		}
		assert.Zero(t, pixel(got, 20, 22, 1), backend)
		assert.Zero(t, pixel(got, 20, 38, 1), backend)

		out.Close()
		input.Close()
	}
}

func TestBlurRejectsZeroKernel(t *testing.T) {
	input := gocv.Zeros(testRows, testCols, gocv.MatTypeCV8UC3)
	defer input.Close()

	for _, backend := range []Backend{BackendOpenCV, BackendBild} {
		_, err := Blur(input, Kernel{}, backend)
		assert.ErrorIs(t, err, ErrInvalidParameter, backend)
	}
	_, err := ApplyKernel(input, Kernel{})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = ApplyKernelBild(input, Kernel{})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("")
	require.NoError(t, err)
	assert.Equal(t, BackendOpenCV, b)

	b, err = ParseBackend("BILD")
	require.NoError(t, err)
	assert.Equal(t, BackendBild, b)

	_, err = ParseBackend("cuda")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
