package algorithms

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestMotionBlurRegistered(t *testing.T) {
	require.True(t, IsValidAlgorithm(MotionBlurName))

	algorithm, err := Lookup(MotionBlurName)
	require.NoError(t, err)
	assert.Equal(t, "Motion Blur", algorithm.Name())
	assert.Equal(t, map[string]interface{}{
		ParamKernelSize: 15,
		ParamDirection:  "horizontal",
		ParamBackend:    "opencv",
	}, Defaults(algorithm))
	assert.NoError(t, algorithm.Validate(Defaults(algorithm)))

	_, err = Lookup("sharpen")
	assert.Error(t, err)
}

func TestWriteUsage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUsage(&buf, MotionBlurName))

	out := buf.String()
	assert.Contains(t, out, "Motion Blur (motion_blur)")
	for _, p := range NewMotionBlur().Params() {
		assert.Contains(t, out, p.Key)
		assert.Contains(t, out, p.Description)
	}
	assert.Contains(t, out, "[horizontal, vertical]")
	assert.Contains(t, out, "[opencv, bild]")
	assert.Contains(t, out, "default 15")

	assert.Error(t, WriteUsage(&buf, "sharpen"))
}

func TestMotionBlurApplyViaRegistry(t *testing.T) {
	input := singlePixelMat(t, 20, 30)
	defer input.Close()

	output, err := Apply(MotionBlurName, input, map[string]interface{}{
		ParamKernelSize: 3.0,
		ParamDirection:  "vertical",
	})
	require.NoError(t, err)
	defer output.Close()

	data := output.ToBytes()
	assert.Equal(t, byte(85), pixel(data, 19, 30, 1))
	assert.Equal(t, byte(85), pixel(data, 20, 30, 1))
	assert.Equal(t, byte(85), pixel(data, 21, 30, 1))
	assert.Zero(t, pixel(data, 20, 31, 1))
}

func TestMotionBlurInvalidParameters(t *testing.T) {
	input := gocv.Zeros(8, 8, gocv.MatTypeCV8UC3)
	defer input.Close()

	tests := []struct {
		name   string
		params map[string]interface{}
	}{
		{"even size", map[string]interface{}{ParamKernelSize: 4}},
		{"fractional size", map[string]interface{}{ParamKernelSize: 4.5}},
		{"unknown direction", map[string]interface{}{ParamDirection: "diagonal"}},
		{"unknown backend", map[string]interface{}{ParamBackend: "gpu"}},
		{"wrong type", map[string]interface{}{ParamKernelSize: "15"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateParameters(MotionBlurName, tt.params), ErrInvalidParameter)

			_, err := Apply(MotionBlurName, input, tt.params)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestApplyUnknownAlgorithm(t *testing.T) {
	input := gocv.Zeros(8, 8, gocv.MatTypeCV8UC3)
	defer input.Close()

	_, err := Apply("sharpen", input, nil)
	assert.Error(t, err)
}
