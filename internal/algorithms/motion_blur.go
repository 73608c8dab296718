// Motion blur algorithm
package algorithms

import (
	"fmt"

	"gocv.io/x/gocv"
)

const (
	MotionBlurName    = "motion_blur"
	DefaultKernelSize = 15
)

// Parameter keys understood by MotionBlur
const (
	ParamKernelSize = "kernel_size"
	ParamDirection  = "direction"
	ParamBackend    = "backend"
)

// MotionBlur implements directional motion blur
type MotionBlur struct{}

// NewMotionBlur creates a new motion blur algorithm
func NewMotionBlur() *MotionBlur {
	return &MotionBlur{}
}

func (m *MotionBlur) Apply(input gocv.Mat, params map[string]interface{}) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}

	kernelSize, direction, backend, err := m.parse(params)
	if err != nil {
		return gocv.NewMat(), err
	}

	kernel, err := NewMotionBlurKernel(kernelSize, direction)
	if err != nil {
		return gocv.NewMat(), err
	}

	return Blur(input, kernel, backend)
}

func (m *MotionBlur) parse(params map[string]interface{}) (int, Direction, Backend, error) {
	kernelSize := DefaultKernelSize
	if val, ok := params[ParamKernelSize]; ok {
		switch v := val.(type) {
		case int:
			kernelSize = v
		case float64:
			if v != float64(int(v)) {
				return 0, 0, "", fmt.Errorf("%w: kernel_size must be an integer, got %v", ErrInvalidParameter, v)
			}
			kernelSize = int(v)
		default:
			return 0, 0, "", fmt.Errorf("%w: kernel_size has type %T", ErrInvalidParameter, val)
		}
	}

	direction := Horizontal
	if val, ok := params[ParamDirection]; ok {
		switch v := val.(type) {
		case Direction:
			direction = v
		case string:
			d, err := ParseDirection(v)
			if err != nil {
				return 0, 0, "", err
			}
			direction = d
		default:
			return 0, 0, "", fmt.Errorf("%w: direction has type %T", ErrInvalidParameter, val)
		}
	}

	backend := BackendOpenCV
	if val, ok := params[ParamBackend]; ok {
		switch v := val.(type) {
		case Backend:
			backend = v
		case string:
			b, err := ParseBackend(v)
			if err != nil {
				return 0, 0, "", err
			}
			backend = b
		default:
			return 0, 0, "", fmt.Errorf("%w: backend has type %T", ErrInvalidParameter, val)
		}
	}

	return kernelSize, direction, backend, nil
}

func (m *MotionBlur) Name() string {
	return "Motion Blur"
}

func (m *MotionBlur) Description() string {
	return "Directional motion blur with a normalized line kernel"
}

func (m *MotionBlur) Validate(params map[string]interface{}) error {
	kernelSize, direction, _, err := m.parse(params)
	if err != nil {
		return err
	}
	_, err = NewMotionBlurKernel(kernelSize, direction)
	return err
}

func (m *MotionBlur) Params() []Param {
	return []Param{
		{
			Key:         ParamKernelSize,
			Kind:        "int",
			Default:     DefaultKernelSize,
			Description: "Size of the blur kernel (odd, at least 1)",
		},
		{
			Key:         ParamDirection,
			Kind:        "enum",
			Default:     Horizontal.String(),
			Description: "Direction of the blur",
			Options:     []string{Horizontal.String(), Vertical.String()},
		},
		{
			Key:         ParamBackend,
			Kind:        "enum",
			Default:     string(BackendOpenCV),
			Description: "Convolution routine",
			Options:     []string{string(BackendOpenCV), string(BackendBild)},
		},
	}
}
