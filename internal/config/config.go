// Package config holds the drawing and blur defaults for the batch tools.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"raster-effects/internal/algorithms"
	"raster-effects/internal/shapes"
)

// BGR is a color as [blue, green, red]
type BGR [3]uint8

func (c BGR) Color() shapes.Color {
	return shapes.BGR(c[0], c[1], c[2])
}

// Point is an [x, y] pair
type Point [2]int

// Config replaces the process-wide constants of the drawing and blur tools
type Config struct {
	Shapes  ShapesConfig  `toml:"shapes"`
	Blur    BlurConfig    `toml:"blur"`
	Preview PreviewConfig `toml:"preview"`
}

type ShapesConfig struct {
	RectangleColor BGR   `toml:"rectangle_color"`
	RectangleStart Point `toml:"rectangle_start"`
	RectangleEnd   Point `toml:"rectangle_end"`

	CircleColor  BGR   `toml:"circle_color"`
	CircleCenter Point `toml:"circle_center"`
	CircleRadius int   `toml:"circle_radius"`

	TextColor  BGR     `toml:"text_color"`
	Text       string  `toml:"text"`
	TextAnchor Point   `toml:"text_anchor"`
	Font       string  `toml:"font"`
	FontScale  float64 `toml:"font_scale"`
	LineStyle  string  `toml:"line_style"`

	// Thickness applies to every shape, -1 fills rectangles and circles
	Thickness int `toml:"thickness"`

	OutputName string `toml:"output_name"`
	OutputDir  string `toml:"output_dir"`
	FilePrefix string `toml:"file_prefix"`
}

type BlurConfig struct {
	KernelSize int    `toml:"kernel_size"`
	Direction  string `toml:"direction"`
	Backend    string `toml:"backend"`
	OutputName string `toml:"output_name"`
	OutputDir  string `toml:"output_dir"`
	FilePrefix string `toml:"file_prefix"`
}

// Params converts the blur settings to motion_blur algorithm parameters
func (c BlurConfig) Params() map[string]interface{} {
	return map[string]interface{}{
		algorithms.ParamKernelSize: c.KernelSize,
		algorithms.ParamDirection:  c.Direction,
		algorithms.ParamBackend:    c.Backend,
	}
}

type PreviewConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		Shapes: ShapesConfig{
			RectangleColor: BGR{0, 0, 255},
			RectangleStart: Point{50, 50},
			RectangleEnd:   Point{200, 200},
			CircleColor:    BGR{0, 255, 0},
			CircleCenter:   Point{300, 300},
			CircleRadius:   50,
			TextColor:      BGR{255, 0, 0},
			Text:           "Sample Text",
			TextAnchor:     Point{50, 300},
			Font:           "simplex",
			FontScale:      0.8,
			LineStyle:      "aa",
			Thickness:      2,
			OutputName:     "output_image.jpg",
			OutputDir:      "shapes_output",
			FilePrefix:     "shapes_",
		},
		Blur: BlurConfig{
			KernelSize: algorithms.DefaultKernelSize,
			Direction:  "horizontal",
			Backend:    string(algorithms.BackendOpenCV),
			OutputName: "motion_blur_output.jpg",
			OutputDir:  "motion_blur_output",
			FilePrefix: "motion_blur_",
		},
		Preview: PreviewConfig{
			Enabled: true,
		},
	}
}

// Load overlays the TOML file at path on Default. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the names that are resolved at run time. Kernel size is
// left to the kernel builder so it fails with ErrInvalidParameter there.
func (c Config) Validate() error {
	if _, err := shapes.ParseFont(c.Shapes.Font); err != nil {
		return err
	}
	if _, err := shapes.ParseLineStyle(c.Shapes.LineStyle); err != nil {
		return err
	}
	if _, err := algorithms.ParseDirection(c.Blur.Direction); err != nil {
		return err
	}
	if _, err := algorithms.ParseBackend(c.Blur.Backend); err != nil {
		return err
	}
	if c.Shapes.FontScale <= 0 {
		return fmt.Errorf("font_scale must be positive, got %v", c.Shapes.FontScale)
	}
	return nil
}
