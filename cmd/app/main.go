// Raster effects batch tool: draws shapes on images or applies motion blur
// to a file, every image in a directory, or a blank canvas.

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"raster-effects/internal/algorithms"
	"raster-effects/internal/batch"
	"raster-effects/internal/config"
	"raster-effects/internal/preview"
)

const (
	AppName    = "Raster Effects"
	AppVersion = "1.0.0"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-debug] [-config file.toml] <shapes|blur> [options]\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  shapes   draw a rectangle, circle and text")
	fmt.Fprintln(os.Stderr, "  blur     apply a motion blur")
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}

// blurUsage lists the blur flags, then the parameters motion_blur accepts
// from flags and the [blur] section of the config file
func blurUsage(fs *flag.FlagSet) func() {
	return func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage of %s:\n", fs.Name())
		fs.PrintDefaults()
		fmt.Fprintln(out)
		if err := algorithms.WriteUsage(out, algorithms.MotionBlurName); err != nil {
			fmt.Fprintln(out, err)
		}
	}
}

func main() {
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flag.String("config", "", "TOML file overriding the default parameters")
	flag.Usage = usage
	flag.Parse()

	logger := initLogger(*debugMode)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode,
	}).Debug("Starting " + AppName)

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	os.Exit(run(flag.Arg(0), flag.Args()[1:], cfg, logger))
}

func run(command string, args []string, cfg config.Config, logger *logrus.Logger) int {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	input := fs.String("input", "", "Input image or directory of images")
	output := fs.String("output", "", "Output file, or output directory when -input is a directory")
	showPreview := fs.Bool("preview", cfg.Preview.Enabled, "Show the result in a window (single image only)")

	var execute func(r *batch.Runner) ([]batch.Result, error)
	var window *preview.Window

	switch command {
	case "shapes":
		fs.StringVar(&cfg.Shapes.Text, "text", cfg.Shapes.Text, "Text to draw")
		fs.IntVar(&cfg.Shapes.Thickness, "thickness", cfg.Shapes.Thickness, "Stroke thickness, -1 fills rectangle and circle")
		fs.Float64Var(&cfg.Shapes.FontScale, "font_scale", cfg.Shapes.FontScale, "Font scale")
		window = preview.NewWindow("Image with shapes and text", logger)
		execute = func(r *batch.Runner) ([]batch.Result, error) { return r.RunShapes(*input, *output) }

	case "blur":
		fs.IntVar(&cfg.Blur.KernelSize, "kernel_size", cfg.Blur.KernelSize,
			fmt.Sprintf("Blur kernel size (odd, default %d)", cfg.Blur.KernelSize))
		fs.StringVar(&cfg.Blur.Direction, "direction", cfg.Blur.Direction, "Blur direction: horizontal or vertical")
		fs.StringVar(&cfg.Blur.Backend, "backend", cfg.Blur.Backend, "Convolution backend: opencv or bild")
		fs.Usage = blurUsage(fs)
		window = preview.NewWindow("Motion Blur", logger)
		execute = func(r *batch.Runner) ([]batch.Result, error) { return r.RunBlur(*input, *output) }

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		usage()
		return 2
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if command == "blur" && cfg.Blur.KernelSize%2 == 0 {
		logger.WithField("kernel_size", cfg.Blur.KernelSize).Error("kernel_size must be an odd number")
		return 1
	}

	var presenter batch.Presenter
	if *showPreview {
		presenter = window
	}

	results, err := execute(batch.NewRunner(cfg, logger, presenter))
	if err != nil {
		if errors.Is(err, algorithms.ErrInvalidParameter) {
			logger.WithError(err).Error("Invalid blur parameters")
		} else {
			logger.WithError(err).Error("Processing failed")
		}
		return 1
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}

	if *showPreview {
		window.ShowAndRun()
	}

	if failed > 0 {
		logger.WithField("failed", failed).Error("Some images could not be processed")
		return 1
	}
	return 0
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
