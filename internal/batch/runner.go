// Package batch resolves an input path to images, runs the shapes or blur
// pipeline on each one and writes the results.
package batch

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"raster-effects/internal/algorithms"
	"raster-effects/internal/config"
	"raster-effects/internal/core"
	"raster-effects/internal/io"
	"raster-effects/internal/metrics"
	"raster-effects/internal/shapes"
)

// Presenter receives images for on-screen display. Implementations must not
// keep the Mat past the call.
type Presenter interface {
	Add(title string, mat gocv.Mat) error
}

// Result describes one processed image
type Result struct {
	Input   string // empty for the blank canvas
	Output  string
	Metrics map[string]float64
	Err     error
}

// Runner drives the shapes and blur tools over files, directories or the
// blank canvas. Images are processed one at a time.
type Runner struct {
	cfg       config.Config
	loader    *io.ImageLoader
	renderer  *shapes.Renderer
	evaluator *metrics.Evaluator
	presenter Presenter
	logger    logrus.FieldLogger
}

// NewRunner creates a runner. presenter may be nil to disable previews.
func NewRunner(cfg config.Config, logger logrus.FieldLogger, presenter Presenter) *Runner {
	return &Runner{
		cfg:       cfg,
		loader:    io.NewImageLoader(logger),
		renderer:  shapes.NewRenderer(logger),
		evaluator: metrics.NewEvaluator(),
		presenter: presenter,
		logger:    logger,
	}
}

// processFunc turns a loaded canvas into a new result Mat
type processFunc func(canvas gocv.Mat) (gocv.Mat, error)

type job struct {
	name        string
	outputName  string
	outputDir   string
	filePrefix  string
	resultTitle string
	blankTitle  string
	process     processFunc
}

// RunBlur applies the configured motion blur. An invalid kernel size or
// direction fails before any image is touched.
func (r *Runner) RunBlur(input, output string) ([]Result, error) {
	pipeline := core.NewPipeline(r.logger)
	if err := pipeline.AddStep(algorithms.MotionBlurName, r.cfg.Blur.Params()); err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"kernel_size": r.cfg.Blur.KernelSize,
		"direction":   r.cfg.Blur.Direction,
		"backend":     r.cfg.Blur.Backend,
	}).Debug("Motion blur configured")

	return r.run(input, output, job{
		name:        "motion blur",
		outputName:  r.cfg.Blur.OutputName,
		outputDir:   r.cfg.Blur.OutputDir,
		filePrefix:  r.cfg.Blur.FilePrefix,
		resultTitle: "Motion Blur",
		blankTitle:  "Motion Blur on Black Canvas",
		process: func(canvas gocv.Mat) (gocv.Mat, error) {
			result, _, err := pipeline.Process(canvas)
			return result, err
		},
	})
}

// RunShapes draws the configured rectangle, circle and text
func (r *Runner) RunShapes(input, output string) ([]Result, error) {
	set, err := r.cfg.Shapes.ShapeSet()
	if err != nil {
		return nil, err
	}

	return r.run(input, output, job{
		name:        "shapes",
		outputName:  r.cfg.Shapes.OutputName,
		outputDir:   r.cfg.Shapes.OutputDir,
		filePrefix:  r.cfg.Shapes.FilePrefix,
		resultTitle: "Image with shapes and text",
		blankTitle:  "Image with shapes and text",
		process: func(canvas gocv.Mat) (gocv.Mat, error) {
			result := canvas.Clone()
			if err := r.renderer.Render(&result, set...); err != nil {
				result.Close()
				return gocv.NewMat(), err
			}
			return result, nil
		},
	})
}

func (r *Runner) run(input, output string, j job) ([]Result, error) {
	kind, err := io.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", input, err)
	}

	log := r.logger.WithFields(logrus.Fields{"job": j.name, "input": input, "mode": kind.String()})
	log.Debug("Resolved input")

	switch kind {
	case io.PathFile:
		res, err := r.processOne(input, orDefault(output, j.outputName), j, "Original", j.resultTitle)
		if err != nil {
			return nil, err
		}
		return []Result{res}, nil

	case io.PathDirectory:
		return r.processDirectory(input, orDefault(output, j.outputDir), j)

	case io.PathMissing:
		log.Warn("Input path does not exist, a black canvas will be created")
	}

	res, err := r.processOne("", orDefault(output, j.outputName), j, "", j.blankTitle)
	if err != nil {
		return nil, err
	}
	return []Result{res}, nil
}

func (r *Runner) processDirectory(dir, outputDir string, j job) ([]Result, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths, err := r.loader.ListImages(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		outPath := filepath.Join(outputDir, j.filePrefix+filepath.Base(path))
		res, err := r.processOne(path, outPath, j, "", "")
		if err != nil {
			r.logger.WithFields(logrus.Fields{
				"input": path,
				"error": err,
			}).Error("Failed to process image")
			res = Result{Input: path, Output: outPath, Err: err}
		}
		results = append(results, res)
	}

	r.logger.WithFields(logrus.Fields{
		"dir":    dir,
		"output": outputDir,
		"count":  len(results),
	}).Info("Directory processed")

	return results, nil
}

// processOne loads input (blank canvas when empty), processes it and saves
// the result. Empty titles skip the preview of that image.
func (r *Runner) processOne(input, outPath string, j job, originalTitle, resultTitle string) (Result, error) {
	canvas := r.loader.Load(input)
	defer canvas.Close()

	result, err := j.process(canvas)
	if err != nil {
		return Result{}, fmt.Errorf("%s failed for %s: %w", j.name, describe(input), err)
	}
	defer result.Close()

	if err := r.loader.Save(result, outPath); err != nil {
		return Result{}, err
	}

	quality := r.evaluator.CalculateAll(canvas, result)
	fields := logrus.Fields{"input": describe(input), "output": outPath}
	for name, value := range quality {
		if math.IsInf(value, 0) {
			fields[name] = "inf" // JSON cannot encode infinities
			continue
		}
		fields[name] = value
	}
	r.logger.WithFields(fields).Infof("Processed: %s -> %s", describe(input), outPath)

	r.present(originalTitle, canvas)
	r.present(resultTitle, result)

	return Result{Input: input, Output: outPath, Metrics: quality}, nil
}

func (r *Runner) present(title string, mat gocv.Mat) {
	if r.presenter == nil || title == "" {
		return
	}
	if err := r.presenter.Add(title, mat); err != nil {
		r.logger.WithError(err).Warn("Preview unavailable")
	}
}

func describe(input string) string {
	if input == "" {
		return "black canvas"
	}
	return input
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
