// Sequential processing pipeline over registered algorithms
package core

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"raster-effects/internal/algorithms"
	"raster-effects/internal/metrics"
)

// ProcessingStep represents a sequential processing step
type ProcessingStep struct {
	Algorithm  string
	Parameters map[string]interface{}
	Enabled    bool
}

// Pipeline applies its steps in order. Every step hands a new Mat to the
// next one; the caller keeps ownership of the input.
type Pipeline struct {
	steps       []ProcessingStep
	metricsEval *metrics.Evaluator
	logger      logrus.FieldLogger
}

func NewPipeline(logger logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		steps:       make([]ProcessingStep, 0),
		metricsEval: metrics.NewEvaluator(),
		logger:      logger,
	}
}

// AddStep validates and appends a step
func (p *Pipeline) AddStep(algorithm string, parameters map[string]interface{}) error {
	if !algorithms.IsValidAlgorithm(algorithm) {
		return fmt.Errorf("unknown algorithm: %s", algorithm)
	}

	if err := algorithms.ValidateParameters(algorithm, parameters); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}

	p.steps = append(p.steps, ProcessingStep{
		Algorithm:  algorithm,
		Parameters: parameters,
		Enabled:    true,
	})
	p.logger.WithField("algorithm", algorithm).Debug("PIPELINE: Sequential step added")

	return nil
}

// GetSteps returns a copy of the processing steps
func (p *Pipeline) GetSteps() []ProcessingStep {
	steps := make([]ProcessingStep, len(p.steps))
	copy(steps, p.steps)
	return steps
}

// Process runs every enabled step on a clone of input and returns the
// result with per-step metrics keyed "<algorithm>_<metric>".
func (p *Pipeline) Process(input gocv.Mat) (gocv.Mat, map[string]float64, error) {
	if err := ValidateImage(input); err != nil {
		return gocv.NewMat(), nil, err
	}

	current := input.Clone()
	processMetrics := make(map[string]float64)

	for i, step := range p.steps {
		if !step.Enabled {
			p.logger.WithFields(logrus.Fields{"step": i, "algorithm": step.Algorithm}).Debug("PIPELINE: Skipping disabled step")
			continue
		}

		result, err := algorithms.Apply(step.Algorithm, current, step.Parameters)
		if err != nil {
			current.Close()
			return gocv.NewMat(), nil, fmt.Errorf("step %d (%s): %w", i, step.Algorithm, err)
		}

		for k, v := range p.metricsEval.CalculateAll(current, result) {
			processMetrics[fmt.Sprintf("%s_%s", step.Algorithm, k)] = v
		}

		current.Close()
		current = result
		p.logger.WithFields(logrus.Fields{"step": i, "algorithm": step.Algorithm}).Debug("PIPELINE: Step completed")
	}

	return current, processMetrics, nil
}
