package main

import (
	"bytes"
	"flag"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"raster-effects/internal/config"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRunUnknownCommand(t *testing.T) {
	assert.Equal(t, 2, run("sharpen", nil, config.Default(), quietLogger()))
}

func TestRunBlurRejectsEvenKernel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	code := run("blur", []string{"-kernel_size", "4", "-output", out, "-preview=false"}, config.Default(), quietLogger())
	assert.Equal(t, 1, code)
	assert.NoFileExists(t, out)
}

func TestRunBlurRejectsUnknownDirection(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	code := run("blur", []string{"-direction", "diagonal", "-output", out, "-preview=false"}, config.Default(), quietLogger())
	assert.Equal(t, 1, code)
	assert.NoFileExists(t, out)
}

func TestRunBlurBlankCanvas(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	code := run("blur", []string{"-kernel_size", "9", "-output", out, "-preview=false"}, config.Default(), quietLogger())
	assert.Equal(t, 0, code)
	assert.FileExists(t, out)
}

func TestRunShapesBlankCanvas(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shapes.png")
	code := run("shapes", []string{"-text", "Hi", "-output", out, "-preview=false"}, config.Default(), quietLogger())
	assert.Equal(t, 0, code)
	assert.FileExists(t, out)
}

func TestBlurUsageListsParameters(t *testing.T) {
	var buf bytes.Buffer
	fs := flag.NewFlagSet("blur", flag.ContinueOnError)
	fs.SetOutput(&buf)
	fs.Int("kernel_size", 15, "Blur kernel size")

	blurUsage(fs)()

	out := buf.String()
	assert.Contains(t, out, "Usage of blur:")
	assert.Contains(t, out, "-kernel_size")
	assert.Contains(t, out, "Motion Blur (motion_blur)")
	assert.Contains(t, out, "[horizontal, vertical]")
	assert.Contains(t, out, "[opencv, bild]")
}
