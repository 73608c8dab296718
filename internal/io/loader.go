// Image loading and saving functionality
package io

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"raster-effects/internal/core"
)

// sniffLen covers the longest magic number filetype checks
const sniffLen = 261

// DirectoryPatterns are the globs scanned in directory mode, in order
var DirectoryPatterns = []string{"*.jpg", "*.jpeg", "*.png", "*.bmp", "*.tiff"}

// ImageLoader handles image file operations
type ImageLoader struct {
	logger logrus.FieldLogger
}

func NewImageLoader(logger logrus.FieldLogger) *ImageLoader {
	return &ImageLoader{
		logger: logger,
	}
}

// Load returns the decoded image at path, or a blank canvas when path is
// empty, missing or not decodable. It never fails.
func (il *ImageLoader) Load(path string) gocv.Mat {
	if path == "" {
		il.logger.Debug("No input path, using blank canvas")
		return core.NewBlankCanvas()
	}

	mat, err := il.Decode(path)
	if err != nil {
		il.logger.WithFields(logrus.Fields{
			"filepath": path,
			"error":    err,
		}).Warn("Could not decode image, using blank canvas")
		return core.NewBlankCanvas()
	}

	return mat
}

// Decode reads a color image from path exactly as stored. Any format the
// OpenCV codecs understand is accepted; the file header is only inspected to
// explain a failure.
func (il *ImageLoader) Decode(path string) (gocv.Mat, error) {
	il.logger.WithField("filepath", path).Debug("Loading image")

	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), il.decodeFailure(path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image loaded successfully")

	return mat, nil
}

// decodeFailure tells unreadable files, non-images and broken images apart
func (il *ImageLoader) decodeFailure(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return fmt.Errorf("failed to read image header: %w", err)
	}

	kind, _ := filetype.Match(head[:n])
	switch {
	case filetype.IsImage(head[:n]):
		return fmt.Errorf("corrupt or unsupported image: %s", path)
	case kind != filetype.Unknown:
		return fmt.Errorf("not an image file (%s): %s", kind.MIME.Value, path)
	}
	return fmt.Errorf("failed to load image: %s", path)
}

// Save encodes mat to path; the format follows the file extension
func (il *ImageLoader) Save(mat gocv.Mat, path string) error {
	il.logger.WithField("filepath", path).Debug("Saving image")

	if mat.Empty() {
		return fmt.Errorf("cannot save empty image")
	}

	if !il.IsSupportedImageFormat(path) {
		return fmt.Errorf("unsupported image format: %s", path)
	}

	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("failed to save image: %s", path)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": path,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image saved successfully")

	return nil
}

// ListImages returns the regular files in dir matching DirectoryPatterns.
// Matches are grouped by pattern and not recursive.
func (il *ImageLoader) ListImages(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var paths []string
	for _, pattern := range DirectoryPatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad pattern %s: %w", pattern, err)
		}
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && fi.Mode().IsRegular() {
				paths = append(paths, m)
			}
		}
	}

	il.logger.WithFields(logrus.Fields{
		"dir":   dir,
		"count": len(paths),
	}).Debug("Scanned directory for images")

	return paths, nil
}

func (il *ImageLoader) IsSupportedImageFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	supportedFormats := []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp", ".ppm", ".pgm", ".pnm"}

	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}

	return false
}

// Stat classifies path for the batch driver
func Stat(path string) (PathKind, error) {
	if path == "" {
		return PathNone, nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return PathMissing, nil
	}
	if err != nil {
		return PathMissing, err
	}
	if info.IsDir() {
		return PathDirectory, nil
	}
	return PathFile, nil
}

// PathKind is how an input path resolves
type PathKind int

const (
	PathNone PathKind = iota
	PathFile
	PathDirectory
	PathMissing
)

func (k PathKind) String() string {
	switch k {
	case PathNone:
		return "none"
	case PathFile:
		return "file"
	case PathDirectory:
		return "directory"
	case PathMissing:
		return "missing"
	}
	return fmt.Sprintf("PathKind(%d)", int(k))
}
