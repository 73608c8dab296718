// Package preview shows processed images in a desktop window.
package preview

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

const AppID = "com.raster-effects.preview"

type pane struct {
	title string
	img   image.Image
}

// Window collects images and shows them side by side, one card each
type Window struct {
	title  string
	logger logrus.FieldLogger
	panes  []pane
}

func NewWindow(title string, logger logrus.FieldLogger) *Window {
	return &Window{title: title, logger: logger}
}

// Add converts mat to a Go image and queues it under title. The Mat is not
// retained, so the caller may close it right after.
func (w *Window) Add(title string, mat gocv.Mat) error {
	if mat.Empty() {
		return fmt.Errorf("cannot preview empty image %q", title)
	}

	img, err := mat.ToImage()
	if err != nil {
		return fmt.Errorf("failed to convert Mat to image: %w", err)
	}

	w.panes = append(w.panes, pane{title: title, img: img})
	w.logger.WithFields(logrus.Fields{
		"title":  title,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Debug("Queued preview image")
	return nil
}

// Len reports how many images are queued
func (w *Window) Len() int {
	return len(w.panes)
}

// Content builds the card grid for the queued images
func (w *Window) Content() fyne.CanvasObject {
	cards := make([]fyne.CanvasObject, 0, len(w.panes))
	for _, p := range w.panes {
		view := canvas.NewImageFromImage(p.img)
		view.FillMode = canvas.ImageFillContain
		view.ScaleMode = canvas.ImageScalePixels
		view.SetMinSize(fyne.NewSize(float32(p.img.Bounds().Dx()), float32(p.img.Bounds().Dy())))

		cards = append(cards, widget.NewCard(p.title, "", view))
	}
	return container.NewGridWithColumns(max(len(cards), 1), cards...)
}

// ShowAndRun opens the window and blocks until it is closed. It must be
// called from the main goroutine. Nothing happens when no image was added.
func (w *Window) ShowAndRun() {
	if len(w.panes) == 0 {
		w.logger.Debug("Nothing to preview")
		return
	}

	a := app.NewWithID(AppID)
	win := a.NewWindow(w.title)
	win.SetContent(w.Content())
	win.CenterOnScreen()

	w.logger.WithField("images", len(w.panes)).Info("Showing preview, close the window to continue")
	win.ShowAndRun()
}
