package chart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
	"gonum.org/v1/plot"
)

type (
	Presenter interface {
		Present(ctx context.Context, p *plot.Plot) error
	}

	// BrowserPresenter renders the chart into a temporary PNG and hands it to
	// the desktop image viewer. The viewer owns the file until the next call,
	// which removes the PNGs left behind by earlier calls.
	BrowserPresenter struct {
		Dir string
		// Open defaults to browser.OpenFile.
		Open func(path string) error
	}

	NopPresenter struct{}
)

const tempPattern = "currency_plot_*.png"

func (b BrowserPresenter) Present(_ context.Context, p *plot.Plot) error {
	removeStale(b.Dir)

	file, err := os.CreateTemp(b.Dir, tempPattern)

	if err != nil {
		return err
	}

	if err := Encode(p, file, "png"); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return err
	}

	if err := file.Close(); err != nil {
		return err
	}

	open := b.Open

	if open == nil {
		open = browser.OpenFile
	}

	if err := open(file.Name()); err != nil {
		return fmt.Errorf("failed to display %s: %w", file.Name(), err)
	}

	return nil
}

// removeStale is best effort, a file still held by a viewer is skipped.
func removeStale(dir string) {
	if dir == "" {
		dir = os.TempDir()
	}

	matches, err := filepath.Glob(filepath.Join(dir, tempPattern))

	if err != nil {
		return
	}

	for _, match := range matches {
		_ = os.Remove(match)
	}
}

func (NopPresenter) Present(context.Context, *plot.Plot) error {
	return nil
}
