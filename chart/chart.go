package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	currency "github.com/malusev998/cbr-currency"
)

const (
	Title       = "Currency Values"
	XLabel      = "Currency Code"
	YLabel      = "Value (RUB)"
	DefaultPath = "currency_plot.png"

	Width  = 15 * vg.Inch
	Height = 7 * vg.Inch
)

var ErrNoData = errors.New("no currencies to plot")

// BarChart plots one bar per currency, in the order given, with codes on the
// X axis and the published value on the Y axis.
func BarChart(currencies []currency.Currency) (*plot.Plot, error) {
	if len(currencies) == 0 {
		return nil, ErrNoData
	}

	codes := make([]string, 0, len(currencies))
	values := make(plotter.Values, 0, len(currencies))

	for _, c := range currencies {
		rate, err := c.Rate()

		if err != nil {
			return nil, err
		}

		codes = append(codes, c.Code)
		values = append(values, rate.InexactFloat64())
	}

	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel

	bars, err := plotter.NewBarChart(values, vg.Points(12))

	if err != nil {
		return nil, fmt.Errorf("failed to build bar chart: %w", err)
	}

	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(0)

	p.Add(bars)
	p.NominalX(codes...)

	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	return p, nil
}

// Save writes the chart to path, the image format follows the extension.
func Save(p *plot.Plot, path string) error {
	if err := p.Save(Width, Height, path); err != nil {
		return fmt.Errorf("failed to save chart to %s: %w", path, err)
	}

	return nil
}

func Encode(p *plot.Plot, w io.Writer, format string) error {
	writerTo, err := p.WriterTo(Width, Height, format)

	if err != nil {
		return err
	}

	_, err = writerTo.WriteTo(w)

	return err
}
