// Package render draws length histograms as PNG images and optionally opens them in a viewer.
package render

import (
	"context"
	"image/color"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gopkg.in/go-playground/colors.v1"

	"github.com/askiada/go-seqlength/internal/failure"
)

const (
	// Bins is the number of bins of every histogram.
	Bins = 50

	XLabel       = "Sequence Length"
	LinearYLabel = "Frequency"
	LogYLabel    = "Log Frequency"

	linearFill = "#0000ff"
	logFill    = "#008000"
	fillAlpha  = 0.7
	dpi        = 100
	width      = 6.4 * vg.Inch
	height     = 4.8 * vg.Inch
)

// Renderer renders histogram jobs.
type Renderer struct {
	logger *log.Logger
	viewer Viewer
}

// Option configures a Renderer.
type Option func(r *Renderer)

// WithViewer opens every rendered image with viewer once it is saved.
func WithViewer(viewer Viewer) Option {
	return func(r *Renderer) {
		r.viewer = viewer
	}
}

// NewRenderer returns a renderer logging to logger.
func NewRenderer(logger *log.Logger, opts ...Option) *Renderer {
	r := &Renderer{logger: logger}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RenderAll renders jobs in order and stops at the first failure.
func (r *Renderer) RenderAll(ctx context.Context, jobs []Job) error {
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := r.Render(ctx, job)
		if err != nil {
			return err
		}
	}

	return nil
}

// Render draws job to its path, replacing any existing file. When the renderer has a viewer the
// image is then shown, and a viewer failure is only logged.
func (r *Renderer) Render(ctx context.Context, job Job) error {
	p, err := newPlot(job)
	if err != nil {
		return errors.Wrapf(err, "unable to plot %q", job.Title)
	}

	err = r.save(p, job.Path)
	if err != nil {
		return err
	}

	r.logger.Info("wrote histogram", "path", job.Path, "scale", job.Scale, "values", len(job.Lengths))

	if r.viewer == nil {
		return nil
	}

	err = r.viewer.Show(ctx, job.Path)
	if err != nil {
		r.logger.Warn("unable to show histogram", "path", job.Path, "err", err.Error())
	}

	return nil
}

func newPlot(job Job) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = job.Title
	p.X.Label.Text = XLabel

	fill := linearFill
	p.Y.Label.Text = LinearYLabel

	if job.Scale == Log {
		fill = logFill
		p.Y.Label.Text = LogYLabel
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	if len(job.Lengths) == 0 {
		emptyAxes(p, job.Scale)

		return p, nil
	}

	values := make(plotter.Values, len(job.Lengths))
	for i, l := range job.Lengths {
		values[i] = float64(l)
	}

	h, err := plotter.NewHist(values, Bins)
	if err != nil {
		return nil, errors.Wrap(err, "unable to bin lengths")
	}

	fillColor, err := parseFill(fill)
	if err != nil {
		return nil, err
	}

	h.FillColor = fillColor
	h.LineStyle.Color = color.Black
	h.LogY = job.Scale == Log

	p.Add(h)

	// a single filled height leaves an empty range, widened through zero by the axis
	if job.Scale == Log && p.Y.Min >= p.Y.Max {
		p.Y.Min = p.Y.Max / 2
	}

	return p, nil
}

// emptyAxes gives the plot a range of its own, there is no data to derive one from.
// A log axis needs a strictly positive range.
func emptyAxes(p *plot.Plot, scale Scale) {
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	if scale == Log {
		p.Y.Min, p.Y.Max = 1, 10
	}
}

func parseFill(hex string) (color.Color, error) {
	c, err := colors.ParseHEX(hex)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse colour %s", hex)
	}

	rgba := c.ToRGBA()

	return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: uint8(math.Round(fillAlpha * math.MaxUint8))}, nil
}

func (r *Renderer) save(p *plot.Plot, path string) error {
	canvas := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	p.Draw(draw.New(canvas))

	f, err := os.Create(path)
	if err != nil {
		return failure.Wrapf(failure.ErrOutputWriteFailure, err, "create %s", path)
	}

	_, err = vgimg.PngCanvas{Canvas: canvas}.WriteTo(f)
	if err != nil {
		_ = f.Close()

		return failure.Wrapf(failure.ErrOutputWriteFailure, err, "write %s", path)
	}

	err = f.Close()
	if err != nil {
		return failure.Wrapf(failure.ErrOutputWriteFailure, err, "close %s", path)
	}

	return nil
}
