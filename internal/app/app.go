// Package app runs seqlengthplot: partition the input, draw the histograms, report the statistics.
package app

import (
	"context"
	"sort"
	"strings"

	"github.com/biogo/biogo/seq"
	"github.com/charmbracelet/log"

	"github.com/askiada/go-seqlength/internal/artifact"
	"github.com/askiada/go-seqlength/internal/config"
	"github.com/askiada/go-seqlength/internal/fasta"
	"github.com/askiada/go-seqlength/internal/partition"
	"github.com/askiada/go-seqlength/internal/render"
	"github.com/askiada/go-seqlength/internal/stats"
	"github.com/askiada/go-seqlength/pkg/pipeline/drawer"
	"github.com/askiada/go-seqlength/pkg/pipeline/measure"
	"github.com/askiada/go-seqlength/pkg/pipeline/model"
)

// Option configures Run.
type Option func(a *runner)

// WithPlatform sets the platform used to find a plot viewer.
func WithPlatform(p render.Platform) Option {
	return func(a *runner) {
		a.platform = p
	}
}

type runner struct {
	cfg      config.Config
	logger   *log.Logger
	platform render.Platform
}

// Run processes cfg.Input. The run stops at the first error; only plot viewer problems are
// reported as warnings.
func Run(ctx context.Context, cfg config.Config, logger *log.Logger, opts ...Option) error {
	a := &runner{cfg: cfg, logger: logger, platform: render.HostPlatform()}
	for _, opt := range opts {
		opt(a)
	}

	return a.run(ctx)
}

func (a *runner) run(ctx context.Context) error {
	cutoff, err := partition.NewCutoff(a.cfg.Cutoff)
	if err != nil {
		return err
	}

	set := artifact.New(a.cfg.Output, a.cfg.Cutoff, a.cfg.Unit)

	a.logger.Info("starting", "input", a.cfg.Input, "output", set.Dir, "cutoff", a.cfg.Cutoff, "unit", a.cfg.Unit)

	err = set.Prepare()
	if err != nil {
		return err
	}

	res, err := a.partition(ctx, set, cutoff)
	if err != nil {
		return err
	}

	a.logger.Info("partitioned sequences", "total", res.Total(), "above", len(res.Above), "below", len(res.Below))

	var renderOpts []render.Option
	if a.cfg.ShowPlot {
		renderOpts = append(renderOpts, render.WithViewer(render.SelectViewer(a.logger, a.platform, a.cfg.Backend)))
	}

	err = render.NewRenderer(a.logger, renderOpts...).RenderAll(ctx, render.Jobs(set, res))
	if err != nil {
		return err
	}

	report := stats.NewReport(a.cfg.Cutoff, a.cfg.Unit, res.Above, res.Below)

	err = stats.WriteFile(set.StatsReport(), report)
	if err != nil {
		return err
	}

	a.logger.Info("wrote statistics", "path", set.StatsReport())

	a.logger.Info("done", "output", set.Dir)

	return nil
}

// partition splits the input into the two FASTA files of set. Both files are closed before it returns.
func (a *runner) partition(ctx context.Context, set artifact.Set, cutoff partition.Cutoff) (res partition.Result, err error) {
	src, err := fasta.Open(a.cfg.Input, a.cfg.Unit)
	if err != nil {
		return partition.Result{}, err
	}
	defer src.Close()

	above, err := fasta.Create(set.AboveFASTA())
	if err != nil {
		return partition.Result{}, err
	}
	defer closeWriter(above, &err)

	below, err := fasta.Create(set.BelowFASTA())
	if err != nil {
		return partition.Result{}, err
	}
	defer closeWriter(below, &err)

	msr, opts := a.pipelineOptions()

	res, err = partition.Run[seq.Sequence](ctx, src, cutoff, above, below, opts...)
	if err != nil {
		return partition.Result{}, err
	}

	a.logger.Debug("partition pipeline", "steps", strings.Join(res.Steps, " -> "))

	if msr != nil {
		a.logMeasure(msr)
	}

	if a.cfg.PipelineGraph != "" {
		a.logger.Info("wrote pipeline graph", "path", a.cfg.PipelineGraph)
	}

	return res, nil
}

// closeWriter closes w and reports its error through err unless err is already set.
func closeWriter(w *fasta.Writer, err *error) {
	cerr := w.Close()
	if cerr != nil && *err == nil {
		*err = cerr
	}
}

// pipelineOptions measures the partition pipeline when its measures are logged or drawn.
func (a *runner) pipelineOptions() (measure.Measure, []model.PipelineOption) {
	if a.cfg.PipelineGraph == "" && a.logger.GetLevel() > log.DebugLevel {
		return nil, nil
	}

	msr := measure.NewDefaultMeasure()
	opts := []model.PipelineOption{measure.PipelineMeasure(msr)}

	if a.cfg.PipelineGraph != "" {
		opts = append(opts, drawer.PipelineDrawer(drawer.NewDOTDrawer(a.cfg.PipelineGraph), msr))
	}

	return msr, opts
}

func (a *runner) logMeasure(msr measure.Measure) {
	metrics := msr.AllMetrics()

	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		m := metrics[name]
		if m.Count() == 0 {
			continue
		}

		a.logger.Debug("pipeline step", "step", name, "count", m.Count(), "avg", m.AVGDuration(), "total", m.GetTotalDuration())

		transports := m.AllTransports()

		inputs := make([]string, 0, len(transports))
		for input := range transports {
			inputs = append(inputs, input)
		}

		sort.Strings(inputs)

		for _, input := range inputs {
			a.logger.Debug("pipeline transport", "from", input, "to", name, "elapsed", transports[input].Elapsed)
		}
	}
}
