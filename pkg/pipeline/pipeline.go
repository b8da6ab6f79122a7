package pipeline

import (
	"context"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/askiada/go-seqlength/internal/store"
	"github.com/askiada/go-seqlength/pkg/pipeline/model"
)

// Pipeline is a pipeline of steps.
type Pipeline struct {
	ctx       context.Context
	opts      []model.PipelineOption
	startTime time.Time

	store store.OrderedStore[string, *model.StepInfo]
	graph graph.Graph[string, *model.StepInfo]

	roots []func(ctx context.Context) error
	sinks []*model.StepInfo
	ran   bool
}

func stepHash(info *model.StepInfo) string {
	return info.Name
}

// New creates a new pipeline.
func New(ctx context.Context, opts ...model.PipelineOption) (*Pipeline, error) {
	st := store.NewMemoryStore[string, *model.StepInfo]()
	pipe := &Pipeline{
		ctx:       ctx,
		startTime: time.Now(),
		opts:      opts,
		store:     st,
		graph:     graph.NewWithStore(stepHash, st, graph.Directed(), graph.Acyclic()),
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// register adds the step to the pipeline graph, linked to its parents.
func (p *Pipeline) register(info *model.StepInfo) error {
	err := p.graph.AddVertex(info)
	if err != nil {
		if errors.Is(err, graph.ErrVertexAlreadyExists) {
			return errors.Wrap(ErrDuplicateStep, info.Name)
		}

		return errors.Wrapf(err, "unable to add step %s", info.Name)
	}

	for _, parent := range info.Parents {
		err = p.graph.AddEdge(parent, info.Name)
		if err != nil {
			return errors.Wrapf(err, "unable to link %s to %s", parent, info.Name)
		}
	}

	return nil
}

// eachOption calls fn for every pipeline option, stopping on the first error.
func (p *Pipeline) eachOption(fn func(opt model.PipelineOption) error) error {
	for _, opt := range p.opts {
		err := fn(opt)
		if err != nil {
			return errors.Wrap(err, "unable to run pipeline option")
		}
	}

	return nil
}

// Steps returns the names of the steps in topological order.
// Steps without a dependency between them keep the order in which they were added.
func (p *Pipeline) Steps() ([]string, error) {
	order, err := graph.StableTopologicalSort(p.graph, func(a, b string) bool {
		return p.store.Position(a) < p.store.Position(b)
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to sort steps")
	}

	return order, nil
}

// Run starts the root steps one after the other and waits for all elements to be consumed.
func (p *Pipeline) Run() error {
	if p.ran {
		return ErrAlreadyRun
	}

	p.ran = true

	dCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()

	for _, root := range p.roots {
		err := root(dCtx)
		if err != nil {
			return err
		}
	}

	for _, sink := range p.sinks {
		err := p.eachOption(func(opt model.PipelineOption) error {
			return opt.AfterSink(sink, time.Since(p.startTime))
		})
		if err != nil {
			return err
		}
	}

	return p.finishRun()
}

func (p *Pipeline) finishRun() error {
	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}
