// Package pipeline provides a pipeline for processing data.
//
// A pipeline is a graph of named steps. Root steps produce elements, normal steps transform them,
// splitters route them to branches according to predicates, and sinks consume them. Every element
// emitted by a root step is pushed depth first through the graph: it has reached every sink before
// the root step is allowed to produce the next one. Nothing is buffered between steps, so the only
// memory held by the pipeline is what the step functions themselves retain.
//
// The pipeline stops on the first error. The error returned by Run is prefixed with the name of
// the step that produced it.
//
// Options implementing model.PipelineOption observe the construction of the graph and every
// element going through it. The measure and drawer sub-packages provide such options.
package pipeline
