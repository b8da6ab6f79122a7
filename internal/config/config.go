// Package config loads the settings of a run.
package config

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/askiada/go-seqlength/internal/artifact"
)

// Keys of the settings.
const (
	KeyInput         = "input"
	KeyOutput        = "output"
	KeyCutoff        = "cutoff"
	KeyKind          = "kind"
	KeyShowPlot      = "showplot"
	KeyBackend       = "backend"
	KeyLogLevel      = "log-level"
	KeyPipelineGraph = "pipeline-graph"
)

// Sequence kinds.
const (
	KindNucleotide = "nucleotide"
	KindProtein    = "protein"
)

// DefaultCutoff is the cutoff used when none is configured.
const DefaultCutoff = 200

var (
	ErrMissingInput  = errors.New("input file is required")
	ErrInvalidCutoff = errors.New("cutoff must be a positive integer")
	ErrInvalidKind   = errors.New("kind must be nucleotide or protein")
	ErrInvalidLevel  = errors.New("unknown log level")
)

// Config holds the settings of a run.
type Config struct {
	Input    string
	Output   string
	Cutoff   int
	Unit     artifact.Unit
	ShowPlot bool
	// Backend is the name of the plot viewer, empty for the platform default.
	Backend       string
	LogLevel      log.Level
	PipelineGraph string
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyCutoff, DefaultCutoff)
	v.SetDefault(KeyKind, KindNucleotide)
	v.SetDefault(KeyShowPlot, false)
	v.SetDefault(KeyBackend, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyPipelineGraph, "")
}

// Load reads and validates the settings held by v. An empty output defaults to a directory next
// to the input.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Input:         strings.TrimSpace(v.GetString(KeyInput)),
		Output:        strings.TrimSpace(v.GetString(KeyOutput)),
		ShowPlot:      v.GetBool(KeyShowPlot),
		Backend:       v.GetString(KeyBackend),
		PipelineGraph: v.GetString(KeyPipelineGraph),
	}

	if cfg.Input == "" {
		return Config{}, ErrMissingInput
	}

	if cfg.Output == "" {
		cfg.Output = artifact.DefaultDir(cfg.Input)
	}

	cutoff, err := parseCutoff(v.Get(KeyCutoff))
	if err != nil {
		return Config{}, err
	}

	cfg.Cutoff = cutoff

	switch kind := strings.ToLower(v.GetString(KeyKind)); kind {
	case KindNucleotide, "nt":
		cfg.Unit = artifact.Nucleotide
	case KindProtein, "prot":
		cfg.Unit = artifact.AminoAcid
	default:
		return Config{}, errors.Wrapf(ErrInvalidKind, "got %q", kind)
	}

	level, err := log.ParseLevel(strings.ToLower(v.GetString(KeyLogLevel)))
	if err != nil {
		return Config{}, errors.Wrapf(ErrInvalidLevel, "got %q", v.GetString(KeyLogLevel))
	}

	cfg.LogLevel = level

	return cfg, nil
}

// parseCutoff accepts integers only, "1.5" or "abc" are rejected rather than truncated.
func parseCutoff(raw any) (int, error) {
	var n int

	switch val := raw.(type) {
	case int:
		n = val
	case int64:
		n = int(val)
	case float64:
		if val != float64(int(val)) {
			return 0, errors.Wrapf(ErrInvalidCutoff, "got %v", val)
		}

		n = int(val)
	case string:
		var err error

		n, err = strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidCutoff, "got %q", val)
		}
	default:
		return 0, errors.Wrapf(ErrInvalidCutoff, "got %v", raw)
	}

	if n < 1 {
		return 0, errors.Wrapf(ErrInvalidCutoff, "got %d", n)
	}

	return n, nil
}
