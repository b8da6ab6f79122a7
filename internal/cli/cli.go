// Package cli builds the seqlengthplot command line.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/askiada/go-seqlength/internal/app"
	"github.com/askiada/go-seqlength/internal/config"
)

const (
	name      = "seqlengthplot"
	envPrefix = "SEQLENGTHPLOT"

	flagConfig = "config"
	flagNT     = "nt"
	flagProt   = "prot"
)

// NewRootCommand returns the seqlengthplot command. Logs are written to the command error output.
func NewRootCommand(opts ...app.Option) *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	cmd := &cobra.Command{
		Use:   name + " -i <input.fasta> [flags]",
		Short: "Split a FASTA file by sequence length and plot the length distributions.",
		Long: `Split the records of a FASTA file in two by a length cutoff, write each partition to its own
FASTA file, report the count, min and max length of both partitions and draw their length
histograms on a linear and a log scale.

Every flag can also be set through a SEQLENGTHPLOT_<FLAG> environment variable or a config file.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return prepare(cmd, v)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return errors.Wrap(err, "invalid configuration")
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			return app.Run(cmd.Context(), cfg, logger, opts...)
		},
	}

	flags := cmd.Flags()
	flags.StringP(config.KeyInput, "i", "", "path to the input FASTA file, optionally gzip compressed")
	flags.StringP(config.KeyOutput, "o", "", "directory of the output files (default <input dir>/seq_length_<input stem>)")
	flags.Int(config.KeyCutoff, config.DefaultCutoff, "length cutoff, sequences at least this long go to the above partition")
	flags.Bool(flagNT, false, "the input holds nucleotide sequences (default, wins over --prot)")
	flags.Bool(flagProt, false, "the input holds protein sequences")
	flags.Bool(config.KeyShowPlot, false, "show every histogram once it is saved")
	flags.String(config.KeyBackend, "", "plot viewer: xdg, macosx, windows, none, or TkAgg, MacOSX, Agg (default platform viewer)")
	flags.String(config.KeyLogLevel, "info", "log level: debug, info, warn or error")
	flags.String(config.KeyPipelineGraph, "", "write the Graphviz DOT graph of the partition pipeline to this file")
	flags.String(flagConfig, "", "config file, any format supported by viper")

	for _, key := range []string{
		config.KeyInput, config.KeyOutput, config.KeyCutoff, config.KeyShowPlot,
		config.KeyBackend, config.KeyLogLevel, config.KeyPipelineGraph,
	} {
		// the flags were just defined, binding cannot fail
		_ = v.BindPFlag(key, flags.Lookup(key))
	}

	return cmd
}

// prepare layers the environment and the config file under the flags.
func prepare(cmd *cobra.Command, v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, _ := cmd.Flags().GetString(flagConfig); path != "" {
		v.SetConfigFile(path)

		err := v.ReadInConfig()
		if err != nil {
			return errors.Wrapf(err, "unable to read config file %s", path)
		}
	}

	// --nt wins when both kinds are given
	switch {
	case cmd.Flags().Changed(flagNT):
		v.Set(config.KeyKind, config.KindNucleotide)
	case cmd.Flags().Changed(flagProt):
		v.Set(config.KeyKind, config.KindProtein)
	}

	return nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          name,
		Level:           level,
	})
}

// Diagnostic renders err on a single line.
func Diagnostic(err error) string {
	return name + ": " + strings.Join(strings.Fields(err.Error()), " ")
}
