package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variables that override global
// flags, e.g. SEARCHCOND_FORMAT=json.
const EnvPrefix = "SEARCHCOND"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Strict  bool   // reject unknown operators regardless of config
	Config  string // search config file (.yaml, .yml or .cue)
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the searchcond CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "searchcond",
		Short: "searchcond - search conditions to SQL",
		Long: `Turn request parameters into search conditions on a base table.

A search config maps each parameter to a column and an operator
(like, ilike, eq, gt, lt, gteq, lteq, daterange). The compile command
folds the given parameters over the configured joins and prints the
resulting parameterized SQL.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveRootOptions(v, opts); err != nil {
				return err
			}
			configureLogging(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.BoolVar(&opts.Strict, "strict", false, "reject unknown operators instead of skipping them")
	flags.StringVarP(&opts.Config, "config", "c", "", "search config file (.yaml, .yml or .cue)")

	// Flags take precedence over SEARCHCOND_* variables, which take
	// precedence over flag defaults.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewOperatorsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// resolveRootOptions copies the merged flag and environment values into opts.
func resolveRootOptions(v *viper.Viper, opts *RootOptions) error {
	opts.Verbose = v.GetBool("verbose")
	opts.Format = v.GetString("format")
	opts.Strict = v.GetBool("strict")
	opts.Config = v.GetString("config")

	if !isValidFormat(opts.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
	}
	return nil
}

// configureLogging installs the process-wide slog handler. Debug output from
// the search builder is only shown with --verbose.
func configureLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
