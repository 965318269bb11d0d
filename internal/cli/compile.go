package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/searchcond/internal/queryir"
	"github.com/roach88/searchcond/internal/querysql"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompileResult is the compiled search query.
type CompileResult struct {
	SQL         string `json:"sql"`
	Params      []any  `json:"params"`
	Conditions  int    `json:"conditions"`
	Fingerprint string `json:"fingerprint"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [key=value...]",
		Short: "Compile request parameters to parameterized SQL",
		Long: `Compile request parameters to a parameterized SQL query.

Each key=value argument is matched against the params of the search
config. Unconfigured keys are ignored. Conditions are applied in config
order and combined with AND.`,
		Example: `  searchcond compile -c search.yaml q=go author=ada created='2020-01-01|2020-12-31'`,
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "also write the JSON result to this file")

	return cmd
}

func runCompile(opts *CompileOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	params, err := parseParams(args)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidArgument, err.Error(), nil)
	}

	cfg, err := loadConfig(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	q, err := cfg.Build(params)
	if err != nil {
		return formatter.Fail(ExitFailure, buildErrorCode(err), err.Error(), nil)
	}

	if vr := queryir.Validate(q); !vr.Valid {
		return formatter.Fail(ExitFailure, ErrCodeInvalidPlan, "search query is not well formed", vr.Warnings)
	}

	sql, sqlParams, err := querysql.NewSQLCompiler().Compile(q)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}

	fingerprint, err := q.Fingerprint()
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGeneric, err.Error(), nil)
	}

	result := &CompileResult{
		SQL:         sql,
		Params:      sqlParams,
		Conditions:  len(q.Filters()),
		Fingerprint: fingerprint,
	}
	if result.Params == nil {
		result.Params = []any{}
	}
	formatter.VerboseLog("Applied %d condition(s) from %d param(s)", result.Conditions, len(params))

	if opts.Output != "" {
		if err := writeResultToFile(result, opts.Output); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	return outputCompileSuccess(formatter, result, opts.Output)
}

// outputCompileSuccess outputs the compiled query.
func outputCompileSuccess(formatter *OutputFormatter, result *CompileResult, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, result.SQL)
	if len(result.Params) > 0 {
		fmt.Fprintln(formatter.Writer)
		fmt.Fprintln(formatter.Writer, "Params:")
		for i, p := range result.Params {
			fmt.Fprintf(formatter.Writer, "  %d: %v (%T)\n", i+1, p, p)
		}
	}
	fmt.Fprintln(formatter.Writer)
	fmt.Fprintf(formatter.Writer, "Fingerprint: %s\n", result.Fingerprint)

	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "Wrote result to %s\n", outputFile)
	}
	return nil
}

// writeResultToFile writes the compile result as indented JSON.
func writeResultToFile(result *CompileResult, filename string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
