package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/searchcond/internal/queryir"
)

// ValidationResult holds validation results for a search config.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Table    string   `json:"table"`
	Params   []string `json:"params"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a search config",
		Long: `Validate a search config without compiling any parameters.

Checks the config structure and the base query built from its joins.
Unknown operators are reported as warnings, or as errors when the
config or --strict asks for strict handling.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := loadConfig(opts, formatter)
	if err != nil {
		return err
	}

	result := ValidationResult{Table: cfg.Table}
	for _, f := range cfg.Fields {
		result.Params = append(result.Params, f.Param)
	}

	// A --strict override is applied after loading, so operators are
	// checked again here.
	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}

	base, err := cfg.Queryable()
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	} else {
		result.Errors = append(result.Errors, queryir.Validate(base).Warnings...)
	}

	if !cfg.Strict {
		result.Warnings = cfg.Warnings()
	}
	result.Valid = len(result.Errors) == 0

	if !result.Valid {
		return outputValidationErrors(formatter, result)
	}
	return outputValidateSuccess(formatter, result)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Config valid: %s (%d param(s))\n", result.Table, len(result.Params))
	for _, w := range result.Warnings {
		fmt.Fprintf(formatter.Writer, "  warning: %s\n", w)
	}
	return nil
}

// outputValidationErrors outputs a failed validation.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    ErrCodeInvalidConfig,
				Message: result.Errors[0],
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range result.Errors {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", ErrCodeInvalidConfig, e)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
}
