package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/roach88/searchcond/internal/criteria"
	"github.com/roach88/searchcond/internal/search"
)

// loadConfig loads the --config file, reporting failures through the
// formatter. The returned error is an ExitError.
func loadConfig(opts *RootOptions, formatter *OutputFormatter) (*criteria.Config, error) {
	if opts.Config == "" {
		return nil, formatter.Fail(ExitCommandError, ErrCodeInvalidArgument,
			"no search config given: use --config or "+EnvPrefix+"_CONFIG", nil)
	}

	cfg, err := criteria.LoadFile(opts.Config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, formatter.Fail(ExitCommandError, ErrCodeNotFound,
				fmt.Sprintf("config file not found: %s", opts.Config), nil)
		}
		return nil, formatter.Fail(ExitCommandError, ErrCodeInvalidConfig, err.Error(), nil)
	}

	if opts.Strict {
		cfg.Strict = true
	}
	formatter.VerboseLog("Loaded %d field(s) and %d join(s) from %s", len(cfg.Fields), len(cfg.Joins), opts.Config)
	return cfg, nil
}

// parseParams parses key=value arguments. A later duplicate key wins.
func parseParams(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		params[key] = value
	}
	return params, nil
}

// buildErrorCode maps a build failure to its CLI error code.
func buildErrorCode(err error) string {
	switch {
	case search.IsUnknownOperator(err):
		return ErrCodeUnknownOperator
	case search.IsMalformedRange(err):
		return ErrCodeMalformedRange
	default:
		return ErrCodeInvalidTerm
	}
}
