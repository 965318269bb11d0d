package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/searchcond/internal/search"
)

// operatorHelp describes each operator for the operators command.
var operatorHelp = map[search.Operator]string{
	search.OpLike:      "case-sensitive substring match",
	search.OpILike:     "case-insensitive substring match",
	search.OpEq:        "equal to term",
	search.OpGt:        "greater than term",
	search.OpLt:        "less than term",
	search.OpGtEq:      "greater than or equal to term",
	search.OpLtEq:      "less than or equal to term",
	search.OpDateRange: "inclusive range, term is \"from" + search.DateRangeSeparator + "to\"",
}

// OperatorInfo is one entry of the operators listing.
type OperatorInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewOperatorsCommand creates the operators command.
func NewOperatorsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "operators",
		Short:         "List supported search operators",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

			var infos []OperatorInfo
			for _, op := range search.Operators() {
				infos = append(infos, OperatorInfo{Name: string(op), Description: operatorHelp[op]})
			}

			if formatter.Format == "json" {
				return formatter.Success(infos)
			}
			for _, info := range infos {
				fmt.Fprintf(formatter.Writer, "%-10s %s\n", info.Name, info.Description)
			}
			return nil
		},
	}
}
