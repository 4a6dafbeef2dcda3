package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/heroes/internal/catalog"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                      `json:"valid"`
	Heroes int                       `json:"heroes"`
	Errors []catalog.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [catalog.yaml]",
		Short: "Validate a catalog file",
		Long: `Validate a catalog file against the hero schema.

Every entry needs a non-empty id, a name of at least two characters, a
non-empty power, a brand of DC or Marvel and a created_ago duration. Ids
must be unique. Without an argument the built-in catalog is validated.

Exit codes:
  0 - catalog is valid
  1 - catalog has problems
  2 - catalog could not be read or parsed`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(rootOpts, path, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)

	cat, err := loadCatalog(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
	}
	logger.Debug("catalog loaded", "path", path, "heroes", len(cat.Heroes))

	problems, err := cat.Validate()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
	}

	result := ValidationResult{
		Valid:  len(problems) == 0,
		Heroes: len(cat.Heroes),
		Errors: problems,
	}
	if !result.Valid {
		if opts.Format == "json" {
			if err := formatter.encode(CLIResponse{
				Status: "error",
				Data:   result,
				Error: &CLIError{
					Code:    ErrCodeCatalog,
					Message: fmt.Sprintf("%d problem(s) found", len(problems)),
				},
			}); err != nil {
				return err
			}
		} else {
			w := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintf(w, "✗ %s\n", p.Error())
			}
			fmt.Fprintf(w, "\n%d problem(s) found\n", len(problems))
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d problem(s) found", len(problems)))
	}

	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Catalog valid: %d heroes\n", result.Heroes)
	})
}
