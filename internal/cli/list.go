package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/heroes/internal/clock"
	"github.com/roach88/heroes/internal/query"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Search     string
	Page       int
	Size       int
	MatchBrand bool
	Catalog    string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of the catalog",
		Long: `Show one page of the catalog, optionally filtered by a search term.

The term matches names case-insensitively as a substring. A page index past
the end of the results is clamped to the last page.

Examples:
  heroes list
  heroes list --search man --page 1
  heroes list --search dc --match-brand --size 10 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "search term")
	cmd.Flags().IntVar(&opts.Page, "page", 0, "zero-based page index")
	cmd.Flags().IntVar(&opts.Size, "size", query.DefaultPageSize, "page size")
	cmd.Flags().BoolVar(&opts.MatchBrand, "match-brand", false, "also match the term against the brand")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "catalog file (default: built-in catalog)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	cfg, err := opts.settings(cmd)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	st, err := seedStore(cfg, clock.New().Now(), logger)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
	}

	view, err := query.Evaluate(st.Snapshot(), query.Query{
		Term: opts.Search,
		Page: query.Page{Index: opts.Page, Size: cfg.PageSize},
	}, cfg.MatchBrand)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalid, err.Error(), nil)
	}
	logger.Debug("list evaluated", "term", view.Term, "index", view.Page.Index, "total", view.Total)

	return formatter.Success(view, func(w io.Writer) {
		writeView(w, view)
	})
}

// writeView prints a page as a table followed by the paginator label.
func writeView(w io.Writer, view query.View) {
	if len(view.Items) == 0 {
		if view.Term != "" {
			fmt.Fprintf(w, "No heroes match %q.\n", view.Term)
		} else {
			fmt.Fprintln(w, "No heroes.")
		}
		return
	}
	fmt.Fprintln(w, renderHeroes(view.Items))
	fmt.Fprintf(w, "%s (page %d of %d)\n", view.RangeLabel(), view.Page.Index+1, view.PageCount())
}
