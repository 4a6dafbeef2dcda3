package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/heroes/internal/busy"
	"github.com/roach88/heroes/internal/catalog"
	"github.com/roach88/heroes/internal/clock"
	"github.com/roach88/heroes/internal/gateway"
	"github.com/roach88/heroes/internal/hero"
	"github.com/roach88/heroes/internal/query"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	Name    string
	Brand   string
	Power   string
	Latency string
	Size    int
	Catalog string
}

// CreateResult is the JSON payload of the create command.
type CreateResult struct {
	Hero      hero.Record `json:"hero"`
	FirstPage query.View  `json:"first_page"`
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a hero through the gateway",
		Long: `Create a hero through the gateway and show the first page.

The hero is checked against the catalog schema first: a name of at least
two characters, a non-empty power and a brand of DC or Marvel. The gateway
then assigns a UUIDv7 id, prepends the hero, and completes after the
configured latency.

Examples:
  heroes create --name Wolverine --brand Marvel --power "Healing factor"
  heroes create --name Storm --brand Marvel --power Weather --latency 0s`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "hero name (required)")
	cmd.Flags().StringVar(&opts.Brand, "brand", "", "brand: DC or Marvel (required)")
	cmd.Flags().StringVar(&opts.Power, "power", "", "hero power (required)")
	cmd.Flags().StringVar(&opts.Latency, "latency", gateway.DefaultLatency.String(), "simulated gateway latency")
	cmd.Flags().IntVar(&opts.Size, "size", query.DefaultPageSize, "page size of the listing shown afterwards")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "catalog file (default: built-in catalog)")

	return cmd
}

func runCreate(opts *CreateOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	cfg, err := opts.settings(cmd)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	input := hero.Input{
		Name:  strings.TrimSpace(opts.Name),
		Brand: strings.TrimSpace(opts.Brand),
		Power: strings.TrimSpace(opts.Power),
	}
	if problems, err := checkInput(input); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalid, err.Error(), nil)
	} else if len(problems) > 0 {
		return formatter.Fail(ExitCommandError, ErrCodeInvalid, "invalid hero", problems)
	}

	clk := clock.New()
	st, err := seedStore(cfg, clk.Now(), logger)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
	}

	tracker := busy.New()
	tracker.Observe(func(b bool) {
		logger.Debug("busy", "busy", b)
	})
	gw := gateway.New(st,
		gateway.WithClock(clk),
		gateway.WithLatency(cfg.Latency),
		gateway.WithTracker(tracker),
		gateway.WithLogger(logger),
	)

	rec, err := gw.Create(input).Await(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGateway, err.Error(), nil)
	}

	view, err := query.Evaluate(st.Snapshot(), query.Query{Page: query.Page{Size: cfg.PageSize}}, false)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalid, err.Error(), nil)
	}

	return formatter.Success(CreateResult{Hero: rec, FirstPage: view}, func(w io.Writer) {
		fmt.Fprintf(w, "Created %s (%s)\n\n", rec.Name, rec.ID)
		writeView(w, view)
	})
}

// checkInput validates a create payload against the catalog schema. The
// returned problems are the schema violations; err is set only if the
// schema itself could not be evaluated.
func checkInput(in hero.Input) ([]string, error) {
	c := &catalog.Catalog{Heroes: []catalog.Entry{{
		ID:         "new",
		Name:       in.Name,
		Power:      in.Power,
		Brand:      in.Brand,
		CreatedAgo: "0s",
	}}}
	verrs, err := c.Validate()
	if err != nil {
		return nil, err
	}
	problems := make([]string, len(verrs))
	for i, ve := range verrs {
		problems[i] = fmt.Sprintf("%s: %s", ve.Path, ve.Message)
	}
	return problems, nil
}
