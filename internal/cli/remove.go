package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/heroes/internal/busy"
	"github.com/roach88/heroes/internal/clock"
	"github.com/roach88/heroes/internal/gateway"
	"github.com/roach88/heroes/internal/hero"
)

// RemoveOptions holds flags for the remove command.
type RemoveOptions struct {
	*RootOptions
	Yes     bool
	Latency string
	Catalog string
}

// RemoveResult is the JSON payload of the remove command.
type RemoveResult struct {
	ID      string      `json:"id"`
	Removed bool        `json:"removed"`
	Hero    hero.Record `json:"hero"`
	Left    int         `json:"left"`
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RemoveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a hero through the gateway",
		Long: `Remove a hero through the gateway.

Removal must be confirmed with --yes. Removing an unknown id is reported as
not found and exits with code 1.

Examples:
  heroes remove 18 --yes
  heroes remove 18 --yes --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "confirm removal")
	cmd.Flags().StringVar(&opts.Latency, "latency", gateway.DefaultLatency.String(), "simulated gateway latency")
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "catalog file (default: built-in catalog)")

	return cmd
}

func runRemove(opts *RemoveOptions, id string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if !opts.Yes {
		return formatter.Fail(ExitCommandError, ErrCodeConfirm,
			fmt.Sprintf("refusing to remove hero %q without --yes", id), nil)
	}

	cfg, err := opts.settings(cmd)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil)
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	clk := clock.New()
	st, err := seedStore(cfg, clk.Now(), logger)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeCatalog, err.Error(), nil)
	}
	target, _ := st.Get(id)

	gw := gateway.New(st,
		gateway.WithClock(clk),
		gateway.WithLatency(cfg.Latency),
		gateway.WithTracker(busy.New()),
		gateway.WithLogger(logger),
	)
	removed, err := gw.Remove(id).Await(cmd.Context())
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeGateway, err.Error(), nil)
	}
	if !removed {
		return formatter.Fail(ExitFailure, ErrCodeNotFound,
			hero.NewNotFoundError(id).Error(), map[string]string{"id": id})
	}

	result := RemoveResult{ID: id, Removed: true, Hero: target, Left: st.Len()}
	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "Removed %s (%s), %d heroes left\n", target.Name, id, result.Left)
	})
}
