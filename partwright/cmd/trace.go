package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarchlab/partwright/datarecording"
)

var traceCmd = &cobra.Command{
	Use:   "trace FILE",
	Short: "Print the recomputes stored in a recording.",
	Long: "`build Box --record run.sqlite3` records a session; " +
		"`trace run.sqlite3 --component Box` prints the recomputes of the box.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := datarecording.OpenReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		flags := cmd.Flags()
		filter := datarecording.RecomputeFilter{}
		filter.Component, _ = flags.GetString("component")
		filter.FailedOnly, _ = flags.GetBool("failed")
		filter.Limit, _ = flags.GetInt("limit")

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		info, err := reader.ExecInfo(ctx)
		if err != nil {
			return err
		}

		for _, e := range info {
			fmt.Fprintf(out, "%s: %s\n", e.Property, e.Value)
		}

		recomputes, total, err := reader.Recomputes(ctx, filter)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RECOMPUTE\tCOMPONENT\tREVISION\tDURATION\tERROR")

		for _, r := range recomputes {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
				r.ID, r.Component, r.Revision,
				time.Duration(r.DurationNs), r.Error)
		}

		if err := w.Flush(); err != nil {
			return err
		}

		_, tasks, err := reader.Tasks(ctx, datarecording.QueryParams{Limit: 1})
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%d of %d recompute(s) shown, %d task(s) recorded\n",
			len(recomputes), total, tasks)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().String("component", "", "Only show this component")
	traceCmd.Flags().Bool("failed", false, "Only show failed recomputes")
	traceCmd.Flags().Int("limit", 0, "Show at most this many recomputes")
}
