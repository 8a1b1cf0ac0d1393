package cmd

import (
	"context"
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/partwright/designrules"
	"github.com/sarchlab/partwright/param"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Create and inspect design rules databases.",
}

var rulesInitCmd = &cobra.Command{
	Use:   "init PATH",
	Short: "Create an empty design rules database.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := designrules.Create(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Design rules database %s created\n", args[0])

		return store.Close()
	},
}

var rulesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a design rule.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openRules(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		flags := cmd.Flags()
		id, _ := flags.GetInt("id")
		name, _ := flags.GetString("name")
		symbol, _ := flags.GetString("symbol")
		lo, _ := flags.GetFloat64("min")
		hi, _ := flags.GetFloat64("max")
		def, _ := flags.GetFloat64("default")

		if !flags.Changed("max") {
			hi = math.Inf(1)
		}

		c := param.Constraint{
			ID:      param.ConstraintID(id),
			Name:    name,
			Symbol:  symbol,
			Min:     lo,
			Max:     hi,
			Default: def,
		}

		if err := validateConstraint(c); err != nil {
			return err
		}

		return store.Insert(cmd.Context(), c)
	},
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the design rules.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openRules(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		return listRules(cmd.Context(), cmd, store)
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesInitCmd, rulesAddCmd, rulesListCmd)

	flags := rulesAddCmd.Flags()
	flags.Int("id", 0, "Identifier of the rule")
	flags.String("name", "", "Parameter name")
	flags.String("symbol", "", "Parameter symbol")
	flags.Float64("min", 0, "Minimum quantity")
	flags.Float64("max", 0, "Maximum quantity, unbounded when not given")
	flags.Float64("default", 0, "Default quantity")

	_ = rulesAddCmd.MarkFlagRequired("id")
	_ = rulesAddCmd.MarkFlagRequired("name")
	_ = rulesAddCmd.MarkFlagRequired("symbol")
}

func openRules(cmd *cobra.Command) (*designrules.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	if cfg.DesignRules == "" {
		return nil, errNoDesignRules
	}

	return designrules.Open(cfg.DesignRules)
}

// validateConstraint checks that the rule would build a valid parameter.
func validateConstraint(c param.Constraint) error {
	_, err := param.MakeBuilder().
		WithName(c.Name).
		WithSymbol(c.Symbol).
		WithLimits(c.Min, c.Max).
		WithDefault(c.Default).
		Build()

	return err
}

func listRules(ctx context.Context, cmd *cobra.Command, store *designrules.Store) error {
	rules, err := store.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSYMBOL\tMIN\tMAX\tDEFAULT")

	for _, r := range rules {
		fmt.Fprintf(w, "%d\t%s\t%s\t%g\t%g\t%g\n",
			r.ID, r.Name, r.Symbol, r.Min, r.Max, r.Default)
	}

	return w.Flush()
}
