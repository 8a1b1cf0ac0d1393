package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/partwright/component"
	"github.com/sarchlab/partwright/equation"
	"github.com/sarchlab/partwright/param"
)

var buildCmd = &cobra.Command{
	Use:   "build DESIGNER",
	Short: "Build a component and print its artifact.",
	Long: "`build Box --set Width=5 --rule Height=3` builds a box with a " +
		"width of 5 mm and the height limits of design rule 3.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		designer := args[0]
		values, _ := cmd.Flags().GetStringArray("set")
		rules, _ := cmd.Flags().GetStringArray("rule")

		spec, err := buildSpecification(cmd.Context(), s, designer, rules, values)
		if err != nil {
			return err
		}

		if s.exec != nil {
			s.exec.Set("Designer", designer)
		}

		c, err := s.registry.ConstructComponent(s.env(), designer, spec)
		if err != nil {
			return err
		}
		defer c.Release()

		s.pool.Drain()

		return printComponent(cmd, c, s.registry.Equations())
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringArray("set", nil, "Assign a parameter, as key=value")
	buildCmd.Flags().StringArray("rule", nil,
		"Take a parameter from a design rule, as key=ruleID")
}

func printComponent(
	cmd *cobra.Command,
	c component.Component,
	equations *equation.Registry,
) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s (%s)\n", c.Name(), c.Category())

	c.Parameters().Range(func(k param.Key, p *param.Parameter) bool {
		fmt.Fprintf(out, "  %-14s %s\n", k, p)
		return true
	})

	a, ok := c.Artifact()
	if !ok {
		return errors.New("the component could not be constructed, see the log")
	}

	fmt.Fprintf(out, "  artifact       %v\n", a)
	fmt.Fprintf(out, "  revision       %d\n", c.Revision())

	part, ok := c.(*component.Part)
	if !ok {
		return nil
	}

	for _, key := range equations.Entries() {
		if key.Target != equation.TypeTag(c.Name()) {
			continue
		}

		q, err := part.Derive(key.Identity)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "  %-14s %s\n", key.Identity.Name, q)
	}

	return nil
}
