package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var designersCmd = &cobra.Command{
	Use:   "designers",
	Short: "List the available component designers.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DESIGNER\tCATEGORY\tPLUGIN\tVERSION\tPATH")

		for _, d := range s.registry.Designers() {
			m, _ := s.registry.Provider(d.Name())
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				d.Name(), d.Category(),
				m.API().PluginName(), m.API().PluginVersion(), m.Path())
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(designersCmd)
}
