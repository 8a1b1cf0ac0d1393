package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/partwright/component"
	"github.com/sarchlab/partwright/monitoring"
)

var serveCmd = &cobra.Command{
	Use:   "serve [DESIGNER...]",
	Short: "Build components and serve the monitor until interrupted.",
	Long: "`serve Box Cylinder --open` builds a box and a cylinder with " +
		"default parameters and opens the monitor in a browser. Parameters " +
		"can be assigned from the monitor and the components follow.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()

		m := monitoring.NewMonitor().WithPortNumber(s.cfg.MonitorPort)
		m.RegisterScheduler(s.pool)
		m.RegisterRegistry(s.registry)

		bar := m.CreateProgressBar("Initial build", uint64(len(args)))

		var components []component.Component
		for _, designer := range args {
			spec, err := buildSpecification(cmd.Context(), s, designer, nil, nil)
			if err != nil {
				return err
			}

			bar.IncrementInProgress(1)

			c, err := s.registry.ConstructComponent(s.env(), designer, spec)
			if err != nil {
				return err
			}

			components = append(components, c)
			m.RegisterComponent(c)
		}

		s.pool.Drain()
		bar.MoveInProgressToFinished(uint64(len(components)))
		m.CompleteProgressBar(bar)

		url := m.StartServer()

		if open, _ := cmd.Flags().GetBool("open"); open {
			if err := browser.OpenURL(url); err != nil {
				s.logger.Warn("cannot open browser", "url", url, "error", err)
			}
		}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		for _, c := range components {
			c.Release()
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Int("port", 0, "Port of the monitor, random when 0")
	serveCmd.Flags().Bool("open", false, "Open the monitor in a browser")
}
