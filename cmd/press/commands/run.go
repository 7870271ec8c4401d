package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/press/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tasks...]",
		Short: "Run tasks in order, or the default build, watch and serve session",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			open, _ := cmd.Flags().GetBool("open")
			quiet, _ := cmd.Flags().GetBool("quiet")

			return c.app.Run(cmd.Context(), args, app.RunOptions{
				Open:  open,
				Quiet: quiet,
			})
		},
	}
	cmd.Flags().BoolP("open", "o", false, "Open the dev server in a browser")
	cmd.Flags().BoolP("quiet", "q", false, "Hide task progress output")
	return cmd
}
