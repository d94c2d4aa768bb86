package cli

import (
	"github.com/keskad/picolo/pkgs/app"
	"github.com/spf13/cobra"
)

func NewCurrentCommand(app *app.PicoloApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "current",
		Short: "Measure the track current draw",
		Long: `Measure the track current draw.

Powers the track on, takes one smoothed measurement and powers off.

Examples:
  picolo current`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if err := app.Initialize(); err != nil {
				return err
			}

			return app.CurrentAction()
		},
	}

	command.Flags().BoolVarP(&app.Debug, "debug", "v", false, "Increase verbosity to the debug level")

	return command
}
