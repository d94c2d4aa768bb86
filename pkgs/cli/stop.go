package cli

import (
	"github.com/keskad/picolo/pkgs/app"
	"github.com/spf13/cobra"
)

func NewStopCommand(app *app.PicoloApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "stop",
		Short: "Broadcast an emergency stop and cut the track power",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if err := app.Initialize(); err != nil {
				return err
			}

			return app.EstopAction()
		},
	}

	command.Flags().BoolVarP(&app.Debug, "debug", "v", false, "Increase verbosity to the debug level")

	return command
}
