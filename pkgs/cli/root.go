package cli

import (
	"github.com/keskad/picolo/pkgs/app"
	"github.com/spf13/cobra"
)

func NewRootCommand(app *app.PicoloApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "picolo",
		Short: "DCC command station for the Raspberry Pi Pico motor driver board",
		RunE: func(command *cobra.Command, args []string) error {
			return command.Help()
		},
	}

	command.AddCommand(NewRunCommand(app))
	command.AddCommand(NewShellCommand(app))
	command.AddCommand(NewStopCommand(app))
	command.AddCommand(NewCurrentCommand(app))

	return command
}
