package cli

import (
	"github.com/keskad/picolo/pkgs/app"
	"github.com/spf13/cobra"
)

func NewShellCommand(app *app.PicoloApp) *cobra.Command {
	type Args struct {
		LocoId      uint16
		LongAddress bool
		SpeedSteps  uint8
	}

	cmdArgs := Args{SpeedSteps: 128}
	command := &cobra.Command{
		Use:   "shell",
		Short: "Open an interactive throttle for a locomotive",
		Long: `Open an interactive throttle for a locomotive.

The track stays powered for the whole session. Available commands:
speed, fn, estop, current, status.

Examples:
  picolo shell --loco 3
  picolo shell --loco 1024 --long --steps 28`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, args []string) error {
			if err := app.Initialize(); err != nil {
				return err
			}

			return app.ShellAction(cmdArgs.LocoId, cmdArgs.LongAddress, cmdArgs.SpeedSteps)
		},
	}

	command.Flags().BoolVarP(&app.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.Flags().Uint16VarP(&cmdArgs.LocoId, "loco", "l", 0, "Locomotive address (required)")
	command.Flags().BoolVarP(&cmdArgs.LongAddress, "long", "L", false, "Use extended (14-bit) addressing")
	command.Flags().Uint8VarP(&cmdArgs.SpeedSteps, "steps", "s", 128, "Speed steps: 28 or 128 (default: 128)")

	command.MarkFlagRequired("loco")

	return command
}
