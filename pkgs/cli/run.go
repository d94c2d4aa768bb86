package cli

import (
	"fmt"
	"strconv"

	"github.com/keskad/picolo/pkgs/app"
	"github.com/spf13/cobra"
)

func NewRunCommand(app *app.PicoloApp) *cobra.Command {
	type Args struct {
		LocoId      uint16
		LongAddress bool
		Forward     bool
		SpeedSteps  uint8
		Functions   string
	}

	cmdArgs := Args{SpeedSteps: 128} // Default to 128 speed steps
	command := &cobra.Command{
		Use:   "run SPEED",
		Short: "Drive a locomotive at the given speed until interrupted",
		Long: `Drive a locomotive at the given speed until interrupted.

SPEED should be a value from 0 to the maximum for your speed steps:
  - For 28 speed steps: 0-28 (0=stop, 2-28=steps 1-27)
  - For 128 speed steps: 0-126 (0=stop, 1-126=the speed step)

Examples:
  picolo run 50 --loco 3 --forward
  picolo run 0 --loco 3                        # Stop locomotive
  picolo run 20 --loco 5 --steps 28            # Drive using 28 speed steps
  picolo run 50 --loco 3 --fn 0,3=on,5=off     # Headlight and functions`,
		Args: cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if err := app.Initialize(); err != nil {
				return err
			}

			speed64, err := strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				return fmt.Errorf("invalid speed value %q: %w", args[0], err)
			}
			speed := int(speed64)

			var maxSpeed int
			switch cmdArgs.SpeedSteps {
			case 28:
				maxSpeed = 28
			case 128:
				maxSpeed = 126
			default:
				return fmt.Errorf("invalid speed steps %d (must be 28 or 128)", cmdArgs.SpeedSteps)
			}
			if speed > maxSpeed {
				return fmt.Errorf("speed %d exceeds maximum %d for %d speed steps", speed, maxSpeed, cmdArgs.SpeedSteps)
			}

			return app.RunAction(cmdArgs.LocoId, cmdArgs.LongAddress, cmdArgs.SpeedSteps, cmdArgs.Forward, speed, cmdArgs.Functions)
		},
	}

	command.Flags().BoolVarP(&app.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.Flags().Uint16VarP(&cmdArgs.LocoId, "loco", "l", 0, "Locomotive address (required)")
	command.Flags().BoolVarP(&cmdArgs.LongAddress, "long", "L", false, "Use extended (14-bit) addressing")
	command.Flags().BoolVarP(&cmdArgs.Forward, "forward", "f", false, "Set direction to forward (default is reverse)")
	command.Flags().Uint8VarP(&cmdArgs.SpeedSteps, "steps", "s", 128, "Speed steps: 28 or 128 (default: 128)")
	command.Flags().StringVarP(&cmdArgs.Functions, "fn", "", "", "Decoder functions, e.g. 0,3=on,5=off")

	command.MarkFlagRequired("loco")

	return command
}
