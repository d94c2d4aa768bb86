package app

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/keskad/picolo/pkgs/dcc"
)

const stationKey = "$station"

func stationFrom(c *ishell.Context) *Station {
	return c.Get(stationKey).(*Station)
}

// maxSpeedStep is the highest commandable step per mode, matching the
// bounds the run command enforces on its SPEED argument.
func maxSpeedStep(mode dcc.SpeedMode) int {
	if mode == dcc.Steps28 {
		return 28
	}
	return 126
}

// ShellAction runs an interactive throttle for one locomotive. The
// track stays powered and transmitting for the whole session.
func (app *PicoloApp) ShellAction(address uint16, longAddress bool, speedSteps uint8) error {
	station, stationErr := app.StartStation(address, longAddress, speedSteps)
	if stationErr != nil {
		return stationErr
	}

	shell := ishell.New()
	shell.Set(stationKey, station)
	shell.SetPrompt(fmt.Sprintf("loco %d > ", address))
	shell.Println("Interactive throttle. Type 'help' for commands, Ctrl+D to quit.")
	for _, cmd := range throttleCommands() {
		shell.AddCmd(cmd)
	}

	// a loop fault kills the session instead of leaving a dead prompt
	go func() {
		if loopErr := <-station.Err(); loopErr != nil {
			shell.Println("transmission halted:", loopErr)
			shell.Stop()
		}
	}()

	shell.Run()
	return station.Stop(true)
}

func throttleCommands() []*ishell.Cmd {
	return []*ishell.Cmd{
		{
			Name: "speed",
			Help: "speed <step> [forward|reverse]: set the speed step",
			Func: func(c *ishell.Context) {
				if len(c.Args) < 1 {
					c.Err(fmt.Errorf("usage: speed <step> [forward|reverse]"))
					return
				}
				step, stepErr := strconv.Atoi(c.Args[0])
				if stepErr != nil {
					c.Err(fmt.Errorf("invalid speed step %q", c.Args[0]))
					return
				}

				station := stationFrom(c)
				if max := maxSpeedStep(station.Loco.Mode()); step < 0 || step > max {
					c.Err(fmt.Errorf("speed step %d out of range 0..%d for %d speed steps",
						step, max, station.Loco.Mode()))
					return
				}
				direction, _ := station.Loco.Speed()
				if len(c.Args) > 1 {
					switch c.Args[1] {
					case "forward", "fwd":
						direction = dcc.Forward
					case "reverse", "rev":
						direction = dcc.Reverse
					default:
						c.Err(fmt.Errorf("unknown direction %q", c.Args[1]))
						return
					}
				}
				station.Loco.Drive(direction, step)
			},
		},
		{
			Name: "fn",
			Help: "fn <number> on|off: switch a decoder function",
			Func: func(c *ishell.Context) {
				if len(c.Args) != 2 {
					c.Err(fmt.Errorf("usage: fn <number> on|off"))
					return
				}
				fn, fnErr := strconv.Atoi(c.Args[0])
				if fnErr != nil {
					c.Err(fmt.Errorf("invalid function number %q", c.Args[0]))
					return
				}
				on := c.Args[1] == "on"
				if !on && c.Args[1] != "off" {
					c.Err(fmt.Errorf("state must be 'on' or 'off'"))
					return
				}
				stationFrom(c).Loco.SetFunction(fn, on)
			},
		},
		{
			Name: "estop",
			Help: "broadcast an emergency stop",
			Func: func(c *ishell.Context) {
				stationFrom(c).Driver.EmergencyStop()
				c.Println("emergency stop sent")
			},
		},
		{
			Name: "current",
			Help: "sample the track current",
			Func: func(c *ishell.Context) {
				milliamps, sampleErr := stationFrom(c).Driver.Current()
				if sampleErr != nil {
					c.Err(sampleErr)
					return
				}
				c.Printf("%d mA\n", milliamps)
			},
		},
		{
			Name: "status",
			Help: "show the locomotive state",
			Func: func(c *ishell.Context) {
				station := stationFrom(c)
				direction, step := station.Loco.Speed()
				name := "reverse"
				if direction == dcc.Forward {
					name = "forward"
				}
				c.Printf("locomotive %d: speed=%d direction=%s\n",
					station.Loco.Address(), step, name)
				for fn := 0; fn <= 12; fn++ {
					if station.Loco.Function(fn) {
						c.Printf("  F%d on\n", fn)
					}
				}
			},
		},
	}
}
