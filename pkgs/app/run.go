package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/keskad/picolo/pkgs/dcc"
	"github.com/keskad/picolo/pkgs/syntax"
	"github.com/sirupsen/logrus"
)

// RunAction drives one locomotive until interrupted. Speed, direction
// and functions are applied once, then the refresh loop keeps the
// packets on the rails.
func (app *PicoloApp) RunAction(address uint16, longAddress bool, speedSteps uint8, forward bool, speed int, functions string) error {
	station, stationErr := app.StartStation(address, longAddress, speedSteps)
	if stationErr != nil {
		return stationErr
	}

	direction := dcc.Reverse
	if forward {
		direction = dcc.Forward
	}
	station.Loco.Drive(direction, speed)

	if functions != "" {
		entries, parseErr := syntax.ParseFnString(functions, ",")
		if parseErr != nil {
			_ = station.Stop(false)
			return parseErr
		}
		for _, entry := range entries {
			station.Loco.SetFunction(entry.Number, entry.On)
		}
	}

	app.P.Printf("Driving locomotive %d, press Ctrl+C to stop\n", address)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	select {
	case <-ctx.Done():
		logrus.Debug("Interrupted, stopping the locomotive")
		return station.Stop(true)
	case loopErr := <-station.Err():
		_ = station.Driver.Close()
		return fmt.Errorf("transmission halted: %s", loopErr)
	}
}
