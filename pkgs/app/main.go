package app

import (
	"fmt"

	"github.com/keskad/picolo/pkgs/config"
	"github.com/keskad/picolo/pkgs/current"
	"github.com/keskad/picolo/pkgs/hal"
	"github.com/keskad/picolo/pkgs/output"
	"github.com/keskad/picolo/pkgs/track"
	"github.com/sirupsen/logrus"
)

type PicoloApp struct {
	Config *config.Configuration
	P      output.Printer

	// runtime parameters
	Debug bool

	driver *track.Driver

	// senseADC replaces the current-sense input when set; tests use
	// it to inject readings
	senseADC hal.ADC
}

// Initialize is running after parsing the arguments, so we know how to configure the app
func (app *PicoloApp) Initialize() error {
	// logging
	if app.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if app.P == nil {
		app.P = output.ConsolePrinter{}
	}

	// configuration
	logrus.Debug("Reading configuration files")
	cfg, cfgErr := config.NewConfig()
	app.Config = cfg
	if cfgErr != nil {
		return fmt.Errorf("cannot initialize app: %s", cfgErr)
	}
	return nil
}

// initializeDriver wires the configured bit clock engine and the
// current monitor into a track driver
func (app *PicoloApp) initializeDriver() (*track.Driver, error) {
	logrus.Debug("Initializing track driver")

	var engine hal.BitClockEngine
	switch app.Config.Engine.Type {
	case "serial":
		serialEngine, serialErr := hal.OpenSerialEngine(hal.SerialConfig{
			Device: app.Config.Engine.Device,
			Baud:   app.Config.Engine.Baud,
		})
		if serialErr != nil {
			return nil, fmt.Errorf("cannot initialize driver: %s", serialErr)
		}
		engine = serialEngine
	case "sim":
		engine = &hal.MemoryEngine{}
	default:
		return nil, fmt.Errorf("unknown engine type '%s'", app.Config.Engine.Type)
	}

	adc := app.senseADC
	if adc == nil {
		adc = &hal.MemoryADC{}
	}
	monitor := current.NewMonitor(adc, current.Config{
		Samples:            app.Config.Sense.Samples,
		Smoothing:          app.Config.Sense.Smoothing,
		ShuntOhms:          app.Config.Sense.ShuntOhms,
		ARefMillivolts:     app.Config.Sense.ARefMillivolts,
		SenseRatio:         app.Config.Sense.SenseRatio,
		QuiescentMilliamps: app.Config.Sense.QuiescentMilliamps,
		LimitMilliamps:     app.Config.Sense.LimitMilliamps,
	})

	driver := track.NewDriver(track.Config{
		PreambleBits:  app.Config.Station.PreambleBits,
		CheckInterval: app.Config.Station.CheckInterval(),
		SettleDelay:   app.Config.Station.Settle(),
	}, track.Lines{
		Brake: &hal.MemoryLine{},
		PWM:   &hal.MemoryLine{},
		Power: &hal.MemoryLine{},
	}, engine, monitor)

	app.driver = driver
	return driver, nil
}
