package app

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// EstopAction broadcasts an emergency stop to every decoder on the
// rails, then cuts the power.
func (app *PicoloApp) EstopAction() error {
	driver, driverErr := app.initializeDriver()
	if driverErr != nil {
		return driverErr
	}

	if beginErr := driver.Begin(); beginErr != nil {
		_ = driver.Close()
		return fmt.Errorf("cannot power on: %s", beginErr)
	}

	logrus.Debug("Broadcasting emergency stop")
	driver.EmergencyStop()
	if loopErr := driver.Loop(); loopErr != nil {
		_ = driver.Close()
		return fmt.Errorf("cannot transmit emergency stop: %s", loopErr)
	}

	return driver.Close()
}
