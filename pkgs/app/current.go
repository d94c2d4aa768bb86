package app

import "fmt"

// CurrentAction powers the track on, samples the track current once
// and prints it in milliamps.
func (app *PicoloApp) CurrentAction() error {
	driver, driverErr := app.initializeDriver()
	if driverErr != nil {
		return driverErr
	}

	if beginErr := driver.Begin(); beginErr != nil {
		_ = driver.Close()
		return fmt.Errorf("cannot power on: %s", beginErr)
	}
	defer driver.Close()

	milliamps, sampleErr := driver.Current()
	if sampleErr != nil {
		return sampleErr
	}

	app.P.Printf("Track current: %d mA\n", milliamps)
	return nil
}
