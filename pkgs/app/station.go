package app

import (
	"context"
	"fmt"
	"time"

	"github.com/keskad/picolo/pkgs/dcc"
	"github.com/keskad/picolo/pkgs/track"
	"github.com/sirupsen/logrus"
)

// Station bundles a powered track driver, one attached locomotive and
// the background transmission loop refreshing the rails.
type Station struct {
	Driver *track.Driver
	Loco   *track.Locomotive

	cancel context.CancelFunc
	done   chan error
}

// StartStation powers the track on and keeps transmitting in the
// background until Stop is called.
func (app *PicoloApp) StartStation(address uint16, longAddress bool, speedSteps uint8) (*Station, error) {
	driver, driverErr := app.initializeDriver()
	if driverErr != nil {
		return nil, driverErr
	}

	loco, locoErr := driver.Attach(address, longAddress, dcc.SpeedMode(speedSteps))
	if locoErr != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("cannot attach locomotive %d: %s", address, locoErr)
	}

	// a short detected at power-on must not leave the power line
	// asserted or the engine open
	if beginErr := driver.Begin(); beginErr != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("cannot power on: %s", beginErr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	station := &Station{
		Driver: driver,
		Loco:   loco,
		cancel: cancel,
		done:   make(chan error, 1),
	}
	go station.run(ctx, app.Config.Station.CycleInterval())

	return station, nil
}

// run keeps one transmission cycle per tick until the context ends or
// the driver reports a fault
func (s *Station) run(ctx context.Context, cycleInterval time.Duration) {
	ticker := time.NewTicker(cycleInterval)
	defer ticker.Stop()

	// done is closed after the single send so that every waiter,
	// including a Stop racing with a fault, gets unblocked
	for {
		select {
		case <-ctx.Done():
			close(s.done)
			return
		case <-ticker.C:
			if err := s.Driver.Loop(); err != nil {
				logrus.Errorf("Transmission halted: %s", err)
				s.done <- err
				close(s.done)
				return
			}
		}
	}
}

// Err reports the loop outcome once, after the loop has ended.
func (s *Station) Err() <-chan error {
	return s.done
}

// Stop ends the background loop and powers the track off. With
// emergency set the locomotives receive a broadcast stop first.
func (s *Station) Stop(emergency bool) error {
	if emergency {
		s.Driver.EmergencyStop()
		// one extra cycle so the burst reaches the rails
		if loopErr := s.Driver.Loop(); loopErr != nil {
			logrus.Debugf("Emergency flush failed: %s", loopErr)
		}
	}
	s.cancel()
	<-s.done
	return s.Driver.Close()
}
