// Package current samples the H-bridge current sense output and turns
// raw ADC codes into calibrated milliamp readings. It is the safety
// input of the track driver: a reading above the configured limit is a
// short circuit and must stop transmission.
package current

import (
	"fmt"
	"math"

	"github.com/keskad/picolo/pkgs/hal"
	"github.com/sirupsen/logrus"
)

// Config is the calibration of the sense path: the ADC reference, the
// shunt the sense current develops across, the bridge's sense ratio
// and its quiescent draw, plus the denoise window and the limit.
type Config struct {
	// Samples per Sample() call; noise is smoothed across the window.
	Samples int

	// Smoothing is the exponential smoothing factor per reading.
	Smoothing float64

	ShuntOhms      float64
	ARefMillivolts float64

	// SenseRatio is the sense current per ampere of bridge current
	// (LMD18200: 377 µA/A).
	SenseRatio float64

	QuiescentMilliamps float64

	// LimitMilliamps is the short circuit threshold.
	LimitMilliamps int
}

// DefaultConfig is the LMD18200T calibration of the reference board.
func DefaultConfig() Config {
	return Config{
		Samples:            200,
		Smoothing:          0.175,
		ShuntOhms:          20000,
		ARefMillivolts:     3300,
		SenseRatio:         0.000377,
		QuiescentMilliamps: 17,
		LimitMilliamps:     1000,
	}
}

// OvercurrentError is the short circuit fault. It is fatal for the
// running cycle; the monitor only detects, cutting power is up to the
// caller.
type OvercurrentError struct {
	Milliamps int
	Limit     int
}

func (e *OvercurrentError) Error() string {
	return fmt.Sprintf("short circuit: %d mA exceeds the %d mA limit", e.Milliamps, e.Limit)
}

// Monitor reads the current sense input through the HAL.
type Monitor struct {
	adc hal.ADC
	cfg Config
}

func NewMonitor(adc hal.ADC, cfg Config) *Monitor {
	if cfg.Samples <= 0 {
		cfg.Samples = DefaultConfig().Samples
	}
	return &Monitor{adc: adc, cfg: cfg}
}

// Sample reads the whole denoise window and returns the calibrated
// track current in milliamps. Per reading the smoothed estimate moves
// by the smoothing factor; the maximum smoothed value across the
// window is kept, so short spikes are not averaged away.
func (m *Monitor) Sample() (int, error) {
	var smoothed, peak float64
	for i := 0; i < m.cfg.Samples; i++ {
		raw, err := m.adc.ReadRaw()
		if err != nil {
			return 0, fmt.Errorf("cannot read current sense input: %w", err)
		}
		smoothed += (float64(raw) - smoothed) * m.cfg.Smoothing
		if smoothed > peak {
			peak = smoothed
		}
	}
	return int(math.Round(m.milliamps(peak))), nil
}

// milliamps converts a raw code: ADC code to millivolts at the sense
// pin, through the shunt to the sense current, through the sense
// ratio to bridge current, minus the quiescent draw.
func (m *Monitor) milliamps(raw float64) float64 {
	millivolts := raw * m.cfg.ARefMillivolts / 65535
	senseMilliamps := millivolts / m.cfg.ShuntOhms
	return senseMilliamps/m.cfg.SenseRatio - m.cfg.QuiescentMilliamps
}

// Check fails with OvercurrentError when the given reading exceeds
// the configured limit.
func (m *Monitor) Check(milliamps int) error {
	if milliamps > m.cfg.LimitMilliamps {
		return &OvercurrentError{Milliamps: milliamps, Limit: m.cfg.LimitMilliamps}
	}
	return nil
}

// CheckShort samples once and checks the result against the limit.
func (m *Monitor) CheckShort() error {
	milliamps, err := m.Sample()
	if err != nil {
		return err
	}
	logrus.Debugf("track current: %d mA", milliamps)
	return m.Check(milliamps)
}
