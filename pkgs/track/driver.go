package track

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/keskad/picolo/pkgs/current"
	"github.com/keskad/picolo/pkgs/dcc"
	"github.com/keskad/picolo/pkgs/hal"
)

// ErrPowerOff signals a control cycle invoked while the driver stage
// is powered down, which is caller misuse.
var ErrPowerOff = errors.New("power is off")

// maxLocoAddress is the highest 14-bit decoder address.
const maxLocoAddress = 10239

// Lines groups the H-bridge control pins of the driver stage.
type Lines struct {
	Brake hal.Line
	PWM   hal.Line
	Power hal.Line
}

// Config carries the electrical behavior of the driver.
type Config struct {
	PreambleBits int

	// CheckInterval bounds how often Loop runs the overcurrent check.
	CheckInterval time.Duration

	// SettleDelay is the pause after power transitions in Begin/Close.
	SettleDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		PreambleBits:  dcc.DefaultPreambleBits,
		CheckInterval: 100 * time.Millisecond,
		SettleDelay:   100 * time.Millisecond,
	}
}

// Driver owns the electrical side of the track: the H-bridge control
// lines, the power state, the current monitor, the locomotive
// registry and the transmission buffer. Locomotive handles point back
// to one shared Driver instead of every locomotive carrying its own
// copy of the hardware state.
type Driver struct {
	mu sync.Mutex

	cfg     Config
	lines   Lines
	engine  hal.BitClockEngine
	monitor *current.Monitor

	registry Registry
	buffer   *Buffer

	powered   bool
	lastCheck time.Time
}

func NewDriver(cfg Config, lines Lines, engine hal.BitClockEngine, monitor *current.Monitor) *Driver {
	if cfg.PreambleBits <= 0 {
		cfg.PreambleBits = dcc.DefaultPreambleBits
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = DefaultConfig().CheckInterval
	}
	return &Driver{
		cfg:     cfg,
		lines:   lines,
		engine:  engine,
		monitor: monitor,
		buffer:  NewBuffer(cfg.PreambleBits),
	}
}

// Attach registers a locomotive and returns its command handle.
func (d *Driver) Attach(address uint16, longAddress bool, mode dcc.SpeedMode) (*Locomotive, error) {
	if mode == dcc.Steps14 {
		return nil, dcc.ErrUnsupportedSpeedMode
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown speed mode %d", mode)
	}
	if address == 0 || address > maxLocoAddress || (!longAddress && address > 127) {
		return nil, fmt.Errorf("invalid locomotive address %d", address)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	loco := &Locomotive{
		driver:      d,
		address:     address,
		longAddress: longAddress,
		mode:        mode,
		dir:         dcc.Forward,
		functions:   dcc.NewFunctionGroups(),
		dirty:       true,
	}
	d.registry.add(loco)
	logrus.Debugf("loco %d attached (long=%v, %d steps)", address, longAddress, mode)
	return loco, nil
}

// PowerOn enables the bridge per the LMD18200 logic table: PWM high,
// brake released, then the power enable, followed by a synchronous
// short check. A detected overcurrent is returned, not acted on; the
// caller decides whether to power off.
func (d *Driver) PowerOn() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.lines.PWM.Set(true); err != nil {
		return fmt.Errorf("cannot raise the PWM line: %w", err)
	}
	if err := d.lines.Brake.Set(false); err != nil {
		return fmt.Errorf("cannot release the brake line: %w", err)
	}
	if err := d.lines.Power.Set(true); err != nil {
		return fmt.Errorf("cannot assert the power line: %w", err)
	}
	d.powered = true
	d.lastCheck = time.Now()
	logrus.Info("track power on")
	return d.monitor.CheckShort()
}

// PowerOff brakes the bridge and cuts power. A pending emergency
// override and the held buffer are dropped with the power.
func (d *Driver) PowerOff() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.lines.Brake.Set(true); err != nil {
		return fmt.Errorf("cannot assert the brake line: %w", err)
	}
	if err := d.lines.PWM.Set(false); err != nil {
		return fmt.Errorf("cannot drop the PWM line: %w", err)
	}
	if err := d.lines.Power.Set(false); err != nil {
		return fmt.Errorf("cannot release the power line: %w", err)
	}
	d.powered = false
	d.buffer.reset()
	logrus.Info("track power off")
	return nil
}

func (d *Driver) Powered() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.powered
}

// EmergencyStop arms the one-shot broadcast stop for the next cycle.
func (d *Driver) EmergencyStop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buffer.EmergencyStop()
	logrus.Warn("emergency stop armed")
}

// Current samples the track current in milliamps. Holds the driver
// lock so the sample never interleaves with the periodic check in
// Loop on the same ADC.
func (d *Driver) Current() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.monitor.Sample()
}

// Loop runs one control cycle: the periodic overcurrent check, then
// the buffer hand-off. The whole cycle holds the driver lock, so the
// engine never observes a partially replaced sequence and command
// mutators never interleave with a rebuild. Returns ErrPowerOff when
// invoked while powered down; an OvercurrentError halts the hand-off
// for this cycle and is surfaced to the caller.
func (d *Driver) Loop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.powered {
		return ErrPowerOff
	}

	if time.Since(d.lastCheck) >= d.cfg.CheckInterval {
		if err := d.monitor.CheckShort(); err != nil {
			return err
		}
		d.lastCheck = time.Now()
	}

	words, err := d.buffer.Tick(&d.registry)
	if err != nil {
		return fmt.Errorf("cannot rebuild the track buffer: %w", err)
	}
	return d.engine.Load(words)
}

// Begin powers the track up and lets the bridge settle.
func (d *Driver) Begin() error {
	if err := d.PowerOn(); err != nil {
		return err
	}
	time.Sleep(d.cfg.SettleDelay)
	return nil
}

// Close powers the track down and releases the engine.
func (d *Driver) Close() error {
	if d.Powered() {
		if err := d.PowerOff(); err != nil {
			return err
		}
		time.Sleep(d.cfg.SettleDelay)
	}
	return d.engine.Close()
}
