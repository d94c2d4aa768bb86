package track

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/keskad/picolo/pkgs/current"
	"github.com/keskad/picolo/pkgs/dcc"
	"github.com/keskad/picolo/pkgs/hal"
)

func TestLoopRequiresPower(t *testing.T) {
	driver, _ := newTestDriver(nil)

	err := driver.Loop()
	assert.True(t, errors.Is(err, ErrPowerOff), "a cycle while powered down is caller misuse")
}

func TestPowerOnLineSequenceAndCheck(t *testing.T) {
	brake, pwm, power := &hal.MemoryLine{}, &hal.MemoryLine{}, &hal.MemoryLine{}
	engine := &hal.MemoryEngine{}
	monitor := current.NewMonitor(&hal.MemoryADC{Readings: []uint16{0}}, current.DefaultConfig())
	driver := NewDriver(Config{CheckInterval: time.Hour}, Lines{Brake: brake, PWM: pwm, Power: power}, engine, monitor)

	assert.NoError(t, driver.PowerOn())
	assert.True(t, driver.Powered())
	assert.True(t, pwm.Get())
	assert.False(t, brake.Get())
	assert.True(t, power.Get())

	assert.NoError(t, driver.PowerOff())
	assert.False(t, driver.Powered())
	assert.True(t, brake.Get(), "power off must leave the bridge braked")
	assert.False(t, pwm.Get())
	assert.False(t, power.Get())
}

func TestPowerOnSurfacesOvercurrent(t *testing.T) {
	cfg := current.DefaultConfig()
	cfg.LimitMilliamps = 100

	engine := &hal.MemoryEngine{}
	monitor := current.NewMonitor(&hal.MemoryADC{Readings: []uint16{0xFFFF}}, cfg)
	driver := NewDriver(Config{}, Lines{Brake: &hal.MemoryLine{}, PWM: &hal.MemoryLine{}, Power: &hal.MemoryLine{}}, engine, monitor)

	err := driver.PowerOn()
	var oc *current.OvercurrentError
	assert.True(t, errors.As(err, &oc), "power on runs a synchronous short check")

	// detection does not cut power; that is the caller's move
	assert.True(t, driver.Powered())
}

func TestLoopHandsIdleBufferToEngine(t *testing.T) {
	driver, engine := newTestDriver([]uint16{0})

	assert.NoError(t, driver.PowerOn())
	assert.NoError(t, driver.Loop())
	assert.Equal(t, dcc.IdleWords(), engine.LastWords(), "powered track is never silent")
	assert.Equal(t, 1, engine.Loads())
}

func TestLoopEndToEnd(t *testing.T) {
	driver, engine := newTestDriver([]uint16{0})
	loco, err := driver.Attach(3, false, dcc.Steps128)
	assert.NoError(t, err)

	assert.NoError(t, driver.PowerOn())
	loco.Drive(dcc.Forward, 50)

	assert.NoError(t, driver.Loop())
	words := engine.LastWords()
	assert.Len(t, words, 8)
	assert.Equal(t, uint32(0xFFFFFFE0), words[0])
	assert.Equal(t, uint32(0x31FAD111), words[1])

	// unchanged cycle pushes the identical sequence again
	assert.NoError(t, driver.Loop())
	assert.Equal(t, words, engine.LastWords())
	assert.Equal(t, 2, engine.Loads())
}

func TestLoopEmergencyStop(t *testing.T) {
	driver, engine := newTestDriver([]uint16{0})
	_, err := driver.Attach(3, false, dcc.Steps128)
	assert.NoError(t, err)

	assert.NoError(t, driver.PowerOn())
	driver.EmergencyStop()
	assert.NoError(t, driver.Loop())

	expected := make([]uint32, 0, 10)
	for i := 0; i < 5; i++ {
		expected = append(expected, dcc.EmergencyWords()...)
	}
	assert.Equal(t, expected, engine.LastWords())
}

func TestLoopPeriodicCheckSurfacesOvercurrent(t *testing.T) {
	cfg := current.DefaultConfig()
	cfg.LimitMilliamps = 100

	engine := &hal.MemoryEngine{}
	monitor := current.NewMonitor(&hal.MemoryADC{Readings: []uint16{0xFFFF}}, cfg)
	driver := NewDriver(Config{CheckInterval: time.Nanosecond}, Lines{Brake: &hal.MemoryLine{}, PWM: &hal.MemoryLine{}, Power: &hal.MemoryLine{}}, engine, monitor)

	// bring power up regardless of the failing synchronous check
	_ = driver.PowerOn()
	time.Sleep(time.Millisecond)

	var oc *current.OvercurrentError
	err := driver.Loop()
	assert.True(t, errors.As(err, &oc))
	assert.Equal(t, 0, engine.Loads(), "a fault must halt the hand-off for the cycle")
}

func TestAttachValidation(t *testing.T) {
	driver, _ := newTestDriver(nil)

	_, err := driver.Attach(3, false, dcc.Steps14)
	assert.True(t, errors.Is(err, dcc.ErrUnsupportedSpeedMode))

	_, err = driver.Attach(0, false, dcc.Steps128)
	assert.Error(t, err, "address 0 is the broadcast address")

	_, err = driver.Attach(128, false, dcc.Steps128)
	assert.Error(t, err, "short addresses end at 127")

	_, err = driver.Attach(128, true, dcc.Steps128)
	assert.NoError(t, err)

	_, err = driver.Attach(10240, true, dcc.Steps128)
	assert.Error(t, err)
}

func TestCurrentSafeAgainstLoop(t *testing.T) {
	// CheckInterval of one nanosecond makes every cycle sample the
	// ADC, so Loop and Current contend on the monitor
	engine := &hal.MemoryEngine{}
	monitor := current.NewMonitor(&hal.MemoryADC{}, current.DefaultConfig())
	cfg := Config{PreambleBits: dcc.DefaultPreambleBits, CheckInterval: time.Nanosecond}
	driver := NewDriver(cfg, Lines{Brake: &hal.MemoryLine{}, PWM: &hal.MemoryLine{}, Power: &hal.MemoryLine{}}, engine, monitor)
	assert.NoError(t, driver.PowerOn())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			assert.NoError(t, driver.Loop())
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_, err := driver.Current()
			assert.NoError(t, err)
		}
	}()
	wg.Wait()
}
