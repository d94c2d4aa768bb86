package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Engine selects the bit clock backend: "serial" streams transfer
// words to a tethered bit-clock MCU, "sim" keeps them in memory.
type Engine struct {
	Type   string
	Device string
	Baud   int
}

// Pins is the wiring of the driver stage. The pins are not driven by
// this process; they document the board layout and are handed to the
// bit-clock MCU at provisioning time.
type Pins struct {
	Brake     uint8
	PWM       uint8
	Power     uint8
	Direction uint8
	Sense     uint8
}

// Sense is the current-sense calibration and the short circuit limit.
type Sense struct {
	Samples            int
	Smoothing          float64
	ShuntOhms          float64
	ARefMillivolts     float64
	SenseRatio         float64
	QuiescentMilliamps float64
	LimitMilliamps     int
}

// Station is the transmission behavior of the command station.
type Station struct {
	PreambleBits    int
	CheckIntervalMs int
	CycleIntervalMs int
	SettleMs        int
}

func (s Station) CheckInterval() time.Duration {
	return time.Duration(s.CheckIntervalMs) * time.Millisecond
}

func (s Station) CycleInterval() time.Duration {
	return time.Duration(s.CycleIntervalMs) * time.Millisecond
}

func (s Station) Settle() time.Duration {
	return time.Duration(s.SettleMs) * time.Millisecond
}

// Loco describes the default locomotive driven by the CLI when no
// flags override it.
type Loco struct {
	Address     uint16
	LongAddress bool
	SpeedSteps  uint8
}

type Configuration struct {
	Engine  Engine
	Pins    Pins
	Sense   Sense
	Station Station
	Loco    Loco
}

func NewConfig() (*Configuration, error) {
	config := Configuration{}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName(".picolo")
	v.AddConfigPath("$HOME/")
	v.AddConfigPath(".")
	_ = v.SafeWriteConfig()

	v.SetDefault("engine.type", "sim")
	v.SetDefault("engine.device", "/dev/ttyACM0")
	v.SetDefault("engine.baud", 115200)

	// reference board wiring (RP2040 + LMD18200T)
	v.SetDefault("pins.brake", 20)
	v.SetDefault("pins.pwm", 19)
	v.SetDefault("pins.power", 22)
	v.SetDefault("pins.direction", 21)
	v.SetDefault("pins.sense", 27)

	// LMD18200T datasheet calibration
	v.SetDefault("sense.samples", 200)
	v.SetDefault("sense.smoothing", 0.175)
	v.SetDefault("sense.shuntohms", 20000)
	v.SetDefault("sense.arefmillivolts", 3300)
	v.SetDefault("sense.senseratio", 0.000377)
	v.SetDefault("sense.quiescentmilliamps", 17)
	v.SetDefault("sense.limitmilliamps", 1000)

	v.SetDefault("station.preamblebits", 14)
	v.SetDefault("station.checkintervalms", 100)
	v.SetDefault("station.cycleintervalms", 50)
	v.SetDefault("station.settlems", 100)

	v.SetDefault("loco.address", 3)
	v.SetDefault("loco.longaddress", false)
	v.SetDefault("loco.speedsteps", 128)

	if err := v.ReadInConfig(); err != nil {
		return &Configuration{}, fmt.Errorf("cannot parse config: %s", err.Error())
	}
	if err := v.Unmarshal(&config); err != nil {
		return &config, fmt.Errorf("cannot parse config: %s", err.Error())
	}
	if err := config.Validate(); err != nil {
		return &config, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks the folded constants once at startup so a bad file
// fails loudly instead of mis-driving hardware.
func (c *Configuration) Validate() error {
	// normalized here so the wiring code can match on the exact value
	c.Engine.Type = strings.ToLower(strings.TrimSpace(c.Engine.Type))
	switch c.Engine.Type {
	case "serial", "sim":
	default:
		return fmt.Errorf("unknown engine type %q (use: serial | sim)", c.Engine.Type)
	}
	if c.Engine.Type == "serial" && c.Engine.Device == "" {
		return fmt.Errorf("the serial engine needs engine.device")
	}

	pins := []uint8{c.Pins.Brake, c.Pins.PWM, c.Pins.Power, c.Pins.Direction, c.Pins.Sense}
	seen := map[uint8]bool{}
	for _, pin := range pins {
		if seen[pin] {
			return fmt.Errorf("pin %d is assigned twice", pin)
		}
		seen[pin] = true
	}

	if c.Sense.Samples <= 0 {
		return fmt.Errorf("sense.samples must be positive")
	}
	if c.Sense.Smoothing <= 0 || c.Sense.Smoothing > 1 {
		return fmt.Errorf("sense.smoothing must be in (0,1]")
	}
	if c.Sense.ShuntOhms <= 0 || c.Sense.ARefMillivolts <= 0 || c.Sense.SenseRatio <= 0 {
		return fmt.Errorf("sense calibration values must be positive")
	}
	if c.Sense.LimitMilliamps <= 0 {
		return fmt.Errorf("sense.limitmilliamps must be positive")
	}

	if c.Station.PreambleBits < 14 {
		return fmt.Errorf("station.preamblebits must be at least 14")
	}
	if c.Station.CheckIntervalMs <= 0 || c.Station.CycleIntervalMs <= 0 {
		return fmt.Errorf("station intervals must be positive")
	}

	switch c.Loco.SpeedSteps {
	case 28, 128:
	case 14:
		return fmt.Errorf("14 speed steps are not supported")
	default:
		return fmt.Errorf("loco.speedsteps must be 28 or 128")
	}
	if c.Loco.Address == 0 {
		return fmt.Errorf("loco.address 0 is the broadcast address")
	}

	return nil
}
