package hal

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/tarm/serial"
)

// SerialConfig describes the link to a tethered bit-clock MCU.
type SerialConfig struct {
	// Device path, e.g. "/dev/ttyACM0".
	Device string
	Baud   int

	// ReadTimeout bounds reads when draining the port.
	ReadTimeout time.Duration
}

// SerialEngine streams transfer words big-endian over a serial link to
// an external microcontroller that runs the physical bit clock. One
// Load call writes the whole sequence in a single port write, so the
// remote side never latches a half-replaced buffer.
type SerialEngine struct {
	mu   sync.Mutex
	port *serial.Port
}

// OpenSerialEngine opens the serial port to the bit-clock MCU.
func OpenSerialEngine(cfg SerialConfig) (*SerialEngine, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot open bit clock port %s: %w", cfg.Device, err)
	}
	return &SerialEngine{port: port}, nil
}

func (e *SerialEngine) Load(words []uint32) error {
	buf := make([]byte, 4*len(words))
	for i, w := range words {
		binary.BigEndian.PutUint32(buf[4*i:], w)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.port.Write(buf); err != nil {
		return fmt.Errorf("cannot push %d transfer words: %w", len(words), err)
	}
	return nil
}

func (e *SerialEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.port.Close()
}
