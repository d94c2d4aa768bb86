package hal

import "sync"

// MemoryLine is a Line backed by a plain bool. It stands in for real
// GPIO in tests and in the simulated engine mode; pin bring-up happens
// outside this module.
type MemoryLine struct {
	high bool
}

func (l *MemoryLine) Set(high bool) error {
	l.high = high
	return nil
}

func (l *MemoryLine) Get() bool {
	return l.high
}

// MemoryADC replays a fixed sequence of raw readings and then repeats
// the last one. Tests use it to inject current-sense traces.
type MemoryADC struct {
	Readings []uint16
	pos      int
}

func (a *MemoryADC) ReadRaw() (uint16, error) {
	if len(a.Readings) == 0 {
		return 0, nil
	}
	v := a.Readings[a.pos]
	if a.pos < len(a.Readings)-1 {
		a.pos++
	}
	return v, nil
}

// MemoryEngine records every loaded word sequence. It doubles as the
// "sim" engine of the CLI and as the consumer side in tests.
type MemoryEngine struct {
	mu    sync.Mutex
	last  []uint32
	loads int
}

func (e *MemoryEngine) Load(words []uint32) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.last = append(e.last[:0], words...)
	e.loads++
	return nil
}

func (e *MemoryEngine) Close() error {
	return nil
}

// LastWords returns a copy of the most recently loaded sequence.
func (e *MemoryEngine) LastWords() []uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]uint32(nil), e.last...)
}

// Loads returns how many sequences were handed over so far.
func (e *MemoryEngine) Loads() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loads
}
